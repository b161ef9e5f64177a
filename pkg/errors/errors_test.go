package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidShape, "unknown shape: %s", "octagon")
	if err.Code != ErrCodeInvalidShape {
		t.Errorf("code = %q", err.Code)
	}
	want := "INVALID_SHAPE: unknown shape: octagon"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "render failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost from chain")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, cause missing", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDisconnected, "structure has unreachable cells")
	if !Is(err, ErrCodeDisconnected) {
		t.Error("Is failed on direct error")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is matched wrong code")
	}

	// Code survives further wrapping with %w.
	wrapped := fmt.Errorf("generate: %w", err)
	if !Is(wrapped, ErrCodeDisconnected) {
		t.Error("Is failed through fmt.Errorf wrapping")
	}

	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is matched a plain error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidTheme, "x")); got != ErrCodeInvalidTheme {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidCell, "cell out of range: 9,9")
	if got := UserMessage(err); got != "cell out of range: 9,9" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "Simple", path: "maze.svg"},
		{name: "Nested", path: "out/maze.svg"},
		{name: "Empty", path: "", wantErr: true},
		{name: "Traversal", path: "../etc/passwd", wantErr: true},
		{name: "InnerTraversal", path: "out/../../x.svg", wantErr: true},
		{name: "NullByte", path: "a\x00b", wantErr: true},
		{name: "TooLong", path: strings.Repeat("a", 501), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %q, want INVALID_PATH", GetCode(err))
			}
		})
	}
}

func TestValidateThemeName(t *testing.T) {
	if err := ValidateThemeName("blueprint"); err != nil {
		t.Errorf("ValidateThemeName: %v", err)
	}
	if err := ValidateThemeName(""); !Is(err, ErrCodeInvalidTheme) {
		t.Errorf("empty theme = %v", err)
	}
	if err := ValidateThemeName("bad\ntheme"); !Is(err, ErrCodeInvalidTheme) {
		t.Errorf("control chars = %v", err)
	}
}
