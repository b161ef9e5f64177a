package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveThemeBuiltins(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, err := ResolveTheme(name)
		if err != nil {
			t.Fatalf("ResolveTheme(%q): %v", name, err)
		}
		if theme.Name != name {
			t.Errorf("theme name = %q, want %q", theme.Name, name)
		}
		if err := theme.Validate(); err != nil {
			t.Errorf("built-in %q does not validate: %v", name, err)
		}
	}
}

func TestResolveThemeUnknown(t *testing.T) {
	if _, err := ResolveTheme("neon-dreams"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ResolveTheme = %v, want ErrUnknownTheme", err)
	}
}

func TestLoadThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chalk.toml")
	src := `
name = "chalk"
background = "#1d1d1d"

[outline]
color = "#fafafa"
width = 0.15

[wall]
color = "#fafafa"
width = 0.07
dash = "0.2 0.12"

[path]
color = "#8ecae6"
width = 0.1

[marker]
start = "#8ecae6"
end = "#ffb703"
radius = 0.2
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile: %v", err)
	}
	if theme.Name != "chalk" {
		t.Errorf("name = %q, want chalk", theme.Name)
	}
	if theme.Wall.Dash != "0.2 0.12" {
		t.Errorf("wall dash = %q", theme.Wall.Dash)
	}
	if !theme.Outline.Visible() {
		t.Error("outline stroke should be visible")
	}

	// ResolveTheme falls through to file paths.
	viaResolve, err := ResolveTheme(path)
	if err != nil {
		t.Fatalf("ResolveTheme(path): %v", err)
	}
	if viaResolve.Name != "chalk" {
		t.Errorf("resolved name = %q", viaResolve.Name)
	}
}

func TestLoadThemeFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.toml")
	src := `
name = "typo"
[outlnie]
color = "#000"
width = 0.1
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThemeFile(path); err == nil {
		t.Error("expected error for misspelled table")
	}
}

func TestThemeValidateInvisible(t *testing.T) {
	var blank Theme
	if err := blank.Validate(); err == nil {
		t.Error("expected error for theme that draws nothing")
	}
}
