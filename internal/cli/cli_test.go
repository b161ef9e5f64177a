package cli

import (
	"io"
	"reflect"
	"testing"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "tilemaze" {
		t.Errorf("root.Use = %q", root.Use)
	}

	want := []string{"generate", "solve", "render", "play", "serve", "themes", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("svg,json,dot"); !reflect.DeepEqual(got, []string{"svg", "json", "dot"}) {
		t.Errorf("parseFormats = %v", got)
	}
	if got := parseFormats("svg, json"); !reflect.DeepEqual(got, []string{"svg", "json"}) {
		t.Errorf("parseFormats with spaces = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{output: "", want: "maze"},
		{output: "out/maze.svg", want: "out/maze"},
		{output: "labyrinth.json", want: "labyrinth"},
		{output: "labyrinth", want: "labyrinth"},
		{output: "archive.tar", want: "archive.tar"}, // unknown extension kept
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true): %v", err)
	}
	if c == nil {
		t.Fatal("newCache(true) returned nil cache")
	}
}
