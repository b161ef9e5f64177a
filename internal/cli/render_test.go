package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/graphio"
	"github.com/tilemaze/tilemaze/pkg/grid"
)

// writeTestDocument writes a 2x2 square maze document and returns its path.
func writeTestDocument(t *testing.T) string {
	t.Helper()
	doc := `{
  "shape": "square",
  "cells": ["0,0", "1,0", "0,1", "1,1"],
  "links": [["0,0", "1,0"], ["0,0", "0,1"], ["0,1", "1,1"]]
}`
	path := filepath.Join(t.TempDir(), "maze.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeTestDocument(t)

	doc, shape, err := loadDocument(path)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	if shape != grid.ShapeSquare {
		t.Errorf("shape = %q", shape)
	}
	if len(doc.Cells) != 4 || len(doc.Links) != 3 {
		t.Errorf("document = %d cells, %d links", len(doc.Cells), len(doc.Links))
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, _, err := loadDocument(filepath.Join(t.TempDir(), "nope.json"))
		if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("BadShape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maze.json")
		os.WriteFile(path, []byte(`{"shape": "octagon", "cells": [], "links": []}`), 0o644)
		_, _, err := loadDocument(path)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidShape) {
			t.Errorf("error = %v, want INVALID_SHAPE", err)
		}
	})
}

func TestRenderDocument(t *testing.T) {
	input := writeTestDocument(t)
	doc, _, err := loadDocument(input)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}

	base := filepath.Join(t.TempDir(), "out")
	paths, err := renderDocument(doc, graphio.SquareCodec(), nil, &renderOpts{output: base}, []string{"svg", "dot"}, input)
	if err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg output malformed: %.40s", svg)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("dot output malformed: %.40s", dot)
	}
}

func TestRenderDocumentToroidalMeta(t *testing.T) {
	// A 3x1 horizontal ring carved into a line: the wrap-around link is
	// absent, so the left and right boundary must redraw as wall, not
	// outline, after the JSON round trip.
	raw := `{
  "shape": "square",
  "meta": {"torus_x": true, "width": 3, "height": 1},
  "cells": ["0,0", "1,0", "2,0"],
  "links": [["0,0", "1,0"], ["1,0", "2,0"]]
}`
	input := filepath.Join(t.TempDir(), "ring.json")
	if err := os.WriteFile(input, []byte(raw), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	doc, _, err := loadDocument(input)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	g, err := graphio.SquareGridFor(doc)
	if err != nil {
		t.Fatalf("SquareGridFor: %v", err)
	}
	if g == nil || !g.TorusX || g.Width != 3 {
		t.Fatalf("grid = %+v, want 3-wide torus", g)
	}

	dir := t.TempDir()
	if _, err := renderDocument(doc, graphio.SquareCodec(), g.Classifier, &renderOpts{output: filepath.Join(dir, "wrapped")}, []string{"svg"}, input); err != nil {
		t.Fatalf("renderDocument wrapped: %v", err)
	}
	if _, err := renderDocument(doc, graphio.SquareCodec(), nil, &renderOpts{output: filepath.Join(dir, "flat")}, []string{"svg"}, input); err != nil {
		t.Fatalf("renderDocument flat: %v", err)
	}

	wrapped, _ := os.ReadFile(filepath.Join(dir, "wrapped.svg"))
	flat, _ := os.ReadFile(filepath.Join(dir, "flat.svg"))
	if string(wrapped) == string(flat) {
		t.Error("torus classifier had no effect on the rendered boundary")
	}
}

func TestRenderDocumentBadTheme(t *testing.T) {
	input := writeTestDocument(t)
	doc, _, _ := loadDocument(input)

	base := filepath.Join(t.TempDir(), "out")
	_, err := renderDocument(doc, graphio.SquareCodec(), nil, &renderOpts{theme: "nope", output: base}, []string{"svg"}, input)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidTheme) {
		t.Errorf("error = %v, want INVALID_THEME", err)
	}
}

func TestSolveDocument(t *testing.T) {
	input := writeTestDocument(t)
	doc, _, _ := loadDocument(input)

	path, err := solveDocument(doc, graphio.SquareCodec(), "1,0", "1,1")
	if err != nil {
		t.Fatalf("solveDocument: %v", err)
	}
	// The only route runs back through the start corner.
	want := []string{"1,0", "0,0", "0,1", "1,1"}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestSolveDocumentDefaultsToCorners(t *testing.T) {
	input := writeTestDocument(t)
	doc, _, _ := loadDocument(input)

	path, err := solveDocument(doc, graphio.SquareCodec(), "", "")
	if err != nil {
		t.Fatalf("solveDocument: %v", err)
	}
	if path[0] != "0,0" || path[len(path)-1] != "1,1" {
		t.Errorf("path endpoints = %v", path)
	}
}

func TestDocumentBase(t *testing.T) {
	if got := documentBase("", "maze.json"); got != "maze" {
		t.Errorf("documentBase = %q", got)
	}
	if got := documentBase("out/drawing.svg", "maze.json"); got != "out/drawing" {
		t.Errorf("documentBase = %q", got)
	}
}
