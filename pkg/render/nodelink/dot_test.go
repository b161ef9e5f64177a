package nodelink

import (
	"strings"
	"testing"

	"github.com/tilemaze/tilemaze/pkg/grid"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

func TestToDOT(t *testing.T) {
	g, err := grid.NewSquareGrid(2, 2)
	if err != nil {
		t.Fatalf("NewSquareGrid: %v", err)
	}
	maze, err := g.Structure().GenerateMaze(structure.SeededRand(1))
	if err != nil {
		t.Fatalf("GenerateMaze: %v", err)
	}

	dot := ToDOT(maze, Options[grid.Square]{})
	if !strings.HasPrefix(dot, "graph G {\n") {
		t.Error("missing graph header")
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Error("missing default layout engine")
	}
	for _, cell := range []string{`"0,0"`, `"1,0"`, `"0,1"`, `"1,1"`} {
		if !strings.Contains(dot, cell) {
			t.Errorf("missing node %s", cell)
		}
	}
	// A 2x2 spanning tree has exactly 3 undirected edges.
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("edges = %d, want 3", got)
	}
}

func TestToDOTDistanceLabels(t *testing.T) {
	g, err := grid.NewSquareGrid(3, 1)
	if err != nil {
		t.Fatalf("NewSquareGrid: %v", err)
	}
	s := g.Structure()
	dists, err := s.FindPaths(grid.Square{Col: 0, Row: 0})
	if err != nil {
		t.Fatalf("FindPaths: %v", err)
	}

	dot := ToDOT(s, Options[grid.Square]{Distances: dists})
	if !strings.Contains(dot, `label="0,0\n0"`) {
		t.Error("origin label missing distance 0")
	}
	if !strings.Contains(dot, `label="2,0\n2"`) {
		t.Error("far cell label missing distance 2")
	}
}

func TestToDOTCustomEngine(t *testing.T) {
	g, err := grid.NewSquareGrid(2, 1)
	if err != nil {
		t.Fatalf("NewSquareGrid: %v", err)
	}
	dot := ToDOT(g.Structure(), Options[grid.Square]{Engine: "fdp"})
	if !strings.Contains(dot, "layout=fdp;") {
		t.Error("custom engine not honored")
	}
}
