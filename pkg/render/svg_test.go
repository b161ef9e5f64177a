package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tilemaze/tilemaze/pkg/geom"
	"github.com/tilemaze/tilemaze/pkg/grid"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

func squareMaze(t *testing.T, w, h int, seed uint64) *structure.Structure[grid.Square] {
	t.Helper()
	g, err := grid.NewSquareGrid(w, h)
	if err != nil {
		t.Fatalf("NewSquareGrid: %v", err)
	}
	maze, err := g.Structure().GenerateMaze(structure.SeededRand(seed))
	if err != nil {
		t.Fatalf("GenerateMaze: %v", err)
	}
	return maze
}

func TestRenderSVG(t *testing.T) {
	maze := squareMaze(t, 5, 4, 13)

	svg, err := RenderSVG(maze)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg header")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
	// Default padding 0.5 around a 5x4 board.
	if !strings.Contains(out, `viewBox="-0.500 -0.500 6 5"`) {
		t.Errorf("unexpected viewBox in:\n%s", firstLine(out))
	}
	if !strings.Contains(out, `<rect`) {
		t.Error("missing background rect")
	}
	if got := strings.Count(out, "<path"); got == 0 {
		t.Error("no path elements")
	}
	// The outer boundary closes.
	if !strings.Contains(out, " Z") {
		t.Error("no closed path in output")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	maze := squareMaze(t, 4, 4, 5)
	first, err := RenderSVG(maze)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	second, err := RenderSVG(maze)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if string(first) != string(second) {
		t.Error("output differs between runs")
	}
}

func TestRenderSVGSolution(t *testing.T) {
	maze := squareMaze(t, 4, 4, 7)
	path, found, err := maze.FindPath(grid.Square{Col: 0, Row: 0}, grid.Square{Col: 3, Row: 3})
	if err != nil || !found {
		t.Fatalf("FindPath: %v found=%v", err, found)
	}

	svg, err := RenderSVG(maze, WithSolution[grid.Square](path))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("markers = %d, want 2", got)
	}
	// Path starts at the center of the origin cell.
	if !strings.Contains(out, `d="M 0.500 0.500 L `) {
		t.Error("solution polyline does not start at origin center")
	}
}

func TestRenderSVGTheme(t *testing.T) {
	maze := squareMaze(t, 3, 3, 1)
	svg, err := RenderSVG(maze, WithTheme[grid.Square](Blueprint()))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `fill="#16324f"`) {
		t.Error("blueprint background missing")
	}
	if !strings.Contains(out, `stroke-dasharray="0.18 0.1"`) {
		t.Error("dashed walls missing")
	}
}

func TestRenderSVGToroidal(t *testing.T) {
	g, err := grid.NewSquareGrid(4, 4, grid.WithTorusX(), grid.WithTorusY())
	if err != nil {
		t.Fatalf("NewSquareGrid: %v", err)
	}
	maze, err := g.Structure().GenerateMaze(structure.SeededRand(3))
	if err != nil {
		t.Fatalf("GenerateMaze: %v", err)
	}

	plain, err := RenderSVG(maze)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	wrapped, err := RenderSVG(maze, WithClassifier(g.Classifier(maze)))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	// With the classifier, boundary edges move from the outline layer to
	// walls or passages, so the output must change.
	if string(plain) == string(wrapped) {
		t.Error("classifier had no effect on toroidal rendering")
	}
}

func TestRenderSVGInvalidTheme(t *testing.T) {
	maze := squareMaze(t, 2, 2, 1)
	if _, err := RenderSVG(maze, WithTheme[grid.Square](Theme{Name: "void"})); err == nil {
		t.Error("expected error for theme that draws nothing")
	}
}

// arcVertex draws its incoming edge as a quarter arc instead of a line.
type arcVertex struct{ X, Y int }

func (v arcVertex) Pos() geom.Point { return geom.Pt(float64(v.X), float64(v.Y)) }

func (v arcVertex) Fragment(prev outline.Vertex, closing bool) string {
	p := v.Pos()
	return fmt.Sprintf("A 1 1 0 0 1 %g %g", p.X, p.Y)
}

// arcCell is a unit square whose corners are arc vertices.
type arcCell struct{ X, Y int }

func (c arcCell) VertexLoop() []outline.Vertex {
	return []outline.Vertex{
		arcVertex{c.X, c.Y},
		arcVertex{c.X + 1, c.Y},
		arcVertex{c.X + 1, c.Y + 1},
		arcVertex{c.X, c.Y + 1},
	}
}

func (c arcCell) Center() geom.Point {
	return geom.Pt(float64(c.X)+0.5, float64(c.Y)+0.5)
}

func TestRenderSVGFragmenter(t *testing.T) {
	s, err := structure.New([]arcCell{{0, 0}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	svg, err := RenderSVG(s)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "A 1 1 0 0 1") {
		t.Error("fragmenter output missing from path data")
	}
	if strings.Contains(out, " L ") {
		t.Error("fragmenter vertices should replace straight lines")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
