package grid

import (
	"fmt"

	"github.com/tilemaze/tilemaze/pkg/geom"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

// Tri is a unit equilateral triangle in a strip tiling. Y grows downward,
// matching SVG coordinates: triangles at even X+Y render apex-down, odd
// apex-up, and horizontal neighbors alternate orientation.
type Tri struct {
	X int
	Y int
}

// PointsDown reports whether the triangle renders apex-down, with its
// horizontal base edge at the top.
func (c Tri) PointsDown() bool {
	return (c.X+c.Y)%2 == 0
}

// Neighbors reports the two horizontal neighbors plus the base-sharing
// vertical one: the row above for apex-down triangles, below for apex-up
// ones.
func (c Tri) Neighbors() []Tri {
	vertical := Tri{c.X, c.Y + 1}
	if c.PointsDown() {
		vertical = Tri{c.X, c.Y - 1}
	}
	return []Tri{{c.X - 1, c.Y}, {c.X + 1, c.Y}, vertical}
}

// VertexLoop returns the three corners. Corners live on the triangular
// lattice [TriVertex] so that touching triangles share vertex values.
func (c Tri) VertexLoop() []outline.Vertex {
	if c.PointsDown() {
		base := (c.X - c.Y) / 2
		return []outline.Vertex{
			TriVertex{base, c.Y},
			TriVertex{base + 1, c.Y},
			TriVertex{base, c.Y + 1},
		}
	}
	base := (c.X - c.Y + 1) / 2
	return []outline.Vertex{
		TriVertex{base, c.Y},
		TriVertex{base, c.Y + 1},
		TriVertex{base - 1, c.Y + 1},
	}
}

// Center returns the triangle centroid.
func (c Tri) Center() geom.Point {
	loop := c.VertexLoop()
	var sum geom.Point
	for _, v := range loop {
		sum = sum.Add(v.Pos())
	}
	return sum.Scale(1.0 / 3.0)
}

func (c Tri) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ParseTri parses the "x,y" form produced by [Tri.String].
func ParseTri(s string) (Tri, error) {
	sq, err := ParseSquare(s)
	if err != nil {
		return Tri{}, err
	}
	return Tri{X: sq.Col, Y: sq.Row}, nil
}

// TriVertex is a point on the triangular lattice: position
// (I + J/2, J*sqrt(3)/2) in the plane.
type TriVertex struct {
	I int
	J int
}

// Pos implements [outline.Vertex].
func (v TriVertex) Pos() geom.Point {
	return geom.Pt(float64(v.I)+float64(v.J)/2, float64(v.J)*sqrt3/2)
}

// TriGrid is a Width×Height strip tiling of triangles. Width counts
// triangles per row, alternating up and down; a row of w triangles spans
// (w+1)/2 unit base lengths.
type TriGrid struct {
	Width  int
	Height int

	s *structure.Structure[Tri]
}

// NewTriGrid builds a triangle strip grid and its full-adjacency structure.
func NewTriGrid(width, height int) (*TriGrid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	g := &TriGrid{Width: width, Height: height}

	cells := make([]Tri, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, Tri{X: x, Y: y})
		}
	}

	s, err := structure.New(cells, structure.WithRebuild(rebuildTri))
	if err != nil {
		return nil, err
	}
	g.s = s
	return g, nil
}

// Structure returns the grid's full-adjacency structure.
func (g *TriGrid) Structure() *structure.Structure[Tri] {
	return g.s
}

func rebuildTri(cells []Tri, links []structure.Link[Tri]) *structure.Structure[Tri] {
	s, err := structure.New(cells,
		structure.WithLinks(links),
		structure.WithRebuild(rebuildTri))
	if err != nil {
		panic("grid: rebuild produced invalid links: " + err.Error())
	}
	return s
}
