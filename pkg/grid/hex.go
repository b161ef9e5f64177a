package grid

import (
	"fmt"

	"github.com/tilemaze/tilemaze/pkg/geom"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

const sqrt3 = 1.7320508075688772

// Hex is a flat-top hexagonal cell in axial coordinates. Q grows to the
// right, R down-right; the implicit cube coordinate is S = -Q-R.
type Hex struct {
	Q int
	R int
}

// Neighbors reports the six axial neighbors.
func (c Hex) Neighbors() []Hex {
	return []Hex{
		{c.Q + 1, c.R},
		{c.Q + 1, c.R - 1},
		{c.Q, c.R - 1},
		{c.Q - 1, c.R},
		{c.Q - 1, c.R + 1},
		{c.Q, c.R + 1},
	}
}

// VertexLoop returns the six corners counterclockwise from the rightmost
// one. Corner coordinates live on a shared integer lattice so that
// adjacent hexes produce identical vertex values for their common corners.
func (c Hex) VertexLoop() []outline.Vertex {
	q, r := c.Q, c.R
	return []outline.Vertex{
		HexVertex{3*q + 2, 2*r + q},
		HexVertex{3*q + 1, 2*r + q - 1},
		HexVertex{3*q - 1, 2*r + q - 1},
		HexVertex{3*q - 2, 2*r + q},
		HexVertex{3*q - 1, 2*r + q + 1},
		HexVertex{3*q + 1, 2*r + q + 1},
	}
}

// Center returns the hex midpoint for a unit corner radius.
func (c Hex) Center() geom.Point {
	return geom.Pt(1.5*float64(c.Q), sqrt3*(float64(c.R)+float64(c.Q)/2))
}

func (c Hex) String() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

// ParseHex parses the "q,r" form produced by [Hex.String].
func ParseHex(s string) (Hex, error) {
	sq, err := ParseSquare(s)
	if err != nil {
		return Hex{}, err
	}
	return Hex{Q: sq.Col, R: sq.Row}, nil
}

// HexVertex is a hex corner on the shared lattice. X is in half-unit
// columns, Y in sqrt(3)/2 rows.
type HexVertex struct {
	X int
	Y int
}

// Pos implements [outline.Vertex].
func (v HexVertex) Pos() geom.Point {
	return geom.Pt(float64(v.X)/2, float64(v.Y)*sqrt3/2)
}

// HexGrid is a hexagon-shaped board of hexes within the given radius of
// the origin. Radius 0 is a single cell.
type HexGrid struct {
	Radius int

	s *structure.Structure[Hex]
}

// NewHexGrid builds a hexagonal board and its full-adjacency structure.
func NewHexGrid(radius int) (*HexGrid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrBadSize, radius)
	}
	g := &HexGrid{Radius: radius}

	cells := make([]Hex, 0, hexCount(radius))
	for r := -radius; r <= radius; r++ {
		for q := -radius; q <= radius; q++ {
			if abs(q+r) <= radius {
				cells = append(cells, Hex{Q: q, R: r})
			}
		}
	}

	s, err := structure.New(cells, structure.WithRebuild(rebuildHex))
	if err != nil {
		return nil, err
	}
	g.s = s
	return g, nil
}

// Structure returns the grid's full-adjacency structure.
func (g *HexGrid) Structure() *structure.Structure[Hex] {
	return g.s
}

// Contains reports whether c lies on the board.
func (g *HexGrid) Contains(c Hex) bool {
	return abs(c.Q) <= g.Radius && abs(c.R) <= g.Radius && abs(c.Q+c.R) <= g.Radius
}

func rebuildHex(cells []Hex, links []structure.Link[Hex]) *structure.Structure[Hex] {
	s, err := structure.New(cells,
		structure.WithLinks(links),
		structure.WithRebuild(rebuildHex))
	if err != nil {
		panic("grid: rebuild produced invalid links: " + err.Error())
	}
	return s
}

// hexCount is the centered hexagonal number 3r(r+1)+1.
func hexCount(radius int) int {
	return 3*radius*(radius+1) + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
