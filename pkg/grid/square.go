package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tilemaze/tilemaze/pkg/geom"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

var (
	// ErrBadSize is returned by grid constructors for non-positive dimensions.
	ErrBadSize = errors.New("grid dimensions must be positive")

	// ErrBadCoordinate is returned when a cell string cannot be parsed.
	ErrBadCoordinate = errors.New("malformed cell coordinate")
)

// Direction is one of the four orthogonal movement directions on a square
// grid.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// delta returns the column and row offsets of one step.
func (d Direction) delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	}
	return -1, 0
}

// Square is a unit square cell. Row grows downward, matching SVG
// coordinates.
type Square struct {
	Col int
	Row int
}

// Neighbors reports the four orthogonal candidates, bounds-free. Structure
// construction keeps only members of the cell set.
func (c Square) Neighbors() []Square {
	return []Square{
		{c.Col, c.Row - 1},
		{c.Col + 1, c.Row},
		{c.Col, c.Row + 1},
		{c.Col - 1, c.Row},
	}
}

// Move returns the cell n steps away in direction d. It is grid-unaware;
// use [SquareGrid.Step] for bounds checking and toroidal wrapping.
func (c Square) Move(d Direction, n int) Square {
	dc, dr := d.delta()
	return Square{Col: c.Col + n*dc, Row: c.Row + n*dr}
}

// VertexLoop returns the four corners in drawing order.
func (c Square) VertexLoop() []outline.Vertex {
	return []outline.Vertex{
		SquareVertex{c.Col, c.Row},
		SquareVertex{c.Col + 1, c.Row},
		SquareVertex{c.Col + 1, c.Row + 1},
		SquareVertex{c.Col, c.Row + 1},
	}
}

// Center returns the cell's midpoint.
func (c Square) Center() geom.Point {
	return geom.Pt(float64(c.Col)+0.5, float64(c.Row)+0.5)
}

func (c Square) String() string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// ParseSquare parses the "col,row" form produced by [Square.String].
func ParseSquare(s string) (Square, error) {
	lhs, rhs, ok := strings.Cut(s, ",")
	if !ok {
		return Square{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(lhs))
	if err != nil {
		return Square{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rhs))
	if err != nil {
		return Square{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	return Square{Col: col, Row: row}, nil
}

// SquareVertex is a lattice corner shared by up to four squares.
type SquareVertex struct {
	X int
	Y int
}

// Pos implements [outline.Vertex].
func (v SquareVertex) Pos() geom.Point {
	return geom.Pt(float64(v.X), float64(v.Y))
}

// SquareGrid is a Width×Height board of [Square] cells, optionally wrapping
// around either axis. A wrapped axis links the first and last cell of every
// lane, and its nominal boundary edges classify as passage or wall rather
// than outline.
type SquareGrid struct {
	Width  int
	Height int
	TorusX bool
	TorusY bool

	s *structure.Structure[Square]
}

// SquareOption configures a square grid.
type SquareOption func(*SquareGrid)

// WithTorusX wraps the horizontal axis.
func WithTorusX() SquareOption {
	return func(g *SquareGrid) { g.TorusX = true }
}

// WithTorusY wraps the vertical axis.
func WithTorusY() SquareOption {
	return func(g *SquareGrid) { g.TorusY = true }
}

// NewSquareGrid builds a square grid and its full-adjacency structure.
func NewSquareGrid(width, height int, opts ...SquareOption) (*SquareGrid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	g := &SquareGrid{Width: width, Height: height}
	for _, opt := range opts {
		opt(g)
	}

	all := make([]Square, 0, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			all = append(all, Square{Col: col, Row: row})
		}
	}

	s, err := structure.New(all,
		structure.WithNeighbors(g.neighbors),
		structure.WithRebuild(g.rebuild))
	if err != nil {
		return nil, err
	}
	g.s = s
	return g, nil
}

// Structure returns the grid's full-adjacency structure.
func (g *SquareGrid) Structure() *structure.Structure[Square] {
	return g.s
}

// Step moves one cell from c in direction d, wrapping on toroidal axes.
// The boolean is false when the move leaves the grid.
func (g *SquareGrid) Step(c Square, d Direction) (Square, bool) {
	next := c.Move(d, 1)
	if g.TorusX {
		next.Col = wrap(next.Col, g.Width)
	}
	if g.TorusY {
		next.Row = wrap(next.Row, g.Height)
	}
	if next.Col < 0 || next.Col >= g.Width || next.Row < 0 || next.Row >= g.Height {
		return Square{}, false
	}
	return next, true
}

// Classifier returns the edge-classification override for this grid,
// evaluated against the link set of s (typically a carved maze over the
// same cells). On a non-toroidal grid it changes nothing. On a wrapped
// axis, boundary edges are reclassified as passage or wall depending on
// whether the wrap-around link survives - a toroidal boundary is never an
// outline.
func (g *SquareGrid) Classifier(s *structure.Structure[Square]) outline.Classifier[Square] {
	return func(e outline.Edge, owners []Square, kind outline.EdgeKind) outline.EdgeKind {
		if kind != outline.KindOutline || len(owners) != 1 {
			return kind
		}
		a, okA := e.A.(SquareVertex)
		b, okB := e.B.(SquareVertex)
		if !okA || !okB {
			return kind
		}
		c := owners[0]
		var partner Square
		switch {
		case g.TorusX && a.X == 0 && b.X == 0:
			partner = Square{Col: g.Width - 1, Row: c.Row}
		case g.TorusX && a.X == g.Width && b.X == g.Width:
			partner = Square{Col: 0, Row: c.Row}
		case g.TorusY && a.Y == 0 && b.Y == 0:
			partner = Square{Col: c.Col, Row: g.Height - 1}
		case g.TorusY && a.Y == g.Height && b.Y == g.Height:
			partner = Square{Col: c.Col, Row: 0}
		default:
			return kind
		}
		if s.Linked(c, partner) {
			return outline.KindPassage
		}
		return outline.KindWall
	}
}

// neighbors is the discovery function wired into the structure. It applies
// toroidal wrapping before membership filtering.
func (g *SquareGrid) neighbors(c Square) []Square {
	out := make([]Square, 0, 4)
	for _, nb := range c.Neighbors() {
		if g.TorusX {
			nb.Col = wrap(nb.Col, g.Width)
		}
		if g.TorusY {
			nb.Row = wrap(nb.Row, g.Height)
		}
		if nb == c {
			continue // a wrapped axis of length 1 folds onto itself
		}
		out = append(out, nb)
	}
	return out
}

// rebuild reconstructs the grid flavor across transforms so that derived
// structures (subsets, mazes) keep toroidal classification and wrapping.
func (g *SquareGrid) rebuild(cells []Square, links []structure.Link[Square]) *structure.Structure[Square] {
	s, err := structure.New(cells,
		structure.WithLinks(links),
		structure.WithRebuild(g.rebuild))
	if err != nil {
		// Transforms only ever pass subsets of a valid structure.
		panic("grid: rebuild produced invalid links: " + err.Error())
	}
	return s
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
