package outline

import (
	"errors"
	"fmt"

	"github.com/tilemaze/tilemaze/pkg/geom"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

// ErrNotPolygon is returned when a cell does not implement [PolygonCell].
// Outline derivation needs every cell's vertex loop.
var ErrNotPolygon = errors.New("cell does not expose a polygon outline")

// Vertex is a shared point identity at which one or more cells' polygon
// outlines meet. Implementations must be small comparable value types:
// two cells whose corners coincide geometrically must produce equal Vertex
// values, because equality is what lets the segment builder stitch per-cell
// edges into continuous chains. Raw pointer identity is never enough.
type Vertex interface {
	Pos() geom.Point
}

// Fragmenter is an optional vertex capability. When a renderer walks a
// chain and reaches a Fragmenter vertex, it asks the vertex for the path
// fragment connecting prev to it instead of emitting a straight line.
// closing is true when the fragment closes a closed chain back onto its
// first vertex. Shapes use this for rounded corners and similar native
// vertex treatments.
type Fragmenter interface {
	Vertex
	Fragment(prev Vertex, closing bool) string
}

// PolygonCell is the SVG-geometry capability a cell type must implement
// for outline derivation: its corner loop in drawing order, and its center.
type PolygonCell interface {
	VertexLoop() []Vertex
	Center() geom.Point
}

// EdgeKind classifies a polygon edge relative to the link graph and the
// structure boundary. The three kinds are mutually exclusive.
type EdgeKind int

const (
	// KindOutline marks an edge owned by exactly one cell: the outer
	// boundary of the structure.
	KindOutline EdgeKind = iota
	// KindPassage marks an edge between two linked cells: open, traversable.
	KindPassage
	// KindWall marks an edge between two unlinked cells: closed.
	KindWall
)

func (k EdgeKind) String() string {
	switch k {
	case KindOutline:
		return "outline"
	case KindPassage:
		return "passage"
	case KindWall:
		return "wall"
	}
	return fmt.Sprintf("EdgeKind(%d)", int(k))
}

// Edge is an undirected vertex-level edge: one side of a cell polygon.
type Edge struct {
	A Vertex
	B Vertex
}

// ClassifiedEdge pairs an edge with its kind and its owning cells.
// Owners holds one cell for boundary edges and two for shared edges.
type ClassifiedEdge[C comparable] struct {
	Edge
	Kind   EdgeKind
	Owners []C
}

// Classifier overrides the default edge classification. It receives the
// edge, its owners and the default kind, and returns the kind to use.
// Toroidal grids install one to reclassify wrap-around boundary edges as
// Passage or Wall - a toroidal boundary is never a true outline.
type Classifier[C comparable] func(e Edge, owners []C, kind EdgeKind) EdgeKind

// Option configures outline derivation.
type Option[C comparable] func(*builder[C])

// WithClassifier installs a classification override. See [Classifier].
func WithClassifier[C comparable](fn Classifier[C]) Option[C] {
	return func(b *builder[C]) { b.classify = fn }
}

type builder[C comparable] struct {
	classify Classifier[C]
}

// ClassifyEdges walks every cell's vertex loop, deduplicates shared edges
// through vertex identity, and classifies each as Outline, Passage or Wall
// against the structure's current link set. Edges appear in discovery
// order: cell insertion order, loop order within a cell. It returns
// ErrNotPolygon if any cell lacks the [PolygonCell] capability.
func ClassifyEdges[C comparable](s *structure.Structure[C], opts ...Option[C]) ([]ClassifiedEdge[C], error) {
	var b builder[C]
	for _, opt := range opts {
		opt(&b)
	}

	var edges []ClassifiedEdge[C]
	index := make(map[[2]Vertex]int)

	for _, cell := range s.Cells() {
		poly, ok := any(cell).(PolygonCell)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrNotPolygon, cell)
		}
		loop := poly.VertexLoop()
		for i := range loop {
			a, bv := loop[i], loop[(i+1)%len(loop)]
			if j, ok := edgeAt(index, a, bv); ok {
				edges[j].Owners = append(edges[j].Owners, cell)
				continue
			}
			index[[2]Vertex{a, bv}] = len(edges)
			edges = append(edges, ClassifiedEdge[C]{
				Edge:   Edge{A: a, B: bv},
				Owners: []C{cell},
			})
		}
	}

	for i := range edges {
		edges[i].Kind = classifyEdge(s, edges[i])
		if b.classify != nil {
			edges[i].Kind = b.classify(edges[i].Edge, edges[i].Owners, edges[i].Kind)
		}
	}
	return edges, nil
}

// edgeAt finds an existing edge under either vertex order.
func edgeAt(index map[[2]Vertex]int, a, b Vertex) (int, bool) {
	if i, ok := index[[2]Vertex{a, b}]; ok {
		return i, true
	}
	if i, ok := index[[2]Vertex{b, a}]; ok {
		return i, true
	}
	return 0, false
}

// classifyEdge applies the default contract: one owner means boundary,
// two owners mean passage or wall depending on the link set.
func classifyEdge[C comparable](s *structure.Structure[C], e ClassifiedEdge[C]) EdgeKind {
	if len(e.Owners) < 2 {
		return KindOutline
	}
	if s.Linked(e.Owners[0], e.Owners[1]) {
		return KindPassage
	}
	return KindWall
}
