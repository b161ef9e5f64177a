package outline

import "github.com/tilemaze/tilemaze/pkg/structure"

// Segment is an ordered chain of vertices ready for path rendering. Closed
// segments wrap around: the edge from the last vertex back to the first is
// implied and the first vertex is not repeated.
type Segment struct {
	Vertices []Vertex
	Closed   bool
}

// Segments derives the minimal set of vertex chains covering every edge
// whose kind the caller selected. Edges of the selected kinds are treated
// as one class: callers that want walls and boundary drawn differently make
// one call per treatment. Consecutive edges sharing a vertex merge into a
// single chain; a chain closes when the walk returns to its starting
// vertex. Vertices where three or more selected edges meet break the
// chain - multiple segments are the normal outcome, not an edge case.
//
// The segment order and the walk direction are deterministic, driven by
// cell insertion order and loop order.
func Segments[C comparable](s *structure.Structure[C], include func(EdgeKind) bool, opts ...Option[C]) ([]Segment, error) {
	classified, err := ClassifyEdges(s, opts...)
	if err != nil {
		return nil, err
	}
	var edges []Edge
	for _, e := range classified {
		if include(e.Kind) {
			edges = append(edges, e.Edge)
		}
	}
	return stitch(edges), nil
}

// OfKind returns an include filter selecting exactly one kind.
func OfKind(kind EdgeKind) func(EdgeKind) bool {
	return func(k EdgeKind) bool { return k == kind }
}

// OfKinds returns an include filter selecting several kinds as one
// treatment group.
func OfKinds(kinds ...EdgeKind) func(EdgeKind) bool {
	set := make(map[EdgeKind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return func(k EdgeKind) bool {
		_, ok := set[k]
		return ok
	}
}

// stitch merges edges into chains. Open chains start at vertices whose
// degree differs from 2 (chain ends and branch points); whatever remains
// afterwards is a set of pure cycles.
func stitch(edges []Edge) []Segment {
	incident := make(map[Vertex][]int)
	var order []Vertex // vertices in first-seen order, for determinism
	note := func(v Vertex, i int) {
		if _, ok := incident[v]; !ok {
			order = append(order, v)
		}
		incident[v] = append(incident[v], i)
	}
	for i, e := range edges {
		note(e.A, i)
		note(e.B, i)
	}

	used := make([]bool, len(edges))
	takeUnused := func(v Vertex) (int, bool) {
		for _, i := range incident[v] {
			if !used[i] {
				return i, true
			}
		}
		return 0, false
	}

	var segs []Segment

	walk := func(start Vertex, first int) Segment {
		verts := []Vertex{start}
		cur, i := start, first
		for {
			used[i] = true
			next := otherEnd(edges[i], cur)
			if next == start {
				return Segment{Vertices: verts, Closed: true}
			}
			verts = append(verts, next)
			if len(incident[next]) != 2 {
				break
			}
			j, ok := takeUnused(next)
			if !ok {
				break
			}
			cur, i = next, j
		}
		return Segment{Vertices: verts}
	}

	// Chains bounded by an endpoint or a branch point.
	for _, v := range order {
		if len(incident[v]) == 2 {
			continue
		}
		for {
			i, ok := takeUnused(v)
			if !ok {
				break
			}
			segs = append(segs, walk(v, i))
		}
	}
	// What remains are cycles through degree-2 vertices.
	for i := range edges {
		if used[i] {
			continue
		}
		segs = append(segs, walk(edges[i].A, i))
	}
	return segs
}

func otherEnd(e Edge, v Vertex) Vertex {
	if e.A == v {
		return e.B
	}
	return e.A
}
