package structure

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownCell is returned by [New], [Structure.AddLink], [Structure.FindPaths]
	// and [Structure.FindPath] when a referenced cell is not a member of the
	// structure's cell set.
	ErrUnknownCell = errors.New("cell is not part of the structure")

	// ErrSelfLink is returned by [New] and [Structure.AddLink] when both
	// endpoints of a link are the same cell. Links connect distinct cells.
	ErrSelfLink = errors.New("link endpoints must be distinct cells")

	// ErrDisconnected is returned by [Structure.GenerateMaze] when the
	// structure has more than one connected component. A spanning tree, and
	// therefore a maze, only exists for a connected structure. Add bridging
	// links with [Structure.AddLink] and retry.
	ErrDisconnected = errors.New("structure is not connected")
)

// Link is an undirected connection between two cells. A link carries no
// direction and no weight: Link{A, B} and Link{B, A} describe the same
// connection, which is what [Link.Equal] implements.
type Link[C comparable] struct {
	A C
	B C
}

// Equal reports whether two links connect the same pair of cells,
// regardless of endpoint order.
func (l Link[C]) Equal(o Link[C]) bool {
	return (l.A == o.A && l.B == o.B) || (l.A == o.B && l.B == o.A)
}

// Touches reports whether c is one of the link's endpoints.
func (l Link[C]) Touches(c C) bool {
	return l.A == c || l.B == c
}

// Other returns the endpoint opposite to c, and false if c is not an
// endpoint of the link.
func (l Link[C]) Other(c C) (C, bool) {
	switch c {
	case l.A:
		return l.B, true
	case l.B:
		return l.A, true
	}
	var zero C
	return zero, false
}

// RebuildFunc reconstructs a structure from a cell set and a link set.
// Concrete grids install one via [WithRebuild] so that transforms such as
// [Structure.Subset] and [Structure.GenerateMaze] reproduce the grid's own
// flavor (toroidal flags, shape metadata) instead of a plain structure.
type RebuildFunc[C comparable] func(cells []C, links []Link[C]) *Structure[C]

// Neighborer is implemented by cell types that can report their own
// candidate neighbors. It is consulted during construction when neither
// explicit links nor a neighbor function are supplied. Reported cells that
// are not members of the structure are discarded, so a cell may freely
// report neighbors that lie outside the grid.
type Neighborer[C any] interface {
	Neighbors() []C
}

// Structure is an undirected graph of cells connected by links. Cells keep
// their insertion order, which makes traversals and derived geometry
// deterministic. The link set always describes the full adjacency of the
// structure; carving a maze produces a new structure whose link set is a
// spanning tree of this one.
//
// The zero value is not usable - use [New]. Structure is not safe for
// concurrent mutation without external synchronization.
type Structure[C comparable] struct {
	cells   []C
	index   map[C]int
	links   []Link[C]
	linkSet map[[2]C]struct{} // both orientations of every link
	adj     map[C][]C         // linked neighbors in link insertion order
	rebuild RebuildFunc[C]
}

// Option configures structure construction.
type Option[C comparable] func(*config[C])

type config[C comparable] struct {
	links     []Link[C]
	hasLinks  bool
	neighbors func(C) []C
	rebuild   RebuildFunc[C]
}

// WithLinks supplies an explicit link set. Explicit links take precedence
// over neighbor discovery.
func WithLinks[C comparable](links []Link[C]) Option[C] {
	return func(c *config[C]) {
		c.links = links
		c.hasLinks = true
	}
}

// WithNeighbors supplies a neighbor-discovery function used at construction
// time to derive the link set. Candidates that are not members of the cell
// set are discarded.
func WithNeighbors[C comparable](fn func(C) []C) Option[C] {
	return func(c *config[C]) { c.neighbors = fn }
}

// WithRebuild installs the factory used by transforms to reconstruct the
// caller's concrete structure flavor. See [RebuildFunc].
func WithRebuild[C comparable](fn RebuildFunc[C]) Option[C] {
	return func(c *config[C]) { c.rebuild = fn }
}

// New builds a structure from cells. Duplicate cells are dropped, keeping
// the first occurrence. Links come from one of three sources, in order of
// precedence: an explicit [WithLinks] set, a [WithNeighbors] function, or
// the cells' own [Neighborer] capability. Derived links are deduplicated
// and filtered to members of the cell set; explicit links referencing
// non-member cells return ErrUnknownCell, and self-links return ErrSelfLink.
func New[C comparable](cells []C, opts ...Option[C]) (*Structure[C], error) {
	var cfg config[C]
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Structure[C]{
		cells:   make([]C, 0, len(cells)),
		index:   make(map[C]int, len(cells)),
		linkSet: make(map[[2]C]struct{}),
		adj:     make(map[C][]C),
		rebuild: cfg.rebuild,
	}
	for _, c := range cells {
		if _, dup := s.index[c]; dup {
			continue
		}
		s.index[c] = len(s.cells)
		s.cells = append(s.cells, c)
	}

	if cfg.hasLinks {
		for _, l := range cfg.links {
			if err := s.AddLink(l.A, l.B); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	discover := cfg.neighbors
	if discover == nil {
		discover = func(c C) []C {
			if n, ok := any(c).(Neighborer[C]); ok {
				return n.Neighbors()
			}
			return nil
		}
	}
	for _, c := range s.cells {
		for _, nb := range discover(c) {
			if nb == c {
				continue
			}
			if _, ok := s.index[nb]; !ok {
				continue
			}
			s.insertLink(c, nb)
		}
	}
	return s, nil
}

// Cells returns the cells in insertion order. The returned slice is a copy.
func (s *Structure[C]) Cells() []C {
	return slices.Clone(s.cells)
}

// Links returns the links in insertion order. The returned slice is a copy.
func (s *Structure[C]) Links() []Link[C] {
	return slices.Clone(s.links)
}

// CellCount returns the number of cells.
func (s *Structure[C]) CellCount() int { return len(s.cells) }

// LinkCount returns the number of links.
func (s *Structure[C]) LinkCount() int { return len(s.links) }

// Contains reports whether c is a member of the structure.
func (s *Structure[C]) Contains(c C) bool {
	_, ok := s.index[c]
	return ok
}

// Linked reports whether a direct link exists between a and b.
func (s *Structure[C]) Linked(a, b C) bool {
	_, ok := s.linkSet[[2]C{a, b}]
	return ok
}

// Neighbors returns the cells directly linked to c, in link insertion
// order. The returned slice must not be modified.
func (s *Structure[C]) Neighbors(c C) []C {
	return s.adj[c]
}

// AddLink inserts an undirected link between two member cells. It returns
// ErrUnknownCell if either cell is not a member and ErrSelfLink if a == b.
// Adding a link that already exists is a no-op. AddLink mutates the
// structure in place; it is the mechanism for bridging independently
// constructed structures that share a cell space.
func (s *Structure[C]) AddLink(a, b C) error {
	if a == b {
		return ErrSelfLink
	}
	if _, ok := s.index[a]; !ok {
		return ErrUnknownCell
	}
	if _, ok := s.index[b]; !ok {
		return ErrUnknownCell
	}
	if s.Linked(a, b) {
		return nil
	}
	s.insertLink(a, b)
	return nil
}

// RemoveLink removes the link between a and b if present. Removing an
// absent link is a no-op.
func (s *Structure[C]) RemoveLink(a, b C) {
	if !s.Linked(a, b) {
		return
	}
	delete(s.linkSet, [2]C{a, b})
	delete(s.linkSet, [2]C{b, a})
	s.links = slices.DeleteFunc(s.links, func(l Link[C]) bool {
		return l.Equal(Link[C]{A: a, B: b})
	})
	s.adj[a] = slices.DeleteFunc(s.adj[a], func(c C) bool { return c == b })
	s.adj[b] = slices.DeleteFunc(s.adj[b], func(c C) bool { return c == a })
}

// insertLink records a link that is already known to be valid and absent.
func (s *Structure[C]) insertLink(a, b C) {
	if s.Linked(a, b) {
		return
	}
	s.links = append(s.links, Link[C]{A: a, B: b})
	s.linkSet[[2]C{a, b}] = struct{}{}
	s.linkSet[[2]C{b, a}] = struct{}{}
	s.adj[a] = append(s.adj[a], b)
	s.adj[b] = append(s.adj[b], a)
}

// IsConnected reports whether every cell is reachable from every other via
// the current link set. It runs a breadth-first traversal from the first
// cell. An empty structure is connected.
func (s *Structure[C]) IsConnected() bool {
	if len(s.cells) == 0 {
		return true
	}
	seen := make(map[C]struct{}, len(s.cells))
	queue := []C{s.cells[0]}
	seen[s.cells[0]] = struct{}{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range s.adj[cur] {
			if _, ok := seen[nb]; ok {
				continue
			}
			seen[nb] = struct{}{}
			queue = append(queue, nb)
		}
	}
	return len(seen) == len(s.cells)
}

// Subset returns a new structure containing the cells for which keep
// returns true and the links whose both endpoints survive. The receiver is
// left untouched. The new structure is produced by the installed rebuild
// factory when one is present.
func (s *Structure[C]) Subset(keep func(C) bool) *Structure[C] {
	cells := make([]C, 0, len(s.cells))
	kept := make(map[C]struct{}, len(s.cells))
	for _, c := range s.cells {
		if keep(c) {
			cells = append(cells, c)
			kept[c] = struct{}{}
		}
	}
	links := make([]Link[C], 0, len(s.links))
	for _, l := range s.links {
		if _, okA := kept[l.A]; !okA {
			continue
		}
		if _, okB := kept[l.B]; !okB {
			continue
		}
		links = append(links, l)
	}
	return s.derive(cells, links)
}

// SubsetCells returns a new structure restricted to the given cells.
// Cells that are not members of the receiver are ignored.
func (s *Structure[C]) SubsetCells(cells []C) *Structure[C] {
	want := make(map[C]struct{}, len(cells))
	for _, c := range cells {
		want[c] = struct{}{}
	}
	return s.Subset(func(c C) bool {
		_, ok := want[c]
		return ok
	})
}

// derive builds the structure produced by a transform, preserving the
// concrete flavor through the rebuild factory when one is installed.
func (s *Structure[C]) derive(cells []C, links []Link[C]) *Structure[C] {
	if s.rebuild != nil {
		return s.rebuild(cells, links)
	}
	out, err := New(cells, WithLinks(links))
	if err != nil {
		// Links passed here are a subset of a valid structure's links.
		panic("structure: derive produced invalid links: " + err.Error())
	}
	return out
}
