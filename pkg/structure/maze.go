package structure

import (
	"math/rand/v2"
	"slices"
)

// RandSource supplies uniform random integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it directly; use [RandFunc] to adapt a bare
// function. Maze generation never touches process-global random state.
type RandSource interface {
	IntN(n int) int
}

// RandFunc adapts a bare function to a [RandSource].
type RandFunc func(n int) int

// IntN implements [RandSource].
func (f RandFunc) IntN(n int) int { return f(n) }

// SeededRand returns a deterministic PCG-backed random source. The same
// seed always reproduces the same maze.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// GenerateMaze carves a perfect maze out of the structure's full adjacency
// and returns it as a new structure with the same cell set and exactly
// CellCount()-1 links forming a uniform-frontier spanning tree. The
// receiver is left untouched; its link set remains the full adjacency.
//
// The algorithm is frontier growth in the style of randomized Prim: one
// cell seeds the visited set, and each step admits a uniformly random link
// from the frontier of links that leave the visited set. Stale frontier
// entries whose far endpoint has been visited in the meantime are discarded
// on draw, so every accepted link is a uniform choice among the live
// frontier.
//
// GenerateMaze returns ErrDisconnected when the structure has more than one
// component. A single-cell or empty structure is already a valid maze.
func (s *Structure[C]) GenerateMaze(rng RandSource) (*Structure[C], error) {
	if !s.IsConnected() {
		return nil, ErrDisconnected
	}
	if len(s.cells) <= 1 {
		return s.derive(slices.Clone(s.cells), nil), nil
	}

	visited := make(map[C]struct{}, len(s.cells))
	tree := make([]Link[C], 0, len(s.cells)-1)

	start := s.cells[0]
	visited[start] = struct{}{}
	frontier := s.outwardLinks(start, visited)

	for len(tree) < len(s.cells)-1 {
		i := rng.IntN(len(frontier))
		l := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		next, ok := unvisitedEnd(l, visited)
		if !ok {
			continue // both ends reached since the link was enqueued
		}
		visited[next] = struct{}{}
		tree = append(tree, l)
		frontier = append(frontier, s.outwardLinks(next, visited)...)
	}

	return s.derive(slices.Clone(s.cells), tree), nil
}

// outwardLinks returns the links from c to cells not yet visited.
func (s *Structure[C]) outwardLinks(c C, visited map[C]struct{}) []Link[C] {
	var out []Link[C]
	for _, nb := range s.adj[c] {
		if _, ok := visited[nb]; ok {
			continue
		}
		out = append(out, Link[C]{A: c, B: nb})
	}
	return out
}

// unvisitedEnd returns the endpoint of l that is not yet visited.
func unvisitedEnd[C comparable](l Link[C], visited map[C]struct{}) (C, bool) {
	if _, ok := visited[l.A]; !ok {
		return l.A, true
	}
	if _, ok := visited[l.B]; !ok {
		return l.B, true
	}
	var zero C
	return zero, false
}
