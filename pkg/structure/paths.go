package structure

// CellWithDistance labels a cell reached by [Structure.FindPaths] with its
// hop distance from the origin and its parent on one shortest path. A
// Distance of 0 marks the origin itself; its Parent is the zero value and
// carries no meaning.
type CellWithDistance[C comparable] struct {
	Cell     C
	Parent   C
	Distance int
}

// FindPaths computes unweighted shortest-path labels from origin over the
// current link set. Every reachable cell maps to a [CellWithDistance]
// giving the minimal number of link hops from origin and the parent cell on
// one shortest path; ties break in breadth-first discovery order, which
// follows link insertion order. Unreachable cells are absent from the
// result - absence is the only signal, never an error.
//
// FindPaths returns ErrUnknownCell if origin is not a member.
func (s *Structure[C]) FindPaths(origin C) (map[C]CellWithDistance[C], error) {
	if _, ok := s.index[origin]; !ok {
		return nil, ErrUnknownCell
	}

	labels := make(map[C]CellWithDistance[C], len(s.cells))
	labels[origin] = CellWithDistance[C]{Cell: origin, Distance: 0}
	queue := []C{origin}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		dist := labels[cur].Distance
		for _, nb := range s.adj[cur] {
			if _, seen := labels[nb]; seen {
				continue
			}
			labels[nb] = CellWithDistance[C]{Cell: nb, Parent: cur, Distance: dist + 1}
			queue = append(queue, nb)
		}
	}
	return labels, nil
}

// FindPath returns the shortest cell sequence from origin to target,
// inclusive of both. The boolean reports reachability: an unreachable
// target yields (nil, false, nil), a normal outcome rather than a fault.
// An origin or target outside the structure yields ErrUnknownCell.
func (s *Structure[C]) FindPath(origin, target C) ([]C, bool, error) {
	if _, ok := s.index[target]; !ok {
		return nil, false, ErrUnknownCell
	}
	labels, err := s.FindPaths(origin)
	if err != nil {
		return nil, false, err
	}
	label, ok := labels[target]
	if !ok {
		return nil, false, nil
	}

	path := make([]C, label.Distance+1)
	cur := target
	for i := label.Distance; i >= 0; i-- {
		path[i] = cur
		cur = labels[cur].Parent
	}
	return path, true, nil
}
