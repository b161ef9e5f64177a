package graphio

import (
	"fmt"

	"github.com/tilemaze/tilemaze/pkg/grid"
)

// Meta keys recorded for toroidal square documents. Wrap-around links are
// ordinary entries in the link list, but edge classification needs the
// grid's torus flags back, so they ride along in the document meta.
const (
	MetaTorusX = "torus_x"
	MetaTorusY = "torus_y"
	MetaWidth  = "width"
	MetaHeight = "height"
)

// TorusMeta builds the meta map for a wrapped square grid.
func TorusMeta(width, height int, torusX, torusY bool) map[string]any {
	m := map[string]any{
		MetaWidth:  width,
		MetaHeight: height,
	}
	if torusX {
		m[MetaTorusX] = true
	}
	if torusY {
		m[MetaTorusY] = true
	}
	return m
}

// SquareGridFor reconstructs the grid described by a square document's
// torus meta, so its classifier can be reattached after a JSON round trip.
// Documents without wrap flags return nil.
func SquareGridFor(doc *Document) (*grid.SquareGrid, error) {
	tx := metaBool(doc.Meta, MetaTorusX)
	ty := metaBool(doc.Meta, MetaTorusY)
	if !tx && !ty {
		return nil, nil
	}
	w, okW := metaInt(doc.Meta, MetaWidth)
	h, okH := metaInt(doc.Meta, MetaHeight)
	if !okW || !okH {
		return nil, fmt.Errorf("%w: toroidal document missing dimensions", ErrBadDocument)
	}
	var opts []grid.SquareOption
	if tx {
		opts = append(opts, grid.WithTorusX())
	}
	if ty {
		opts = append(opts, grid.WithTorusY())
	}
	g, err := grid.NewSquareGrid(w, h, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	return g, nil
}

func metaBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

// metaInt accepts float64 because JSON numbers unmarshal that way into any.
func metaInt(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}
