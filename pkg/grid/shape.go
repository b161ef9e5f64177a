package grid

import (
	"errors"
	"fmt"
)

// ErrUnknownShape is returned by [ParseShape] for unrecognized names.
var ErrUnknownShape = errors.New("unknown grid shape")

// Shape names a supported tiling.
type Shape string

const (
	ShapeSquare Shape = "square"
	ShapeHex    Shape = "hex"
	ShapeTri    Shape = "tri"
)

// Shapes lists the supported tilings in a stable order.
func Shapes() []Shape {
	return []Shape{ShapeSquare, ShapeHex, ShapeTri}
}

// ParseShape validates a shape name.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeSquare, ShapeHex, ShapeTri:
		return Shape(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

func (s Shape) String() string {
	return string(s)
}
