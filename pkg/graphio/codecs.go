package graphio

import "github.com/tilemaze/tilemaze/pkg/grid"

// SquareCodec encodes square cells as "col,row".
func SquareCodec() Codec[grid.Square] {
	return Codec[grid.Square]{
		Shape:  string(grid.ShapeSquare),
		Encode: grid.Square.String,
		Decode: grid.ParseSquare,
	}
}

// HexCodec encodes axial hex cells as "q,r".
func HexCodec() Codec[grid.Hex] {
	return Codec[grid.Hex]{
		Shape:  string(grid.ShapeHex),
		Encode: grid.Hex.String,
		Decode: grid.ParseHex,
	}
}

// TriCodec encodes triangle cells as "x,y".
func TriCodec() Codec[grid.Tri] {
	return Codec[grid.Tri]{
		Shape:  string(grid.ShapeTri),
		Encode: grid.Tri.String,
		Decode: grid.ParseTri,
	}
}
