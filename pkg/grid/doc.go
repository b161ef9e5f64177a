// Package grid provides the concrete cell shapes that back a structure:
// square boards with optional toroidal wrapping, hexagon-shaped boards of
// flat-top hexes, and triangle strip tilings.
//
// Each cell type carries the capabilities the engine discovers at runtime:
// self-reported adjacency for structure construction and a polygon vertex
// loop for outline derivation. Vertices of touching cells share integer
// lattice coordinates, so coincident corners compare equal across cells.
package grid
