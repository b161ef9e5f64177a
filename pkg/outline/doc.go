// Package outline turns a structure's per-cell polygon loops into renderable
// vector geometry.
//
// The derivation has two halves. [ClassifyEdges] deduplicates the vertex
// edges contributed by each cell's [PolygonCell] loop - vertex identity
// sharing makes coincident corners equal - and classifies every edge as
// [KindOutline], [KindPassage] or [KindWall] against the structure's link
// set, with an optional [Classifier] hook for grids whose boundaries wrap.
// [Segments] then stitches the edges of the caller's chosen kinds into the
// minimal set of ordered vertex chains, closing chains that loop back onto
// their first vertex.
//
// The output is an abstract path model; textual SVG emission lives in
// package render.
package outline
