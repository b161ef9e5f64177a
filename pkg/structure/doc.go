// Package structure is the geometry-agnostic graph engine behind tilemaze.
//
// A [Structure] owns a set of cells and the undirected links between them.
// Cells are opaque comparable values: a square, a hexagon, a triangle, or
// anything else that can sit in a map key. The engine never inspects cell
// internals; concrete shapes plug in through small capability contracts
// ([Neighborer] here, the polygon capabilities in package outline).
//
// # Construction
//
// Links come from explicit [WithLinks], a [WithNeighbors] discovery
// function, or the cells' own [Neighborer] methods - in that order of
// precedence. Discovery keeps only candidates that are members of the cell
// set, so unbounded self-reporting cells work on any finite grid.
//
// # Derived capabilities
//
//   - [Structure.GenerateMaze]: randomized spanning tree (perfect maze)
//     with injectable randomness.
//   - [Structure.FindPaths] / [Structure.FindPath]: unweighted BFS distance
//     labeling and shortest-path reconstruction.
//   - [Structure.IsConnected], [Structure.Subset]: connectivity query and
//     immutable-style sub-structure extraction.
//
// Transforms return new structures; [Structure.AddLink] and
// [Structure.RemoveLink] mutate in place and exist to bridge independently
// built structures before carving.
package structure
