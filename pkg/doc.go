// Package pkg provides the core libraries for Tilemaze maze generation.
//
// # Overview
//
// Tilemaze carves perfect mazes over tiled 2D grids and renders them as
// SVG drawings, JSON graphs, or Graphviz diagrams. The pkg directory is
// organized into four main areas:
//
//  1. Geometry and graph core ([geom], [structure], [outline])
//  2. Grid shapes ([grid])
//  3. Output ([graphio], [render], [render/nodelink])
//  4. Orchestration and infrastructure ([pipeline], [cache], [errors],
//     [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow through Tilemaze:
//
//	Grid constructor ([grid])
//	         ↓
//	    [structure] package (full adjacency → carved maze → shortest paths)
//	         ↓
//	    [outline] package (edge classification: outline, passage, wall)
//	         ↓
//	    [render] / [graphio] / [render/nodelink] output
//
// # Quick Start
//
// Carve a maze and render it:
//
//	import (
//	    "github.com/tilemaze/tilemaze/pkg/grid"
//	    "github.com/tilemaze/tilemaze/pkg/render"
//	    "github.com/tilemaze/tilemaze/pkg/structure"
//	)
//
//	// 1. Build the grid
//	g, _ := grid.NewSquareGrid(12, 9)
//
//	// 2. Carve a perfect maze
//	maze, _ := g.Structure().GenerateMaze(structure.SeededRand(42))
//
//	// 3. Render to SVG
//	svg, _ := render.RenderSVG(maze)
//
// # Main Packages
//
// ## Core
//
// [structure] - Generic cell/link graph over any comparable cell type.
// Supports subsets, randomized-Prim maze generation with injectable
// randomness, and BFS shortest paths.
//
// [outline] - Classifies polygon edges of a cell set as outline, passage,
// or wall, and stitches them into minimal vertex chains for drawing.
//
// [grid] - Square (optionally toroidal), hexagonal, and triangular grids
// sharing integer corner lattices so neighboring cells agree on their
// common edge.
//
// ## Output
//
// [render] - SVG rendering with TOML-loadable themes and solution overlays.
//
// [render/nodelink] - Graphviz node-link diagrams of the maze graph.
//
// [graphio] - Deterministic JSON serialization for mazes, round-trippable
// byte for byte.
//
// ## Infrastructure
//
// [pipeline] - Complete build → carve → solve → render pipeline used by
// the CLI and the HTTP server. Ensures consistent behavior and cache keys
// across all entry points.
//
// [cache] - Artifact cache with file, Redis, MongoDB, and null backends.
//
// [errors] - Coded errors shared by the pipeline, CLI, and server.
//
// [observability] - Hook registry for instrumenting pipeline and cache
// events without hard backend dependencies.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/structure    # Specific package
//
// [geom]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/geom
// [structure]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/structure
// [outline]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/outline
// [grid]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/grid
// [graphio]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/graphio
// [render]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/cache
// [errors]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/errors
// [observability]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/tilemaze/tilemaze/pkg/buildinfo
package pkg
