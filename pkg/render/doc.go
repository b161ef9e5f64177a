// Package render turns classified structure geometry into SVG documents.
//
// # Overview
//
// [RenderSVG] draws a structure as tiled line work: the outer outline, the
// interior walls, optionally the passages, and an optional solution
// overlay through cell centers. Layer treatment comes from a [Theme].
//
// # Themes
//
// Themes bundle a stroke per edge class plus background and marker colors.
// Two are built in ([Simple], [Blueprint]); any TOML file with the same
// shape loads via [LoadThemeFile], and [ResolveTheme] accepts either a
// built-in name or a file path:
//
//	theme, err := render.ResolveTheme("blueprint")
//	svg, err := render.RenderSVG(maze, render.WithTheme[grid.Square](theme))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the link graph itself through
// Graphviz, cells as nodes and links as undirected edges:
//
//	dot := nodelink.ToDOT(maze, nodelink.Options[grid.Square]{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/tilemaze/tilemaze/pkg/render/nodelink
package render
