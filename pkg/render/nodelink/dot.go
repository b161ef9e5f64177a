// Package nodelink renders a structure as an abstract node-link diagram
// instead of tiled geometry: cells become Graphviz nodes, links become
// undirected edges. Useful for inspecting the link graph itself, for
// example to eyeball that a maze really is a spanning tree.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/tilemaze/tilemaze/pkg/structure"
)

// Options configures node-link rendering.
type Options[C comparable] struct {
	// Distances labels nodes with their BFS distance when set, typically
	// the result of [structure.Structure.FindPaths].
	Distances map[C]structure.CellWithDistance[C]

	// Engine selects the Graphviz layout engine. Defaults to neato, which
	// suits undirected lattice graphs better than the ranked default.
	Engine string
}

// ToDOT converts a structure's link graph to Graphviz DOT. Node order
// follows cell insertion order, so output is deterministic.
func ToDOT[C comparable](s *structure.Structure[C], opts Options[C]) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine(opts.Engine))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [len=1.0];\n")
	buf.WriteString("\n")

	for _, c := range s.Cells() {
		id := fmt.Sprint(c)
		if d, ok := opts.Distances[c]; ok {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmt.Sprintf("%s\n%d", id, d.Distance))
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	buf.WriteString("\n")
	for _, l := range s.Links() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", fmt.Sprint(l.A), fmt.Sprint(l.B))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func engine(name string) string {
	if name == "" {
		return "neato"
	}
	return name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag so the viewBox starts at
// the origin and the pixel size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
