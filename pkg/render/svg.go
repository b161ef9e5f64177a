package render

import (
	"bytes"
	"fmt"

	"github.com/tilemaze/tilemaze/pkg/geom"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

// Option configures SVG rendering.
type Option[C comparable] func(*renderer[C])

// WithTheme selects the visual theme. Default is [Simple].
func WithTheme[C comparable](t Theme) Option[C] {
	return func(r *renderer[C]) { r.theme = t }
}

// WithClassifier forwards an edge-classification override to outline
// derivation. Toroidal grids need this so wrap-around boundaries render as
// walls or passages.
func WithClassifier[C comparable](fn outline.Classifier[C]) Option[C] {
	return func(r *renderer[C]) { r.classifier = fn }
}

// WithSolution overlays a cell path drawn through cell centers, with start
// and end markers.
func WithSolution[C comparable](path []C) Option[C] {
	return func(r *renderer[C]) { r.solution = path }
}

// WithScale sets the pixel size of one model unit. Default is 32.
func WithScale[C comparable](px float64) Option[C] {
	return func(r *renderer[C]) {
		if px > 0 {
			r.scale = px
		}
	}
}

// WithPadding sets the margin around the drawing in model units.
// Default is 0.5.
func WithPadding[C comparable](pad float64) Option[C] {
	return func(r *renderer[C]) {
		if pad >= 0 {
			r.padding = pad
		}
	}
}

type renderer[C comparable] struct {
	theme      Theme
	classifier outline.Classifier[C]
	solution   []C
	scale      float64
	padding    float64
}

// RenderSVG draws a structure as a standalone SVG document: background,
// then passages (when the theme makes them visible), walls, the outer
// outline, and finally the solution overlay. Geometry comes from the
// cells' polygon loops; vertices implementing [outline.Fragmenter] emit
// their own path fragments instead of straight lines.
func RenderSVG[C comparable](s *structure.Structure[C], opts ...Option[C]) ([]byte, error) {
	r := renderer[C]{theme: Simple(), scale: 32, padding: 0.5}
	for _, opt := range opts {
		opt(&r)
	}
	if err := r.theme.Validate(); err != nil {
		return nil, err
	}

	var oopts []outline.Option[C]
	if r.classifier != nil {
		oopts = append(oopts, outline.WithClassifier(r.classifier))
	}

	type layer struct {
		kind   outline.EdgeKind
		stroke Stroke
	}
	layers := []layer{
		{outline.KindPassage, r.theme.Passage},
		{outline.KindWall, r.theme.Wall},
		{outline.KindOutline, r.theme.Outline},
	}

	bounds, err := structureBounds(s)
	if err != nil {
		return nil, err
	}
	bounds = bounds.Pad(r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		coord(bounds.MinX), coord(bounds.MinY), coord(bounds.Width()), coord(bounds.Height()),
		bounds.Width()*r.scale, bounds.Height()*r.scale)

	if r.theme.Background != "" && r.theme.Background != "none" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			coord(bounds.MinX), coord(bounds.MinY), coord(bounds.Width()), coord(bounds.Height()),
			r.theme.Background)
	}

	for _, l := range layers {
		if !l.stroke.Visible() {
			continue
		}
		segs, err := outline.Segments(s, outline.OfKind(l.kind), oopts...)
		if err != nil {
			return nil, err
		}
		if len(segs) == 0 {
			continue
		}
		fmt.Fprintf(&buf, `  <g%s>`+"\n", strokeAttrs(l.stroke))
		for _, seg := range segs {
			fmt.Fprintf(&buf, `    <path d="%s"/>`+"\n", pathData(seg))
		}
		buf.WriteString("  </g>\n")
	}

	if len(r.solution) > 0 {
		if err := r.renderSolution(&buf, s); err != nil {
			return nil, err
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// renderSolution draws the path polyline through cell centers plus the
// start and end markers.
func (r *renderer[C]) renderSolution(buf *bytes.Buffer, s *structure.Structure[C]) error {
	centers := make([]geom.Point, len(r.solution))
	for i, c := range r.solution {
		poly, ok := any(c).(outline.PolygonCell)
		if !ok {
			return fmt.Errorf("%w: %v", outline.ErrNotPolygon, c)
		}
		centers[i] = poly.Center()
	}

	if r.theme.Path.Visible() && len(centers) > 1 {
		var d bytes.Buffer
		fmt.Fprintf(&d, "M %s %s", coord(centers[0].X), coord(centers[0].Y))
		for _, p := range centers[1:] {
			fmt.Fprintf(&d, " L %s %s", coord(p.X), coord(p.Y))
		}
		fmt.Fprintf(buf, `  <path d="%s"%s/>`+"\n", d.String(), strokeAttrs(r.theme.Path))
	}

	m := r.theme.Marker
	if m.Radius > 0 {
		if m.Start != "" {
			fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				coord(centers[0].X), coord(centers[0].Y), coord(m.Radius), m.Start)
		}
		if m.End != "" {
			last := centers[len(centers)-1]
			fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				coord(last.X), coord(last.Y), coord(m.Radius), m.End)
		}
	}
	return nil
}

// pathData builds the d attribute for one segment. Fragmenter vertices
// supply their own fragment connecting them to the previous vertex; closed
// segments let the first vertex shape the closing edge before Z.
func pathData(seg outline.Segment) string {
	var b bytes.Buffer
	first := seg.Vertices[0]
	p := first.Pos()
	fmt.Fprintf(&b, "M %s %s", coord(p.X), coord(p.Y))
	for i := 1; i < len(seg.Vertices); i++ {
		v := seg.Vertices[i]
		if f, ok := v.(outline.Fragmenter); ok {
			b.WriteByte(' ')
			b.WriteString(f.Fragment(seg.Vertices[i-1], false))
			continue
		}
		q := v.Pos()
		fmt.Fprintf(&b, " L %s %s", coord(q.X), coord(q.Y))
	}
	if seg.Closed {
		if f, ok := first.(outline.Fragmenter); ok {
			b.WriteByte(' ')
			b.WriteString(f.Fragment(seg.Vertices[len(seg.Vertices)-1], true))
		}
		b.WriteString(" Z")
	}
	return b.String()
}

// structureBounds computes the bounding box over every cell's vertex loop.
func structureBounds[C comparable](s *structure.Structure[C]) (geom.Rect, error) {
	bounds := geom.EmptyRect()
	for _, cell := range s.Cells() {
		poly, ok := any(cell).(outline.PolygonCell)
		if !ok {
			return geom.Rect{}, fmt.Errorf("%w: %v", outline.ErrNotPolygon, cell)
		}
		for _, v := range poly.VertexLoop() {
			bounds = bounds.Expand(v.Pos())
		}
	}
	if bounds.IsEmpty() {
		return geom.Rect{}, fmt.Errorf("%w: structure has no cells", outline.ErrNotPolygon)
	}
	return bounds, nil
}

func strokeAttrs(s Stroke) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, ` fill="none" stroke="%s" stroke-width="%s"`, s.Color, coord(s.Width))
	if s.Dash != "" {
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, s.Dash)
	}
	linecap := s.Linecap
	if linecap == "" {
		linecap = "round"
	}
	fmt.Fprintf(&b, ` stroke-linecap="%s" stroke-linejoin="round"`, linecap)
	return b.String()
}

// coord formats a model coordinate compactly: integers stay integral,
// fractions keep three decimals.
func coord(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3f", v)
}
