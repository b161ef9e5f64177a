package graphio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tilemaze/tilemaze/pkg/structure"
)

var (
	// ErrShapeMismatch is returned when a document's shape tag does not
	// match the codec used to decode it.
	ErrShapeMismatch = errors.New("document shape does not match codec")

	// ErrBadDocument is returned for structurally invalid documents:
	// malformed cell strings, links naming unknown cells, or self links.
	ErrBadDocument = errors.New("invalid structure document")
)

// Codec translates between a cell type and its canonical string form.
// Encode and Decode must round-trip: Decode(Encode(c)) == c.
type Codec[C comparable] struct {
	// Shape tags documents written with this codec and is checked on read.
	// An empty shape skips the check.
	Shape string

	Encode func(C) string
	Decode func(string) (C, error)
}

// Document is the canonical JSON format for a structure. Cells appear in
// insertion order and links in link order, so output is deterministic and
// round-trips byte-identically.
type Document struct {
	Shape string         `json:"shape,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Cells []string       `json:"cells"`
	Links [][2]string    `json:"links"`
}

// Encode converts a structure to its document form.
func Encode[C comparable](s *structure.Structure[C], codec Codec[C]) *Document {
	cells := s.Cells()
	links := s.Links()
	doc := &Document{
		Shape: codec.Shape,
		Cells: make([]string, len(cells)),
		Links: make([][2]string, len(links)),
	}
	for i, c := range cells {
		doc.Cells[i] = codec.Encode(c)
	}
	for i, l := range links {
		doc.Links[i] = [2]string{codec.Encode(l.A), codec.Encode(l.B)}
	}
	return doc
}

// Decode converts a document back into a structure. Extra options pass
// through to structure construction, letting grids reattach their flavor.
func Decode[C comparable](doc *Document, codec Codec[C], opts ...structure.Option[C]) (*structure.Structure[C], error) {
	if codec.Shape != "" && doc.Shape != "" && doc.Shape != codec.Shape {
		return nil, fmt.Errorf("%w: document %q, codec %q", ErrShapeMismatch, doc.Shape, codec.Shape)
	}

	cells := make([]C, len(doc.Cells))
	for i, raw := range doc.Cells {
		c, err := codec.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrBadDocument, i, err)
		}
		cells[i] = c
	}

	links := make([]structure.Link[C], len(doc.Links))
	for i, raw := range doc.Links {
		a, err := codec.Decode(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%w: link %d: %v", ErrBadDocument, i, err)
		}
		b, err := codec.Decode(raw[1])
		if err != nil {
			return nil, fmt.Errorf("%w: link %d: %v", ErrBadDocument, i, err)
		}
		links[i] = structure.Link[C]{A: a, B: b}
	}

	s, err := structure.New(cells, append([]structure.Option[C]{structure.WithLinks(links)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	return s, nil
}

// Marshal converts a structure to indented JSON bytes.
func Marshal[C comparable](s *structure.Structure[C], codec Codec[C]) ([]byte, error) {
	return MarshalDocument(Encode(s, codec))
}

// MarshalDocument converts a document to indented JSON bytes. Use it over
// [Marshal] when the document carries meta entries.
func MarshalDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a structure as JSON to w.
func Write[C comparable](s *structure.Structure[C], codec Codec[C], w io.Writer) error {
	return WriteDocument(Encode(s, codec), w)
}

// WriteDocument writes a document as JSON to w.
func WriteDocument(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a structure to a JSON file created with 0644 permissions.
func WriteFile[C comparable](s *structure.Structure[C], codec Codec[C], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, codec, f)
}

// Unmarshal decodes JSON bytes into a structure.
func Unmarshal[C comparable](data []byte, codec Codec[C], opts ...structure.Option[C]) (*structure.Structure[C], error) {
	return Read(bytes.NewReader(data), codec, opts...)
}

// Read decodes a JSON structure document from r.
func Read[C comparable](r io.Reader, codec Codec[C], opts ...structure.Option[C]) (*structure.Structure[C], error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Decode(&doc, codec, opts...)
}

// ReadFile reads a JSON file and returns the decoded structure.
func ReadFile[C comparable](path string, codec Codec[C], opts ...structure.Option[C]) (*structure.Structure[C], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, codec, opts...)
}
