// Package pipeline provides the core maze-generation pipeline.
//
// This package implements the complete build → carve → solve → render
// pipeline shared by the CLI and the HTTP server. Centralizing it keeps
// behavior and cache keys identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: construct the full-adjacency grid for the requested shape
//  2. Carve: generate a perfect maze over the grid with a seeded RNG
//  3. Solve: optionally find the shortest path between two cells
//  4. Render: produce output artifacts (SVG, JSON, DOT)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Shape:   "square",
//	    Width:   12,
//	    Height:  9,
//	    Seed:    42,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/grid"
)

// Default values shared by CLI and server.
const (
	// DefaultWidth and DefaultHeight size square and triangle grids.
	DefaultWidth  = 10
	DefaultHeight = 10

	// DefaultRadius sizes hex boards.
	DefaultRadius = 4

	// DefaultSeed keeps unseeded runs reproducible.
	DefaultSeed = uint64(42)

	// DefaultTheme is the default render theme.
	DefaultTheme = "simple"

	// DefaultScale is the pixel size of one model unit in SVG output.
	DefaultScale = 32.0

	// DefaultTTL is how long cached artifacts stay valid.
	DefaultTTL = 24 * time.Hour
)

// Output format constants.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Options contains all configuration for a pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Grid options
	Shape  string `json:"shape"`
	Width  int    `json:"width,omitempty"`  // square, tri
	Height int    `json:"height,omitempty"` // square, tri
	Radius int    `json:"radius,omitempty"` // hex
	TorusX bool   `json:"torus_x,omitempty"`
	TorusY bool   `json:"torus_y,omitempty"`

	// Carve options
	Seed uint64 `json:"seed,omitempty"`

	// Solve options
	Solve bool   `json:"solve,omitempty"`
	Start string `json:"start,omitempty"` // cell coordinate, defaults to the first cell
	End   string `json:"end,omitempty"`   // cell coordinate, defaults to the last cell

	// Render options
	Formats []string `json:"formats,omitempty"`
	Theme   string   `json:"theme,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	shape, err := grid.ParseShape(o.Shape)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidShape, err, "shape %q", o.Shape)
	}
	o.Shape = string(shape)

	switch shape {
	case grid.ShapeSquare, grid.ShapeTri:
		if o.Width == 0 {
			o.Width = DefaultWidth
		}
		if o.Height == 0 {
			o.Height = DefaultHeight
		}
		if o.Width < 1 || o.Height < 1 {
			return apperrors.New(apperrors.ErrCodeInvalidSize, "dimensions must be positive: %dx%d", o.Width, o.Height)
		}
	case grid.ShapeHex:
		if o.Radius == 0 {
			o.Radius = DefaultRadius
		}
		if o.Radius < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidSize, "radius must be non-negative: %d", o.Radius)
		}
	}
	if o.TorusX || o.TorusY {
		if shape != grid.ShapeSquare {
			return apperrors.New(apperrors.ErrCodeUnsupported, "toroidal wrapping requires the square shape")
		}
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, json, dot)", f)
		}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if err := apperrors.ValidateThemeName(o.Theme); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Start != "" || o.End != "" {
		o.Solve = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution for logging and API
	// responses.
	RunID string

	// Shape echoes the resolved grid shape.
	Shape string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Solution holds the solved path as encoded cell coordinates, empty
	// when solving was not requested.
	Solution []string

	// Stats contains size and timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount  int
	LinkCount  int
	PathLength int
	BuildTime  time.Duration
	CarveTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	// RenderHit is true when every requested artifact came from cache.
	RenderHit bool
}
