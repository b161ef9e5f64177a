package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tilemaze/tilemaze/pkg/cache"
	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/graphio"
)

func TestValidateAndSetDefaults(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		opts := Options{Shape: "square"}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults: %v", err)
		}
		if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
			t.Errorf("dimensions = %dx%d, want defaults", opts.Width, opts.Height)
		}
		if opts.Seed != DefaultSeed {
			t.Errorf("seed = %d, want %d", opts.Seed, DefaultSeed)
		}
		if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
			t.Errorf("formats = %v, want [svg]", opts.Formats)
		}
		if opts.Theme != DefaultTheme {
			t.Errorf("theme = %q", opts.Theme)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		opts := Options{Shape: "hex", Radius: 2}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Radius != 2 {
			t.Errorf("radius changed to %d", opts.Radius)
		}
	})

	t.Run("EndpointsImplySolve", func(t *testing.T) {
		opts := Options{Shape: "square", Start: "0,0"}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if !opts.Solve {
			t.Error("setting endpoints should enable solving")
		}
	})

	errTests := []struct {
		name string
		opts Options
		code apperrors.Code
	}{
		{name: "UnknownShape", opts: Options{Shape: "octagon"}, code: apperrors.ErrCodeInvalidShape},
		{name: "EmptyShape", opts: Options{}, code: apperrors.ErrCodeInvalidShape},
		{name: "NegativeSize", opts: Options{Shape: "square", Width: -1, Height: 5}, code: apperrors.ErrCodeInvalidSize},
		{name: "TorusOnHex", opts: Options{Shape: "hex", TorusX: true}, code: apperrors.ErrCodeUnsupported},
		{name: "BadFormat", opts: Options{Shape: "square", Formats: []string{"png"}}, code: apperrors.ErrCodeInvalidInput},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !apperrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(ctx, Options{
		Shape:   "square",
		Width:   6,
		Height:  5,
		Seed:    7,
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("missing run ID")
	}
	if result.Stats.CellCount != 30 {
		t.Errorf("cells = %d, want 30", result.Stats.CellCount)
	}
	// A perfect maze over n cells has n-1 links.
	if result.Stats.LinkCount != 29 {
		t.Errorf("links = %d, want 29", result.Stats.LinkCount)
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") {
		t.Error("svg artifact malformed")
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"shape": "square"`) {
		t.Error("json artifact missing shape")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "graph G {") {
		t.Error("dot artifact malformed")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)
	opts := Options{Shape: "tri", Width: 6, Height: 4, Seed: 99, Formats: []string{FormatJSON}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("same seed produced different artifacts")
	}
	if first.RunID == second.RunID {
		t.Error("run IDs must be unique per execution")
	}
}

func TestExecuteSolve(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(ctx, Options{
		Shape: "square",
		Width: 5, Height: 5,
		Seed:  3,
		Start: "0,0",
		End:   "4,4",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Solution) < 2 {
		t.Fatalf("solution = %v", result.Solution)
	}
	if result.Solution[0] != "0,0" {
		t.Errorf("solution starts at %s", result.Solution[0])
	}
	if result.Solution[len(result.Solution)-1] != "4,4" {
		t.Errorf("solution ends at %s", result.Solution[len(result.Solution)-1])
	}
	if result.Stats.PathLength != len(result.Solution) {
		t.Errorf("path length stat = %d", result.Stats.PathLength)
	}
	// The solution overlay shows up in the SVG as markers.
	if got := strings.Count(string(result.Artifacts[FormatSVG]), "<circle"); got != 2 {
		t.Errorf("solution markers = %d, want 2", got)
	}
}

func TestExecuteSolveErrors(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	t.Run("MalformedCell", func(t *testing.T) {
		_, err := runner.Execute(ctx, Options{Shape: "square", Start: "nope"})
		if !apperrors.Is(err, apperrors.ErrCodeInvalidCell) {
			t.Errorf("error = %v, want INVALID_CELL", err)
		}
	})

	t.Run("UnknownCell", func(t *testing.T) {
		_, err := runner.Execute(ctx, Options{Shape: "square", Width: 3, Height: 3, Start: "9,9"})
		if !apperrors.Is(err, apperrors.ErrCodeInvalidCell) {
			t.Errorf("error = %v, want INVALID_CELL", err)
		}
	})
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil)
	opts := Options{Shape: "square", Width: 4, Height: 4, Seed: 5}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run cannot be a cache hit")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from computed one")
	}

	refreshed, err := runner.Execute(ctx, Options{Shape: "square", Width: 4, Height: 4, Seed: 5, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh must bypass the cache")
	}
}

func TestSolveRunDoesNotPopulateCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil)

	solved, err := runner.Execute(ctx, Options{
		Shape: "square", Width: 5, Height: 5, Seed: 3,
		Start: "0,0", End: "4,4",
	})
	if err != nil {
		t.Fatalf("Execute solve: %v", err)
	}
	if !strings.Contains(string(solved.Artifacts[FormatSVG]), "<circle") {
		t.Fatal("solve run missing its overlay")
	}

	plain, err := runner.Execute(ctx, Options{Shape: "square", Width: 5, Height: 5, Seed: 3})
	if err != nil {
		t.Fatalf("Execute plain: %v", err)
	}
	if plain.CacheInfo.RenderHit {
		t.Error("plain run after solve must not hit the cache")
	}
	if strings.Contains(string(plain.Artifacts[FormatSVG]), "<circle") {
		t.Error("plain run served a solution overlay")
	}
}

func TestJSONArtifactCarriesTorusMeta(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(ctx, Options{
		Shape: "square", Width: 4, Height: 4, Seed: 11,
		TorusX: true, Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var doc graphio.Document
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	g, err := graphio.SquareGridFor(&doc)
	if err != nil {
		t.Fatalf("SquareGridFor: %v", err)
	}
	if g == nil || !g.TorusX || g.TorusY {
		t.Fatalf("grid = %+v, want torus-x 4x4", g)
	}

	flat, err := runner.Execute(ctx, Options{
		Shape: "square", Width: 4, Height: 4, Seed: 11,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute flat: %v", err)
	}
	if strings.Contains(string(flat.Artifacts[FormatJSON]), `"meta"`) {
		t.Error("flat document must not carry torus meta")
	}
}

func TestExecuteHexAndTorus(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	hex, err := runner.Execute(ctx, Options{Shape: "hex", Radius: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Execute hex: %v", err)
	}
	if hex.Stats.CellCount != 19 {
		t.Errorf("hex cells = %d, want 19", hex.Stats.CellCount)
	}

	torus, err := runner.Execute(ctx, Options{
		Shape: "square", Width: 5, Height: 5, Seed: 2,
		TorusX: true, TorusY: true,
	})
	if err != nil {
		t.Fatalf("Execute torus: %v", err)
	}
	if torus.Stats.LinkCount != 24 {
		t.Errorf("torus maze links = %d, want 24", torus.Stats.LinkCount)
	}
}
