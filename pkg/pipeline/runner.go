package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tilemaze/tilemaze/pkg/cache"
	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/graphio"
	"github.com/tilemaze/tilemaze/pkg/grid"
	"github.com/tilemaze/tilemaze/pkg/observability"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/render"
	"github.com/tilemaze/tilemaze/pkg/render/nodelink"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

// Runner executes the pipeline with artifact caching. It is stateless
// apart from the cache and logger, so one Runner serves concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete build → carve → solve → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	switch grid.Shape(opts.Shape) {
	case grid.ShapeSquare:
		sqOpts := []grid.SquareOption{}
		if opts.TorusX {
			sqOpts = append(sqOpts, grid.WithTorusX())
		}
		if opts.TorusY {
			sqOpts = append(sqOpts, grid.WithTorusY())
		}
		g, err := grid.NewSquareGrid(opts.Width, opts.Height, sqOpts...)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSize, err, "build square grid")
		}
		return run(ctx, r, opts, g.Structure(), g.Classifier, graphio.SquareCodec())

	case grid.ShapeHex:
		g, err := grid.NewHexGrid(opts.Radius)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSize, err, "build hex board")
		}
		return run(ctx, r, opts, g.Structure(), nil, graphio.HexCodec())

	case grid.ShapeTri:
		g, err := grid.NewTriGrid(opts.Width, opts.Height)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSize, err, "build tri grid")
		}
		return run(ctx, r, opts, g.Structure(), nil, graphio.TriCodec())
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidShape, "shape %q", opts.Shape)
}

// run is the shape-generic pipeline body. classify may be nil for shapes
// without boundary reclassification.
func run[C comparable](
	ctx context.Context,
	r *Runner,
	opts Options,
	full *structure.Structure[C],
	classify func(*structure.Structure[C]) outline.Classifier[C],
	codec graphio.Codec[C],
) (*Result, error) {
	logger := opts.Logger

	result := &Result{
		RunID:     uuid.NewString(),
		Shape:     opts.Shape,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.CellCount = len(full.Cells())

	// Cached artifacts cover plain generate runs only. A solve request
	// always recomputes, and its artifacts never enter the cache: the
	// solution overlay is baked into the SVG, and the key carries no
	// endpoint component.
	if !opts.Refresh && !opts.Solve {
		if hit := r.loadCached(ctx, &opts, result); hit {
			logger.Info("artifacts served from cache", "run", result.RunID, "formats", opts.Formats)
			result.CacheInfo.RenderHit = true
			return result, nil
		}
	}

	carveStart := time.Now()
	observability.Pipeline().OnCarveStart(ctx, opts.Shape, result.Stats.CellCount)
	maze, err := full.GenerateMaze(structure.SeededRand(opts.Seed))
	if err != nil {
		observability.Pipeline().OnCarveComplete(ctx, opts.Shape, 0, time.Since(carveStart), err)
		return nil, apperrors.Wrap(apperrors.ErrCodeDisconnected, err, "carve maze")
	}
	result.Stats.CarveTime = time.Since(carveStart)
	observability.Pipeline().OnCarveComplete(ctx, opts.Shape, len(maze.Links()), result.Stats.CarveTime, nil)
	result.Stats.LinkCount = len(maze.Links())
	logger.Info("carved maze",
		"run", result.RunID,
		"cells", result.Stats.CellCount,
		"links", result.Stats.LinkCount,
		"seed", opts.Seed,
		"duration", result.Stats.CarveTime)

	var solution []C
	if opts.Solve {
		solveStart := time.Now()
		observability.Pipeline().OnSolveStart(ctx, opts.Shape)
		solution, err = solve(maze, opts, codec)
		observability.Pipeline().OnSolveComplete(ctx, opts.Shape, len(solution), time.Since(solveStart), err)
		if err != nil {
			return nil, err
		}
		result.Stats.SolveTime = time.Since(solveStart)
		result.Stats.PathLength = len(solution)
		result.Solution = make([]string, len(solution))
		for i, c := range solution {
			result.Solution[i] = codec.Encode(c)
		}
		logger.Info("solved maze",
			"run", result.RunID,
			"steps", len(solution)-1,
			"duration", result.Stats.SolveTime)
	}

	var classifier outline.Classifier[C]
	if classify != nil {
		classifier = classify(maze)
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		data, err := renderFormat(maze, classifier, codec, solution, opts, format)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, err
		}
		result.Artifacts[format] = data
		if opts.Solve {
			continue
		}
		if cerr := r.Cache.Set(ctx, artifactKey(&opts, format), data, DefaultTTL); cerr != nil {
			logger.Warn("artifact cache write failed", "format", format, "err", cerr)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)
	logger.Info("rendered artifacts",
		"run", result.RunID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// solve resolves the endpoints and finds the shortest path between them.
func solve[C comparable](maze *structure.Structure[C], opts Options, codec graphio.Codec[C]) ([]C, error) {
	cells := maze.Cells()
	start, end := cells[0], cells[len(cells)-1]

	var err error
	if opts.Start != "" {
		if start, err = codec.Decode(opts.Start); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCell, err, "start cell %q", opts.Start)
		}
	}
	if opts.End != "" {
		if end, err = codec.Decode(opts.End); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCell, err, "end cell %q", opts.End)
		}
	}

	path, found, err := maze.FindPath(start, end)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCell, err, "solve %s to %s", codec.Encode(start), codec.Encode(end))
	}
	if !found {
		return nil, apperrors.New(apperrors.ErrCodeUnreachable, "no path from %s to %s", codec.Encode(start), codec.Encode(end))
	}
	return path, nil
}

// renderFormat produces one artifact.
func renderFormat[C comparable](
	maze *structure.Structure[C],
	classifier outline.Classifier[C],
	codec graphio.Codec[C],
	solution []C,
	opts Options,
	format string,
) ([]byte, error) {
	switch format {
	case FormatSVG:
		theme, err := render.ResolveTheme(opts.Theme)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTheme, err, "theme %q", opts.Theme)
		}
		ropts := []render.Option[C]{
			render.WithTheme[C](theme),
			render.WithScale[C](opts.Scale),
		}
		if classifier != nil {
			ropts = append(ropts, render.WithClassifier(classifier))
		}
		if len(solution) > 0 {
			ropts = append(ropts, render.WithSolution(solution))
		}
		data, err := render.RenderSVG(maze, ropts...)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render svg")
		}
		return data, nil

	case FormatJSON:
		doc := graphio.Encode(maze, codec)
		if opts.TorusX || opts.TorusY {
			doc.Meta = graphio.TorusMeta(opts.Width, opts.Height, opts.TorusX, opts.TorusY)
		}
		data, err := graphio.MarshalDocument(doc)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode json")
		}
		return data, nil

	case FormatDOT:
		return []byte(nodelink.ToDOT(maze, nodelink.Options[C]{})), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format: %q", format)
}

// loadCached fills result.Artifacts from cache, reporting whether every
// requested format hit.
func (r *Runner) loadCached(ctx context.Context, opts *Options, result *Result) bool {
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, artifactKey(opts, format))
		if err != nil || !hit {
			if err != nil {
				r.Logger.Warn("artifact cache read failed", "format", format, "err", err)
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		result.Artifacts[format] = data
	}
	return true
}

// artifactKey derives the cache key for one artifact from every option
// that influences its bytes.
func artifactKey(opts *Options, format string) string {
	return cache.Key("artifact",
		opts.Shape, opts.Width, opts.Height, opts.Radius,
		opts.TorusX, opts.TorusY,
		fmt.Sprint(opts.Seed),
		opts.Theme, opts.Scale,
		format)
}
