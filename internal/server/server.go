// Package server exposes the maze pipeline over HTTP.
//
// The server shares the pipeline runner (and therefore the artifact cache)
// with the CLI, so a maze requested over HTTP and one generated on the
// command line produce identical bytes for identical parameters.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tilemaze/tilemaze/pkg/buildinfo"
	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/pipeline"
	"github.com/tilemaze/tilemaze/pkg/render"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// Server handles HTTP requests for maze generation and solving.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by the given runner. A nil logger falls back
// to the default logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/maze.svg", s.handleMaze(pipeline.FormatSVG))
		r.Get("/maze.json", s.handleMaze(pipeline.FormatJSON))
		r.Get("/maze.dot", s.handleMaze(pipeline.FormatDOT))
		r.Get("/solve", s.handleSolve)
		r.Get("/themes", s.handleThemes)
	})

	return r
}

// handleHealth reports liveness and the build version.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleMaze returns a handler that renders one artifact format.
func (s *Server) handleMaze(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := parseOptions(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Run-Id", result.RunID)
		if result.CacheInfo.RenderHit {
			w.Header().Set("X-Cache", "hit")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// solveResponse is the JSON body returned by the solve endpoint.
type solveResponse struct {
	RunID    string   `json:"run_id"`
	Shape    string   `json:"shape"`
	Solution []string `json:"solution"`
	Steps    int      `json:"steps"`
	Cells    int      `json:"cells"`
	Passages int      `json:"passages"`
}

// handleSolve finds the shortest path between two cells and returns it as
// JSON.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Solve = true
	opts.Start = r.URL.Query().Get("from")
	opts.End = r.URL.Query().Get("to")
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		RunID:    result.RunID,
		Shape:    result.Shape,
		Solution: result.Solution,
		Steps:    len(result.Solution) - 1,
		Cells:    result.Stats.CellCount,
		Passages: result.Stats.LinkCount,
	})
}

// handleThemes lists the built-in render themes.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"themes": render.ThemeNames()})
}

// parseOptions reads pipeline options from the query string.
func parseOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Shape: q.Get("shape"),
		Theme: q.Get("theme"),
	}
	if opts.Shape == "" {
		opts.Shape = "square"
	}

	var err error
	if opts.Width, err = intParam(q.Get("width")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "width: %q", q.Get("width"))
	}
	if opts.Height, err = intParam(q.Get("height")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "height: %q", q.Get("height"))
	}
	if opts.Radius, err = intParam(q.Get("radius")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "radius: %q", q.Get("radius"))
	}
	if raw := q.Get("seed"); raw != "" {
		if opts.Seed, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "seed: %q", raw)
		}
	}
	if raw := q.Get("scale"); raw != "" {
		if opts.Scale, err = strconv.ParseFloat(raw, 64); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "scale: %q", raw)
		}
	}
	opts.TorusX = q.Get("torus_x") == "true"
	opts.TorusY = q.Get("torus_y") == "true"
	opts.Refresh = q.Get("refresh") == "true"

	return opts, nil
}

// intParam parses an optional integer query parameter; empty means zero.
func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// statusForCode maps pipeline error codes to HTTP status codes.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidShape,
		apperrors.ErrCodeInvalidSize,
		apperrors.ErrCodeInvalidCell,
		apperrors.ErrCodeInvalidTheme,
		apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnreachable, apperrors.ErrCodeDisconnected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders an error response with a stable code for clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": apperrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
