package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/graphio"
	"github.com/tilemaze/tilemaze/pkg/grid"
	"github.com/tilemaze/tilemaze/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	gridOpts
	from    string // start cell, defaults to the first cell
	to      string // end cell, defaults to the last cell
	input   string // exported maze document, bypasses regeneration
	theme   string
	scale   float64
	output  string // SVG output path, empty prints the path only
	noCache bool
}

// solveCommand creates the solve command for finding shortest paths.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a maze and show the shortest path",
		Long:  `Solve regenerates the maze for the given shape and seed, finds the shortest path between two cells, and optionally writes an SVG with the solution drawn through the passages.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), &opts)
		},
	}

	opts.registerGridFlags(cmd)
	cmd.Flags().StringVar(&opts.from, "from", "", "start cell, e.g. 0,0 (defaults to the first cell)")
	cmd.Flags().StringVar(&opts.to, "to", "", "end cell, e.g. 9,9 (defaults to the last cell)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "solve an exported maze document instead of regenerating")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "render theme name or TOML file path")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per cell in SVG output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write an SVG with the solution overlay")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runSolve executes the pipeline with solving enabled and reports the path.
func (c *CLI) runSolve(ctx context.Context, opts *solveOpts) error {
	if opts.input != "" {
		return c.runSolveFile(opts)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	popts := opts.pipelineOptions()
	popts.Solve = true
	popts.Start = opts.from
	popts.End = opts.to
	popts.Theme = opts.theme
	popts.Scale = opts.scale
	if opts.output != "" {
		popts.Formats = []string{pipeline.FormatSVG}
	}

	spinner := newSpinnerWithContext(ctx, "Solving maze...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return ctx.Err()
		}
		printError("%s", apperrors.UserMessage(err))
		return err
	}

	path := result.Solution
	printSuccess("Solved in %d steps: %s %s %s",
		len(path)-1,
		StyleHighlight.Render(path[0]),
		iconArrow,
		StyleHighlight.Render(path[len(path)-1]))
	printStats(result.Stats.CellCount, result.Stats.LinkCount, false)
	printDetail("%s", strings.Join(path, " "+iconArrow+" "))

	if opts.output != "" {
		paths, err := writeArtifacts(result, []string{pipeline.FormatSVG}, opts.output)
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(p)
		}
	} else {
		printNewline()
		printNextStep("Draw it", fmt.Sprintf("tilemaze solve -s %s --seed %d -o solution.svg", result.Shape, popts.Seed))
	}
	return nil
}

// runSolveFile solves a previously exported maze document.
func (c *CLI) runSolveFile(opts *solveOpts) error {
	doc, shape, err := loadDocument(opts.input)
	if err != nil {
		printError("%s", apperrors.UserMessage(err))
		return err
	}

	var path []string
	switch shape {
	case grid.ShapeSquare:
		path, err = solveDocument(doc, graphio.SquareCodec(), opts.from, opts.to)
	case grid.ShapeHex:
		path, err = solveDocument(doc, graphio.HexCodec(), opts.from, opts.to)
	case grid.ShapeTri:
		path, err = solveDocument(doc, graphio.TriCodec(), opts.from, opts.to)
	}
	if err != nil {
		printError("%s", apperrors.UserMessage(err))
		return err
	}

	printSuccess("Solved in %d steps: %s %s %s",
		len(path)-1,
		StyleHighlight.Render(path[0]),
		iconArrow,
		StyleHighlight.Render(path[len(path)-1]))
	printDetail("%s", strings.Join(path, " "+iconArrow+" "))
	return nil
}

// solveDocument decodes the document and finds the shortest path between the
// requested cells, defaulting to the first and last cell.
func solveDocument[C comparable](doc *graphio.Document, codec graphio.Codec[C], from, to string) ([]string, error) {
	maze, err := graphio.Decode(doc, codec)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode document")
	}

	cells := maze.Cells()
	start, end := cells[0], cells[len(cells)-1]
	if from != "" {
		if start, err = codec.Decode(from); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCell, err, "start cell %q", from)
		}
	}
	if to != "" {
		if end, err = codec.Decode(to); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCell, err, "end cell %q", to)
		}
	}

	cellPath, found, err := maze.FindPath(start, end)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCell, err, "solve %s to %s", codec.Encode(start), codec.Encode(end))
	}
	if !found {
		return nil, apperrors.New(apperrors.ErrCodeUnreachable, "no path from %s to %s", codec.Encode(start), codec.Encode(end))
	}

	out := make([]string, len(cellPath))
	for i, c := range cellPath {
		out[i] = codec.Encode(c)
	}
	return out, nil
}
