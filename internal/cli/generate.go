package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/pipeline"
	"github.com/tilemaze/tilemaze/pkg/render"
)

// gridOpts holds the flags shared by every command that builds a grid.
type gridOpts struct {
	shape  string
	width  int
	height int
	radius int
	torusX bool
	torusY bool
	seed   uint64
}

// registerGridFlags wires the shared grid flags into cmd.
func (o *gridOpts) registerGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.shape, "shape", "s", "square", "grid shape: square, hex, tri")
	cmd.Flags().IntVar(&o.width, "width", 0, "grid width in cells (square, tri)")
	cmd.Flags().IntVar(&o.height, "height", 0, "grid height in cells (square, tri)")
	cmd.Flags().IntVar(&o.radius, "radius", 0, "board radius in rings (hex)")
	cmd.Flags().BoolVar(&o.torusX, "torus-x", false, "wrap the horizontal axis (square only)")
	cmd.Flags().BoolVar(&o.torusY, "torus-y", false, "wrap the vertical axis (square only)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (0 uses the built-in default)")
}

// pipelineOptions converts the grid flags into pipeline options.
func (o *gridOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Shape:  o.shape,
		Width:  o.width,
		Height: o.height,
		Radius: o.radius,
		TorusX: o.torusX,
		TorusY: o.torusY,
		Seed:   o.seed,
	}
}

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	gridOpts
	theme   string  // render theme name or TOML file path
	scale   float64 // pixels per model unit in SVG output
	output  string  // output file (single format) or base path (multiple)
	noCache bool    // disable the artifact cache
	refresh bool    // recompute even when cached
}

// generateCommand creates the generate command for carving and rendering mazes.
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze and render it",
		Long:  `Generate carves a perfect maze over the requested grid and writes one output file per format. The same seed always produces the same maze.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), &opts, parseFormats(formatsStr))
		},
	}

	opts.registerGridFlags(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "render theme name or TOML file path")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per cell in SVG output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached artifact exists")

	return cmd
}

// runGenerate executes the pipeline and writes the resulting artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts, formats []string) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	popts := opts.pipelineOptions()
	popts.Formats = formats
	popts.Theme = opts.theme
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh

	spinner := newSpinnerWithContext(ctx, "Carving maze...")
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

	printSuccess("Generated %s maze (seed %d)", result.Shape, popts.Seed)
	printStats(result.Stats.CellCount, result.Stats.LinkCount, result.CacheInfo.RenderHit)

	paths, err := writeArtifacts(result, formats, opts.output)
	if err != nil {
		return err
	}
	for _, path := range paths {
		printFile(path)
	}

	printNewline()
	printNextStep("Solve it", fmt.Sprintf("tilemaze solve -s %s --seed %d", result.Shape, popts.Seed))
	return nil
}

// basePath derives the base output path from the --output flag. If output
// carries a known format extension, the extension is stripped so multiple
// formats can share the base.
func basePath(output string) string {
	if output == "" {
		return "maze"
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per rendered format and returns the paths.
func writeArtifacts(result *pipeline.Result, formats []string, output string) ([]string, error) {
	base := basePath(output)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := apperrors.ValidateOutputPath(path); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// themesCommand creates the themes command listing the built-in render themes.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in render themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range render.ThemeNames() {
				marker := " "
				if name == pipeline.DefaultTheme {
					marker = "*"
				}
				fmt.Printf("%s %s\n", StyleDim.Render(marker), name)
			}
			printNewline()
			printDetail("* default · custom themes load from TOML files via --theme path/to/theme.toml")
			return nil
		},
	}
}
