package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/tilemaze/tilemaze/pkg/errors"
	"github.com/tilemaze/tilemaze/pkg/graphio"
	"github.com/tilemaze/tilemaze/pkg/grid"
	"github.com/tilemaze/tilemaze/pkg/outline"
	"github.com/tilemaze/tilemaze/pkg/pipeline"
	"github.com/tilemaze/tilemaze/pkg/render"
	"github.com/tilemaze/tilemaze/pkg/render/nodelink"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	theme  string
	scale  float64
	output string
}

// renderCommand creates the render command for drawing previously exported
// mazes.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an exported maze document",
		Long:  `Render loads a maze document written by generate --format json and draws it again, so a maze can be re-rendered with a different theme or format without re-carving.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRenderFile(cmd.Context(), args[0], &opts, parseFormats(formatsStr))
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "render theme name or TOML file path")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per cell in SVG output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")

	return cmd
}

// runRenderFile loads the document, dispatches on its shape tag, and writes
// one file per requested format.
func (c *CLI) runRenderFile(ctx context.Context, input string, opts *renderOpts, formats []string) error {
	logger := c.Logger
	logger.Infof("Rendering %s", input)

	doc, shape, err := loadDocument(input)
	if err != nil {
		printError("%s", apperrors.UserMessage(err))
		return err
	}
	logger.Infof("Loaded maze: %d cells, %d passages", len(doc.Cells), len(doc.Links))

	var paths []string
	switch shape {
	case grid.ShapeSquare:
		// Toroidal documents carry their wrap flags in the meta block;
		// rebuilding the grid brings its boundary classifier back.
		g, gerr := graphio.SquareGridFor(doc)
		if gerr != nil {
			err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, gerr, "document meta")
			break
		}
		var classify func(*structure.Structure[grid.Square]) outline.Classifier[grid.Square]
		if g != nil {
			classify = g.Classifier
		}
		paths, err = renderDocument(doc, graphio.SquareCodec(), classify, opts, formats, input)
	case grid.ShapeHex:
		paths, err = renderDocument(doc, graphio.HexCodec(), nil, opts, formats, input)
	case grid.ShapeTri:
		paths, err = renderDocument(doc, graphio.TriCodec(), nil, opts, formats, input)
	}
	if err != nil {
		printError("%s", apperrors.UserMessage(err))
		return err
	}

	printSuccess("Rendered %s maze", shape)
	printStats(len(doc.Cells), len(doc.Links), false)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// loadDocument reads a maze document and resolves its shape tag.
func loadDocument(path string) (*graphio.Document, grid.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read %s", path)
	}

	var doc graphio.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse %s", path)
	}

	shape, err := grid.ParseShape(doc.Shape)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidShape, err, "document shape %q", doc.Shape)
	}
	return &doc, shape, nil
}

// renderDocument decodes the document with the shape's codec and renders
// every requested format. classify may be nil for shapes without boundary
// reclassification.
func renderDocument[C comparable](
	doc *graphio.Document,
	codec graphio.Codec[C],
	classify func(*structure.Structure[C]) outline.Classifier[C],
	opts *renderOpts,
	formats []string,
	input string,
) ([]string, error) {
	maze, err := graphio.Decode(doc, codec)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode document")
	}

	base := documentBase(opts.output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		var data []byte
		switch format {
		case pipeline.FormatSVG:
			name := opts.theme
			if name == "" {
				name = pipeline.DefaultTheme
			}
			theme, err := render.ResolveTheme(name)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTheme, err, "theme %q", name)
			}
			ropts := []render.Option[C]{render.WithTheme[C](theme)}
			if opts.scale > 0 {
				ropts = append(ropts, render.WithScale[C](opts.scale))
			}
			if classify != nil {
				ropts = append(ropts, render.WithClassifier(classify(maze)))
			}
			if data, err = render.RenderSVG(maze, ropts...); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render svg")
			}
		case pipeline.FormatJSON:
			if data, err = graphio.Marshal(maze, codec); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode json")
			}
		case pipeline.FormatDOT:
			data = []byte(nodelink.ToDOT(maze, nodelink.Options[C]{}))
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format: %q", format)
		}

		path := base + "." + format
		if err := apperrors.ValidateOutputPath(path); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// documentBase derives the base output path, falling back to the input file
// name with its extension stripped.
func documentBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return basePath(output)
}
