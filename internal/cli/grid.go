package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/pipeline"
)

// gridOpts holds the command-line flags for the grid command.
type gridOpts struct {
	output      string
	formats     string
	width       int
	height      int
	scale       float64
	seed        uint64
	transparent bool
}

// gridCommand creates the grid command.
func (c *CLI) gridCommand() *cobra.Command {
	var opts gridOpts

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render a wall of random patterns sized to a viewport",
		Long: fmt.Sprintf(`Grid fills a viewport with one pattern per %dpx cell. The row and column
counts are the viewport edges divided by the cell size, rounded down, with at
least one of each. The default viewport comes from the config file.`, grid.CellSize),
		Example: `  circlet grid
  circlet grid --width 2560 --height 1440 -f svg,png -o wall
  circlet grid --seed 3 -f pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.baseOptions()
			popts.Formats = []string{pipeline.FormatSVG}
			if cmd.Flags().Changed("format") {
				popts.Formats = pipeline.ParseFormats(opts.formats)
			}
			if cmd.Flags().Changed("scale") {
				popts.Scale = opts.scale
			}
			popts.Transparent = opts.transparent
			if err := pipeline.ValidateGridFormats(popts.Formats); err != nil {
				return err
			}
			if err := validateOutput(opts.output, popts.Formats); err != nil {
				return err
			}

			width, height := c.Config.Grid.Width, c.Config.Grid.Height
			if cmd.Flags().Changed("width") {
				width = opts.width
			}
			if cmd.Flags().Changed("height") {
				height = opts.height
			}
			if width <= 0 || height <= 0 {
				return cerrors.New(cerrors.ErrCodeInvalidInput, "viewport must be positive, got %dx%d", width, height)
			}

			if float64(width) < grid.CellSize || float64(height) < grid.CellSize {
				printWarning("Viewport %dx%d is smaller than one %dpx cell", width, height, grid.CellSize)
			}

			gen := pattern.NewGenerator(nil)
			if cmd.Flags().Changed("seed") {
				gen = pattern.NewSeededGenerator(opts.seed)
			}
			return c.runGrid(cmd, grid.FromViewport(float64(width), float64(height)), gen, popts, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "viewport width in pixels (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "viewport height in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for a reproducible wall")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "omit tile backgrounds")

	return cmd
}

func (c *CLI) runGrid(cmd *cobra.Command, geo grid.Geometry, gen *pattern.Generator, popts pipeline.Options, output string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	wall := grid.NewWall(geo, gen)
	c.Logger.Debug("wall", "rows", geo.Rows, "cols", geo.Cols, "width", geo.Width, "height", geo.Height)

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %d patterns", wall.Len()))
	spin.Start()
	artifacts, err := runner.RenderGrid(cmd.Context(), wall, popts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %dx%d wall", geo.Rows, geo.Cols))

	if output == stdoutPath {
		return writeResult(cmd.OutOrStdout(), artifacts[popts.Formats[0]])
	}

	base := basePath(output, appName+"-grid")
	paths, err := writeArtifacts(base, output, popts.Formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d patterns (%d rows, %d columns)", wall.Len(), geo.Rows, geo.Cols)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
