package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/pipeline"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path, base path for several formats, or "-"
	formats     string  // comma-separated formats
	scale       float64 // PNG scale factor
	columns     int     // braille text width in cells
	transparent bool    // omit the tile background
	noCache     bool    // bypass the artifact cache
	pattern     patternFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [token|url]",
		Short: "Render a pattern to SVG, PNG, PDF, JSON or braille text",
		Long: `Render draws one pattern. The pattern comes from a token or share URL, or
is generated when none is given (use --seed and the pinning flags to control
it).

With several formats, -o names the base path and each file gets its format
extension. Use "-o -" to write a single format to stdout.`,
		Example: `  circlet render eyJpbnZlcnNlIjp0cnVlLC... -f svg,png
  circlet render --seed 7 -f txt
  circlet render 'https://circlet.example/?t=...' -f pdf -o pattern.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.baseOptions()
			if len(args) == 1 {
				popts.Token = args[0]
			} else {
				opts.pattern.apply(cmd.Flags(), &popts)
			}
			if cmd.Flags().Changed("format") {
				popts.Formats = pipeline.ParseFormats(opts.formats)
			}
			if cmd.Flags().Changed("scale") {
				popts.Scale = opts.scale
			}
			popts.Columns = opts.columns
			popts.Transparent = opts.transparent

			if err := pipeline.ValidateFormats(popts.Formats); err != nil {
				return err
			}
			if err := validateOutput(opts.output, popts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd, popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, png, pdf, json, txt (comma-separated; default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().IntVar(&opts.columns, "columns", pipeline.DefaultColumns, "text output width in terminal cells")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "omit the tile background")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	opts.pattern.register(cmd.Flags())

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, popts pipeline.Options, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(cmd.Context(), "Rendering "+strings.Join(popts.Formats, ", "))
	spin.Start()
	result, err := runner.Execute(cmd.Context(), popts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(popts.Formats)))

	if toStdout(opts.output, popts.Formats) {
		return writeResult(cmd.OutOrStdout(), result.Artifacts[popts.Formats[0]])
	}

	base := basePath(opts.output, defaultName(result.Token))
	paths, err := writeArtifacts(base, opts.output, popts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered pattern")
	printStats(result.Descriptor.Diameter, result.Descriptor.NumCircles, result.Descriptor.NumLines, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	printLink("Share", result.URL)
	return nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// validateOutput checks -o against the requested formats.
func validateOutput(output string, formats []string) error {
	if output == "" {
		return nil
	}
	if output == stdoutPath {
		if len(formats) != 1 {
			return cerrors.New(cerrors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(formats))
		}
		return nil
	}
	return cerrors.ValidateOutputPath(output)
}

// toStdout reports whether results go to stdout: on "-o -", and for a lone
// text render with no output path.
func toStdout(output string, formats []string) bool {
	if output == stdoutPath {
		return true
	}
	return output == "" && len(formats) == 1 && formats[0] == pipeline.FormatText
}

// defaultName derives an output base name from a token.
func defaultName(token string) string {
	const prefixLen = 12
	if len(token) > prefixLen {
		token = token[:prefixLen]
	}
	return appName + "-" + token
}

// basePath derives the base output path. If output is empty, fallback is
// used. If output carries a format extension, that extension is stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file for one format. A single format written to an
// explicit path keeps that path as given.
func outputPath(base, output, format string, single bool) string {
	if single && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}

// writeArtifacts writes each format's bytes to its file, in format order.
func writeArtifacts(base, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(base, output, format, len(formats) == 1)
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput opens path for writing, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
