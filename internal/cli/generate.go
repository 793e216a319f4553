package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/pipeline"
)

// patternFlags are the flags that pin a freshly generated pattern.
type patternFlags struct {
	seed     uint64
	inverse  bool
	diameter int
	circles  int
	lines    int
}

func (f *patternFlags) register(fs *pflag.FlagSet) {
	fs.Uint64Var(&f.seed, "seed", 0, "seed for a reproducible pattern")
	fs.BoolVar(&f.inverse, "inverse", false, "pin colour polarity (light on dark when true)")
	fs.IntVar(&f.diameter, "diameter", 0, fmt.Sprintf("pin the diameter [%d, %d]", pattern.MinDiameter, pattern.MaxDiameter))
	fs.IntVar(&f.circles, "circles", 0, fmt.Sprintf("pin the inner circle count [0, %d]", pattern.MaxNumCircles-1))
	fs.IntVar(&f.lines, "lines", 0, fmt.Sprintf("pin the line count [0, %d]", pattern.MaxNumLines-1))
}

// apply copies only the flags the user set, so "--inverse=false" pins
// polarity while an absent flag leaves it random.
func (f *patternFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	if fs.Changed("inverse") {
		opts.Overrides.Inverse = pattern.Bool(f.inverse)
	}
	if fs.Changed("diameter") {
		opts.Overrides.Diameter = pattern.Int(f.diameter)
	}
	if fs.Changed("circles") {
		opts.Overrides.NumCircles = pattern.Int(f.circles)
	}
	if fs.Changed("lines") {
		opts.Overrides.NumLines = pattern.Int(f.lines)
	}
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		pf        patternFlags
		withShape bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pattern and print its descriptor, token and share URL",
		Example: `  circlet generate
  circlet generate --seed 42
  circlet generate --diameter 120 --circles 3 --lines 0 --inverse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Formats = []string{pipeline.FormatJSON}
			pf.apply(cmd.Flags(), &opts)
			return c.runGenerate(cmd, opts, withShape)
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().BoolVar(&withShape, "layout", false, "include the derived drawing geometry")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts pipeline.Options, withShape bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}

	data := result.Artifacts[pipeline.FormatJSON]
	if !withShape {
		if data, err = renderDescriptorJSON(result.Descriptor, result.Token, result.URL, opts.Palette, false); err != nil {
			return err
		}
	}
	if err := writeResult(cmd.OutOrStdout(), data); err != nil {
		return err
	}

	printStats(result.Descriptor.Diameter, result.Descriptor.NumCircles, result.Descriptor.NumLines, false)
	printKeyValue("Source", result.Source)
	printLink("Share", result.URL)
	printNextStep("Render it", fmt.Sprintf("%s render %s -f png", appName, result.Token))
	return nil
}
