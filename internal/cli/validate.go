package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/space"
)

// validateOpts holds the validate command flags.
type validateOpts struct {
	analyzeOpts
	width  float64
	length float64
	height float64
}

// validateCommand creates the validate command for checking a proposed resize.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate <design>",
		Short: "Check whether new building dimensions respect the openings",
		Long: `Check a proposed change of width, length or height against the layout
constraints of the current design. Dimensions that are not given keep their
current value.

The command exits with an error when the change is rejected.`,
		Example: `  barnframe validate shop.toml --width 30
  barnframe validate shop.toml --length 20 --height 10 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var change space.DimensionChange
			if cmd.Flags().Changed("width") {
				change.Width = &opts.width
			}
			if cmd.Flags().Changed("length") {
				change.Length = &opts.length
			}
			if cmd.Flags().Changed("height") {
				change.Height = &opts.height
			}
			if change.Empty() {
				return errors.New(errors.ErrCodeInvalidInput, "set at least one of --width, --length or --height")
			}
			return c.runValidate(cmd.Context(), cmd.OutOrStdout(), args[0], change, opts.analyzeOpts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "proposed width in feet")
	cmd.Flags().Float64Var(&opts.length, "length", 0, "proposed length in feet")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "proposed height in feet")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, w io.Writer, path string, change space.DimensionChange, opts analyzeOpts) error {
	d, runner, err := c.prepare(ctx, path, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Validate(ctx, d, change)
	if err != nil {
		return err
	}

	if opts.json {
		if err := writeJSON(w, res); err != nil {
			return err
		}
	} else {
		printModification(newPrinter(w), res)
	}
	if !res.CanModify {
		return fmt.Errorf("change rejected with %d violations", len(res.Violations))
	}
	return nil
}

func printModification(out printer, res space.ModificationResult) {
	p := res.Proposed
	dims := fmt.Sprintf("%g×%g×%g ft", p.Width, p.Length, p.Height)
	out.keyValue("Width", fmt.Sprintf("%g ft", p.Width))
	out.keyValue("Length", fmt.Sprintf("%g ft", p.Length))
	out.keyValue("Height", fmt.Sprintf("%g ft", p.Height))
	out.newline()
	if res.CanModify {
		out.success("Dimensions %s are allowed", StyleHighlight.Render(dims))
	} else {
		out.failure("Dimensions %s are rejected", StyleHighlight.Render(dims))
		for _, v := range res.Violations {
			out.detail("%s", v)
		}
	}
	if len(res.Suggestions) > 0 {
		out.newline()
		for _, s := range res.Suggestions {
			out.info("%s", s)
		}
	}
}
