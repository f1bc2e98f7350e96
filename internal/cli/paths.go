package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barnframe/pkg/export"
)

// pathsOpts holds the paths command flags.
type pathsOpts struct {
	format   string
	output   string
	detailed bool
	noCache  bool
}

// pathsCommand creates the paths command for exporting the access graph.
func (c *CLI) pathsCommand() *cobra.Command {
	opts := pathsOpts{format: string(export.FormatDOT)}

	cmd := &cobra.Command{
		Use:   "paths <design>",
		Short: "Export the access graph between openings",
		Long: `Export the access graph: one node per opening, grouped by wall, and one
edge per access path. Blocked paths are drawn dashed and red.

Formats: ` + formatList() + `. Output goes to stdout unless -o is given.`,
		Example: `  barnframe paths shop.toml | dot -Tpng > paths.png
  barnframe paths shop.toml --format svg --detailed -o paths.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaths(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format ("+formatList()+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include clearance and wall share in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

func (c *CLI) runPaths(ctx context.Context, w io.Writer, path string, opts pathsOpts) error {
	f, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	d, runner, err := c.prepare(ctx, path, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// SVG goes through graphviz layout, which is slow enough for a spinner.
	var spinner *Spinner
	if f == export.FormatSVG && opts.output != "" {
		spinner = newSpinner(ctx, os.Stderr, "Rendering access graph...")
		spinner.Start()
	}
	data, err := runner.AccessGraph(ctx, d, f, export.Options{Detailed: opts.detailed})
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	out := newPrinter(w)
	out.success("Exported access graph")
	out.file(opts.output)
	return nil
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
