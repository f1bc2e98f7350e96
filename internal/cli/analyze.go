package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/design"
	"github.com/matzehuels/barnframe/pkg/pipeline"
	"github.com/matzehuels/barnframe/pkg/space"
)

// analyzeOpts holds the flags shared by the analysis commands.
type analyzeOpts struct {
	json    bool
	noCache bool
}

func (o *analyzeOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable result caching")
}

// =============================================================================
// beams
// =============================================================================

// beamsCommand creates the beams command for planning wall framing.
func (c *CLI) beamsCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "beams <design>",
		Short: "Plan posts and girts for every wall",
		Long: `Plan vertical posts and horizontal girts for each wall of a design,
cutting members around the wall's openings.

The design may be JSON, TOML or YAML; the format follows the file extension.`,
		Example: `  barnframe beams shop.toml
  barnframe beams shop.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBeams(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (c *CLI) runBeams(ctx context.Context, w io.Writer, path string, opts analyzeOpts) error {
	d, runner, err := c.prepare(ctx, path, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	res, hit, err := runner.BeamsWithCacheInfo(ctx, d)
	if err != nil {
		return err
	}
	prog.done("planned beams", "walls", len(res.Walls), "cached", hit)

	if opts.json {
		return writeJSON(w, res)
	}
	out := newPrinter(w)
	printBeams(out, d, res, hit)
	out.newline()
	out.nextStep("Analyze opening space", "barnframe space "+path)
	return nil
}

func printBeams(out printer, d *design.Design, res *pipeline.BeamResult, cached bool) {
	out.success("Framing for %s", designLabel(d))
	out.newline()

	var rows [][]string
	for _, l := range res.Walls {
		for _, p := range []struct {
			name string
			n    int
			cov  float64
			emg  int
		}{
			{"posts", len(l.Vertical.Beams), l.Vertical.Coverage, l.Vertical.EmergencyBeams()},
			{"girts", len(l.Horizontal.Beams), l.Horizontal.Coverage, l.Horizontal.EmergencyBeams()},
		} {
			rows = append(rows, []string{
				string(l.Wall),
				p.name,
				strconv.Itoa(p.n),
				fmt.Sprintf("%.0f%%", p.cov*100),
				strconv.Itoa(p.emg),
			})
		}
	}
	out.table([]string{"Wall", "Pass", "Beams", "Coverage", "Emergency"}, rows, nil)

	warnings := res.Warnings()
	for _, msg := range warnings {
		out.warning("%s", msg)
	}
	out.stats([]string{
		fmt.Sprintf("%d walls", len(res.Walls)),
		fmt.Sprintf("%d warnings", len(warnings)),
	}, cached)
}

// =============================================================================
// space
// =============================================================================

// spaceCommand creates the space command for analyzing opening space.
func (c *CLI) spaceCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "space <design>",
		Short: "Analyze clearances, access paths and constraints",
		Long: `Analyze the space each opening needs: clearance zones, access paths
between doors, ventilation areas, structural elements and the layout
constraints they impose on the building.`,
		Example: `  barnframe space shop.toml
  barnframe space shop.toml --json > snapshot.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSpace(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (c *CLI) runSpace(ctx context.Context, w io.Writer, path string, opts analyzeOpts) error {
	d, runner, err := c.prepare(ctx, path, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	snap, hit, err := runner.SnapshotWithCacheInfo(ctx, d)
	if err != nil {
		return err
	}
	prog.done("analyzed space", "openings", len(snap.DetectedOpenings), "cached", hit)

	if opts.json {
		return writeJSON(w, snap)
	}
	out := newPrinter(w)
	printSnapshot(out, d, snap, hit)
	out.newline()
	out.nextStep("Check a resize", "barnframe validate "+path+" --width <ft>")
	return nil
}

func printSnapshot(out printer, d *design.Design, snap space.Snapshot, cached bool) {
	out.success("Space analysis for %s", designLabel(d))
	out.newline()

	var rows [][]string
	for _, o := range snap.DetectedOpenings {
		protected := ""
		if o.IsProtected {
			protected = markSuccess.icon
		}
		rows = append(rows, []string{
			o.Ref,
			string(o.Kind),
			string(o.Wall),
			fmt.Sprintf("%g×%g", o.Width, o.Height),
			fmt.Sprintf("%.0f%%", o.Impact.Ratio*100),
			protected,
		})
	}
	if len(rows) > 0 {
		out.table([]string{"Opening", "Kind", "Wall", "Size", "Wall share", "Protected"}, rows, nil)
	} else {
		out.info("No openings")
	}

	if len(snap.AccessPaths) > 0 {
		out.newline()
		printPaths(out, snap.AccessPaths)
	}
	if len(snap.LayoutConstraints) > 0 {
		out.newline()
		printConstraints(out, snap.LayoutConstraints)
	}

	out.newline()
	out.stats([]string{
		fmt.Sprintf("%d openings", len(snap.DetectedOpenings)),
		fmt.Sprintf("%d zones", len(snap.ClearanceZones)),
		fmt.Sprintf("%d paths", len(snap.AccessPaths)),
		fmt.Sprintf("%d constraints", len(snap.LayoutConstraints)),
	}, cached)
}

func printPaths(out printer, paths []space.AccessPath) {
	rows := make([][]string, len(paths))
	for i, p := range paths {
		status := "ok"
		if p.IsBlocked {
			status = "blocked"
		}
		rows[i] = []string{
			p.FromOpening + " " + iconArrow + " " + p.ToOpening,
			string(p.PathType),
			fmt.Sprintf("%.1f / %.1f ft", p.CurrentWidth, p.MinimumWidth),
			status,
		}
	}
	out.table([]string{"Path", "Type", "Width", "Status"}, rows, func(row int) lipgloss.Style {
		if paths[row].IsBlocked {
			return lipgloss.NewStyle().Foreground(colorRed)
		}
		return lipgloss.NewStyle()
	})
}

func printConstraints(out printer, constraints []space.LayoutConstraint) {
	rows := make([][]string, len(constraints))
	for i, lc := range constraints {
		rows[i] = []string{lc.ID, string(lc.Kind), string(lc.Severity), lc.Description}
	}
	out.table([]string{"Constraint", "Kind", "Severity", "Description"}, rows, func(row int) lipgloss.Style {
		return severityStyle(constraints[row].Severity)
	})
}

// =============================================================================
// protection
// =============================================================================

// protectionCommand creates the protection command listing locked walls.
func (c *CLI) protectionCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "protection <design>",
		Short: "Show which walls are locked by openings",
		Long: `Show, for every wall, whether openings lock it and the smallest span
and height that still keep each hosted opening inside the wall.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProtection(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (c *CLI) runProtection(ctx context.Context, w io.Writer, path string, opts analyzeOpts) error {
	d, runner, err := c.prepare(ctx, path, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prot, err := runner.Protection(ctx, d)
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(w, prot)
	}

	out := newPrinter(w)
	out.success("Wall protection for %s", designLabel(d))
	out.newline()

	rows := make([][]string, 0, len(building.Walls))
	for _, wall := range building.Walls {
		p := prot[wall]
		locked := "no"
		if p.Locked {
			locked = "yes"
		}
		rows = append(rows, []string{
			string(wall),
			locked,
			strings.Join(p.OpeningIDs, ", "),
			fmt.Sprintf("%.1f ft", p.MinSpan),
			fmt.Sprintf("%.1f ft", p.MinHeight),
		})
	}
	out.table([]string{"Wall", "Locked", "Openings", "Min span", "Min height"}, rows, func(row int) lipgloss.Style {
		if prot[building.Walls[row]].Locked {
			return StyleHighlight
		}
		return StyleDim
	})
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// prepare loads the design at path and builds a runner for it.
func (c *CLI) prepare(ctx context.Context, path string, noCache bool) (*design.Design, *pipeline.Runner, error) {
	d, err := loadDesign(path)
	if err != nil {
		return nil, nil, err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	loggerFromContext(ctx).Debug("loaded design", "path", path, "openings", len(d.Openings))
	return d, runner, nil
}

func designLabel(d *design.Design) string {
	label := fmt.Sprintf("%g×%g×%g ft", d.Dimensions.Width, d.Dimensions.Length, d.Dimensions.Height)
	if d.Name != "" {
		label = d.Name + " (" + label + ")"
	}
	return StyleHighlight.Render(label)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
