package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command for browsing constraints interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <design>",
		Short: "Browse layout constraints interactively",
		Long: `Open an interactive list of the layout constraints of a design. Select a
constraint to see its affected area and override requirements.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, runner, err := c.prepare(ctx, args[0], noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			snap, err := runner.Snapshot(ctx, d)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Constraints for %s", designLabel(d))
			model := NewConstraintListModel(title, snap.LayoutConstraints)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run inspector: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	return cmd
}
