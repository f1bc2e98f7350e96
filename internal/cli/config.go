package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the config command that prints the effective settings.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after defaults, the config file and BARNFRAME_*
environment variables have been applied. The output is a valid config file.`,
		Example: `  barnframe config > barnframe.toml
  barnframe --config barnframe.toml config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
