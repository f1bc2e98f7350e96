package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/barnframe/pkg/api"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the barnframe HTTP API until interrupted.

Endpoints:
  GET  /healthz
  POST /v1/analyze
  POST /v1/beams
  POST /v1/snapshot
  POST /v1/validate
  POST /v1/protection
  POST /v1/access-graph?format=dot|svg|json&detailed=true

Designs are read as JSON unless Content-Type names TOML or YAML.`,
		Example: `  barnframe serve --addr :9090
  BARNFRAME_CACHE_BACKEND=redis BARNFRAME_CACHE_URL=redis://localhost:6379/0 barnframe serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Info("starting server", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend)
			return api.NewServer(runner, cfg.Server, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}
