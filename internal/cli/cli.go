// Package cli implements the barnframe command-line interface.
//
// Commands load a design file (JSON, TOML or YAML), run it through a
// [pipeline.Runner] and print the result as styled tables or JSON. The CLI
// is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - beams: plan posts and girts for every wall
//   - space: analyze clearances, access paths and constraints
//   - validate: check proposed building dimensions
//   - protection: show which walls openings lock
//   - paths: export the access graph as DOT, SVG or JSON
//   - inspect: browse layout constraints interactively
//   - serve: run the HTTP API
//   - config, cache, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barnframe/pkg/buildinfo"
	"github.com/matzehuels/barnframe/pkg/cache"
	"github.com/matzehuels/barnframe/pkg/config"
	"github.com/matzehuels/barnframe/pkg/design"
	"github.com/matzehuels/barnframe/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "barnframe"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag; empty falls back to $BARNFRAME_CONFIG.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Barnframe plans wall framing and checks space around openings",
		Long: `Barnframe plans posts and girts for rectangular post-frame buildings,
cutting them around doors and windows, and analyzes the clearance, access and
structural constraints those openings impose on the building.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (TOML)")

	// Register all subcommands
	root.AddCommand(c.beamsCommand())
	root.AddCommand(c.spaceCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.protectionCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Cache.Backend == cache.BackendFile && cfg.Cache.Dir == "" {
		if dir, err := cacheDir(); err == nil {
			cfg.Cache.Dir = dir
		}
	}
	c.cfg = cfg
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.BeamPolicy = cfg.Beams
	runner.SpacePolicy = cfg.Space
	return runner, nil
}

// newCache opens the configured backend. A file cache that cannot be created
// degrades to no caching; remote backends must be reachable.
func newCache(ctx context.Context, cfg cache.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == cache.BackendFile || cfg.Backend == "" {
			return cache.NewNullCache(), nil
		}
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	return store, nil
}

// loadDesign reads a design file, choosing the format by extension.
func loadDesign(path string) (*design.Design, error) {
	d, err := design.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load design: %w", err)
	}
	return d, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/barnframe/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
