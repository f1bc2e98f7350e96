package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barnframe/pkg/cache"
)

// cacheCommand groups the file cache maintenance subcommands. Remote
// backends are managed by their own tooling.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local result cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached result",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runCacheClear(newPrinter(cmd.OutOrStdout()))
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := c.fileCacheDir(newPrinter(cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show how many results are cached",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runCacheStats(newPrinter(cmd.OutOrStdout()))
			},
		},
	)
	return cmd
}

func (c *CLI) runCacheClear(out printer) error {
	fc, ok, err := c.openFileCache(out)
	if err != nil || !ok {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	out.success("Removed %d cached results", n)
	out.detail("%s", fc.Dir())
	return nil
}

func (c *CLI) runCacheStats(out printer) error {
	fc, ok, err := c.openFileCache(out)
	if err != nil || !ok {
		return err
	}
	st, err := fc.Stats()
	if err != nil {
		return fmt.Errorf("scan cache: %w", err)
	}
	out.keyValue("Directory", fc.Dir())
	out.keyValue("Entries", strconv.Itoa(st.Entries))
	out.keyValue("Expired", strconv.Itoa(st.Expired))
	out.keyValue("Size", formatBytes(st.Bytes))
	return nil
}

// openFileCache opens the file cache without creating its directory. ok is
// false when nothing has been cached yet.
func (c *CLI) openFileCache(out printer) (fc *cache.FileCache, ok bool, err error) {
	dir, err := c.fileCacheDir(out)
	if err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		out.info("Nothing cached in %s", dir)
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	if err != nil {
		return nil, false, fmt.Errorf("open cache: %w", err)
	}
	return fc, true, nil
}

// fileCacheDir is the configured cache directory, or the XDG default.
func (c *CLI) fileCacheDir(out printer) (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	if b := cfg.Cache.Backend; b != "" && b != cache.BackendFile {
		out.warning("configured backend is %q; showing the file cache", b)
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return dir, nil
}

func formatBytes(n int64) string {
	return humanize.IBytes(uint64(max(n, 0)))
}
