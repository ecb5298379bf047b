package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nafig/pkg/cache"
)

// cacheCommand groups the cache subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the chart and artifact cache",
		Long: `Charts and rendered outputs are cached under $XDG_CACHE_HOME/nafig
(~/.cache/nafig by default), keyed by the dataset contents, the layout options
and the nafig version.`,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "clear", Short: "Remove all cached entries", Args: cobra.NoArgs, RunE: runCacheClear},
		&cobra.Command{Use: "info", Short: "Show cache location and size", Args: cobra.NoArgs, RunE: runCacheInfo},
		&cobra.Command{Use: "path", Short: "Print the cache directory", Args: cobra.NoArgs, RunE: runCachePath},
	)
	return cmd
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	out := newPrinter(cmd.OutOrStdout())
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	if n == 0 {
		out.info("Cache is empty")
		return nil
	}
	loggerFromContext(cmd.Context()).Debug("cleared cache", "dir", fc.Dir(), "entries", n)
	out.success("Cleared %d cached entries", n)
	out.detail("Directory: %s", fc.Dir())
	return nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	out := newPrinter(cmd.OutOrStdout())
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	u, err := fc.Usage()
	if err != nil {
		return err
	}
	out.keyValue("directory", fc.Dir())
	out.keyValue("entries", StyleNumber.Render(strconv.Itoa(u.Entries)))
	out.keyValue("size", formatBytes(u.Bytes))
	return nil
}

func runCachePath(cmd *cobra.Command, _ []string) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}

// formatBytes renders n with a binary unit, e.g. "1.5 KiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
