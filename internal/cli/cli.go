// Package cli implements the nafig command-line interface.
//
// Commands:
//   - plot: render the missingness chart as PNG, SVG, PDF, JSON or text
//   - summary: print per-bucket counts and missingness statistics
//   - generate: write a synthetic dataset with controllable missingness
//   - cache: inspect or clear the chart and artifact cache
//
// The root command attaches its logger to the command context; pass
// --verbose for debug output, including every pipeline and cache event.
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	err := c.RootCommand().ExecuteContext(ctx)
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nafig/pkg/buildinfo"
	"github.com/matzehuels/nafig/pkg/cache"
	"github.com/matzehuels/nafig/pkg/observability"
	"github.com/matzehuels/nafig/pkg/pipeline"
)

// appName names the binary and its cache directory.
const appName = "nafig"

// Levels accepted by [New] and [CLI.SetLogLevel].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the state shared by every command.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level after construction, e.g. for --verbose.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the nafig command tree.
func (c *CLI) RootCommand() *cobra.Command {
	versionTemplate := buildinfo.Template()
	root := &cobra.Command{
		Use:          appName,
		Short:        "nafig plots missing values per column",
		Long:         `nafig groups the columns of a table by their share of missing values and draws the column names as a text scatter plot, one stack of labels per percentage bucket.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.Register(observability.NewLogHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(versionTemplate)

	root.AddCommand(
		c.plotCommand(),
		c.summaryCommand(),
		c.generateCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build so that a new release never reads charts laid out by an old one.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache opens the on-disk cache. Without a resolvable home directory
// the CLI runs uncached rather than failing.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves $XDG_CACHE_HOME/nafig, falling back to ~/.cache/nafig.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}
