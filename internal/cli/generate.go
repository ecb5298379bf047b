package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	nafigio "github.com/matzehuels/nafig/pkg/io"
	"github.com/matzehuels/nafig/pkg/synth"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	output   string // dataset file (.csv, .tsv or .xlsx)
	typesOut string // optional column -> category CSV
}

// generateCommand creates the generate command for synthetic example data.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{output: "example.csv"}
	cfg := synth.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write an example dataset with missing values",
		Long: `Write an example dataset with missing values.

Every feature is a column of standard-normal values. For each feature a
missing proportion is drawn from a normal distribution with the given mean
and standard deviation, clipped to [0, 1], and that share of rows is blanked.
Each feature is also assigned one of the types Continuous, Categorical or
Binary; --types-out writes them as a hue file for 'plot --hue-file'.`,
		Example: `  nafig generate
  nafig generate -o wide.xlsx --rows 200 --features 50 --types-out types.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), newPrinter(cmd.OutOrStdout()), cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", flags.output, "output file (.csv, .tsv or .xlsx)")
	cmd.Flags().StringVar(&flags.typesOut, "types-out", "", "write column types to this CSV file")
	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "number of observations")
	cmd.Flags().IntVar(&cfg.Features, "features", cfg.Features, "number of columns")
	cmd.Flags().Float64Var(&cfg.MeanNA, "mean-na", cfg.MeanNA, "mean missing proportion per column")
	cmd.Flags().Float64Var(&cfg.StdNA, "std-na", cfg.StdNA, "standard deviation of the missing proportion")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")

	return cmd
}

// runGenerate synthesizes the dataset and writes it with its types.
func (c *CLI) runGenerate(ctx context.Context, out printer, cfg synth.Config, flags generateFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	ds, categories, err := synth.Generate(cfg)
	if err != nil {
		return err
	}
	logger.Debug("generated dataset", "rows", ds.NumRows(), "columns", ds.NumCols(), "seed", cfg.Seed)

	if err := nafigio.Export(ds, flags.output); err != nil {
		return err
	}
	written := []string{flags.output}

	if flags.typesOut != "" {
		if err := nafigio.ExportCategories(flags.typesOut, ds.Names(), categories); err != nil {
			return err
		}
		written = append(written, flags.typesOut)
	}
	prog.donef("Generated %d x %d dataset", ds.NumRows(), ds.NumCols())

	out.success("Wrote %d file(s)", len(written))
	for _, path := range written {
		out.file(path)
	}

	next := "nafig plot " + flags.output
	if flags.typesOut != "" {
		next += " --hue-file " + flags.typesOut
	}
	out.nextStep("Plot it", strings.TrimSpace(next))
	return nil
}
