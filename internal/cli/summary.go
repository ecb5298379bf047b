package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/pipeline"
)

// maxListed is the number of column names shown per bucket row.
const maxListed = 4

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	opts := pipeline.DefaultOptions()
	var top int

	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print per-bucket missingness counts and statistics",
		Long: `Print per-bucket missingness counts and statistics.

The summary uses the same buckets as 'plot' and lists how many columns fall
into each, followed by the mean, median and spread of the per-column missing
percentages.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTableFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateExplicit(opts, explicitFlags(cmd)); err != nil {
				return err
			}
			opts.Input = args[0]
			return c.runSummary(cmd.Context(), newPrinter(cmd.OutOrStdout()), opts, top)
		},
	}

	cmd.Flags().IntVarP(&opts.NumBins, "bins", "b", opts.NumBins, "number of percentage buckets (1-100)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", "", "CSV field separator (default: ,)")
	cmd.Flags().IntVar(&top, "top", 10, "list the n columns with the most missing values (0 to skip)")

	return cmd
}

// runSummary loads the dataset and prints bucket and column tables.
func (c *CLI) runSummary(ctx context.Context, out printer, opts pipeline.Options, top int) error {
	opts.NoHue = true
	opts.Logger = loggerFromContext(ctx)
	if err := opts.Validate(); err != nil {
		return err
	}

	// Summaries are cheap and never cached.
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	summary, err := dataset.Summarize(ds)
	if err != nil {
		return err
	}
	chart, err := runner.ComputeChart(ctx, ds, opts)
	if err != nil {
		return err
	}
	stats, err := summary.Stats()
	if err != nil {
		return err
	}

	out.println(StyleTitle.Render(opts.Input))
	out.keyValue("rows", StyleNumber.Render(strconv.Itoa(ds.NumRows())))
	out.keyValue("columns", StyleNumber.Render(strconv.Itoa(ds.NumCols())))
	out.newline()

	out.println(bucketTable(chart))
	out.newline()

	printStatistics(out, stats)

	if top > 0 {
		out.newline()
		out.println(topTable(summary, top))
	}
	if stats.Complete == ds.NumCols() {
		out.newline()
		out.warning("No missing values in %s", opts.Input)
	}
	return nil
}

// bucketTable lists every bucket with its column count and the first few
// column names.
func bucketTable(chart *layout.Chart) string {
	rows := make([][]string, len(chart.Buckets))
	for i, b := range chart.Buckets {
		listed := b.Columns
		more := ""
		if len(listed) > maxListed {
			more = fmt.Sprintf(", … (+%d)", len(listed)-maxListed)
			listed = listed[:maxListed]
		}
		rows[i] = []string{b.Label, strconv.Itoa(len(b.Columns)), strings.Join(listed, ", ") + more}
	}
	return renderTable([]string{"bucket", "columns", "names"}, rows, 1)
}

// topTable lists the n columns with the highest missing share.
func topTable(summary dataset.Summary, n int) string {
	n = min(n, len(summary))
	rows := make([][]string, n)
	for i, m := range summary[:n] {
		rows[i] = []string{m.Column, strconv.Itoa(m.Count), formatPercent(m.Percent)}
	}
	return renderTable([]string{"column", "missing", "percent"}, rows, 1, 2)
}

func printStatistics(out printer, s dataset.Stats) {
	for _, kv := range [][2]string{
		{"mean", formatPercent(s.Mean)},
		{"median", formatPercent(s.Median)},
		{"min", formatPercent(s.Min)},
		{"max", formatPercent(s.Max)},
		{"90th pct", formatPercent(s.P90)},
		{"complete", strconv.Itoa(s.Complete)},
		{"all missing", strconv.Itoa(s.Empty)},
	} {
		out.keyValue(kv[0], kv[1])
	}
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}
