package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nafig/pkg/bins"
	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/pipeline"
	"github.com/matzehuels/nafig/pkg/render/sink"
)

// plotFlags holds the command-line flags for the plot command that are not
// stored directly in pipeline.Options.
type plotFlags struct {
	output     string // output file (single format) or base path
	formats    string // comma-separated output formats
	remove     string // empty-bucket removal mode
	titleAlign string
	config     string // TOML options file
	preview    bool   // print the chart to the terminal
	noCache    bool
}

// plotCommand creates the plot command.
func (c *CLI) plotCommand() *cobra.Command {
	var flags plotFlags
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Plot the missing values of a CSV or XLSX file",
		Long: `Plot the missing values of a CSV or XLSX file.

Columns are grouped into equal-width buckets by their percentage of missing
values and their names are drawn as stacked labels above each bucket. Labels
are coloured by column type unless --hue-file or --no-hue is given.

Options can also be read from a TOML file with --config; flags given on the
command line take precedence over the file.

Results are cached locally for faster subsequent runs.`,
		Example: `  nafig plot survey.csv
  nafig plot survey.xlsx --sheet responses -f png,svg -o charts/survey
  nafig plot survey.csv --bins 20 --remove trailing --hue-file types.csv
  nafig plot survey.csv --preview -f txt`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTableFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergePlotOptions(cmd, opts, flags, args[0])
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), newPrinter(cmd.OutOrStdout()), merged, flags)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json, txt (comma-separated)")
	cmd.Flags().StringVar(&flags.config, "config", "", "TOML options file")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "print the chart to the terminal")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	// Input flags
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", "", "CSV field separator (default: ,)")

	// Layout flags
	cmd.Flags().IntVarP(&opts.NumBins, "bins", "b", opts.NumBins, "number of percentage buckets (1-100)")
	cmd.Flags().StringVar(&flags.remove, "remove", bins.RemoveNone.String(), "drop empty buckets: none, all, trailing")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", opts.FontSize, "label font size in points")
	cmd.Flags().Float64Var(&opts.LineHeight, "line-height", opts.LineHeight, "vertical distance between labels")
	cmd.Flags().IntVar(&opts.TickStep, "tick-step", opts.TickStep, "annotate every n-th label of the tallest bucket")
	cmd.Flags().StringVar(&opts.Palette, "palette", opts.Palette, "colour palette for categories")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "figure width in inches")
	cmd.Flags().Float64Var(&opts.DPI, "dpi", opts.DPI, "raster resolution")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "background colour (name or #rrggbb)")
	cmd.Flags().StringVar(&opts.XLabel, "x-label", opts.XLabel, "x-axis label")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")
	cmd.Flags().StringVar(&flags.titleAlign, "title-align", string(opts.TitleAlign), "title alignment: left, center, right")
	cmd.Flags().StringVar(&opts.LegendTitle, "legend-title", opts.LegendTitle, "legend title")

	// Hue flags
	cmd.Flags().StringVar(&opts.HueFile, "hue-file", "", "CSV mapping column names to categories")
	cmd.Flags().BoolVar(&opts.NoHue, "no-hue", false, "disable label colouring and the legend")
	cmd.MarkFlagsMutuallyExclusive("hue-file", "no-hue")

	// Render flags
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "keep ANSI colours in txt output")

	mustRegisterCompletions(cmd, map[string]flagCompletion{
		"format":      fixedCompletion(pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatTXT),
		"remove":      fixedCompletion("none", "all", "trailing"),
		"title-align": fixedCompletion("left", "center", "right"),
		"config":      fileExtCompletion("toml"),
	})

	return cmd
}

// explicitFlags returns the isSet callback of [pipeline.ValidateExplicit]
// for flags given on cmd's command line.
func explicitFlags(cmd *cobra.Command) func(key string) bool {
	return func(key string) bool {
		name := strings.ReplaceAll(key, "_", "-")
		if key == "num_bins" {
			name = "bins"
		}
		return cmd.Flags().Changed(name)
	}
}

// mergePlotOptions layers the options file under the flags that were set
// explicitly on the command line.
func mergePlotOptions(cmd *cobra.Command, flagOpts pipeline.Options, flags plotFlags, input string) (pipeline.Options, error) {
	if err := pipeline.ValidateExplicit(flagOpts, explicitFlags(cmd)); err != nil {
		return pipeline.Options{}, err
	}
	remove, err := bins.ParseRemoval(flags.remove)
	if err != nil {
		return pipeline.Options{}, err
	}
	align, err := layout.ParseAlign(flags.titleAlign)
	if err != nil {
		return pipeline.Options{}, err
	}
	flagOpts.Remove = remove
	flagOpts.TitleAlign = align
	flagOpts.Formats = pipeline.ParseFormats(flags.formats)
	flagOpts.Input = input

	if flags.config == "" {
		return flagOpts, nil
	}

	opts, err := pipeline.LoadOptions(flags.config, pipeline.DefaultOptions())
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Input = input
	opts.Refresh = flagOpts.Refresh

	changed := cmd.Flags().Changed
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"format", func() { opts.Formats = flagOpts.Formats }},
		{"sheet", func() { opts.Sheet = flagOpts.Sheet }},
		{"delimiter", func() { opts.Delimiter = flagOpts.Delimiter }},
		{"bins", func() { opts.NumBins = flagOpts.NumBins }},
		{"remove", func() { opts.Remove = flagOpts.Remove }},
		{"font-size", func() { opts.FontSize = flagOpts.FontSize }},
		{"line-height", func() { opts.LineHeight = flagOpts.LineHeight }},
		{"tick-step", func() { opts.TickStep = flagOpts.TickStep }},
		{"palette", func() { opts.Palette = flagOpts.Palette }},
		{"width", func() { opts.Width = flagOpts.Width }},
		{"dpi", func() { opts.DPI = flagOpts.DPI }},
		{"background", func() { opts.Background = flagOpts.Background }},
		{"x-label", func() { opts.XLabel = flagOpts.XLabel }},
		{"title", func() { opts.Title = flagOpts.Title }},
		{"title-align", func() { opts.TitleAlign = flagOpts.TitleAlign }},
		{"legend-title", func() { opts.LegendTitle = flagOpts.LegendTitle }},
		{"hue-file", func() { opts.HueFile, opts.NoHue = flagOpts.HueFile, false }},
		{"no-hue", func() { opts.NoHue, opts.HueFile = flagOpts.NoHue, "" }},
		{"scale", func() { opts.Scale = flagOpts.Scale }},
		{"color", func() { opts.Color = flagOpts.Color }},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			o.apply()
		}
	}
	return opts, nil
}

// runPlot executes the pipeline and writes the artifacts.
func (c *CLI) runPlot(ctx context.Context, out printer, opts pipeline.Options, flags plotFlags) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.donef("Plotted %s", opts.Input)

	if flags.preview {
		fmt.Fprint(out.w, sink.RenderTerminal(result.Chart, sink.WithColor(true)))
		out.newline()
	}

	if err := writeArtifacts(out, result.Artifacts, opts.Formats, opts.Input, flags.output); err != nil {
		return err
	}
	out.runStats(result.Stats.Columns, result.Stats.Buckets, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered format to its output path.
func writeArtifacts(out printer, artifacts map[string][]byte, formats []string, input, output string) error {
	paths := outputPaths(formats, input, output)
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	out.success("Wrote %d file(s)", len(written))
	for _, path := range written {
		out.file(path)
	}
	return nil
}

// outputPaths maps each format to its file. A single format with an explicit
// output is written to that path as given; otherwise files are named
// base.format.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .svg, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
