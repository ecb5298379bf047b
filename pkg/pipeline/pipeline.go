// Package pipeline provides the load → layout → render pipeline for nafig.
//
// The CLI and the tests both drive charts through this package, so defaults,
// validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a CSV or XLSX file into a [dataset.Dataset]
//  2. Layout: Bin the columns by missingness and place their labels
//  3. Render: Draw the chart as PNG, SVG, PDF, JSON or plain text
//
// Layout and render results are cached by content hash, so re-plotting an
// unchanged file with the same options only reads from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Input = "survey.csv"
//	opts.Formats = []string{"png", "json"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	ds, err := runner.Load(ctx, opts)
//	chart, err := runner.ComputeChart(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, chart, opts)
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nafig/pkg/bins"
	"github.com/matzehuels/nafig/pkg/cache"
	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/hue"
	nafigio "github.com/matzehuels/nafig/pkg/io"
	"github.com/matzehuels/nafig/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the raster scale factor for PNG output.
const DefaultScale = 1.0

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatTXT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. Every field except
// the runtime ones can be set from a TOML options file, see [LoadOptions].
type Options struct {
	// Load options
	Input     string `toml:"-" json:"input,omitempty"`
	Sheet     string `toml:"sheet" json:"sheet,omitempty"`         // XLSX sheet, first sheet when empty
	Delimiter string `toml:"delimiter" json:"delimiter,omitempty"` // CSV field separator, "," when empty

	// Layout options
	NumBins    int          `toml:"num_bins" json:"num_bins"`
	Remove     bins.Removal `toml:"remove" json:"remove"`
	FontSize   float64      `toml:"font_size" json:"font_size"`
	LineHeight float64      `toml:"line_height" json:"line_height"`
	TickStep   int          `toml:"tick_step" json:"tick_step"`
	Palette    string       `toml:"palette" json:"palette"`
	Width      float64      `toml:"width" json:"width"`
	DPI        float64      `toml:"dpi" json:"dpi"`
	Background string       `toml:"background" json:"background"`

	XLabel         string  `toml:"x_label" json:"x_label"`
	XLabelFontSize float64 `toml:"x_label_font_size" json:"x_label_font_size"`

	Title         string       `toml:"title" json:"title,omitempty"`
	TitleAlign    layout.Align `toml:"title_align" json:"title_align"`
	TitlePad      float64      `toml:"title_pad" json:"title_pad"`
	TitleFontSize float64      `toml:"title_font_size" json:"title_font_size"`

	LegendTitle         string  `toml:"legend_title" json:"legend_title"`
	LegendFontSize      float64 `toml:"legend_font_size" json:"legend_font_size"`
	LegendTitleFontSize float64 `toml:"legend_title_font_size" json:"legend_title_font_size"`

	// Hue options. At most one source applies, in this order: NoHue,
	// HueFile, Hue, HueOrder. With none set, column types are used.
	NoHue    bool              `toml:"no_hue" json:"no_hue,omitempty"`
	HueFile  string            `toml:"hue_file" json:"hue_file,omitempty"`
	Hue      map[string]string `toml:"hue" json:"hue,omitempty"`
	HueOrder []string          `toml:"hue_order" json:"hue_order,omitempty"`

	// Render options
	Formats []string `toml:"formats" json:"formats,omitempty"`
	Scale   float64  `toml:"scale" json:"scale,omitempty"`
	Color   bool     `toml:"color" json:"color,omitempty"` // ANSI colour in txt output

	// Runtime options (not serialized)
	Refresh bool        `toml:"-" json:"-"` // bypass cache reads
	Logger  *log.Logger `toml:"-" json:"-"`
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and JSON output.
	ID string

	// Dataset is the loaded input.
	Dataset *dataset.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Summary is the per-column missingness, highest first.
	Summary dataset.Summary

	// Chart is the computed layout.
	Chart *layout.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Columns    int
	Buckets    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the chart came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported,
			"invalid format: %q (must be one of: png, svg, pdf, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateExplicit rejects numeric options that were given explicitly with a
// value SetDefaults would otherwise replace or Validate cannot catch. isSet
// reports whether the option named by its TOML key was supplied.
func ValidateExplicit(o Options, isSet func(key string) bool) error {
	counts := []struct {
		key string
		v   int
	}{
		{"num_bins", o.NumBins},
		{"tick_step", o.TickStep},
	}
	for _, c := range counts {
		if isSet(c.key) && c.v < 1 {
			return errors.Invalid("%s must be >= 1, got %d", c.key, c.v)
		}
	}

	sizes := []struct {
		key string
		v   float64
	}{
		{"font_size", o.FontSize},
		{"line_height", o.LineHeight},
		{"width", o.Width},
		{"dpi", o.DPI},
		{"scale", o.Scale},
		{"x_label_font_size", o.XLabelFontSize},
		{"title_font_size", o.TitleFontSize},
		{"legend_font_size", o.LegendFontSize},
		{"legend_title_font_size", o.LegendTitleFontSize},
	}
	for _, s := range sizes {
		if isSet(s.key) && s.v <= 0 {
			return errors.Invalid("%s must be > 0, got %v", s.key, s.v)
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero-valued fields. It is idempotent.
func (o *Options) SetDefaults() {
	lo := o.layoutOptions()
	lo.SetDefaults()

	o.NumBins = lo.NumBins
	o.FontSize = lo.FontSize
	o.LineHeight = lo.LineHeight
	o.TickStep = lo.TickStep
	o.Palette = lo.Palette
	o.Width = lo.Width
	o.DPI = lo.DPI
	o.Background = lo.Background
	o.XLabel = lo.XLabel
	o.XLabelFontSize = lo.XLabelFontSize
	o.TitleAlign = lo.TitleAlign
	o.TitlePad = lo.TitlePad
	o.TitleFontSize = lo.TitleFontSize
	o.LegendTitle = lo.LegendTitle
	o.LegendFontSize = lo.LegendFontSize
	o.LegendTitleFontSize = lo.LegendTitleFontSize

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate applies defaults and checks every option that does not need the
// dataset.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := o.layoutOptions().Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.Invalid("scale must be > 0, got %v", o.Scale)
	}
	if len([]rune(o.Delimiter)) > 1 {
		return errors.Invalid("delimiter must be a single character, got %q", o.Delimiter)
	}
	if o.NoHue && o.HueFile != "" {
		return errors.Invalid("no_hue and hue_file are mutually exclusive")
	}
	return nil
}

// LayoutOptions returns the layout configuration for h.
func (o *Options) LayoutOptions(h hue.Hue) layout.Options {
	lo := o.layoutOptions()
	lo.Hue = h
	return lo
}

func (o *Options) layoutOptions() layout.Options {
	return layout.Options{
		NumBins:             o.NumBins,
		Remove:              o.Remove,
		FontSize:            o.FontSize,
		LineHeight:          o.LineHeight,
		TickStep:            o.TickStep,
		Palette:             o.Palette,
		Width:               o.Width,
		DPI:                 o.DPI,
		Background:          o.Background,
		XLabel:              o.XLabel,
		XLabelFontSize:      o.XLabelFontSize,
		Title:               o.Title,
		TitleAlign:          o.TitleAlign,
		TitlePad:            o.TitlePad,
		TitleFontSize:       o.TitleFontSize,
		LegendTitle:         o.LegendTitle,
		LegendFontSize:      o.LegendFontSize,
		LegendTitleFontSize: o.LegendTitleFontSize,
	}
}

// ResolveHue builds the hue selected by the options, reading HueFile when set.
func (o *Options) ResolveHue() (hue.Hue, error) {
	switch {
	case o.NoHue:
		return hue.Disabled(), nil
	case o.HueFile != "":
		m, err := nafigio.ImportCategories(o.HueFile)
		if err != nil {
			return hue.Hue{}, err
		}
		return hue.Explicit(m), nil
	case len(o.Hue) > 0:
		return hue.Explicit(o.Hue), nil
	case len(o.HueOrder) > 0:
		return hue.Ordered(o.HueOrder), nil
	}
	return hue.Auto(), nil
}

// ReadOptions returns the import options for the input file.
func (o *Options) ReadOptions() []nafigio.ReadOption {
	var ro []nafigio.ReadOption
	if o.Sheet != "" {
		ro = append(ro, nafigio.WithSheet(o.Sheet))
	}
	if d := []rune(o.Delimiter); len(d) == 1 {
		ro = append(ro, nafigio.WithDelimiter(d[0]))
	}
	return ro
}

// ChartKeyOpts returns cache key options for layout computation. The hue
// must already be resolved so that edits to a hue file change the key.
func (o *Options) ChartKeyOpts(h hue.Hue, cats hue.Categories) cache.ChartKeyOpts {
	hueHash, _ := cache.HashJSON(struct {
		Mode       string            `json:"mode"`
		Categories map[string]string `json:"categories"`
	}{h.Mode().String(), cats})
	optsHash, _ := cache.HashJSON(o.layoutOptions())
	return cache.ChartKeyOpts{
		NumBins: o.NumBins,
		Remove:  o.Remove.String(),
		Hue:     hueHash,
		Options: optsHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatTXT:
		opts.Color = o.Color
	}
	return opts
}
