package layout

import (
	"strings"

	"github.com/matzehuels/nafig/pkg/bins"
	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/hue"
	"github.com/matzehuels/nafig/pkg/palette"
)

// Default option values.
const (
	DefaultFontSize            = 6.0
	DefaultLineHeight          = 1.0
	DefaultTickStep            = 10
	DefaultWidth               = 15.0 // inches
	DefaultMinHeight           = 6.0  // inches
	DefaultDPI                 = 100.0
	DefaultXLabel              = "NA percentage"
	DefaultXLabelFontSize      = 12.0
	DefaultTitlePad            = 1.0
	DefaultTitleFontSize       = 12.0
	DefaultBackground          = "white"
	DefaultLegendTitle         = "Feature type"
	DefaultLegendFontSize      = 12.0
	DefaultLegendTitleFontSize = 12.0
)

// Align is the horizontal placement of the title.
type Align string

// Title alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign parses a title alignment.
func ParseAlign(s string) (Align, error) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AlignCenter, nil
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	}
	return "", errors.Invalid("invalid title alignment %q (must be left, center or right)", s)
}

// Options configures [Compute]. Zero-valued numeric and string fields are
// replaced by their defaults; use [DefaultOptions] to start from a fully
// populated value.
type Options struct {
	NumBins    int          // number of percentage buckets (1-100)
	Remove     bins.Removal // which empty buckets to drop
	FontSize   float64      // label font size in points
	LineHeight float64      // vertical distance between ranks, in data units
	TickStep   int          // annotate every TickStep-th rank of the tallest bucket
	Hue        hue.Hue      // category source for label colours
	Palette    string       // palette name, see package palette

	Width      float64 // figure width in inches
	DPI        float64 // raster resolution
	Background string  // figure and plot background colour

	XLabel         string
	XLabelFontSize float64

	Title         string
	TitleAlign    Align
	TitlePad      float64
	TitleFontSize float64

	LegendTitle         string
	LegendFontSize      float64
	LegendTitleFontSize float64
}

// DefaultOptions returns options with every field set to its default.
func DefaultOptions() Options {
	o := Options{}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields with defaults. Title and Remove are
// left alone since their zero values are meaningful.
func (o *Options) SetDefaults() {
	if o.NumBins == 0 {
		o.NumBins = bins.DefaultCount
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.LineHeight == 0 {
		o.LineHeight = DefaultLineHeight
	}
	if o.TickStep == 0 {
		o.TickStep = DefaultTickStep
	}
	if o.Palette == "" {
		o.Palette = palette.Default
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.XLabel == "" {
		o.XLabel = DefaultXLabel
	}
	if o.XLabelFontSize == 0 {
		o.XLabelFontSize = DefaultXLabelFontSize
	}
	if o.TitleAlign == "" {
		o.TitleAlign = AlignCenter
	}
	if o.TitlePad == 0 {
		o.TitlePad = DefaultTitlePad
	}
	if o.TitleFontSize == 0 {
		o.TitleFontSize = DefaultTitleFontSize
	}
	if o.LegendTitle == "" {
		o.LegendTitle = DefaultLegendTitle
	}
	if o.LegendFontSize == 0 {
		o.LegendFontSize = DefaultLegendFontSize
	}
	if o.LegendTitleFontSize == 0 {
		o.LegendTitleFontSize = DefaultLegendTitleFontSize
	}
}

// Validate checks the options that the layout arithmetic depends on.
func (o Options) Validate() error {
	if o.NumBins < 1 || o.NumBins > bins.MaxCount {
		return errors.Invalid("num_bins must be between 1 and %d, got %d", bins.MaxCount, o.NumBins)
	}
	if o.TickStep < 1 {
		return errors.Invalid("tick step must be >= 1, got %d", o.TickStep)
	}
	if o.LineHeight <= 0 {
		return errors.Invalid("line height must be > 0, got %v", o.LineHeight)
	}
	if o.FontSize <= 0 {
		return errors.Invalid("font size must be > 0, got %v", o.FontSize)
	}
	if o.Width <= 0 || o.DPI <= 0 {
		return errors.Invalid("figure width and dpi must be > 0")
	}
	if _, err := ParseAlign(string(o.TitleAlign)); err != nil {
		return err
	}
	switch o.Remove {
	case bins.RemoveNone, bins.RemoveAll, bins.RemoveTrailing:
	default:
		return errors.Invalid("invalid removal mode %d", o.Remove)
	}
	return nil
}
