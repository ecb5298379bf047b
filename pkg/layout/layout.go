package layout

import (
	"image/color"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/nafig/pkg/bins"
	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/palette"
)

// Neutral is the colour of uncoloured labels and chart furniture.
var Neutral = color.RGBA{A: 0xff}

// points per inch, used to size the figure from the label font.
const pointsPerInch = 72.0

// rowSpacing is the vertical room one label row needs, as a multiple of the
// font size.
const rowSpacing = 1.5

var (
	labelAnchor = Anchor{Horizontal: AlignCenter, Vertical: "bottom"}
	tickAnchor  = Anchor{Horizontal: AlignRight, Vertical: "bottom"}
)

// Compute bins the columns of ds by missingness and places every column name
// on the chart. All options are validated before anything is placed, so an
// error means no partial chart.
func Compute(ds *dataset.Dataset, opts Options) (*Chart, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	background, err := palette.ParseColor(opts.Background)
	if err != nil {
		return nil, err
	}

	summary, err := dataset.Summarize(ds)
	if err != nil {
		return nil, err
	}
	ranges, err := bins.UniformRanges(opts.NumBins)
	if err != nil {
		return nil, err
	}
	buckets, err := bins.Assign(opts.NumBins, summary, ranges)
	if err != nil {
		return nil, err
	}

	cats, err := opts.Hue.Resolve(ds)
	if err != nil {
		return nil, err
	}
	colors := map[string]color.RGBA{}
	var legend *Legend
	if opts.Hue.Enabled() {
		for i := range buckets {
			cats.SortColumns(buckets[i].Columns)
		}
		swatches, err := palette.Assign(opts.Palette, cats.Unique())
		if err != nil {
			return nil, err
		}
		legend = &Legend{
			Title:         opts.LegendTitle,
			Entries:       make([]LegendEntry, len(swatches)),
			FontSize:      opts.LegendFontSize,
			TitleFontSize: opts.LegendTitleFontSize,
		}
		for i, s := range swatches {
			colors[s.Category] = s.Color
			legend.Entries[i] = LegendEntry{Label: s.Category, Color: s.Color}
		}
	}

	kept := bins.PruneBuckets(buckets, opts.Remove)
	counts := bins.Counts(kept)
	maxCount, tallest := 0, 0
	for i, c := range counts {
		if c > maxCount {
			maxCount, tallest = c, i
		}
	}
	lh := opts.LineHeight

	chart := &Chart{
		Buckets:    kept,
		Groups:     bins.GroupBuckets(kept),
		Legend:     legend,
		MaxCount:   maxCount,
		TallestIdx: tallest,
		LineHeight: lh,
		HueEnabled: opts.Hue.Enabled(),
	}

	for i, b := range kept {
		for j, name := range b.Columns {
			l := Label{
				Text:     name,
				X:        float64(i),
				Y:        float64(j) * lh,
				Bucket:   i,
				Rank:     j,
				Color:    Neutral,
				FontSize: opts.FontSize,
				Anchor:   labelAnchor,
			}
			if cats != nil {
				l.Category = cats[name]
				l.Color = colors[l.Category]
			}
			chart.Labels = append(chart.Labels, l)
		}
		chart.XTicks = append(chart.XTicks, Tick{Value: float64(i), Label: b.Label})
	}
	chart.ColumnCount = len(chart.Labels)

	if len(kept) > 0 {
		chart.RowTicks = rowTicks(kept[tallest].Len(), opts)
	}

	yMax := float64(maxCount) * lh
	if opts.Title != "" {
		t := &Text{
			Text:     opts.Title,
			X:        titleX(len(kept), opts.TitleAlign),
			Y:        yMax + opts.TitlePad,
			FontSize: opts.TitleFontSize,
			Color:    Neutral,
			Anchor:   Anchor{Horizontal: opts.TitleAlign, Vertical: "bottom"},
		}
		chart.Title = t
		yMax = math.Max(yMax, t.Y+lh)
	}

	chart.XLabel = Text{
		Text:     opts.XLabel,
		FontSize: opts.XLabelFontSize,
		Color:    Neutral,
		Anchor:   Anchor{Horizontal: AlignCenter, Vertical: "top"},
	}
	chart.Frame = Frame{
		Width:      opts.Width,
		Height:     math.Max(DefaultMinHeight, float64(maxCount)*lh*opts.FontSize*rowSpacing/pointsPerInch),
		DPI:        opts.DPI,
		Background: background,
		XMin:       -1,
		XMax:       float64(len(kept)),
		YMin:       0,
		YMax:       yMax,
	}
	return chart, nil
}

// rowTicks annotates every step-th rank of a bucket holding n columns. The
// tick for rank j sits level with the label at rank j-1, so it reads as the
// number of labels up to and including that row.
func rowTicks(n int, opts Options) []Text {
	var out []Text
	for j := opts.TickStep; j < n; j += opts.TickStep {
		out = append(out, Text{
			Text:     strconv.Itoa(j) + " –",
			X:        -1,
			Y:        float64(j-1) * opts.LineHeight,
			FontSize: opts.FontSize,
			Color:    Neutral,
			Anchor:   tickAnchor,
		})
	}
	return out
}

func titleX(n int, align Align) float64 {
	if n == 0 {
		return 0
	}
	switch align {
	case AlignLeft:
		return -1
	case AlignRight:
		return float64(n - 1)
	}
	return float64(n-1) / 2
}

// Columns returns the column names of the surviving buckets, in order.
func (c *Chart) Columns() [][]string {
	return bins.Columns(c.Buckets)
}

// Placement returns the label for column name.
func (c *Chart) Placement(name string) (Label, bool) {
	i := slices.IndexFunc(c.Labels, func(l Label) bool { return l.Text == name })
	if i < 0 {
		return Label{}, false
	}
	return c.Labels[i], true
}

// Validate checks that a chart placed every column of ds exactly once.
func (c *Chart) Validate(ds *dataset.Dataset) error {
	seen := make(map[string]int, len(c.Labels))
	for _, l := range c.Labels {
		seen[l.Text]++
	}
	for _, name := range ds.Names() {
		switch seen[name] {
		case 1:
		case 0:
			return errors.New(errors.ErrCodeInternal, "column %q was not placed", name)
		default:
			return errors.New(errors.ErrCodeInternal, "column %q placed %d times", name, seen[name])
		}
	}
	return nil
}
