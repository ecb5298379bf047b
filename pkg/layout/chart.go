package layout

import (
	"image/color"

	"github.com/matzehuels/nafig/pkg/bins"
)

// Anchor describes which point of a text box sits at its coordinates.
type Anchor struct {
	Horizontal Align  `json:"horizontal"` // left, center, right
	Vertical   string `json:"vertical"`   // bottom, center, top
}

// Label is one column name placed on the chart.
type Label struct {
	Text     string     `json:"text"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Bucket   int        `json:"bucket"` // position among surviving buckets
	Rank     int        `json:"rank"`   // position within the bucket
	Category string     `json:"category,omitempty"`
	Color    color.RGBA `json:"color"`
	FontSize float64    `json:"font_size"`
	Anchor   Anchor     `json:"anchor"`
}

// Text is a free-standing annotation (row-count ticks, the title).
type Text struct {
	Text     string     `json:"text"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	FontSize float64    `json:"font_size"`
	Color    color.RGBA `json:"color"`
	Anchor   Anchor     `json:"anchor"`
}

// Tick is one labelled position on the x axis.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// LegendEntry is one category and its colour.
type LegendEntry struct {
	Label string     `json:"label"`
	Color color.RGBA `json:"color"`
}

// Legend lists the hue categories.
type Legend struct {
	Title         string        `json:"title"`
	Entries       []LegendEntry `json:"entries"`
	FontSize      float64       `json:"font_size"`
	TitleFontSize float64       `json:"title_font_size"`
}

// Frame holds the figure size and the visible data range.
type Frame struct {
	Width      float64    `json:"width"`  // inches
	Height     float64    `json:"height"` // inches
	DPI        float64    `json:"dpi"`
	Background color.RGBA `json:"background"`
	XMin       float64    `json:"x_min"`
	XMax       float64    `json:"x_max"`
	YMin       float64    `json:"y_min"`
	YMax       float64    `json:"y_max"`
}

// Chart is the renderer-agnostic result of [Compute]: every label placement
// and piece of chart furniture, with colours already resolved.
type Chart struct {
	Frame    Frame         `json:"frame"`
	Buckets  []bins.Bucket `json:"buckets"` // surviving buckets, in order
	Groups   []int         `json:"groups"`  // consecutive-group label per surviving bucket
	Labels   []Label       `json:"labels"`
	RowTicks []Text        `json:"row_ticks"`
	Title    *Text         `json:"title,omitempty"`
	XTicks   []Tick        `json:"x_ticks"`
	XLabel   Text          `json:"x_label"`
	Legend   *Legend       `json:"legend,omitempty"`

	MaxCount    int     `json:"max_count"`    // columns in the tallest bucket
	TallestIdx  int     `json:"tallest"`      // position of the tallest bucket
	LineHeight  float64 `json:"line_height"`  // data units per rank
	HueEnabled  bool    `json:"hue_enabled"`  // whether labels are coloured by category
	ColumnCount int     `json:"column_count"` // total columns placed
}

// AsText returns l as a free-standing text annotation.
func (l Label) AsText() Text {
	return Text{Text: l.Text, X: l.X, Y: l.Y, FontSize: l.FontSize, Color: l.Color, Anchor: l.Anchor}
}
