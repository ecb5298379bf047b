package sink

import (
	"encoding/json"

	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/palette"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID   string
	compact bool
}

// WithJSONRunID records the pipeline run that produced the chart.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	RunID      string        `json:"run_id,omitempty"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	DPI        float64       `json:"dpi"`
	Background string        `json:"background"`
	XRange     [2]float64    `json:"x_range"`
	YRange     [2]float64    `json:"y_range"`
	Buckets    []jsonBucket  `json:"buckets"`
	Labels     []jsonText    `json:"labels"`
	RowTicks   []jsonText    `json:"row_ticks,omitempty"`
	Title      *jsonText     `json:"title,omitempty"`
	XLabel     string        `json:"x_label"`
	Legend     *jsonLegend   `json:"legend,omitempty"`
	Groups     []int         `json:"groups"`
	Stats      jsonChartInfo `json:"info"`
}

type jsonBucket struct {
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Low     float64  `json:"low"`
	High    float64  `json:"high"`
	Columns []string `json:"columns"`
}

type jsonText struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    string  `json:"color"`
	Category string  `json:"category,omitempty"`
	FontSize float64 `json:"font_size"`
}

type jsonLegend struct {
	Title   string           `json:"title"`
	Entries []palette.Swatch `json:"entries"`
}

type jsonChartInfo struct {
	Columns    int     `json:"columns"`
	MaxCount   int     `json:"max_count"`
	LineHeight float64 `json:"line_height"`
}

// RenderJSON exports the chart placements, colours and furniture as JSON.
// Colours are written as "#rrggbb".
func RenderJSON(chart *layout.Chart, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	if chart == nil {
		return nil, errors.Invalid("chart is nil")
	}

	f := chart.Frame
	out := jsonOutput{
		RunID:      r.runID,
		Width:      f.Width,
		Height:     f.Height,
		DPI:        f.DPI,
		Background: palette.Hex(f.Background),
		XRange:     [2]float64{f.XMin, f.XMax},
		YRange:     [2]float64{f.YMin, f.YMax},
		Buckets:    make([]jsonBucket, len(chart.Buckets)),
		Labels:     make([]jsonText, len(chart.Labels)),
		XLabel:     chart.XLabel.Text,
		Groups:     chart.Groups,
		Stats: jsonChartInfo{
			Columns:    chart.ColumnCount,
			MaxCount:   chart.MaxCount,
			LineHeight: chart.LineHeight,
		},
	}

	for i, b := range chart.Buckets {
		out.Buckets[i] = jsonBucket{Index: b.Index, Label: b.Label, Low: b.Low, High: b.High, Columns: b.Columns}
	}
	for i, l := range chart.Labels {
		out.Labels[i] = toJSONText(l.AsText())
		out.Labels[i].Category = l.Category
	}
	for _, t := range chart.RowTicks {
		out.RowTicks = append(out.RowTicks, toJSONText(t))
	}
	if chart.Title != nil {
		t := toJSONText(*chart.Title)
		out.Title = &t
	}
	if chart.Legend != nil {
		lg := &jsonLegend{Title: chart.Legend.Title, Entries: make([]palette.Swatch, len(chart.Legend.Entries))}
		for i, e := range chart.Legend.Entries {
			lg.Entries[i] = palette.Swatch{Category: e.Label, Color: e.Color, Hex: palette.Hex(e.Color)}
		}
		out.Legend = lg
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONText(t layout.Text) jsonText {
	return jsonText{Text: t.Text, X: t.X, Y: t.Y, Color: palette.Hex(t.Color), FontSize: t.FontSize}
}
