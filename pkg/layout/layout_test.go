package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/nafig/pkg/bins"
	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/hue"
	"github.com/matzehuels/nafig/pkg/palette"
)

// build returns a dataset of rows rows where column names[i] has missing[i]
// missing values.
func build(rows int, names []string, missing []int) *dataset.Dataset {
	cols := make([]dataset.Column, len(names))
	for i, name := range names {
		vals := make([]any, rows)
		for r := range vals {
			if r < missing[i] {
				vals[r] = nil
			} else {
				vals[r] = float64(r)
			}
		}
		cols[i] = dataset.Column{Name: name, Values: vals}
	}
	return dataset.MustNew(cols...)
}

func TestComputePlacements(t *testing.T) {
	ds := build(4, []string{"a", "b", "c", "d"}, []int{0, 1, 2, 4})

	chart, err := Compute(ds, Options{NumBins: 4, Hue: hue.Disabled()})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := [][]string{{"a"}, {"b"}, {"c"}, {"d"}}
	if got := chart.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}

	for i, name := range []string{"a", "b", "c", "d"} {
		l, ok := chart.Placement(name)
		if !ok {
			t.Fatalf("%s not placed", name)
		}
		if l.X != float64(i) || l.Y != 0 {
			t.Errorf("%s at (%v, %v), want (%d, 0)", name, l.X, l.Y, i)
		}
		if l.Color != Neutral {
			t.Errorf("%s color = %v, want neutral", name, l.Color)
		}
		if l.Anchor != labelAnchor {
			t.Errorf("%s anchor = %v", name, l.Anchor)
		}
	}

	if chart.Legend != nil {
		t.Error("legend present with hue disabled")
	}
	if err := chart.Validate(ds); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestComputeStacksWithinBucket(t *testing.T) {
	ds := build(10, []string{"x", "y", "z"}, []int{0, 0, 0})

	chart, err := Compute(ds, Options{NumBins: 2, LineHeight: 2.5, Hue: hue.Disabled()})
	if err != nil {
		t.Fatal(err)
	}
	for j, name := range []string{"x", "y", "z"} {
		l, _ := chart.Placement(name)
		if l.X != 0 || l.Y != float64(j)*2.5 || l.Rank != j {
			t.Errorf("%s = (%v, %v) rank %d", name, l.X, l.Y, l.Rank)
		}
	}
	if chart.MaxCount != 3 {
		t.Errorf("MaxCount = %d", chart.MaxCount)
	}
	if chart.Frame.YMax != 7.5 {
		t.Errorf("YMax = %v, want 7.5", chart.Frame.YMax)
	}
	if chart.Frame.XMin != -1 || chart.Frame.XMax != 2 {
		t.Errorf("x range = [%v, %v]", chart.Frame.XMin, chart.Frame.XMax)
	}
}

func TestComputeHue(t *testing.T) {
	ds := build(4, []string{"f1", "f2", "f3", "f4"}, []int{0, 0, 0, 0})
	h := hue.Explicit(map[string]string{"f1": "b", "f2": "a", "f3": "b", "f4": "a"})

	chart, err := Compute(ds, Options{NumBins: 1, Hue: h})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := chart.Columns()[0], []string{"f2", "f4", "f1", "f3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("bucket order = %v, want %v", got, want)
	}

	colors, _ := palette.Colors(palette.Default, 2)
	if chart.Legend == nil || len(chart.Legend.Entries) != 2 {
		t.Fatalf("legend = %+v", chart.Legend)
	}
	for i, cat := range []string{"a", "b"} {
		e := chart.Legend.Entries[i]
		if e.Label != cat || e.Color != colors[i] {
			t.Errorf("legend %d = %+v, want %s %v", i, e, cat, colors[i])
		}
	}
	if chart.Legend.Title != DefaultLegendTitle {
		t.Errorf("legend title = %q", chart.Legend.Title)
	}

	l, _ := chart.Placement("f1")
	if l.Category != "b" || l.Color != colors[1] {
		t.Errorf("f1 = %+v", l)
	}
}

func TestComputeAutoHue(t *testing.T) {
	ds := dataset.MustNew(
		dataset.Column{Name: "n", Values: []any{1, 2}},
		dataset.Column{Name: "s", Values: []any{"x", nil}},
	)
	chart, err := Compute(ds, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !chart.HueEnabled || chart.Legend == nil {
		t.Fatal("auto hue disabled")
	}
	var labels []string
	for _, e := range chart.Legend.Entries {
		labels = append(labels, e.Label)
	}
	if want := []string{"int", "string"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("legend = %v, want %v", labels, want)
	}
}

func TestComputeRemoval(t *testing.T) {
	// 4 bins: a in [0,25), b in [50,75), buckets 1 and 3 empty.
	ds := build(4, []string{"a", "b"}, []int{0, 2})

	tests := []struct {
		mode   bins.Removal
		labels []string
		groups []int
		bX     float64
	}{
		{bins.RemoveNone, []string{"0-25%", "25-50%", "50-75%", "75-100%"}, []int{0, -1, 1, -1}, 2},
		{bins.RemoveTrailing, []string{"0-25%", "25-50%", "50-75%"}, []int{0, -1, 1}, 2},
		{bins.RemoveAll, []string{"0-25%", "50-75%"}, []int{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			chart, err := Compute(ds, Options{NumBins: 4, Remove: tt.mode, Hue: hue.Disabled()})
			if err != nil {
				t.Fatal(err)
			}
			var labels []string
			for i, tick := range chart.XTicks {
				if tick.Value != float64(i) {
					t.Errorf("tick %d at %v", i, tick.Value)
				}
				labels = append(labels, tick.Label)
			}
			if !reflect.DeepEqual(labels, tt.labels) {
				t.Errorf("ticks = %v, want %v", labels, tt.labels)
			}
			if !reflect.DeepEqual(chart.Groups, tt.groups) {
				t.Errorf("groups = %v, want %v", chart.Groups, tt.groups)
			}
			if chart.Frame.XMax != float64(len(tt.labels)) {
				t.Errorf("XMax = %v", chart.Frame.XMax)
			}
			b, _ := chart.Placement("b")
			if b.X != tt.bX {
				t.Errorf("b at x=%v, want %v", b.X, tt.bX)
			}
		})
	}
}

func TestComputeRowTicks(t *testing.T) {
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("c%02d", i)
	}
	missing := make([]int, 25)
	// Five columns in the second bucket, the rest in the first.
	for i := 20; i < 25; i++ {
		missing[i] = 8
	}
	ds := build(10, names, missing)

	chart, err := Compute(ds, Options{NumBins: 2, Hue: hue.Disabled()})
	if err != nil {
		t.Fatal(err)
	}
	if chart.TallestIdx != 0 || chart.MaxCount != 20 {
		t.Fatalf("tallest = %d (%d)", chart.TallestIdx, chart.MaxCount)
	}
	if len(chart.RowTicks) != 1 {
		t.Fatalf("RowTicks = %+v", chart.RowTicks)
	}
	tick := chart.RowTicks[0]
	if tick.Text != "10 –" || tick.X != -1 || tick.Y != 9 {
		t.Errorf("tick = %+v", tick)
	}

	chart, err = Compute(ds, Options{NumBins: 2, TickStep: 5, Hue: hue.Disabled()})
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, tk := range chart.RowTicks {
		texts = append(texts, tk.Text)
	}
	if want := []string{"5 –", "10 –", "15 –"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("ticks = %v, want %v", texts, want)
	}
}

func TestComputeTitle(t *testing.T) {
	ds := build(4, []string{"a", "b", "c"}, []int{0, 1, 2})

	tests := []struct {
		align Align
		x     float64
	}{
		{AlignLeft, -1},
		{AlignCenter, 1},
		{AlignRight, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			chart, err := Compute(ds, Options{
				NumBins:    4,
				Remove:     bins.RemoveTrailing,
				Title:      "Missing values",
				TitleAlign: tt.align,
				TitlePad:   2,
				Hue:        hue.Disabled(),
			})
			if err != nil {
				t.Fatal(err)
			}
			if chart.Title == nil {
				t.Fatal("no title")
			}
			if chart.Title.X != tt.x || chart.Title.Y != 3 {
				t.Errorf("title at (%v, %v), want (%v, 3)", chart.Title.X, chart.Title.Y, tt.x)
			}
			if chart.Frame.YMax < chart.Title.Y {
				t.Errorf("title outside frame: YMax %v", chart.Frame.YMax)
			}
		})
	}

	chart, err := Compute(ds, Options{Hue: hue.Disabled()})
	if err != nil {
		t.Fatal(err)
	}
	if chart.Title != nil {
		t.Errorf("untitled chart has title %+v", chart.Title)
	}
}

func TestComputeFrame(t *testing.T) {
	ds := build(2, []string{"a"}, []int{0})
	chart, err := Compute(ds, Options{})
	if err != nil {
		t.Fatal(err)
	}
	f := chart.Frame
	if f.Width != DefaultWidth || f.Height != DefaultMinHeight || f.DPI != DefaultDPI {
		t.Errorf("frame = %+v", f)
	}
	if palette.Hex(f.Background) != "#ffffff" {
		t.Errorf("background = %v", f.Background)
	}
	if chart.XLabel.Text != DefaultXLabel {
		t.Errorf("xlabel = %q", chart.XLabel.Text)
	}

	names := make([]string, 200)
	missing := make([]int, 200)
	for i := range names {
		names[i] = fmt.Sprintf("c%d", i)
	}
	chart, err = Compute(build(2, names, missing), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := 200 * 1.0 * 6 * 1.5 / 72; chart.Frame.Height != want {
		t.Errorf("height = %v, want %v", chart.Frame.Height, want)
	}
}

func TestComputeIdempotent(t *testing.T) {
	ds := build(5, []string{"a", "b", "c", "d", "e"}, []int{1, 0, 3, 1, 5})
	opts := Options{NumBins: 3, Remove: bins.RemoveAll, Title: "t"}

	first, err := Compute(ds, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compute(ds, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Compute is not deterministic")
	}
}

func TestComputeErrors(t *testing.T) {
	ds := build(2, []string{"a", "b"}, []int{0, 1})

	tests := []struct {
		name string
		opts Options
	}{
		{"bins too low", Options{NumBins: -1}},
		{"bins too high", Options{NumBins: 101}},
		{"tick step", Options{TickStep: -3}},
		{"line height", Options{LineHeight: -1}},
		{"palette", Options{Palette: "no-such-palette"}},
		{"alignment", Options{Title: "x", TitleAlign: "middle"}},
		{"background", Options{Background: "not-a-color"}},
		{"hue mapping", Options{Hue: hue.Explicit(map[string]string{"a": "x"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart, err := Compute(ds, tt.opts)
			if !errors.IsInvalidInput(err) {
				t.Errorf("err = %v, want invalid input", err)
			}
			if chart != nil {
				t.Error("chart returned alongside error")
			}
		})
	}

	if _, err := Compute(nil, Options{}); !errors.IsInvalidInput(err) {
		t.Errorf("nil dataset err = %v", err)
	}
}

func TestOptionsZeroMeansDefault(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.NumBins != bins.DefaultCount || o.TickStep != DefaultTickStep || o.LineHeight != DefaultLineHeight {
		t.Errorf("defaults = bins %d, tick step %d, line height %v", o.NumBins, o.TickStep, o.LineHeight)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	// Only zero selects a default; values below it are kept and rejected.
	o = Options{NumBins: -1, TickStep: -1, LineHeight: -1}
	o.SetDefaults()
	if o.NumBins != -1 || o.TickStep != -1 || o.LineHeight != -1 {
		t.Errorf("negative values replaced: %+v", o)
	}
	if err := o.Validate(); !errors.IsInvalidInput(err) {
		t.Errorf("Validate err = %v, want invalid input", err)
	}
}

func TestParseAlign(t *testing.T) {
	for in, want := range map[string]Align{"": AlignCenter, "Left": AlignLeft, " right ": AlignRight} {
		got, err := ParseAlign(in)
		if err != nil || got != want {
			t.Errorf("ParseAlign(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseAlign("top"); err == nil {
		t.Error("expected error")
	}
}
