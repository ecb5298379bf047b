package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/nafig/pkg/bins"
	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/hue"
	"github.com/matzehuels/nafig/pkg/layout"
)

func testChart(t *testing.T, opts layout.Options) *layout.Chart {
	t.Helper()
	ds := dataset.MustNew(
		dataset.Column{Name: "age", Values: []any{31, 45, 27, 52}},
		dataset.Column{Name: "income", Values: []any{nil, 5200.0, nil, 4100.0}},
		dataset.Column{Name: "city", Values: []any{"a", "b", nil, "c"}},
		dataset.Column{Name: "notes", Values: []any{nil, nil, nil, "late"}},
	)
	chart, err := layout.Compute(ds, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return chart
}

func TestRenderPNG(t *testing.T) {
	chart := testChart(t, layout.Options{NumBins: 4, Title: "Missing values", Width: 4, DPI: 50})
	data, err := RenderPNG(chart)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output is not a PNG: % x", data[:min(8, len(data))])
	}

	scaled, err := RenderPNG(chart, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(scaled) <= len(data) {
		t.Errorf("scaled PNG (%d bytes) not larger than base (%d bytes)", len(scaled), len(data))
	}
}

func TestRenderSVG(t *testing.T) {
	chart := testChart(t, layout.Options{NumBins: 4, Hue: hue.Disabled()})
	data, err := RenderSVG(chart)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "<svg") {
		t.Fatal("output is not SVG")
	}
	for _, want := range []string{"income", "notes", "0-25%", "NA percentage"} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGLegendTitleSize(t *testing.T) {
	h := hue.Explicit(map[string]string{"age": "numeric", "income": "numeric", "city": "text", "notes": "text"})
	chart := testChart(t, layout.Options{NumBins: 4, Hue: h, LegendFontSize: 9, LegendTitleFontSize: 17})
	data, err := RenderSVG(chart)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(data)

	textStyle := func(label string) string {
		end := strings.Index(s, ">"+label+"</text>")
		if end < 0 {
			t.Fatalf("SVG has no text %q", label)
		}
		return s[strings.LastIndex(s[:end], "<text"):end]
	}
	if title := textStyle(layout.DefaultLegendTitle); !strings.Contains(title, "font-size:17px") {
		t.Errorf("legend title element = %q, want font-size 17", title)
	}
	if entry := textStyle("numeric"); !strings.Contains(entry, "font-size:9px") {
		t.Errorf("legend entry element = %q, want font-size 9", entry)
	}
}

func TestRenderPDF(t *testing.T) {
	chart := testChart(t, layout.Options{NumBins: 2})
	data, err := RenderPDF(chart)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", data[:min(8, len(data))])
	}
}

func TestRenderNilChart(t *testing.T) {
	if _, err := RenderSVG(nil); err == nil || !strings.HasPrefix(err.Error(), "render svg:") {
		t.Errorf("err = %v", err)
	}
	if _, err := RenderJSON(nil); err == nil {
		t.Error("expected error")
	}
	if got := RenderTerminal(nil); got != "" {
		t.Errorf("RenderTerminal(nil) = %q", got)
	}
}

func TestRenderJSON(t *testing.T) {
	chart := testChart(t, layout.Options{NumBins: 4, Remove: bins.RemoveAll, Title: "T"})
	data, err := RenderJSON(chart, WithJSONRunID("run-1"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.RunID != "run-1" {
		t.Errorf("RunID = %q", out.RunID)
	}
	if out.Background != "#ffffff" {
		t.Errorf("Background = %q", out.Background)
	}
	if len(out.Labels) != 4 {
		t.Errorf("Labels = %d, want 4", len(out.Labels))
	}
	if out.Title == nil || out.Title.Text != "T" {
		t.Errorf("Title = %+v", out.Title)
	}
	if out.Legend == nil || len(out.Legend.Entries) != 3 {
		t.Fatalf("Legend = %+v", out.Legend)
	}
	for _, e := range out.Legend.Entries {
		if !strings.HasPrefix(e.Hex, "#") {
			t.Errorf("legend colour %q", e.Hex)
		}
	}
	for _, l := range out.Labels {
		if l.Category == "" {
			t.Errorf("label %s has no category", l.Text)
		}
	}
	if out.Stats.Columns != 4 {
		t.Errorf("info.columns = %d", out.Stats.Columns)
	}

	compact, err := RenderJSON(chart, WithJSONCompact())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(compact, []byte("\n")) {
		t.Error("compact JSON contains newlines")
	}
}

func TestRenderTerminal(t *testing.T) {
	chart := testChart(t, layout.Options{NumBins: 4, Title: "Survey", Hue: hue.Disabled()})
	out := RenderTerminal(chart)

	for _, want := range []string{"Survey", "age", "income", "city", "notes", "0-25%", "75-100%", "NA percentage"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("colourless output contains ANSI escapes")
	}
	if strings.Contains(out, "Feature type") {
		t.Error("legend shown with hue disabled")
	}
}

func TestRenderTerminalStacking(t *testing.T) {
	ds := dataset.MustNew(
		dataset.Column{Name: "first", Values: []any{1.0}},
		dataset.Column{Name: "second", Values: []any{2.0}},
	)
	chart, err := layout.Compute(ds, layout.Options{NumBins: 1, Hue: hue.Disabled()})
	if err != nil {
		t.Fatal(err)
	}
	out := RenderTerminal(chart)
	if strings.Index(out, "second") > strings.Index(out, "first") {
		t.Errorf("rank 1 should be drawn above rank 0:\n%s", out)
	}
}

func TestRenderTerminalLegendAndTruncation(t *testing.T) {
	chart := testChart(t, layout.Options{NumBins: 4, Remove: bins.RemoveTrailing})
	out := RenderTerminal(chart, WithMaxLabelWidth(4))
	if !strings.Contains(out, "inc…") {
		t.Errorf("long label not truncated:\n%s", out)
	}
	if !strings.Contains(out, "Feature type: ") {
		t.Errorf("legend missing:\n%s", out)
	}
}
