package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/palette"
)

// TerminalOption configures [RenderTerminal].
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	color    bool
	maxWidth int
}

// WithColor enables ANSI colouring of labels and legend markers.
func WithColor(enabled bool) TerminalOption {
	return func(r *terminalRenderer) { r.color = enabled }
}

// WithMaxLabelWidth truncates labels longer than n cells. The default is 24.
func WithMaxLabelWidth(n int) TerminalOption {
	return func(r *terminalRenderer) {
		if n > 1 {
			r.maxWidth = n
		}
	}
}

const bucketGap = 2

// RenderTerminal draws the chart as monospace text: one column of labels
// per surviving bucket, highest rank on top, bucket ranges underneath and
// the legend last. Colour is off unless [WithColor] is given.
func RenderTerminal(chart *layout.Chart, opts ...TerminalOption) string {
	r := terminalRenderer{maxWidth: 24}
	for _, opt := range opts {
		opt(&r)
	}
	if chart == nil {
		return ""
	}

	// Column widths: the widest label or tick text in each bucket.
	widths := make([]int, len(chart.Buckets))
	for i, t := range chart.XTicks {
		widths[i] = lipgloss.Width(t.Label)
	}
	for _, l := range chart.Labels {
		widths[l.Bucket] = max(widths[l.Bucket], min(lipgloss.Width(l.Text), r.maxWidth))
	}

	gutterText := make(map[int]string, len(chart.RowTicks))
	gutter := 0
	for _, t := range chart.RowTicks {
		rank := int(t.Y/chart.LineHeight + 0.5)
		gutterText[rank] = t.Text
		gutter = max(gutter, lipgloss.Width(t.Text))
	}
	if gutter > 0 {
		gutter++
	}

	grid := make([][]*layout.Label, chart.MaxCount)
	for i := range grid {
		grid[i] = make([]*layout.Label, len(chart.Buckets))
	}
	for i := range chart.Labels {
		l := &chart.Labels[i]
		grid[l.Rank][l.Bucket] = l
	}

	total := gutter
	for _, w := range widths {
		total += w + bucketGap
	}

	var b strings.Builder
	if chart.Title != nil {
		b.WriteString(lipgloss.PlaceHorizontal(total, position(chart.Title.Anchor.Horizontal), chart.Title.Text))
		b.WriteString("\n\n")
	}

	for rank := chart.MaxCount - 1; rank >= 0; rank-- {
		var line strings.Builder
		line.WriteString(lipgloss.PlaceHorizontal(gutter, lipgloss.Left, gutterText[rank]))
		for i, w := range widths {
			cell := ""
			if l := grid[rank][i]; l != nil {
				cell = r.paint(truncate(l.Text, r.maxWidth), l)
			}
			line.WriteString(lipgloss.PlaceHorizontal(w+bucketGap, lipgloss.Center, cell))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", gutter))
	b.WriteString(strings.Repeat("─", total-gutter))
	b.WriteByte('\n')

	var ticks strings.Builder
	ticks.WriteString(strings.Repeat(" ", gutter))
	for i, t := range chart.XTicks {
		ticks.WriteString(lipgloss.PlaceHorizontal(widths[i]+bucketGap, lipgloss.Center, t.Label))
	}
	b.WriteString(strings.TrimRight(ticks.String(), " "))
	b.WriteByte('\n')

	if chart.XLabel.Text != "" {
		b.WriteString(strings.TrimRight(lipgloss.PlaceHorizontal(total, lipgloss.Center, chart.XLabel.Text), " "))
		b.WriteByte('\n')
	}

	if chart.Legend != nil && len(chart.Legend.Entries) > 0 {
		b.WriteByte('\n')
		if chart.Legend.Title != "" {
			b.WriteString(chart.Legend.Title + ": ")
		}
		entries := make([]string, len(chart.Legend.Entries))
		for i, e := range chart.Legend.Entries {
			marker := "●"
			if r.color {
				marker = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(e.Color))).Render(marker)
			}
			entries[i] = marker + " " + e.Label
		}
		b.WriteString(strings.Join(entries, "  "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r terminalRenderer) paint(s string, l *layout.Label) string {
	if !r.color || l.Category == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(l.Color))).Render(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func position(a layout.Align) lipgloss.Position {
	switch a {
	case layout.AlignLeft:
		return lipgloss.Left
	case layout.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Center
}
