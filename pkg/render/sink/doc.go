// Package sink renders a [layout.Chart] into concrete output formats.
//
// # Image Formats
//
// [RenderPNG], [RenderSVG] and [RenderPDF] draw the chart with
// gonum.org/v1/plot. Column names become text labels at their data
// coordinates, buckets become x axis ticks, the y axis is hidden and the
// legend lists one circle marker per category:
//
//	png, err := sink.RenderPNG(chart, sink.WithScale(2))
//	svg, err := sink.RenderSVG(chart)
//
// Figure size and resolution come from the chart's frame. Errors are
// prefixed with the format name and keep their cause.
//
// # Terminal
//
// [RenderTerminal] lays the chart out as monospace text for a quick look in
// a shell. [WithColor] colours labels by category using lipgloss.
//
// # JSON
//
// [RenderJSON] exports placements, colours, buckets and the legend for
// external tools.
//
// [layout.Chart]: github.com/matzehuels/nafig/pkg/layout.Chart
package sink
