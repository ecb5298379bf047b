// Package render draws a computed [layout.Chart] onto a drawing surface.
//
// # Canvas
//
// [Canvas] is the whole contract between a chart and a drawing library:
// set up a frame of a given size, resolution and background, draw text at
// data coordinates, set x axis ticks, hide the y axis and draw a legend of
// (colour, label) pairs. Any plotting library that can do those five things
// can render a chart.
//
// [Draw] replays a chart onto a canvas in a fixed order and stops at the
// first error. It performs no validation of its own beyond a nil check;
// everything that can be rejected is rejected by [layout.Compute].
//
// # Sinks
//
// Concrete output formats live in the [sink] subpackage:
//
//   - PNG, SVG and PDF through gonum.org/v1/plot
//   - A terminal preview with lipgloss-coloured labels
//   - JSON export of the chart itself
//
// [sink]: github.com/matzehuels/nafig/pkg/render/sink
package render
