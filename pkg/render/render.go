package render

import (
	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/layout"
)

// Canvas is a 2D drawing surface for a [layout.Chart]. Coordinates are in
// chart data units; implementations map them to their own device space.
//
// Canvases are not required to be safe for concurrent use.
type Canvas interface {
	// Frame sets the figure size, resolution, background and visible data
	// range. It is called once, before anything else.
	Frame(f layout.Frame) error
	// Text draws one string at its data coordinates.
	Text(t layout.Text) error
	// XAxis sets the x axis ticks and label.
	XAxis(label layout.Text, ticks []layout.Tick) error
	// HideYAxis removes the y axis with its ticks and border.
	HideYAxis() error
	// Legend draws one entry per category.
	Legend(l layout.Legend) error
}

// Draw replays chart onto c: frame, column labels, row ticks, title, axes,
// then the legend when present. The first canvas error is returned as is.
func Draw(c Canvas, chart *layout.Chart) error {
	if chart == nil {
		return errors.Invalid("chart is nil")
	}
	if err := c.Frame(chart.Frame); err != nil {
		return err
	}
	for _, l := range chart.Labels {
		if err := c.Text(l.AsText()); err != nil {
			return err
		}
	}
	for _, t := range chart.RowTicks {
		if err := c.Text(t); err != nil {
			return err
		}
	}
	if chart.Title != nil {
		if err := c.Text(*chart.Title); err != nil {
			return err
		}
	}
	if err := c.XAxis(chart.XLabel, chart.XTicks); err != nil {
		return err
	}
	if err := c.HideYAxis(); err != nil {
		return err
	}
	if chart.Legend != nil {
		if err := c.Legend(*chart.Legend); err != nil {
			return err
		}
	}
	return nil
}
