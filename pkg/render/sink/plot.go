package sink

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/render"
)

// PlotOption configures the gonum/plot renderers.
type PlotOption func(*plotRenderer)

type plotRenderer struct {
	scale      float64
	markerSize vg.Length
}

// WithScale multiplies the raster resolution (PNG only). The default is 1.
func WithScale(s float64) PlotOption {
	return func(r *plotRenderer) { r.scale = s }
}

// WithMarkerSize sets the radius of the legend markers.
func WithMarkerSize(size vg.Length) PlotOption {
	return func(r *plotRenderer) { r.markerSize = size }
}

func newPlotRenderer(opts []PlotOption) plotRenderer {
	r := plotRenderer{scale: 1, markerSize: vg.Points(4)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderPNG draws the chart as a PNG image at the chart's DPI.
func RenderPNG(chart *layout.Chart, opts ...PlotOption) ([]byte, error) {
	r := newPlotRenderer(opts)
	c, err := r.build(chart)
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}

	dpi := int(c.frame.DPI * r.scale)
	img := vgimg.NewWith(
		vgimg.UseWH(c.width(), c.height()),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(c.frame.Background),
	)
	c.plot.Draw(draw.New(img))

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG draws the chart as an SVG document.
func RenderSVG(chart *layout.Chart, opts ...PlotOption) ([]byte, error) {
	return renderVector(chart, "svg", opts)
}

// RenderPDF draws the chart as a single-page PDF.
func RenderPDF(chart *layout.Chart, opts ...PlotOption) ([]byte, error) {
	return renderVector(chart, "pdf", opts)
}

func renderVector(chart *layout.Chart, format string, opts []PlotOption) ([]byte, error) {
	r := newPlotRenderer(opts)
	c, err := r.build(chart)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	wt, err := c.plot.WriterTo(c.width(), c.height(), format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func (r plotRenderer) build(chart *layout.Chart) (*plotCanvas, error) {
	c := &plotCanvas{plot: plot.New(), markerSize: r.markerSize}
	if err := render.Draw(c, chart); err != nil {
		return nil, err
	}
	if err := c.finish(); err != nil {
		return nil, err
	}
	return c, nil
}

// plotCanvas implements [render.Canvas] on a gonum plot. Texts are
// collected and added as a single labels plotter by finish.
type plotCanvas struct {
	plot       *plot.Plot
	frame      layout.Frame
	texts      []layout.Text
	markerSize vg.Length
}

func (c *plotCanvas) width() vg.Length  { return vg.Length(c.frame.Width) * vg.Inch }
func (c *plotCanvas) height() vg.Length { return vg.Length(c.frame.Height) * vg.Inch }

func (c *plotCanvas) Frame(f layout.Frame) error {
	c.frame = f
	c.plot.BackgroundColor = f.Background
	return nil
}

func (c *plotCanvas) Text(t layout.Text) error {
	c.texts = append(c.texts, t)
	return nil
}

func (c *plotCanvas) XAxis(label layout.Text, ticks []layout.Tick) error {
	marks := make([]plot.Tick, len(ticks))
	for i, t := range ticks {
		marks[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	c.plot.X.Tick.Marker = plot.ConstantTicks(marks)
	c.plot.X.Label.Text = label.Text
	c.plot.X.Label.TextStyle.Font.Size = vg.Points(label.FontSize)
	c.plot.X.Label.TextStyle.Color = label.Color
	return nil
}

func (c *plotCanvas) HideYAxis() error {
	c.plot.HideY()
	return nil
}

// Legend adds the legend title as its first entry, followed by one circle
// marker per category.
func (c *plotCanvas) Legend(l layout.Legend) error {
	c.plot.Legend.Top = true
	c.plot.Legend.TextStyle.Font.Size = vg.Points(l.FontSize)
	if l.Title != "" {
		style := c.plot.Legend.TextStyle
		style.Font.Size = vg.Points(l.TitleFontSize)
		style.XAlign = text.XRight
		style.YAlign = text.YCenter
		c.plot.Legend.Add("", legendTitle{
			text:  l.Title,
			style: style,
			gap:   c.plot.Legend.TextStyle.Rectangle(" ").Max.X,
		})
	}
	for _, e := range l.Entries {
		s, err := plotter.NewScatter(plotter.XYs{{}})
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = e.Color
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = c.markerSize
		c.plot.Legend.Add(e.Label, s)
	}
	return nil
}

// legendTitle draws the legend title from the thumbnail slot of an entry
// with empty text, since legend entries share one text style. The text is
// right-aligned gap to the left of the slot, where entry labels end.
type legendTitle struct {
	text  string
	style text.Style
	gap   vg.Length
}

func (t legendTitle) Thumbnail(c *draw.Canvas) {
	at := vg.Point{X: c.Min.X - t.gap, Y: (c.Min.Y + c.Max.Y) / 2}
	c.FillText(t.style, at, t.text)
}

func (c *plotCanvas) finish() error {
	if len(c.texts) > 0 {
		xys := plotter.XYLabels{
			XYs:    make(plotter.XYs, len(c.texts)),
			Labels: make([]string, len(c.texts)),
		}
		for i, t := range c.texts {
			xys.XYs[i] = plotter.XY{X: t.X, Y: t.Y}
			xys.Labels[i] = t.Text
		}
		labels, err := plotter.NewLabels(xys)
		if err != nil {
			return err
		}
		for i, t := range c.texts {
			style := &labels.TextStyle[i]
			style.Font.Size = vg.Points(t.FontSize)
			style.Color = t.Color
			style.XAlign = xAlign(t.Anchor.Horizontal)
			style.YAlign = yAlign(t.Anchor.Vertical)
		}
		c.plot.Add(labels)
	}

	// Added plotters widen the axes; pin them to the chart's frame.
	c.plot.X.Min, c.plot.X.Max = c.frame.XMin, c.frame.XMax
	c.plot.Y.Min, c.plot.Y.Max = c.frame.YMin, c.frame.YMax
	return nil
}

func xAlign(a layout.Align) text.XAlignment {
	switch a {
	case layout.AlignLeft:
		return text.XLeft
	case layout.AlignRight:
		return text.XRight
	}
	return text.XCenter
}

func yAlign(v string) text.YAlignment {
	switch v {
	case "top":
		return text.YTop
	case "center":
		return text.YCenter
	}
	return text.YBottom
}

var (
	_ render.Canvas    = (*plotCanvas)(nil)
	_ plot.Thumbnailer = legendTitle{}
)
