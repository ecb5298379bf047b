package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/observability"
	"github.com/matzehuels/nafig/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. The runID is
// embedded in JSON output and may be empty.
func Render(ctx context.Context, chart *layout.Chart, opts Options, runID string) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(chart, opts.Formats, opts, runID)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(chart *layout.Chart, formats []string, opts Options, runID string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(chart, format, opts, runID)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderFormat dispatches to the sink for format. Plot sink errors already
// carry the format name.
func renderFormat(chart *layout.Chart, format string, opts Options, runID string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return sink.RenderPNG(chart, sink.WithScale(opts.Scale))
	case FormatSVG:
		return sink.RenderSVG(chart)
	case FormatPDF:
		return sink.RenderPDF(chart)
	case FormatJSON:
		data, err := sink.RenderJSON(chart, sink.WithJSONRunID(runID))
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return data, nil
	case FormatTXT:
		if chart == nil {
			return nil, errors.Invalid("render txt: chart is nil")
		}
		return []byte(sink.RenderTerminal(chart, sink.WithColor(opts.Color))), nil
	}
	return nil, ValidateFormat(format)
}
