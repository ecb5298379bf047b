package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/hue"
	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/observability"
)

// ComputeChart bins and places the columns of ds with hue h.
func ComputeChart(ctx context.Context, ds *dataset.Dataset, h hue.Hue, opts Options) (*layout.Chart, error) {
	cols := 0
	if ds != nil {
		cols = ds.NumCols()
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, cols, opts.NumBins)
	start := time.Now()

	chart, err := layout.Compute(ds, opts.LayoutOptions(h))
	if err == nil {
		err = chart.Validate(ds)
	}

	buckets := 0
	if chart != nil {
		buckets = len(chart.Buckets)
	}
	hooks.OnLayoutComplete(ctx, buckets, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return chart, nil
}
