package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/nafig/pkg/cache"
	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
	"github.com/matzehuels/nafig/pkg/layout"
	"github.com/matzehuels/nafig/pkg/observability"
)

// Runner executes the load, layout and render stages, caching computed
// charts and rendered artifacts. It keeps no per-run state, so one Runner
// can serve many runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// selects [cache.DefaultKeyer] and a nil logger selects log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute loads opts.Input and runs [Runner.ExecuteDataset] on it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)
	logger.Info("loaded dataset",
		"file", opts.Input,
		"rows", ds.NumRows(),
		"columns", ds.NumCols(),
		"duration", loadTime)

	result, err := r.ExecuteDataset(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// ExecuteDataset lays out and renders ds. Every call gets a fresh run ID,
// which is also embedded in JSON artifacts rendered by this call.
func (r *Runner) ExecuteDataset(ctx context.Context, ds *dataset.Dataset, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if ds == nil {
		return nil, errors.Invalid("dataset is nil")
	}

	result := &Result{
		ID:          uuid.NewString(),
		Dataset:     ds,
		DatasetHash: HashDataset(ds),
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.Rows = ds.NumRows()
	result.Stats.Columns = ds.NumCols()
	logger := r.logger(opts).With("run", result.ID[:8])

	summary, err := dataset.Summarize(ds)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	result.Summary = summary

	layoutStart := time.Now()
	chart, layoutHit, err := r.computeChart(ctx, ds, result.DatasetHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Chart = chart
	result.Stats.Buckets = len(chart.Buckets)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"buckets", len(chart.Buckets),
		"tallest", chart.MaxCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.renderChart(ctx, chart, opts, result.ID)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads opts.Input. Datasets themselves are never cached.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(ctx, opts)
}

// ComputeChartWithCacheInfo returns the chart for ds and whether it was
// served from the cache.
func (r *Runner) ComputeChartWithCacheInfo(ctx context.Context, ds *dataset.Dataset, opts Options) (*layout.Chart, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if ds == nil {
		return nil, false, errors.Invalid("dataset is nil")
	}
	return r.computeChart(ctx, ds, HashDataset(ds), opts)
}

// ComputeChart is [Runner.ComputeChartWithCacheInfo] without the hit flag.
func (r *Runner) ComputeChart(ctx context.Context, ds *dataset.Dataset, opts Options) (*layout.Chart, error) {
	chart, _, err := r.ComputeChartWithCacheInfo(ctx, ds, opts)
	return chart, err
}

func (r *Runner) computeChart(ctx context.Context, ds *dataset.Dataset, datasetHash string, opts Options) (*layout.Chart, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	h, err := opts.ResolveHue()
	if err != nil {
		return nil, false, err
	}
	cats, err := h.Resolve(ds)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ChartKey(datasetHash, opts.ChartKeyOpts(h, cats))

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, kindChart, key); ok {
			var chart layout.Chart
			if json.Unmarshal(data, &chart) == nil {
				return &chart, true, nil
			}
			r.Logger.Warn("discarding unreadable cached chart", "key", key)
		}
	}

	chart, err := ComputeChart(ctx, ds, h, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(chart); err == nil {
		r.store(ctx, kindChart, key, data, cache.TTLChart)
	}
	return chart, false, nil
}

// RenderWithCacheInfo renders opts.Formats and reports whether every
// artifact was served from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, chart *layout.Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	return r.renderChart(ctx, chart, opts, "")
}

// Render is [Runner.RenderWithCacheInfo] without the hit flag.
func (r *Runner) Render(ctx context.Context, chart *layout.Chart, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, chart, opts)
	return artifacts, err
}

func (r *Runner) renderChart(ctx context.Context, chart *layout.Chart, opts Options, runID string) (map[string][]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if chart == nil {
		return nil, false, errors.Invalid("chart is nil")
	}

	chartHash, err := cache.HashJSON(chart)
	if err != nil {
		return nil, false, fmt.Errorf("serialize chart for cache key: %w", err)
	}

	// Only formats the cache cannot serve are rendered.
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.lookup(ctx, kindArtifact, key); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, chart, sub, runID)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		r.store(ctx, kindArtifact, r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Cache entry kinds reported to the cache hooks.
const (
	kindChart    = "chart"
	kindArtifact = "artifact"
)

// lookup reads key and reports the hit or miss. Cache read errors count as
// misses.
func (r *Runner) lookup(ctx context.Context, kind, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "kind", kind, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

// store writes key. A failed write only costs a recompute next time, so it
// is logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// logger prefers the per-run logger from opts.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
