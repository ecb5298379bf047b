// Package observability lets callers watch the nafig pipeline without the
// core packages depending on a metrics or tracing backend.
//
// The pipeline reports load, layout and render stages through
// [PipelineHooks]; the runner reports chart and artifact cache lookups
// through [CacheHooks]. Both default to no-ops. [LogHooks] writes every
// event to a charmbracelet logger at debug level:
//
//	observability.Register(observability.NewLogHooks(logger))
//	defer observability.Reset()
//
// Emitting an event:
//
//	start := time.Now()
//	observability.Pipeline().OnLayoutStart(ctx, ds.NumCols(), opts.NumBins)
//	chart, err := layout.Compute(ds, opts)
//	observability.Pipeline().OnLayoutComplete(ctx, len(chart.Buckets), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes the stages of a plotting run. Complete events
// carry the stage duration and its error, if any.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, rows, columns int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, columns, numBins int)
	OnLayoutComplete(ctx context.Context, buckets int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes cache traffic. keyType is "chart" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every pipeline event. Embed it to implement
// only the events of interest.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}

func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int) {}

func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {}

func (NoopPipelineHooks) OnRenderStart(context.Context, []string) {}

func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks = registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}}

// Register installs h for every hook interface it implements and reports
// whether it implemented any.
func Register(h any) bool {
	p, isPipeline := h.(PipelineHooks)
	c, isCache := h.(CacheHooks)
	if isPipeline {
		SetPipelineHooks(p)
	}
	if isCache {
		SetCacheHooks(c)
	}
	return isPipeline || isCache
}

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// Pipeline returns the current pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset reinstalls the no-op hooks.
func Reset() {
	hooks.mu.Lock()
	hooks.pipeline, hooks.cache = NoopPipelineHooks{}, NoopCacheHooks{}
	hooks.mu.Unlock()
}
