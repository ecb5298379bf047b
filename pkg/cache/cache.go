// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: zstd-compressed entries under a directory, for the CLI
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys from content hashes: a chart key from the dataset
// hash and the layout options, an artifact key from the chart hash and the
// output format. [ScopedKeyer] prefixes every key, which the CLI uses to
// keep entries of different builds apart.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLChart    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired and
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// ChartKey identifies a computed chart.
	ChartKey(datasetHash string, opts ChartKeyOpts) string
	// ArtifactKey identifies a rendered output of a chart.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// ChartKeyOpts holds the layout inputs that change a chart.
type ChartKeyOpts struct {
	NumBins int    `json:"num_bins"`
	Remove  string `json:"remove"`
	Hue     string `json:"hue"`     // hash of the resolved hue source
	Options string `json:"options"` // hash of the remaining layout options
}

// ArtifactKeyOpts holds the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Color  bool    `json:"color,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ChartKey implements [Keyer].
func (DefaultKeyer) ChartKey(datasetHash string, opts ChartKeyOpts) string {
	return hashKey("chart", datasetHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}

// NullCache misses on every Get and discards every Set. The runner falls
// back to it when caching is disabled.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }

var (
	_ Cache = NullCache{}
	_ Cache = (*FileCache)(nil)
)
