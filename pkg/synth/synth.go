package synth

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

// Defaults applied by [Config.SetDefaults].
const (
	DefaultRows     = 1000
	DefaultFeatures = 300
	DefaultMeanNA   = 0.5
	DefaultStdNA    = 0.3
	DefaultSeed     = 42
)

// Categories are the feature types assigned to generated columns.
var Categories = []string{"Continuous", "Categorical", "Binary"}

// Config controls [Generate].
type Config struct {
	Rows     int     `toml:"rows" json:"rows"`
	Features int     `toml:"features" json:"features"`
	MeanNA   float64 `toml:"mean_na" json:"mean_na"`
	StdNA    float64 `toml:"std_na" json:"std_na"`
	Seed     uint64  `toml:"seed" json:"seed"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Rows:     DefaultRows,
		Features: DefaultFeatures,
		MeanNA:   DefaultMeanNA,
		StdNA:    DefaultStdNA,
		Seed:     DefaultSeed,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Rows < 1 {
		return errors.Invalid("rows must be at least 1, got %d", c.Rows)
	}
	if c.Features < 1 {
		return errors.Invalid("features must be at least 1, got %d", c.Features)
	}
	if c.StdNA < 0 {
		return errors.Invalid("std_na must not be negative, got %g", c.StdNA)
	}
	return nil
}

// Generate builds a dataset of cfg.Features float columns named
// "feature_0", "feature_1", ... and returns the category of each column in
// the same order.
func Generate(cfg Config) (*dataset.Dataset, []string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	rng := rand.New(src)
	values := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	share := distuv.Normal{Mu: cfg.MeanNA, Sigma: cfg.StdNA, Src: src}

	cols := make([]dataset.Column, cfg.Features)
	for i := range cols {
		vals := make([]any, cfg.Rows)
		for r := range vals {
			vals[r] = values.Rand()
		}

		p := min(max(share.Rand(), 0), 1)
		for range int(p * float64(cfg.Rows)) {
			vals[rng.IntN(cfg.Rows)] = nil
		}

		cols[i] = dataset.Column{
			Name:   fmt.Sprintf("feature_%d", i),
			Type:   dataset.TypeFloat,
			Values: vals,
		}
	}

	categories := make([]string, cfg.Features)
	for i := range categories {
		categories[i] = Categories[rng.IntN(len(Categories))]
	}

	ds, err := dataset.New(cols...)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "build dataset")
	}
	return ds, categories, nil
}

// CategoryMap pairs generated column names with their categories.
func CategoryMap(ds *dataset.Dataset, categories []string) map[string]string {
	names := ds.Names()
	m := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(categories) {
			m[name] = categories[i]
		}
	}
	return m
}
