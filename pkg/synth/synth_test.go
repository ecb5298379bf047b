package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

func TestGenerateShape(t *testing.T) {
	ds, cats, err := Generate(Config{Rows: 50, Features: 7, MeanNA: 0.5, StdNA: 0.3, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 50, ds.NumRows())
	assert.Equal(t, 7, ds.NumCols())
	require.Len(t, cats, 7)
	assert.Equal(t, "feature_0", ds.Names()[0])
	assert.Equal(t, "feature_6", ds.Names()[6])
	for _, c := range ds.Columns() {
		assert.Equal(t, dataset.TypeFloat, c.Type)
	}
	for _, c := range cats {
		assert.Contains(t, Categories, c)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Rows: 40, Features: 5, MeanNA: 0.4, StdNA: 0.2, Seed: 7}
	a, ca, err := Generate(cfg)
	require.NoError(t, err)
	b, cb, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, ca, cb)
	assert.Equal(t, a.Columns(), b.Columns())

	cfg.Seed = 8
	c, _, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Columns(), c.Columns())
}

func TestGenerateMissingness(t *testing.T) {
	tests := []struct {
		name     string
		mean     float64
		wantNone bool
		wantSome bool
	}{
		{"no missing", -5, true, false},
		{"mostly missing", 5, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, _, err := Generate(Config{Rows: 100, Features: 4, MeanNA: tt.mean, StdNA: 0, Seed: 3})
			require.NoError(t, err)
			summary, err := dataset.Summarize(ds)
			require.NoError(t, err)
			for _, m := range summary {
				if tt.wantNone {
					assert.Zero(t, m.Count, m.Column)
				}
				if tt.wantSome {
					// Sampling with replacement: a full draw leaves some rows untouched.
					assert.Greater(t, m.Percent, 50.0, m.Column)
					assert.LessOrEqual(t, m.Percent, 100.0, m.Column)
				}
			}
		})
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero rows", Config{Rows: 0, Features: 1}},
		{"zero features", Config{Rows: 1, Features: 0}},
		{"negative std", Config{Rows: 1, Features: 1, StdNA: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Generate(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, Config{Rows: 1000, Features: 300, MeanNA: 0.5, StdNA: 0.3, Seed: 42}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestCategoryMap(t *testing.T) {
	ds, cats, err := Generate(Config{Rows: 3, Features: 3, Seed: 2})
	require.NoError(t, err)
	m := CategoryMap(ds, cats)
	assert.Len(t, m, 3)
	assert.Equal(t, cats[1], m["feature_1"])
}
