package dataset

import (
	"slices"

	"github.com/matzehuels/nafig/pkg/errors"
)

// Missingness is the share of missing rows in one column.
type Missingness struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // 100 * Count / rows, in [0, 100]
}

// Summary lists per-column missingness sorted by Percent, highest first.
// Columns with equal percentages keep their dataset order.
type Summary []Missingness

// Summarize computes the missingness of every column in ds.
//
// It fails with [errors.ErrCodeInvalidInput] when ds is nil, has no columns,
// or has no rows, since percentages are undefined in those cases.
func Summarize(ds *Dataset) (Summary, error) {
	if ds == nil || ds.NumCols() == 0 {
		return nil, errors.Invalid("dataset has no columns")
	}
	if ds.NumRows() == 0 {
		return nil, errors.Invalid("dataset has no rows")
	}

	rows := float64(ds.NumRows())
	s := make(Summary, 0, ds.NumCols())
	for _, c := range ds.columns {
		n := c.MissingCount()
		s = append(s, Missingness{
			Column:  c.Name,
			Count:   n,
			Percent: 100 * float64(n) / rows,
		})
	}

	slices.SortStableFunc(s, func(a, b Missingness) int {
		switch {
		case a.Percent > b.Percent:
			return -1
		case a.Percent < b.Percent:
			return 1
		}
		return 0
	})
	return s, nil
}

// Columns returns the column names in summary order.
func (s Summary) Columns() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Column
	}
	return names
}

// Percent returns the missing percentage of the named column.
func (s Summary) Percent(column string) (float64, bool) {
	for _, m := range s {
		if m.Column == column {
			return m.Percent, true
		}
	}
	return 0, false
}

// Percents returns the percentages in summary order.
func (s Summary) Percents() []float64 {
	out := make([]float64, len(s))
	for i, m := range s {
		out[i] = m.Percent
	}
	return out
}
