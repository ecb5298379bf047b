package dataset

import (
	"github.com/montanaflynn/stats"

	"github.com/matzehuels/nafig/pkg/errors"
)

// Stats aggregates a [Summary] into a handful of headline numbers.
type Stats struct {
	Columns  int     `json:"columns"`
	Complete int     `json:"complete"` // columns with no missing values
	Empty    int     `json:"empty"`    // columns with every value missing
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	P90      float64 `json:"p90"`
}

// Stats computes aggregate missingness figures over all columns.
func (s Summary) Stats() (Stats, error) {
	if len(s) == 0 {
		return Stats{}, errors.Invalid("summary is empty")
	}

	data := stats.Float64Data(s.Percents())
	out := Stats{Columns: len(s)}
	for _, p := range data {
		switch p {
		case 0:
			out.Complete++
		case 100:
			out.Empty++
		}
	}

	var err error
	if out.Mean, err = stats.Mean(data); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "mean")
	}
	if out.Median, err = stats.Median(data); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "median")
	}
	if out.Min, err = stats.Min(data); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "min")
	}
	if out.Max, err = stats.Max(data); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "max")
	}
	if out.P90, err = stats.Percentile(data, 90); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "p90")
	}
	return out, nil
}
