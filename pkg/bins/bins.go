package bins

import (
	"math"
	"sort"
	"strconv"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

const (
	// DefaultCount is the default number of buckets.
	DefaultCount = 10

	// MaxCount is the largest bucket count the layout accepts.
	MaxCount = 100
)

// Bucket is one percentage interval and the columns that fall in it.
type Bucket struct {
	Index   int      `json:"index"`
	Low     float64  `json:"low"`
	High    float64  `json:"high"`
	Label   string   `json:"label"`
	Columns []string `json:"columns"`
}

// Len returns the number of columns in the bucket.
func (b Bucket) Len() int { return len(b.Columns) }

// Empty reports whether the bucket holds no columns.
func (b Bucket) Empty() bool { return len(b.Columns) == 0 }

// UniformRanges returns n+1 evenly spaced boundaries from 0 to 100.
// The final boundary is exactly 100 regardless of rounding.
func UniformRanges(n int) ([]float64, error) {
	if n < 1 {
		return nil, errors.Invalid("num_bins must be >= 1, got %d", n)
	}
	ranges := make([]float64, n+1)
	for i := range ranges {
		ranges[i] = float64(i) * 100 / float64(n)
	}
	ranges[n] = 100
	return ranges, nil
}

// ValidateRanges checks that ranges holds n+1 strictly increasing boundaries.
func ValidateRanges(n int, ranges []float64) error {
	if n < 1 {
		return errors.Invalid("num_bins must be >= 1, got %d", n)
	}
	if len(ranges) != n+1 {
		return errors.Invalid("need %d bucket boundaries for %d bins, got %d", n+1, n, len(ranges))
	}
	for i, r := range ranges {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return errors.Invalid("bucket boundary %d is not finite", i)
		}
		if i > 0 && r <= ranges[i-1] {
			return errors.Invalid("bucket boundaries must increase: %v <= %v at %d", r, ranges[i-1], i)
		}
	}
	return nil
}

// Label formats a bucket interval as "{low}-{high}%".
func Label(low, high float64) string {
	return formatBound(low) + "-" + formatBound(high) + "%"
}

// Labels returns the label of every interval described by ranges.
func Labels(ranges []float64) []string {
	if len(ranges) < 2 {
		return nil
	}
	labels := make([]string, len(ranges)-1)
	for i := range labels {
		labels[i] = Label(ranges[i], ranges[i+1])
	}
	return labels
}

func formatBound(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Assign places every summarized column into one of n buckets.
//
// Bucket i holds the columns whose percentage p satisfies
// ranges[i] <= p < ranges[i+1]; the last bucket is also closed on the right so
// a fully missing column lands in it. Columns are appended in summary order.
//
// A percentage that falls outside [ranges[0], ranges[n]] cannot be placed. It
// is reported as an [errors.ErrCodeInternal] error rather than dropped.
func Assign(n int, summary dataset.Summary, ranges []float64) ([]Bucket, error) {
	if err := ValidateRanges(n, ranges); err != nil {
		return nil, err
	}

	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i] = Bucket{
			Index:   i,
			Low:     ranges[i],
			High:    ranges[i+1],
			Label:   Label(ranges[i], ranges[i+1]),
			Columns: []string{},
		}
	}

	for _, m := range summary {
		i, ok := Find(ranges, m.Percent)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal,
				"column %q: %v%% matches no bucket in [%v, %v]", m.Column, m.Percent, ranges[0], ranges[n])
		}
		buckets[i].Columns = append(buckets[i].Columns, m.Column)
	}
	return buckets, nil
}

// Find returns the index of the interval containing p using binary search
// over the boundaries. Intervals are half-open except the last one.
func Find(ranges []float64, p float64) (int, bool) {
	n := len(ranges) - 1
	if n < 1 || math.IsNaN(p) || p < ranges[0] || p > ranges[n] {
		return 0, false
	}
	if p == ranges[n] {
		return n - 1, true
	}
	// First boundary strictly greater than p; the interval starts one before it.
	j := sort.Search(len(ranges), func(k int) bool { return ranges[k] > p })
	return j - 1, true
}

// Columns returns the column lists of buckets, in order.
func Columns(buckets []Bucket) [][]string {
	out := make([][]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Columns
	}
	return out
}

// Counts returns the number of columns in each bucket.
func Counts(buckets []Bucket) []int {
	out := make([]int, len(buckets))
	for i, b := range buckets {
		out[i] = b.Len()
	}
	return out
}
