package bins

import (
	"strings"

	"github.com/matzehuels/nafig/pkg/errors"
)

// Removal selects which empty buckets are dropped before layout.
type Removal int

const (
	// RemoveNone keeps every bucket.
	RemoveNone Removal = iota
	// RemoveAll drops every empty bucket.
	RemoveAll
	// RemoveTrailing drops only the maximal run of empty buckets at the end.
	RemoveTrailing
)

var removalNames = map[Removal]string{
	RemoveNone:     "none",
	RemoveAll:      "all",
	RemoveTrailing: "trailing",
}

// String returns the canonical flag value for the mode.
func (r Removal) String() string {
	if s, ok := removalNames[r]; ok {
		return s
	}
	return "unknown"
}

// ParseRemoval parses a removal mode. Besides the canonical names it accepts
// "false"/"true" for none/all and "right" for trailing.
func ParseRemoval(s string) (Removal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "false":
		return RemoveNone, nil
	case "all", "true":
		return RemoveAll, nil
	case "trailing", "right":
		return RemoveTrailing, nil
	}
	return RemoveNone, errors.Invalid("invalid empty-bin removal mode %q (must be none, all or trailing)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Removal) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so removal modes can be
// read from TOML and JSON option files.
func (r *Removal) UnmarshalText(text []byte) error {
	v, err := ParseRemoval(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Keep reports, for each bucket size in counts, whether the bucket survives.
func (r Removal) Keep(counts []int) []bool {
	keep := make([]bool, len(counts))
	for i := range keep {
		keep[i] = true
	}

	switch r {
	case RemoveAll:
		for i, c := range counts {
			keep[i] = c > 0
		}
	case RemoveTrailing:
		for i := len(counts) - 1; i >= 0 && counts[i] == 0; i-- {
			keep[i] = false
		}
	}
	return keep
}

// Prune returns the buckets that survive mode, in order.
func Prune[T any](buckets [][]T, mode Removal) [][]T {
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		counts[i] = len(b)
	}
	keep := mode.Keep(counts)

	out := make([][]T, 0, len(buckets))
	for i, b := range buckets {
		if keep[i] {
			out = append(out, b)
		}
	}
	return out
}

// PruneBuckets is [Prune] for [Bucket] values. Surviving buckets keep their
// original Index.
func PruneBuckets(buckets []Bucket, mode Removal) []Bucket {
	keep := mode.Keep(Counts(buckets))
	out := make([]Bucket, 0, len(buckets))
	for i, b := range buckets {
		if keep[i] {
			out = append(out, b)
		}
	}
	return out
}
