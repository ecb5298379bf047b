// Package hue resolves the category used to colour each column label.
//
// A [Hue] is a tagged variant with four states:
//
//   - [Auto]: categories come from each column's intrinsic type
//   - [Disabled]: no colouring and no legend
//   - [Explicit]: a caller-supplied column -> category mapping
//   - [Ordered]: categories listed in dataset column order
//
// The zero value is Auto. [Hue.Resolve] turns a hue into concrete
// [Categories] for a dataset, failing with an invalid-input error when an
// explicit mapping does not cover every column.
package hue

import (
	"slices"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

// Mode identifies which variant a [Hue] holds.
type Mode int

const (
	ModeAuto Mode = iota
	ModeDisabled
	ModeExplicit
	ModeOrdered
)

// String returns a short name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeDisabled:
		return "disabled"
	case ModeExplicit:
		return "explicit"
	case ModeOrdered:
		return "ordered"
	}
	return "unknown"
}

// Hue selects how column categories are derived.
type Hue struct {
	mode    Mode
	mapping map[string]string
	ordered []string
}

// Auto derives categories from column types.
func Auto() Hue { return Hue{mode: ModeAuto} }

// Disabled turns colouring off.
func Disabled() Hue { return Hue{mode: ModeDisabled} }

// Explicit uses m as the column -> category mapping. The map is copied.
func Explicit(m map[string]string) Hue {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Hue{mode: ModeExplicit, mapping: cp}
}

// Ordered uses categories[i] for the i-th dataset column.
func Ordered(categories []string) Hue {
	return Hue{mode: ModeOrdered, ordered: append([]string(nil), categories...)}
}

// Mode returns the variant held by h.
func (h Hue) Mode() Mode { return h.mode }

// Enabled reports whether labels are coloured.
func (h Hue) Enabled() bool { return h.mode != ModeDisabled }

// Resolve returns the category of every column of ds. It returns nil
// categories when h is disabled.
func (h Hue) Resolve(ds *dataset.Dataset) (Categories, error) {
	if ds == nil {
		return nil, errors.Invalid("dataset is nil")
	}

	switch h.mode {
	case ModeDisabled:
		return nil, nil

	case ModeAuto:
		cats := make(Categories, ds.NumCols())
		for name, t := range ds.Types() {
			cats[name] = string(t)
		}
		return cats, nil

	case ModeExplicit:
		cats := make(Categories, ds.NumCols())
		var missing []string
		for _, name := range ds.Names() {
			c, ok := h.mapping[name]
			if !ok {
				missing = append(missing, name)
				continue
			}
			cats[name] = c
		}
		if len(missing) > 0 {
			return nil, errors.Invalid("hue mapping has no category for %d column(s): %v", len(missing), missing)
		}
		return cats, nil

	case ModeOrdered:
		names := ds.Names()
		if len(h.ordered) != len(names) {
			return nil, errors.Invalid("hue has %d categories for %d columns", len(h.ordered), len(names))
		}
		cats := make(Categories, len(names))
		for i, name := range names {
			cats[name] = h.ordered[i]
		}
		return cats, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "unknown hue mode %d", h.mode)
}

// Categories maps column names to category labels.
type Categories map[string]string

// Unique returns the distinct categories in ascending order.
func (c Categories) Unique() []string {
	seen := make(map[string]struct{}, len(c))
	out := make([]string, 0, len(c))
	for _, v := range c {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// SortColumns stably sorts columns in place by category, ascending. Columns
// with the same category keep their relative order.
func (c Categories) SortColumns(columns []string) {
	slices.SortStableFunc(columns, func(a, b string) int {
		ca, cb := c[a], c[b]
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return 0
	})
}
