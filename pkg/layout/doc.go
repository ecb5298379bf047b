// Package layout turns a dataset into a renderer-agnostic chart of column
// names binned by missingness.
//
// [Compute] summarizes missingness, assigns columns to uniform percentage
// buckets, optionally colours them by category, removes empty buckets as
// configured and places one text label per column:
//
//	chart, err := layout.Compute(ds, layout.Options{NumBins: 5, Remove: bins.RemoveTrailing})
//
// The surviving bucket i occupies x = i and the column at rank j within it
// sits at y = j * LineHeight. The tallest bucket carries row-count ticks
// every TickStep ranks at x = -1.
//
// The returned [Chart] holds resolved colours and coordinates only; package
// render draws it on a concrete canvas.
package layout
