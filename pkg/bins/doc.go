// Package bins groups columns into percentage buckets.
//
// # Binning
//
// [UniformRanges] splits [0, 100] into n equal intervals and [Assign] places
// each column of a [dataset.Summary] into the interval containing its missing
// percentage. Intervals are half-open ([low, high)) except the last, which is
// closed so a column with every value missing is kept. Lookup is a binary
// search over the boundaries ([Find]); a percentage that matches no interval
// is an internal error, never a silent drop.
//
// # Groups
//
// [GroupConsecutive] labels runs of non-empty buckets with a shared id and
// empty buckets with -1:
//
//	[[a] [b] [c] [] [a] [a b] [] [d] [] []]
//	 0   0   0   -1 1   1     -1 2   -1 -1
//
// # Removal
//
// [Removal] controls which empty buckets the chart drops: none, all, or only
// the trailing run ([RemoveTrailing]). Leading and interior empty buckets are
// always kept in trailing mode.
package bins
