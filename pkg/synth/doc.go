// Package synth generates example datasets with controllable missingness.
//
// Every feature is a column of standard-normal values. A per-feature missing
// proportion is drawn from a normal distribution, clipped to [0, 1], and that
// share of rows (drawn with replacement, so the realised share can be lower)
// is blanked out. Each feature is also tagged with one of [Categories], which
// makes the output suitable as an explicit hue mapping.
//
// Generation is deterministic for a given [Config.Seed].
package synth
