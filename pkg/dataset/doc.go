// Package dataset holds the in-memory tabular data nafig visualizes and the
// missingness summarizer.
//
// A [Dataset] is an ordered set of named [Column] values that all share the
// same row count. Values are untyped (any); a value is missing when it is nil
// or a float NaN. Every column carries an intrinsic [Type], inferred when the
// caller does not set one, which serves as the default hue category.
//
// [Summarize] turns a dataset into a [Summary]: one [Missingness] entry per
// column, sorted by missing percentage from highest to lowest. Columns with
// equal percentages keep their dataset order, which is what makes the later
// binning step deterministic.
//
//	ds, _ := dataset.New(
//	    dataset.Column{Name: "age", Values: []any{31, nil, 45}},
//	    dataset.Column{Name: "city", Values: []any{"Oslo", "Bergen", nil}},
//	)
//	summary, err := dataset.Summarize(ds)
//
// File import and export live in package io.
package dataset
