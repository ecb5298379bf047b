// Package io reads and writes tabular datasets.
//
// # Formats
//
// CSV and TSV files are decoded with gota (github.com/go-gota/gota); XLSX
// workbooks are opened with excelize and their cells handed to the same
// type detection. The first row always names the columns. Each column is
// typed as integer, float, boolean or string from its values.
//
// Cells that are empty or hold one of [MissingTokens] (NA, NaN, <nil>, null)
// are read as missing values.
//
// # Import
//
// Use [Import] to read a file, choosing the decoder from the extension, or
// the Read functions for an io.Reader:
//
//	ds, err := io.Import("survey.csv")
//	ds, err := io.Import("survey.xlsx", io.WithSheet("2024"))
//
// A path that does not exist yields an [errors.ErrCodeFileNotFound] error;
// an unknown extension yields [errors.ErrCodeUnsupported].
//
// # Export
//
// [Export] and the Write functions encode a dataset as CSV (missing values
// written as NaN) or XLSX (missing values left empty). Both read back with
// [Import].
//
// # Categories
//
// A categories file maps column names to category labels for colouring:
//
//	column,category
//	feature_0,Binary
//	feature_1,Continuous
//
// [WriteCategories] produces it and [ReadCategories] reads it back.
//
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/nafig/pkg/errors.ErrCodeFileNotFound
// [errors.ErrCodeUnsupported]: github.com/matzehuels/nafig/pkg/errors.ErrCodeUnsupported
package io
