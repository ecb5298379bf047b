package io

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

// missingCell is how missing values are written to CSV.
const missingCell = "NaN"

// WriteCSV encodes ds as CSV with a header row. Missing values are written
// as NaN so the output reads back with [ReadCSV].
func WriteCSV(ds *dataset.Dataset, w io.Writer) error {
	records := [][]string{ds.Names()}
	for r := 0; r < ds.NumRows(); r++ {
		rec := make([]string, ds.NumCols())
		for c, col := range ds.Columns() {
			rec[c] = formatCell(col.Values[r])
		}
		records = append(records, rec)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return errors.Wrap(errors.ErrCodeInternal, df.Err, "build table")
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteXLSX encodes ds as a single-sheet workbook. Missing values are left
// as empty cells.
func WriteXLSX(ds *dataset.Dataset, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	for c, name := range ds.Names() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "header cell")
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header %q: %w", name, err)
		}
	}
	for c, col := range ds.Columns() {
		for r, v := range col.Values {
			if dataset.IsMissing(v) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "cell")
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes ds to w in the given format.
func Write(ds *dataset.Dataset, w io.Writer, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(ds, w)
	case FormatXLSX:
		return WriteXLSX(ds, w)
	}
	return errors.New(errors.ErrCodeUnsupported, "cannot write format %q", format)
}

// Export writes ds to the file at path, choosing the encoder from its
// extension.
func Export(ds *dataset.Dataset, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(ds, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCategories writes one "column,category" row per column, in the order
// of names.
func WriteCategories(w io.Writer, names []string, categories []string) error {
	if len(names) != len(categories) {
		return errors.Invalid("%d names for %d categories", len(names), len(categories))
	}
	records := [][]string{{"column", "category"}}
	for i, n := range names {
		records = append(records, []string{n, categories[i]})
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return errors.Wrap(errors.ErrCodeInternal, df.Err, "build table")
	}
	return df.WriteCSV(w)
}

// ExportCategories writes a categories file to path.
func ExportCategories(path string, names []string, categories []string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteCategories(f, names, categories); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCell(v any) string {
	if dataset.IsMissing(v) {
		return missingCell
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
