package io

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

// MissingTokens are the cell values read as missing, besides an empty cell.
var MissingTokens = []string{"NA", "NaN", "<nil>", "null", ""}

// Format is a tabular file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported file type %q (use .csv, .tsv or .xlsx)", ext)
	}
}

// ReadOption configures [Import] and the Read functions.
type ReadOption func(*readConfig)

type readConfig struct {
	sheet     string
	delimiter rune
}

// WithSheet selects the worksheet of an XLSX file. The first sheet is used
// by default.
func WithSheet(name string) ReadOption {
	return func(c *readConfig) { c.sheet = name }
}

// WithDelimiter overrides the CSV field delimiter.
func WithDelimiter(d rune) ReadOption {
	return func(c *readConfig) { c.delimiter = d }
}

func newReadConfig(opts []ReadOption) readConfig {
	c := readConfig{delimiter: ','}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// ReadCSV decodes a CSV table with a header row from r.
//
// Column types are detected from the values: integer, float, boolean or
// string. Cells listed in [MissingTokens] become missing values. ReadCSV
// does not close r.
func ReadCSV(r io.Reader, opts ...ReadOption) (*dataset.Dataset, error) {
	cfg := newReadConfig(opts)
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
		dataframe.WithDelimiter(cfg.delimiter),
	)
	if df.Err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, df.Err, "decode csv")
	}
	return fromDataFrame(df)
}

// ReadXLSX decodes the first (or selected) worksheet of an XLSX workbook.
// The first row holds the column names. Types are detected per column as
// in [ReadCSV].
func ReadXLSX(r io.Reader, opts ...ReadOption) (*dataset.Dataset, error) {
	cfg := newReadConfig(opts)
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()

	sheet := cfg.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.Invalid("sheet %q is empty", sheet)
	}

	// Trailing empty cells are omitted by excelize; pad every row to the
	// header width. Boolean cells come back as TRUE/FALSE.
	width := len(rows[0])
	records := make([][]string, len(rows))
	for i, row := range rows {
		rec := make([]string, width)
		copy(rec, row)
		for j, cell := range rec {
			switch cell {
			case "TRUE", "FALSE":
				rec[j] = strings.ToLower(cell)
			}
		}
		records[i] = rec
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
	)
	if df.Err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, df.Err, "decode sheet %q", sheet)
	}
	return fromDataFrame(df)
}

// Import reads the tabular file at path, choosing the decoder from its
// extension.
func Import(path string, opts ...ReadOption) (*dataset.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return Read(bytes.NewReader(data), format, opts...)
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format, opts ...ReadOption) (*dataset.Dataset, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r, opts...)
	case FormatTSV:
		return ReadCSV(r, append([]ReadOption{WithDelimiter('\t')}, opts...)...)
	case FormatXLSX:
		return ReadXLSX(r, opts...)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

func fromDataFrame(df dataframe.DataFrame) (*dataset.Dataset, error) {
	names := df.Names()
	cols := make([]dataset.Column, len(names))
	for i, name := range names {
		s := df.Col(name)
		if s.Err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, s.Err, "column %q", name)
		}
		col, err := fromSeries(name, s)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return dataset.New(cols...)
}

func fromSeries(name string, s series.Series) (dataset.Column, error) {
	n := s.Len()
	values := make([]any, n)
	var typ dataset.Type

	switch s.Type() {
	case series.Int:
		typ = dataset.TypeInt
	case series.Float:
		typ = dataset.TypeFloat
	case series.Bool:
		typ = dataset.TypeBool
	default:
		typ = dataset.TypeString
	}

	for i := 0; i < n; i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		switch typ {
		case dataset.TypeInt:
			v, err := e.Int()
			if err != nil {
				return dataset.Column{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "column %q row %d", name, i+1)
			}
			values[i] = v
		case dataset.TypeFloat:
			values[i] = e.Float()
		case dataset.TypeBool:
			v, err := e.Bool()
			if err != nil {
				return dataset.Column{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "column %q row %d", name, i+1)
			}
			values[i] = v
		default:
			values[i] = e.String()
		}
	}
	return dataset.Column{Name: name, Type: typ, Values: values}, nil
}

// ReadCategories decodes a two-column CSV of column names and category
// labels, as written by [WriteCategories]. The header row is required and
// its names are ignored.
func ReadCategories(r io.Reader) (map[string]string, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, df.Err, "decode categories")
	}
	if df.Ncol() != 2 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "categories need 2 columns (column, category), got %d", df.Ncol())
	}

	records := df.Records()[1:]
	out := make(map[string]string, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "categories row %d: empty column name", i+2)
		}
		if _, dup := out[name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "categories row %d: duplicate column %q", i+2, name)
		}
		out[name] = strings.TrimSpace(rec[1])
	}
	return out, nil
}

// ImportCategories reads a categories file from path.
func ImportCategories(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadCategories(f)
}
