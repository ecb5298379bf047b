package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
)

const sampleCSV = `id,score,city,active
1,2.5,Berlin,true
NA,,Paris,false
3,NaN,,true
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if got := ds.Names(); !reflect.DeepEqual(got, []string{"id", "score", "city", "active"}) {
		t.Errorf("Names() = %v", got)
	}
	if ds.NumRows() != 3 {
		t.Errorf("NumRows() = %d", ds.NumRows())
	}

	tests := []struct {
		name    string
		typ     dataset.Type
		values  []any
		missing int
	}{
		{"id", dataset.TypeInt, []any{1, nil, 3}, 1},
		{"score", dataset.TypeFloat, []any{2.5, nil, nil}, 2},
		{"city", dataset.TypeString, []any{"Berlin", "Paris", nil}, 1},
		{"active", dataset.TypeBool, []any{true, false, true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := ds.Column(tt.name)
			if !ok {
				t.Fatal("column missing")
			}
			if col.Type != tt.typ {
				t.Errorf("Type = %s, want %s", col.Type, tt.typ)
			}
			if !reflect.DeepEqual(col.Values, tt.values) {
				t.Errorf("Values = %v, want %v", col.Values, tt.values)
			}
			if col.MissingCount() != tt.missing {
				t.Errorf("MissingCount() = %d, want %d", col.MissingCount(), tt.missing)
			}
		})
	}
}

func TestReadTSV(t *testing.T) {
	ds, err := Read(strings.NewReader("a\tb\n1\tx\n2\tNA\n"), FormatTSV)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := ds.Column("b")
	if col.MissingCount() != 1 {
		t.Errorf("MissingCount() = %d", col.MissingCount())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(ds, &buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(back.Columns(), ds.Columns()) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", back.Columns(), ds.Columns())
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	ds := dataset.MustNew(
		dataset.Column{Name: "n", Values: []any{1, nil, 3}},
		dataset.Column{Name: "x", Values: []any{0.5, 1.5, nil}},
		dataset.Column{Name: "s", Values: []any{nil, "b", "c"}},
		dataset.Column{Name: "ok", Values: []any{true, false, true}},
	)

	var buf bytes.Buffer
	if err := WriteXLSX(ds, &buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	back, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}

	for _, name := range ds.Names() {
		want, _ := ds.Column(name)
		got, ok := back.Column(name)
		if !ok {
			t.Errorf("column %s missing", name)
			continue
		}
		if got.Type != want.Type {
			t.Errorf("%s type = %s, want %s", name, got.Type, want.Type)
		}
		if !reflect.DeepEqual(got.Values, want.Values) {
			t.Errorf("%s = %v, want %v", name, got.Values, want.Values)
		}
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.csv", "out.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(ds, path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			back, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if back.NumCols() != ds.NumCols() || back.NumRows() != ds.NumRows() {
				t.Errorf("shape = %dx%d", back.NumRows(), back.NumCols())
			}
			sa, _ := dataset.Summarize(ds)
			sb, _ := dataset.Summarize(back)
			if !reflect.DeepEqual(sa, sb) {
				t.Errorf("missingness changed: %v vs %v", sb, sa)
			}
		})
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Import(filepath.Join(dir, "absent.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}

	_, err = Import(filepath.Join(dir, "data.parquet"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unsupported err = %v", err)
	}

	bad := filepath.Join(dir, "bad.xlsx")
	if err := os.WriteFile(bad, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Import(bad)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("corrupt workbook err = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.csv":      FormatCSV,
		"b.TSV":      FormatTSV,
		"dir/c.xlsx": FormatXLSX,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
	if _, err := FormatFromPath("noext"); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestCategoriesRoundTrip(t *testing.T) {
	names := []string{"feature_0", "feature_1", "feature_2"}
	cats := []string{"Binary", "Continuous", "Binary"}

	var buf bytes.Buffer
	if err := WriteCategories(&buf, names, cats); err != nil {
		t.Fatalf("WriteCategories: %v", err)
	}
	got, err := ReadCategories(&buf)
	if err != nil {
		t.Fatalf("ReadCategories: %v", err)
	}
	want := map[string]string{"feature_0": "Binary", "feature_1": "Continuous", "feature_2": "Binary"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadCategories = %v, want %v", got, want)
	}
}

func TestReadCategoriesErrors(t *testing.T) {
	tests := map[string]string{
		"one column": "column\na\n",
		"duplicate":  "column,category\na,x\na,y\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadCategories(strings.NewReader(in)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v", err)
			}
		})
	}

	if err := WriteCategories(&bytes.Buffer{}, []string{"a"}, nil); !errors.IsInvalidInput(err) {
		t.Errorf("length mismatch err = %v", err)
	}
}
