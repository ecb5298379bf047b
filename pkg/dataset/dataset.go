package dataset

import (
	"math"
	"time"

	"github.com/matzehuels/nafig/pkg/errors"
)

// Type is the intrinsic type tag of a column. It is the default hue category
// when no explicit mapping is supplied.
type Type string

// Column types.
const (
	TypeFloat  Type = "float"
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
	TypeString Type = "string"
	TypeTime   Type = "time"
	TypeObject Type = "object"
)

// Column is a named, ordered sequence of optionally-missing values.
// A value is missing when it is nil or a floating-point NaN.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Len returns the number of rows in the column.
func (c Column) Len() int { return len(c.Values) }

// IsMissing reports whether row i is missing.
func (c Column) IsMissing(i int) bool { return IsMissing(c.Values[i]) }

// MissingCount returns the number of missing rows.
func (c Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// IsMissing reports whether v counts as a missing value.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case *time.Time:
		return x == nil
	}
	return false
}

// InferType derives a column type from its non-missing values.
// Integer and float values mixed together widen to float; a column with no
// present values is float, matching how NaN-only columns are usually typed.
func InferType(values []any) Type {
	var sawInt, sawFloat, sawBool, sawString, sawTime, sawOther bool
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			sawInt = true
		case float32, float64:
			sawFloat = true
		case bool:
			sawBool = true
		case string:
			sawString = true
		case time.Time:
			sawTime = true
		default:
			sawOther = true
		}
	}

	kinds := 0
	for _, b := range []bool{sawInt || sawFloat, sawBool, sawString, sawTime, sawOther} {
		if b {
			kinds++
		}
	}

	switch {
	case kinds > 1 || sawOther:
		return TypeObject
	case sawString:
		return TypeString
	case sawBool:
		return TypeBool
	case sawTime:
		return TypeTime
	case sawInt && !sawFloat:
		return TypeInt
	default:
		return TypeFloat
	}
}

// Dataset is an immutable, ordered collection of equally long columns.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a dataset from columns. Column names must be unique and valid,
// and every column must have the same number of rows. Columns without a Type
// get one from [InferType].
func New(columns ...Column) (*Dataset, error) {
	d := &Dataset{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if err := errors.ValidateColumnName(c.Name); err != nil {
			return nil, err
		}
		if _, dup := d.index[c.Name]; dup {
			return nil, errors.Invalid("duplicate column %q", c.Name)
		}
		if i == 0 {
			d.rows = c.Len()
		} else if c.Len() != d.rows {
			return nil, errors.Invalid("column %q has %d rows, want %d", c.Name, c.Len(), d.rows)
		}
		if c.Type == "" {
			c.Type = InferType(c.Values)
		}
		c.Values = append([]any(nil), c.Values...)
		d.columns[i] = c
		d.index[c.Name] = i
	}
	return d, nil
}

// MustNew is like [New] but panics on error. Intended for tests and examples.
func MustNew(columns ...Column) *Dataset {
	d, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return d
}

// NumRows returns the shared row count.
func (d *Dataset) NumRows() int { return d.rows }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.columns) }

// Names returns the column names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in dataset order. The slice is a copy; the
// Values slices are shared and must not be modified.
func (d *Dataset) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Index returns the position of the named column.
func (d *Dataset) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Types returns the intrinsic type of every column, keyed by name.
func (d *Dataset) Types() map[string]Type {
	types := make(map[string]Type, len(d.columns))
	for _, c := range d.columns {
		types[c.Name] = c.Type
	}
	return types
}
