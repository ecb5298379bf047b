package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/nafig/pkg/cache"
	"github.com/matzehuels/nafig/pkg/dataset"
	"github.com/matzehuels/nafig/pkg/errors"
	nafigio "github.com/matzehuels/nafig/pkg/io"
	"github.com/matzehuels/nafig/pkg/observability"
)

// Load reads the dataset named by opts.Input.
func Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	if opts.Input == "" {
		return nil, errors.Invalid("input file is required")
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	ds, err := nafigio.Import(opts.Input, opts.ReadOptions()...)

	rows, cols := 0, 0
	if ds != nil {
		rows, cols = ds.NumRows(), ds.NumCols()
	}
	hooks.OnLoadComplete(ctx, opts.Input, rows, cols, time.Since(start), err)
	return ds, err
}

// HashDataset returns a content hash of ds covering column names, types and
// values. Missing values hash alike whether they are nil or NaN.
func HashDataset(ds *dataset.Dataset) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d\x00", ds.NumRows())
	for _, c := range ds.Columns() {
		fmt.Fprintf(&buf, "%s\x00%s\x00", c.Name, c.Type)
		for _, v := range c.Values {
			buf.WriteString(hashValue(v))
			buf.WriteByte(0x1f)
		}
		buf.WriteByte(0x1e)
	}
	return cache.Hash(buf.Bytes())
}

func hashValue(v any) string {
	if dataset.IsMissing(v) {
		return "\x00NA"
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	}
	return fmt.Sprintf("%T:%v", v, v)
}
