// Package frame is the data-frame backend, wrapping go-gota. Besides
// the usual frame operations it bridges frames to gonum matrices so the
// estimator backends can consume tabular data.
package frame

import (
	"io"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/frame"

const engineVersion = "gota v0.12.0"

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		return NewEngine(), nil
	})
}

// Engine is the data-frame toolkit.
type Engine struct{}

// NewEngine creates a frame engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return engineVersion }

// FromRecords builds a frame from string records; the first record is
// the header row.
func (e *Engine) FromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) < 2 {
		return dataframe.DataFrame{}, errors.NewModelError("frame.FromRecords", "need a header row and at least one data row", errors.ErrEmptyData)
	}
	df := dataframe.LoadRecords(records)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "frame.FromRecords")
	}
	return df, nil
}

// ReadCSV parses CSV data into a frame.
func (e *Engine) ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "frame.ReadCSV")
	}
	return df, nil
}

// Describe returns summary statistics per column.
func (e *Engine) Describe(df dataframe.DataFrame) dataframe.DataFrame {
	return df.Describe()
}

// Select returns a frame with only the named columns.
func (e *Engine) Select(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, error) {
	out := df.Select(columns)
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "frame.Select")
	}
	return out, nil
}

// NumMatrix converts the numeric columns of a frame into a gonum
// matrix, the bridge the estimator backends consume. Non-numeric
// columns are skipped; a frame with none is an error.
func (e *Engine) NumMatrix(df dataframe.DataFrame) (*mat.Dense, []string, error) {
	var numeric []string
	for i, typ := range df.Types() {
		if typ == series.Float || typ == series.Int {
			numeric = append(numeric, df.Names()[i])
		}
	}
	if len(numeric) == 0 {
		return nil, nil, errors.NewModelError("frame.NumMatrix", "no numeric columns", errors.ErrEmptyData)
	}

	sub := df.Select(numeric)
	if sub.Err != nil {
		return nil, nil, errors.Wrap(sub.Err, "frame.NumMatrix")
	}

	r, c := sub.Nrow(), sub.Ncol()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			out.Set(i, j, sub.Elem(i, j).Float())
		}
	}
	return out, numeric, nil
}
