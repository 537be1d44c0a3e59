// Package plotting is the chart backend on gonum.org/v1/plot. Building
// the engine is where the real deferred cost sits: gonum/plot pulls in
// font handling, and the first plot triggers font loading. A namespace
// that never plots never pays for any of it.
package plotting

import (
	"sync"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/plotting"

const engineVersion = "gonum/plot v0.16.0"

// Config holds the plotting defaults a namespace applies before
// resolution.
type Config struct {
	WidthInches  float64
	HeightInches float64
}

var (
	cfgMu sync.Mutex
	cfg   = Config{WidthInches: 6, HeightInches: 4}
)

// Configure sets the defaults the next built engine uses. Engines built
// earlier keep the settings they were built with.
func Configure(c Config) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	if c.WidthInches > 0 {
		cfg.WidthInches = c.WidthInches
	}
	if c.HeightInches > 0 {
		cfg.HeightInches = c.HeightInches
	}
}

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		cfgMu.Lock()
		c := cfg
		cfgMu.Unlock()
		return NewEngine(c), nil
	})
}

// Engine builds charts from matrices and vectors.
type Engine struct {
	width  vg.Length
	height vg.Length
}

// NewEngine creates a plotting engine with the given defaults.
func NewEngine(c Config) *Engine {
	return &Engine{
		width:  vg.Length(c.WidthInches) * vg.Inch,
		height: vg.Length(c.HeightInches) * vg.Inch,
	}
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return engineVersion }

// xyFromMatrix reads the first two columns of X as points.
func xyFromMatrix(X mat.Matrix) (plotter.XYs, error) {
	r, c := X.Dims()
	if r == 0 || c < 2 {
		return nil, errors.NewDimensionError("plotting.xyFromMatrix", 2, c, 1)
	}
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = X.At(i, 0)
		pts[i].Y = X.At(i, 1)
	}
	return pts, nil
}

// Scatter builds a scatter plot of the first two columns of X.
func (e *Engine) Scatter(X mat.Matrix, title string) (*plot.Plot, error) {
	pts, err := xyFromMatrix(X)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.Scatter")
	}
	p.Add(s)
	return p, nil
}

// Line builds a line plot of the first two columns of X.
func (e *Engine) Line(X mat.Matrix, title string) (*plot.Plot, error) {
	pts, err := xyFromMatrix(X)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.Line")
	}
	p.Add(l)
	return p, nil
}

// Histogram builds a histogram of values with the given bin count.
func (e *Engine) Histogram(values []float64, bins int, title string) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, errors.NewModelError("plotting.Histogram", "empty data", errors.ErrEmptyData)
	}
	if bins <= 0 {
		return nil, errors.NewValueError("plotting.Histogram", "bins must be positive")
	}

	p := plot.New()
	p.Title.Text = title

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.Histogram")
	}
	p.Add(h)
	return p, nil
}

// SavePNG renders a plot to a PNG file at the engine's default size.
func (e *Engine) SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(e.width, e.height, path); err != nil {
		return errors.Wrap(err, "plotting.SavePNG")
	}
	return nil
}
