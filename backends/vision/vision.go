// Package vision is the image backend: decoding, resizing, grayscale
// conversion, and image-to-matrix tensors.
//
// The engine deliberately exposes no Version method: the version report
// for this backend shows the unknown sentinel, which keeps that path
// honest in tests and in CheckVersions output.
package vision

import (
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/vision"

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		return NewEngine(), nil
	})
}

// Engine performs basic image operations.
type Engine struct{}

// NewEngine creates a vision engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Decode reads a PNG or JPEG image.
func (e *Engine) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "vision.Decode")
	}
	return img, nil
}

// DecodeFile reads a PNG or JPEG image from a file.
func (e *Engine) DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "vision.DecodeFile")
	}
	defer f.Close()
	return e.Decode(f)
}

// Resize scales an image to the given size with bilinear filtering.
func (e *Engine) Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.NewValueError("vision.Resize", "width and height must be positive")
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Grayscale converts an image to 8-bit grayscale.
func (e *Engine) Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// Tensor converts an image to a height×width matrix of grayscale
// intensities in [0, 1].
func (e *Engine) Tensor(img image.Image) (*mat.Dense, error) {
	bounds := img.Bounds()
	h := bounds.Dy()
	w := bounds.Dx()
	if h == 0 || w == 0 {
		return nil, errors.NewModelError("vision.Tensor", "empty image", errors.ErrEmptyData)
	}

	gray := e.Grayscale(img)
	out := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			out.Set(y, x, float64(v)/255.0)
		}
	}
	return out, nil
}

// EncodePNG writes an image as PNG.
func (e *Engine) EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "vision.EncodePNG")
	}
	return nil
}
