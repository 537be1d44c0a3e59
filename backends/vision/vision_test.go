package vision

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
)

// checkerboard builds a small test image with a white top-left pixel.
func checkerboard(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	e := NewEngine()
	src := checkerboard(8, 8)

	var buf bytes.Buffer
	if err := e.EncodePNG(&buf, src); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}

	decoded, err := e.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), src.Bounds())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	e := NewEngine()
	if _, err := e.Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected garbage input to be rejected")
	}
}

func TestResize(t *testing.T) {
	e := NewEngine()
	src := checkerboard(8, 8)

	dst, err := e.Resize(src, 4, 2)
	if err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	b := dst.Bounds()
	if b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("resized bounds = %dx%d, want 4x2", b.Dx(), b.Dy())
	}

	if _, err := e.Resize(src, 0, 4); err == nil {
		t.Error("expected zero width to be rejected")
	}
}

func TestGrayscaleAndTensor(t *testing.T) {
	e := NewEngine()
	src := checkerboard(4, 4)

	X, err := e.Tensor(src)
	if err != nil {
		t.Fatalf("Tensor() error: %v", err)
	}

	r, c := X.Dims()
	if r != 4 || c != 4 {
		t.Fatalf("tensor shape = %dx%d, want 4x4", r, c)
	}

	// White pixel at (0,0), black at (0,1); values normalized to [0,1].
	if math.Abs(X.At(0, 0)-1.0) > 1e-9 {
		t.Errorf("tensor[0,0] = %v, want 1", X.At(0, 0))
	}
	if math.Abs(X.At(0, 1)) > 1e-9 {
		t.Errorf("tensor[0,1] = %v, want 0", X.At(0, 1))
	}
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			v := X.At(y, x)
			if v < 0 || v > 1 {
				t.Fatalf("tensor[%d,%d] = %v, outside [0,1]", y, x, v)
			}
		}
	}
}

func TestEngineHasNoVersion(t *testing.T) {
	// The unknown-version path in the namespace depends on this engine
	// not exposing a Version method.
	var engine any = NewEngine()
	if _, ok := engine.(interface{ Version() string }); ok {
		t.Fatal("vision engine unexpectedly exposes Version()")
	}
}
