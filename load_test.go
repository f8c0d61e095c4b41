package tex

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/tex/backend/software"
)

// gradientImage builds a w x h image whose red channel encodes x and
// green channel encodes y.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func TestNewFromImage(t *testing.T) {
	dev := software.New()
	img := gradientImage(10, 15)

	t.Run("full image", func(t *testing.T) {
		tx, err := NewFromImage(img, WithDevice(dev))
		if err != nil {
			t.Fatalf("NewFromImage: %v", err)
		}
		defer tx.Close()

		if tx.Size() != image.Pt(10, 15) {
			t.Errorf("size = %v, want (10,15)", tx.Size())
		}
		pm, err := tx.CopyToPixmap()
		if err != nil {
			t.Fatal(err)
		}
		if got := pm.GetPixel(7, 11); got.R != 7 || got.G != 11 {
			t.Errorf("pixel (7,11) = %v, want R=7 G=11", got)
		}
	})

	t.Run("area clamped to source", func(t *testing.T) {
		// A 12x18 request at (5,5) leaves only 5x10 inside the image.
		tx, err := NewFromImage(img, WithDevice(dev), WithArea(image.Rect(5, 5, 17, 23)))
		if err != nil {
			t.Fatalf("NewFromImage with area: %v", err)
		}
		defer tx.Close()

		if tx.Size() != image.Pt(5, 10) {
			t.Errorf("size = %v, want (5,10) after clamping", tx.Size())
		}
		pm, err := tx.CopyToPixmap()
		if err != nil {
			t.Fatal(err)
		}
		// Texture (0,0) is image (5,5).
		if got := pm.GetPixel(0, 0); got.R != 5 || got.G != 5 {
			t.Errorf("pixel (0,0) = %v, want R=5 G=5", got)
		}
	})

	t.Run("negative origin clamps to zero", func(t *testing.T) {
		tx, err := NewFromImage(img, WithDevice(dev), WithArea(image.Rect(-3, -3, 4, 4)))
		if err != nil {
			t.Fatal(err)
		}
		defer tx.Close()
		if tx.Size() != image.Pt(4, 4) {
			t.Errorf("size = %v, want (4,4)", tx.Size())
		}
	})

	t.Run("area fully outside", func(t *testing.T) {
		_, err := NewFromImage(img, WithDevice(dev), WithArea(image.Rect(20, 20, 30, 30)))
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("error = %v, want ErrInvalidSize", err)
		}
	})

	t.Run("empty area selects full image", func(t *testing.T) {
		tx, err := NewFromImage(img, WithDevice(dev), WithArea(image.Rectangle{}))
		if err != nil {
			t.Fatal(err)
		}
		defer tx.Close()
		if tx.Size() != image.Pt(10, 15) {
			t.Errorf("size = %v, want full (10,15)", tx.Size())
		}
	})

	t.Run("nil image", func(t *testing.T) {
		if _, err := NewFromImage(nil, WithDevice(dev)); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("error = %v, want ErrInvalidSize", err)
		}
	})
}

func TestNewFromPixmap(t *testing.T) {
	dev := software.New()

	pm := NewPixmap(6, 6)
	pm.SetPixel(2, 3, color.NRGBA{R: 99, A: 255})

	t.Run("full pixmap", func(t *testing.T) {
		tx, err := NewFromPixmap(pm, WithDevice(dev))
		if err != nil {
			t.Fatalf("NewFromPixmap: %v", err)
		}
		defer tx.Close()

		out, err := tx.CopyToPixmap()
		if err != nil {
			t.Fatal(err)
		}
		if got := out.GetPixel(2, 3); got.R != 99 {
			t.Errorf("pixel (2,3) = %v, want R=99", got)
		}
	})

	t.Run("sub-area", func(t *testing.T) {
		tx, err := NewFromPixmap(pm, WithDevice(dev), WithArea(image.Rect(2, 2, 5, 5)))
		if err != nil {
			t.Fatal(err)
		}
		defer tx.Close()
		if tx.Size() != image.Pt(3, 3) {
			t.Errorf("size = %v, want (3,3)", tx.Size())
		}
		out, err := tx.CopyToPixmap()
		if err != nil {
			t.Fatal(err)
		}
		if got := out.GetPixel(0, 1); got.R != 99 {
			t.Errorf("pixel (0,1) = %v, want R=99 (source (2,3))", got)
		}
	})
}

func TestNewFromMemory(t *testing.T) {
	dev := software.New()

	var buf bytes.Buffer
	if err := png.Encode(&buf, gradientImage(10, 15)); err != nil {
		t.Fatal(err)
	}

	t.Run("png round trip", func(t *testing.T) {
		tx, err := NewFromMemory(buf.Bytes(), WithDevice(dev))
		if err != nil {
			t.Fatalf("NewFromMemory: %v", err)
		}
		defer tx.Close()

		if tx.Size() != image.Pt(10, 15) {
			t.Errorf("size = %v, want (10,15)", tx.Size())
		}
		pm, err := tx.CopyToPixmap()
		if err != nil {
			t.Fatal(err)
		}
		if got := pm.GetPixel(3, 9); got.R != 3 || got.G != 9 {
			t.Errorf("pixel (3,9) = %v, want R=3 G=9", got)
		}
	})

	t.Run("with area", func(t *testing.T) {
		tx, err := NewFromMemory(buf.Bytes(), WithDevice(dev), WithArea(image.Rect(5, 5, 17, 23)))
		if err != nil {
			t.Fatal(err)
		}
		defer tx.Close()
		if tx.Size() != image.Pt(5, 10) {
			t.Errorf("size = %v, want (5,10)", tx.Size())
		}
	})

	t.Run("garbage data", func(t *testing.T) {
		if _, err := NewFromMemory([]byte("not an image"), WithDevice(dev)); !errors.Is(err, ErrDecode) {
			t.Errorf("error = %v, want ErrDecode", err)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		if _, err := NewFromMemory(nil, WithDevice(dev)); !errors.Is(err, ErrDecode) {
			t.Errorf("error = %v, want ErrDecode", err)
		}
	})
}

func TestNewFromReader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradientImage(4, 4)); err != nil {
		t.Fatal(err)
	}

	tx, err := NewFromReader(&buf, WithDevice(software.New()))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	defer tx.Close()
	if tx.Size() != image.Pt(4, 4) {
		t.Errorf("size = %v, want (4,4)", tx.Size())
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gradient.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradientImage(8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	t.Run("existing file", func(t *testing.T) {
		tx, err := NewFromFile(path, WithDevice(software.New()))
		if err != nil {
			t.Fatalf("NewFromFile: %v", err)
		}
		defer tx.Close()
		if tx.Size() != image.Pt(8, 8) {
			t.Errorf("size = %v, want (8,8)", tx.Size())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewFromFile(filepath.Join(dir, "missing.png")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
