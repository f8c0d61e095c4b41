package tex

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Standard decoders for NewFromMemory and friends.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extended decoders from golang.org/x/image.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/tex/internal/blit"
)

// NewFromImage creates a texture holding the pixels of img. With
// [WithArea] only the clamped sub-rectangle is used; a sub-rectangle
// that leaves nothing after clamping fails with [ErrInvalidSize].
func NewFromImage(img image.Image, opts ...Option) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidSize)
	}
	o := applyOptions(opts)

	area, err := resolveArea(&o, img.Bounds())
	if err != nil {
		return nil, err
	}

	t, err := create(area.Dx(), area.Dy(), &o)
	if err != nil {
		return nil, err
	}
	if err := t.Update(blit.ExtractRGBA(img, area)); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// NewFromPixmap creates a texture holding the pixels of pm. With
// [WithArea] only the clamped sub-rectangle is used.
func NewFromPixmap(pm *Pixmap, opts ...Option) (*Texture, error) {
	if pm == nil {
		return nil, fmt.Errorf("%w: nil pixmap", ErrInvalidSize)
	}
	o := applyOptions(opts)

	area, err := resolveArea(&o, pm.Bounds())
	if err != nil {
		return nil, err
	}

	t, err := create(area.Dx(), area.Dy(), &o)
	if err != nil {
		return nil, err
	}

	pixels := pm.Data()
	if area != pm.Bounds() {
		pixels = make([]byte, area.Dx()*area.Dy()*4)
		blit.CopyRegion(pixels, area.Dx(), 0, 0,
			pm.Data(), pm.Width(), area.Min.X, area.Min.Y, area.Dx(), area.Dy())
	}
	if err := t.Update(pixels); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// NewFromMemory creates a texture from encoded image data. The format
// is auto-detected; PNG, JPEG, GIF, WebP, BMP and TIFF are supported.
func NewFromMemory(data []byte, opts ...Option) (*Texture, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrDecode)
	}
	return NewFromReader(bytes.NewReader(data), opts...)
}

// NewFromReader creates a texture from an encoded image stream. The
// format is auto-detected.
func NewFromReader(r io.Reader, opts ...Option) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return NewFromImage(img, opts...)
}

// NewFromFile creates a texture from an image file. The format is
// auto-detected from the content.
func NewFromFile(path string, opts ...Option) (*Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("tex: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return NewFromReader(f, opts...)
}

// resolveArea turns the WithArea option into a concrete source
// rectangle inside bounds. An absent or empty option selects the full
// source; a requested area that leaves nothing after clamping is an
// error.
func resolveArea(o *textureOptions, bounds image.Rectangle) (image.Rectangle, error) {
	if !o.hasArea || o.area.Canon().Empty() {
		if bounds.Empty() {
			return image.Rectangle{}, fmt.Errorf("%w: empty source", ErrInvalidSize)
		}
		return bounds, nil
	}
	area := blit.ClampRect(o.area, bounds)
	if area.Empty() {
		return image.Rectangle{}, fmt.Errorf("%w: area %v outside source %v", ErrInvalidSize, o.area, bounds)
	}
	return area, nil
}
