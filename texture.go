package tex

import (
	"fmt"
	"image"

	"github.com/gogpu/tex/driver"
	"github.com/gogpu/tex/internal/blit"
)

// Texture is a handle to pixel storage on a hardware device.
//
// A Texture exclusively owns its storage: no two textures refer to the
// same storage. Duplication, transfer and exchange are explicit via
// [Texture.Clone], [Texture.Take] and [Texture.Swap].
//
// The zero value is the empty state: no storage, size 0x0. Every
// operation on the empty state is well-defined and fails with
// [ErrTextureReleased] where storage would be required.
type Texture struct {
	dev    driver.Device
	id     driver.TextureID
	width  int
	height int

	smooth    bool
	repeated  bool
	srgb      bool
	mipmapped bool

	// flipped marks storage whose rows are bottom-up, e.g. after a
	// render-target transfer. Readback and sprite coordinates correct
	// for it; the flag travels with the storage through Clone, Take
	// and Swap.
	flipped bool

	label string
}

// New allocates a width x height texture with undefined content on the
// active device (or the device given via [WithDevice]).
//
// Zero or negative dimensions fail with [ErrInvalidSize]; dimensions
// above the device limit fail with [ErrSizeTooLarge]. The error return
// is the only failure channel, New never panics.
func New(width, height int, opts ...Option) (*Texture, error) {
	o := applyOptions(opts)
	return create(width, height, &o)
}

// create allocates storage per the resolved options. Shared by New and
// the loaders, so every creation path validates the same way.
func create(width, height int, o *textureOptions) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	caps := queryCaps(o.device)
	if width > caps.MaxSize || height > caps.MaxSize {
		return nil, fmt.Errorf("%w: %dx%d, limit %d", ErrSizeTooLarge, width, height, caps.MaxSize)
	}

	format := driver.FormatRGBA8
	srgb := false
	if o.srgb {
		if caps.SRGB {
			format = driver.FormatRGBA8SRGB
			srgb = true
		} else {
			Logger().Warn("tex: sRGB not supported, using linear storage",
				"device", o.device.Name(), "label", o.label)
		}
	}

	id, err := o.device.CreateTexture(width, height, format)
	if err != nil {
		return nil, fmt.Errorf("tex: create %dx%d texture: %w", width, height, err)
	}

	Logger().Debug("tex: texture created",
		"device", o.device.Name(), "id", uint64(id),
		"width", width, "height", height, "srgb", srgb, "label", o.label)

	return &Texture{
		dev:      o.device,
		id:       id,
		width:    width,
		height:   height,
		smooth:   o.smooth,
		repeated: o.repeated,
		srgb:     srgb,
		label:    o.label,
	}, nil
}

// Width returns the texture width in pixels, 0 for the empty state.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels, 0 for the empty state.
func (t *Texture) Height() int { return t.height }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() image.Point { return image.Pt(t.width, t.height) }

// IsEmpty reports whether the texture holds no storage.
func (t *Texture) IsEmpty() bool { return t.id == driver.InvalidID }

// NativeHandle returns the device handle behind the texture, or
// [driver.InvalidID] for the empty state. The handle stays valid until
// the next mutating operation on the texture.
func (t *Texture) NativeHandle() driver.TextureID { return t.id }

// Label returns the debug label given at creation.
func (t *Texture) Label() string { return t.label }

// SetSmooth selects smooth (linear) or nearest filtering. Filtering is
// sampling state, the stored pixels are unchanged.
func (t *Texture) SetSmooth(smooth bool) { t.smooth = smooth }

// Smooth reports whether smooth filtering is enabled.
func (t *Texture) Smooth() bool { return t.smooth }

// SetRepeated selects repeated (wrapping) or clamped addressing for
// coordinates outside [0, size).
func (t *Texture) SetRepeated(repeated bool) { t.repeated = repeated }

// Repeated reports whether repeated addressing is enabled.
func (t *Texture) Repeated() bool { return t.repeated }

// SRGB reports whether the storage is sRGB-encoded. The property is
// fixed at creation; a [WithSRGB] request on a device without sRGB
// support yields false.
func (t *Texture) SRGB() bool { return t.srgb }

// Mipmapped reports whether the texture currently carries a generated
// mipmap chain. Any update invalidates the chain and resets this.
func (t *Texture) Mipmapped() bool { return t.mipmapped }

// Update replaces the entire texture content. pixels must hold exactly
// width*height*4 bytes of tightly packed RGBA8.
func (t *Texture) Update(pixels []byte) error {
	if t.IsEmpty() {
		return ErrTextureReleased
	}
	if len(pixels) != t.width*t.height*4 {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(pixels), t.width*t.height*4)
	}
	if err := t.dev.WriteTexture(t.id, 0, 0, t.width, t.height, pixels); err != nil {
		return fmt.Errorf("tex: update: %w", err)
	}
	t.mipmapped = false
	return nil
}

// UpdateRect replaces the region r of the texture. pixels must hold
// exactly r.Dx()*r.Dy()*4 bytes. A region extending outside the
// texture fails with [ErrRegionOutOfBounds]; nothing is written.
func (t *Texture) UpdateRect(pixels []byte, r image.Rectangle) error {
	if t.IsEmpty() {
		return ErrTextureReleased
	}
	r = r.Canon()
	if !r.In(image.Rect(0, 0, t.width, t.height)) {
		return fmt.Errorf("%w: %v in %dx%d", ErrRegionOutOfBounds, r, t.width, t.height)
	}
	if r.Empty() {
		return nil
	}
	if len(pixels) != r.Dx()*r.Dy()*4 {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(pixels), r.Dx()*r.Dy()*4)
	}
	if err := t.dev.WriteTexture(t.id, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), pixels); err != nil {
		return fmt.Errorf("tex: update rect: %w", err)
	}
	t.mipmapped = false
	return nil
}

// UpdateFromTexture copies the full content of src into the texture at
// the destination offset. When both textures live on the same device
// the transfer stays there; across devices it falls back to a readback
// and upload.
func (t *Texture) UpdateFromTexture(src *Texture, at image.Point) error {
	if t.IsEmpty() || src == nil || src.IsEmpty() {
		return ErrTextureReleased
	}
	dst := image.Rectangle{Min: at, Max: at.Add(src.Size())}
	if !dst.In(image.Rect(0, 0, t.width, t.height)) {
		return fmt.Errorf("%w: %v in %dx%d", ErrRegionOutOfBounds, dst, t.width, t.height)
	}

	if t.dev == src.dev {
		if err := t.dev.CopyTexture(t.id, src.id, at.X, at.Y); err != nil {
			return fmt.Errorf("tex: update from texture: %w", err)
		}
	} else {
		pixels, err := src.dev.ReadTexture(src.id)
		if err != nil {
			return fmt.Errorf("tex: update from texture: read source: %w", err)
		}
		if err := t.dev.WriteTexture(t.id, at.X, at.Y, src.width, src.height, pixels); err != nil {
			return fmt.Errorf("tex: update from texture: %w", err)
		}
	}
	t.mipmapped = false
	return nil
}

// UpdateFromImage copies img into the texture at the destination
// offset. The image is converted to tightly packed RGBA8 first.
func (t *Texture) UpdateFromImage(img image.Image, at image.Point) error {
	if t.IsEmpty() {
		return ErrTextureReleased
	}
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrSizeMismatch)
	}
	b := img.Bounds()
	pixels := blit.ExtractRGBA(img, b)
	return t.UpdateRect(pixels, image.Rectangle{Min: at, Max: at.Add(b.Size())})
}

// UpdateFromPixmap copies pm into the texture at the destination
// offset.
func (t *Texture) UpdateFromPixmap(pm *Pixmap, at image.Point) error {
	if t.IsEmpty() {
		return ErrTextureReleased
	}
	if pm == nil {
		return fmt.Errorf("%w: nil pixmap", ErrSizeMismatch)
	}
	return t.UpdateRect(pm.Data(), image.Rectangle{Min: at, Max: at.Add(image.Pt(pm.Width(), pm.Height()))})
}

// CopyToPixmap reads the full texture content back into a new Pixmap.
// Row 0 of the result is always the logical top row, regardless of how
// the storage is oriented.
func (t *Texture) CopyToPixmap() (*Pixmap, error) {
	if t.IsEmpty() {
		return nil, ErrTextureReleased
	}
	pixels, err := t.dev.ReadTexture(t.id)
	if err != nil {
		return nil, fmt.Errorf("tex: copy to pixmap: %w", err)
	}
	if t.flipped {
		blit.FlipRows(pixels, t.width, t.height)
	}
	return pixmapFromData(t.width, t.height, pixels), nil
}

// CopyToImage reads the full texture content back as an *image.NRGBA.
func (t *Texture) CopyToImage() (*image.NRGBA, error) {
	pm, err := t.CopyToPixmap()
	if err != nil {
		return nil, err
	}
	return pm.ToImage(), nil
}

// GenerateMipmap builds the mipmap chain from the current content.
// It fails with [ErrMipmapUnsupported] when the device cannot generate
// mipmaps and [ErrTextureReleased] on the empty state. The chain is
// invalidated again by any update.
func (t *Texture) GenerateMipmap() error {
	if t.IsEmpty() {
		return ErrTextureReleased
	}
	if !queryCaps(t.dev).Mipmaps {
		return ErrMipmapUnsupported
	}
	if err := t.dev.GenerateMipmaps(t.id); err != nil {
		return fmt.Errorf("tex: generate mipmap: %w", err)
	}
	t.mipmapped = true
	return nil
}

// Clone creates an independent duplicate: fresh storage with the same
// size, content and flags. Mutating either texture never affects the
// other. Cloning the empty state yields a new empty texture with the
// same flags.
func (t *Texture) Clone() (*Texture, error) {
	dup := &Texture{
		dev:      t.dev,
		smooth:   t.smooth,
		repeated: t.repeated,
		srgb:     t.srgb,
		flipped:  t.flipped,
		label:    t.label,
	}
	if t.IsEmpty() {
		return dup, nil
	}

	format := driver.FormatRGBA8
	if t.srgb {
		format = driver.FormatRGBA8SRGB
	}
	id, err := t.dev.CreateTexture(t.width, t.height, format)
	if err != nil {
		return nil, fmt.Errorf("tex: clone: %w", err)
	}
	if err := t.dev.CopyTexture(id, t.id, 0, 0); err != nil {
		t.dev.DestroyTexture(id)
		return nil, fmt.Errorf("tex: clone: %w", err)
	}
	dup.id = id
	dup.width = t.width
	dup.height = t.height
	return dup, nil
}

// Take transfers ownership of src's storage to t. t's previous storage
// is released, and src is left in the empty state (no storage, size
// 0x0, default flags). The pixel data itself is not touched; only the
// handle moves. Take(t) is a no-op.
func (t *Texture) Take(src *Texture) {
	if t == src || src == nil {
		return
	}
	if !t.IsEmpty() {
		t.dev.DestroyTexture(t.id)
	}
	dev := t.dev
	*t = *src
	*src = Texture{dev: src.dev}
	if t.dev == nil {
		t.dev = dev
	}
}

// Swap exchanges the entire state of two textures, storage and flags
// alike. No device calls are made and no re-validation happens; both
// textures were valid before, so both are valid after.
func (t *Texture) Swap(other *Texture) {
	if t == other || other == nil {
		return
	}
	*t, *other = *other, *t
}

// Close releases the storage and leaves the texture in the empty
// state. Closing an already-closed or empty texture is a no-op.
// Close always returns nil; it satisfies io.Closer so textures work
// with cleanup helpers.
func (t *Texture) Close() error {
	if t.IsEmpty() {
		return nil
	}
	Logger().Debug("tex: texture released",
		"device", t.dev.Name(), "id", uint64(t.id), "label", t.label)
	t.dev.DestroyTexture(t.id)
	*t = Texture{dev: t.dev}
	return nil
}

// setFlipped marks the storage as bottom-up. Used when the content
// arrives from a render target whose row order is inverted.
func (t *Texture) setFlipped(flipped bool) { t.flipped = flipped }
