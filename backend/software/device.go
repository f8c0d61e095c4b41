// Package software provides the CPU texture device.
//
// It implements driver.Device entirely in main memory and is the
// default device of the tex package when no GPU backend is registered.
// Because it needs no hardware context, it also backs the test suite.
package software

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tex/driver"
)

// Software device errors.
var (
	// ErrTextureNotFound is returned when an operation references an
	// unknown or destroyed texture handle.
	ErrTextureNotFound = errors.New("software: texture not found")

	// ErrInvalidRegion is returned when a write or copy region falls
	// outside the destination texture.
	ErrInvalidRegion = errors.New("software: region out of bounds")

	// ErrDataSize is returned when the pixel data length does not match
	// the transfer region.
	ErrDataSize = errors.New("software: pixel data size mismatch")

	// ErrMipmapsDisabled is returned by GenerateMipmaps when the device
	// was built with WithoutMipmaps.
	ErrMipmapsDisabled = errors.New("software: mipmap generation disabled")
)

// defaultMaxTextureSize mirrors the guaranteed WebGPU minimum for
// maxTextureDimension2D.
const defaultMaxTextureSize = 8192

// texture is the CPU-side storage behind one TextureID.
type texture struct {
	width  int
	height int
	format driver.Format
	pix    []byte   // base level, tightly packed RGBA8
	mips   [][]byte // levels 1..n, nil when not generated
}

// Device is a pure CPU implementation of driver.Device.
//
// All storage lives in main memory, so CopyTexture and ReadTexture are
// plain memory moves. The zero value is not usable; construct with New.
type Device struct {
	limits   driver.Limits
	features driver.Features

	mu       sync.RWMutex
	textures map[driver.TextureID]*texture
	nextID   atomic.Uint64

	logger atomic.Pointer[slog.Logger]
}

// Option configures a Device.
type Option func(*Device)

// WithMaxTextureSize overrides the maximum texture dimension. Values
// below 1 are ignored.
func WithMaxTextureSize(n int) Option {
	return func(d *Device) {
		if n >= 1 {
			d.limits.MaxTextureDimension2D = n
		}
	}
}

// WithoutSRGB disables sRGB storage support. Creation requests with
// FormatRGBA8SRGB then store linear RGBA8 instead.
func WithoutSRGB() Option {
	return func(d *Device) { d.features.SRGB = false }
}

// WithoutMipmaps disables mipmap generation support.
func WithoutMipmaps() Option {
	return func(d *Device) { d.features.Mipmaps = false }
}

// New creates a software device. By default it supports sRGB storage,
// mipmap generation, and textures up to 8192 pixels per dimension.
func New(opts ...Option) *Device {
	d := &Device{
		limits:   driver.Limits{MaxTextureDimension2D: defaultMaxTextureSize},
		features: driver.Features{SRGB: true, Mipmaps: true},
		textures: make(map[driver.TextureID]*texture),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns "software".
func (d *Device) Name() string { return "software" }

// Limits returns the device limits.
func (d *Device) Limits() driver.Limits { return d.limits }

// Features returns the device capabilities.
func (d *Device) Features() driver.Features { return d.features }

// SetLogger sets the logger used by the device. Called by tex.SetLogger
// through the registry; safe for concurrent use.
func (d *Device) SetLogger(l *slog.Logger) {
	d.logger.Store(l)
}

func (d *Device) log() *slog.Logger {
	if l := d.logger.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// CreateTexture allocates width x height RGBA8 storage. Content is
// undefined per the driver contract; the backing slice is zeroed only
// because Go allocation zeroes it.
func (d *Device) CreateTexture(width, height int, format driver.Format) (driver.TextureID, error) {
	if width <= 0 || height <= 0 {
		return driver.InvalidID, fmt.Errorf("%w: %dx%d", ErrInvalidRegion, width, height)
	}
	if !d.features.SRGB && format == driver.FormatRGBA8SRGB {
		format = driver.FormatRGBA8
	}

	t := &texture{
		width:  width,
		height: height,
		format: format,
		pix:    make([]byte, width*height*4),
	}
	id := driver.TextureID(d.nextID.Add(1))

	d.mu.Lock()
	d.textures[id] = t
	d.mu.Unlock()

	d.log().Debug("software: texture created",
		"id", uint64(id), "width", width, "height", height, "format", format.String())
	return id, nil
}

// DestroyTexture releases the storage behind id. Unknown IDs are
// ignored.
func (d *Device) DestroyTexture(id driver.TextureID) {
	if id == driver.InvalidID {
		return
	}
	d.mu.Lock()
	delete(d.textures, id)
	d.mu.Unlock()
}

// WriteTexture replaces the given region with tightly packed RGBA8 data.
func (d *Device) WriteTexture(id driver.TextureID, x, y, width, height int, data []byte) error {
	if len(data) != width*height*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrDataSize, len(data), width, height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	if x < 0 || y < 0 || width < 0 || height < 0 || x+width > t.width || y+height > t.height {
		return fmt.Errorf("%w: (%d,%d)+%dx%d in %dx%d", ErrInvalidRegion, x, y, width, height, t.width, t.height)
	}

	for row := 0; row < height; row++ {
		dstOff := ((y+row)*t.width + x) * 4
		srcOff := row * width * 4
		copy(t.pix[dstOff:dstOff+width*4], data[srcOff:srcOff+width*4])
	}
	// Base level changed, the old chain no longer matches it.
	t.mips = nil
	return nil
}

// CopyTexture copies the full content of src into dst at (dstX, dstY).
func (d *Device) CopyTexture(dst, src driver.TextureID, dstX, dstY int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.textures[src]
	if !ok {
		return fmt.Errorf("%w: source id %d", ErrTextureNotFound, src)
	}
	dt, ok := d.textures[dst]
	if !ok {
		return fmt.Errorf("%w: destination id %d", ErrTextureNotFound, dst)
	}
	if dstX < 0 || dstY < 0 || dstX+st.width > dt.width || dstY+st.height > dt.height {
		return fmt.Errorf("%w: (%d,%d)+%dx%d in %dx%d",
			ErrInvalidRegion, dstX, dstY, st.width, st.height, dt.width, dt.height)
	}

	// src == dst aliases the same slice; the row copy is still safe
	// because regions are processed top to bottom and a full-size copy
	// at (0,0) degenerates to copy onto itself.
	for row := 0; row < st.height; row++ {
		srcOff := row * st.width * 4
		dstOff := ((dstY+row)*dt.width + dstX) * 4
		copy(dt.pix[dstOff:dstOff+st.width*4], st.pix[srcOff:srcOff+st.width*4])
	}
	dt.mips = nil
	return nil
}

// ReadTexture returns a copy of the full base level content.
func (d *Device) ReadTexture(id driver.TextureID) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.textures[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	out := make([]byte, len(t.pix))
	copy(out, t.pix)
	return out, nil
}

// GenerateMipmaps builds the box-filtered mipmap chain from the current
// base level.
func (d *Device) GenerateMipmaps(id driver.TextureID) error {
	if !d.features.Mipmaps {
		return ErrMipmapsDisabled
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	t.mips = buildMipChain(t.pix, t.width, t.height)

	d.log().Debug("software: mipmaps generated",
		"id", uint64(id), "levels", len(t.mips)+1)
	return nil
}

// MipLevels reports the number of stored mip levels for a texture,
// including the base level. Used by tests; returns 0 for unknown IDs.
func (d *Device) MipLevels(id driver.TextureID) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.textures[id]
	if !ok {
		return 0
	}
	return 1 + len(t.mips)
}

// TextureCount reports the number of live textures. Used by tests to
// check for leaks.
func (d *Device) TextureCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.textures)
}
