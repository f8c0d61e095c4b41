package tex

import (
	"image"

	"github.com/gogpu/tex/driver"
)

// Option configures texture creation.
// Use functional options to customize New and the NewFrom* loaders.
//
// Example:
//
//	// Plain linear texture on the active device
//	t, err := tex.New(256, 256)
//
//	// sRGB texture with smooth filtering
//	t, err := tex.NewFromFile("albedo.png", tex.WithSRGB(), tex.WithSmooth())
type Option func(*textureOptions)

// textureOptions holds optional configuration for texture creation.
type textureOptions struct {
	srgb     bool
	smooth   bool
	repeated bool
	label    string
	device   driver.Device
	area     image.Rectangle
	hasArea  bool
}

// WithSRGB requests sRGB-encoded storage. When the device does not
// support sRGB textures the request silently downgrades to linear
// storage; check [Texture.SRGB] for the actual interpretation.
func WithSRGB() Option {
	return func(o *textureOptions) { o.srgb = true }
}

// WithSmooth enables smooth (linear) filtering from the start, as if
// SetSmooth(true) were called right after creation.
func WithSmooth() Option {
	return func(o *textureOptions) { o.smooth = true }
}

// WithRepeated enables repeated (wrapping) addressing from the start,
// as if SetRepeated(true) were called right after creation.
func WithRepeated() Option {
	return func(o *textureOptions) { o.repeated = true }
}

// WithLabel attaches a debug label to the texture. Backends forward it
// to the hardware API where supported.
func WithLabel(label string) Option {
	return func(o *textureOptions) { o.label = label }
}

// WithDevice allocates the texture on a specific device instead of the
// active one. Useful for tests and for applications driving several
// devices at once.
func WithDevice(d driver.Device) Option {
	return func(o *textureOptions) { o.device = d }
}

// WithArea restricts image- and pixmap-sourced loaders to a
// sub-rectangle of the source. The rectangle is clamped to the source
// bounds before any storage is allocated; a degenerate result fails
// with [ErrInvalidSize]. Loaders ignore an empty rectangle, and New
// ignores the option entirely.
func WithArea(r image.Rectangle) Option {
	return func(o *textureOptions) {
		o.area = r
		o.hasArea = true
	}
}

func applyOptions(opts []Option) textureOptions {
	var o textureOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.device == nil {
		o.device = ActiveDevice()
	}
	return o
}
