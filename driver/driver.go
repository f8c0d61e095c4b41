// Package driver defines the hardware abstraction used by tex.
//
// A Device owns texture storage on some hardware context (a GPU device,
// or CPU memory for the software device) and hands out opaque TextureID
// handles. The root tex package talks to exactly one Device at a time;
// backend packages (backend/wgpu, backend/software) provide the
// implementations.
//
// All Device operations are synchronous: when a call returns, its effect
// is observable to every subsequent call on the same device. Devices
// must be safe for concurrent use; they guard their resource tables
// internally.
package driver

// TextureID is an opaque handle to texture storage owned by a Device.
// IDs are never reused within a device's lifetime.
type TextureID uint64

// InvalidID is the zero TextureID. It never refers to live storage and
// marks the empty state of a released or moved-from texture.
const InvalidID TextureID = 0

// Format identifies the pixel format of texture storage.
//
// All data crossing the Device boundary is tightly packed row-major
// RGBA, 4 bytes per pixel, regardless of format: the format only selects
// how the hardware interprets the stored values when sampling.
type Format uint8

const (
	// FormatRGBA8 is 8-bit-per-channel RGBA with linear interpretation.
	FormatRGBA8 Format = iota

	// FormatRGBA8SRGB is 8-bit-per-channel RGBA stored as sRGB-encoded
	// values, converted to linear on sampling.
	FormatRGBA8SRGB
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA8SRGB:
		return "RGBA8-sRGB"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the storage size of one pixel. Both supported
// formats are 4 bytes.
func (f Format) BytesPerPixel() int { return 4 }

// Limits describes hard resource limits of a device. Limits are fixed
// for the lifetime of the device.
type Limits struct {
	// MaxTextureDimension2D is the largest width or height a 2D texture
	// may have on this device.
	MaxTextureDimension2D int
}

// Features describes optional capabilities of a device. Features are
// fixed for the lifetime of the device.
type Features struct {
	// SRGB reports whether the device can allocate FormatRGBA8SRGB
	// storage. Without it, sRGB requests downgrade to FormatRGBA8.
	SRGB bool

	// Mipmaps reports whether the device can generate mipmap chains
	// for existing textures.
	Mipmaps bool
}

// Device is implemented by texture storage providers.
//
// Coordinates are in pixels with the origin at the top-left corner.
// Pixel data is tightly packed row-major RGBA8, 4 bytes per pixel,
// exactly width*height*4 bytes for a full-texture transfer.
type Device interface {
	// Name returns the device name (e.g. "software", "wgpu").
	Name() string

	// Limits returns the device's resource limits.
	Limits() Limits

	// Features returns the device's optional capabilities.
	Features() Features

	// CreateTexture allocates storage for a width x height texture with
	// undefined initial content. Dimension validation is the caller's
	// concern; devices may still reject sizes they cannot allocate.
	CreateTexture(width, height int, format Format) (TextureID, error)

	// DestroyTexture releases the storage behind id. Destroying
	// InvalidID or an already-destroyed id is a no-op.
	DestroyTexture(id TextureID)

	// WriteTexture replaces the region (x, y)-(x+width, y+height) of
	// the texture with data. The region must lie fully inside the
	// texture and len(data) must be width*height*4.
	WriteTexture(id TextureID, x, y, width, height int, data []byte) error

	// CopyTexture copies the full content of src into dst at
	// (dstX, dstY). The destination region must lie fully inside dst.
	// The transfer stays on the device where the hardware allows it.
	CopyTexture(dst, src TextureID, dstX, dstY int) error

	// ReadTexture returns the full content of the texture as tightly
	// packed RGBA8, row 0 first.
	ReadTexture(id TextureID) ([]byte, error)

	// GenerateMipmaps builds the full mipmap chain for the texture from
	// its current base level content. Devices without the Mipmaps
	// feature return an error.
	GenerateMipmaps(id TextureID) error
}
