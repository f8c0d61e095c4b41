package tex

import "errors"

// Errors returned by texture operations. All failures are reported as
// error values; the package never panics on invalid input.
var (
	// ErrInvalidSize is returned when a requested texture size has a
	// zero or negative dimension, including degenerate sub-rectangles
	// after clamping.
	ErrInvalidSize = errors.New("tex: invalid texture size")

	// ErrSizeTooLarge is returned when a requested dimension exceeds
	// the device's maximum texture size.
	ErrSizeTooLarge = errors.New("tex: texture size exceeds device limit")

	// ErrTextureReleased is returned when an operation requires live
	// storage but the texture is empty (closed, moved-from, or never
	// created).
	ErrTextureReleased = errors.New("tex: texture released")

	// ErrSizeMismatch is returned when update data does not match the
	// texture size.
	ErrSizeMismatch = errors.New("tex: pixel data size mismatch")

	// ErrRegionOutOfBounds is returned when an update destination falls
	// outside the texture.
	ErrRegionOutOfBounds = errors.New("tex: update region out of bounds")

	// ErrMipmapUnsupported is returned by GenerateMipmap when the
	// device cannot generate mipmaps.
	ErrMipmapUnsupported = errors.New("tex: mipmap generation not supported")

	// ErrDecode is returned when image data cannot be decoded.
	ErrDecode = errors.New("tex: decode image")
)
