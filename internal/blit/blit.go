// Package blit implements CPU-side pixel transfer primitives shared by
// the texture loaders and the software device.
//
// All buffers are tightly packed row-major RGBA, 4 bytes per pixel,
// no row padding.
package blit

import (
	"image"
	"math"
)

// ClampRect normalizes r and intersects it with bounds. Negative
// origins clamp to the bounds origin and oversized extents clamp to the
// remaining area. The result is empty when nothing overlaps.
func ClampRect(r, bounds image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(bounds)
}

// ExtractRGBA returns the pixels of img inside r as tightly packed
// RGBA8. The rectangle is in the image's own coordinate space and must
// lie within img.Bounds(); callers clamp first with ClampRect.
//
// *image.NRGBA and *image.RGBA sources copy rows directly; everything
// else goes through the color interface.
func ExtractRGBA(img image.Image, r image.Rectangle) []byte {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]byte, w*h*4)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(out[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(out[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cr, cg, cb, ca := img.At(r.Min.X+x, r.Min.Y+y).RGBA()
				i := (y*w + x) * 4
				// RGBA() yields 16-bit channels; shift to 8-bit.
				out[i+0] = byte(cr >> 8)
				out[i+1] = byte(cg >> 8)
				out[i+2] = byte(cb >> 8)
				out[i+3] = byte(ca >> 8)
			}
		}
	}
	return out
}

// CopyRegion copies a w x h pixel block from src (srcW pixels wide,
// block origin at srcX, srcY) into dst (dstW pixels wide, block origin
// at dstX, dstY). The block must lie inside both buffers.
func CopyRegion(dst []byte, dstW, dstX, dstY int, src []byte, srcW, srcX, srcY, w, h int) {
	for y := 0; y < h; y++ {
		so := ((srcY+y)*srcW + srcX) * 4
		do := ((dstY+y)*dstW + dstX) * 4
		copy(dst[do:do+w*4], src[so:so+w*4])
	}
}

// FlipRows reverses the row order of a w x h buffer in place, so that
// the bottom row becomes row 0.
func FlipRows(pix []byte, w, h int) {
	rowLen := w * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := pix[y*rowLen : (y+1)*rowLen]
		bot := pix[(h-1-y)*rowLen : (h-y)*rowLen]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// MipLevelCount returns the number of levels in a full mipmap chain
// for a width x height base, the base level included.
func MipLevelCount(width, height int) int {
	maxDim := max(width, height)
	return 1 + int(math.Floor(math.Log2(float64(maxDim))))
}

// Downsample halves src with a 2x2 box filter and returns the new
// buffer and its dimensions. Odd dimensions clamp the sample window to
// the last row/column.
func Downsample(src []byte, srcW, srcH int) ([]byte, int, int) {
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)
	dst := make([]byte, dstW*dstH*4)

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			sx := dx * 2
			sy := dy * 2
			sx1 := min(sx+1, srcW-1)
			sy1 := min(sy+1, srcH-1)

			o0 := (sy*srcW + sx) * 4
			o1 := (sy*srcW + sx1) * 4
			o2 := (sy1*srcW + sx) * 4
			o3 := (sy1*srcW + sx1) * 4

			do := (dy*dstW + dx) * 4
			for c := 0; c < 4; c++ {
				sum := uint16(src[o0+c]) + uint16(src[o1+c]) + uint16(src[o2+c]) + uint16(src[o3+c])
				dst[do+c] = byte(sum / 4)
			}
		}
	}
	return dst, dstW, dstH
}
