//go:build !nogpu

// Package wgpu provides the texture device backed by gogpu/wgpu, the
// Pure Go WebGPU implementation.
//
// The device wraps an existing hal.Device and hal.Queue. It never
// creates its own hardware context: the host application (typically a
// gogpu window) owns the context and shares it, either directly via
// New or through a gpucontext provider via NewFromProvider.
package wgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tex/driver"
	"github.com/gogpu/tex/internal/blit"
)

// Device errors.
var (
	// ErrNilDevice is returned when constructing without a HAL device
	// or queue.
	ErrNilDevice = errors.New("wgpu: HAL device is nil")

	// ErrTextureNotFound is returned when an operation references an
	// unknown or destroyed texture handle.
	ErrTextureNotFound = errors.New("wgpu: texture not found")

	// ErrInvalidRegion is returned when a write or copy region falls
	// outside the destination texture.
	ErrInvalidRegion = errors.New("wgpu: region out of bounds")

	// ErrDataSize is returned when the pixel data length does not match
	// the transfer region.
	ErrDataSize = errors.New("wgpu: pixel data size mismatch")

	// ErrGPUTimeout is returned when the GPU does not signal completion
	// within the fence deadline.
	ErrGPUTimeout = errors.New("wgpu: timed out waiting for GPU")
)

// fenceTimeout bounds every submission wait. A texture transfer that
// takes longer than this means the device is lost or hung.
const fenceTimeout = 5 * time.Second

// copyPitchAlignment is the BytesPerRow alignment WebGPU (and DX12)
// require for texture-buffer copies.
const copyPitchAlignment = 256

// texture tracks the HAL handle and metadata behind one TextureID.
type texture struct {
	halTex    hal.Texture
	width     int
	height    int
	format    driver.Format
	mipLevels uint32
	label     string
}

// Device implements driver.Device on gogpu/wgpu.
//
// All resource operations are protected by a mutex; transfers are
// synchronous (uploads go through queue.WriteTexture, readbacks wait on
// a fence), so the driver contract's observability guarantee holds.
type Device struct {
	device hal.Device
	queue  hal.Queue
	limits gputypes.Limits

	mu       sync.Mutex
	textures map[driver.TextureID]*texture
	nextID   atomic.Uint64

	logger atomic.Pointer[slog.Logger]
}

// New creates a texture device on an existing HAL device and queue.
// If limits is nil, WebGPU default limits are assumed.
func New(device hal.Device, queue hal.Queue, limits *gputypes.Limits) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	var lim gputypes.Limits
	if limits != nil {
		lim = *limits
	} else {
		lim = gputypes.DefaultLimits()
	}
	return &Device{
		device:   device,
		queue:    queue,
		limits:   lim,
		textures: make(map[driver.TextureID]*texture),
	}, nil
}

// Name returns "wgpu".
func (d *Device) Name() string { return "wgpu" }

// Limits returns the device limits.
func (d *Device) Limits() driver.Limits {
	return driver.Limits{MaxTextureDimension2D: int(d.limits.MaxTextureDimension2D)}
}

// Features returns the device capabilities. WebGPU guarantees sRGB
// formats, and mipmap chains are generated on the CPU, so both are
// always available.
func (d *Device) Features() driver.Features {
	return driver.Features{SRGB: true, Mipmaps: true}
}

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

func toWGPUFormat(f driver.Format) gputypes.TextureFormat {
	if f == driver.FormatRGBA8SRGB {
		return gputypes.TextureFormatRGBA8UnormSrgb
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// createHalTexture allocates the underlying HAL texture. Every texture
// carries CopySrc and CopyDst so it can be both read back and used as
// a transfer source without reallocation.
func (d *Device) createHalTexture(width, height int, format driver.Format, mipLevels uint32, label string) (hal.Texture, error) {
	return d.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: mipLevels,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        toWGPUFormat(format),
		Usage: gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopyDst |
			gputypes.TextureUsageCopySrc,
	})
}

// CreateTexture allocates width x height storage with a single mip
// level. Content is undefined until the first write.
func (d *Device) CreateTexture(width, height int, format driver.Format) (driver.TextureID, error) {
	if width <= 0 || height <= 0 {
		return driver.InvalidID, fmt.Errorf("%w: %dx%d", ErrInvalidRegion, width, height)
	}

	halTex, err := d.createHalTexture(width, height, format, 1, "tex_texture")
	if err != nil {
		return driver.InvalidID, fmt.Errorf("wgpu: create texture: %w", err)
	}

	id := driver.TextureID(d.nextID.Add(1))
	d.mu.Lock()
	d.textures[id] = &texture{
		halTex:    halTex,
		width:     width,
		height:    height,
		format:    format,
		mipLevels: 1,
		label:     "tex_texture",
	}
	d.mu.Unlock()

	d.log().Debug("wgpu: texture created",
		"id", uint64(id), "width", width, "height", height, "format", format.String())
	return id, nil
}

// DestroyTexture releases the HAL texture behind id. Unknown IDs are
// ignored.
func (d *Device) DestroyTexture(id driver.TextureID) {
	if id == driver.InvalidID {
		return
	}
	d.mu.Lock()
	t, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyTexture(t.halTex)
	}
}

// WriteTexture uploads tightly packed RGBA8 data into the given region
// of the base mip level via queue.WriteTexture.
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

	d.writeLevel(t.halTex, 0, x, y, width, height, data)
	return nil
}

// writeLevel issues one queue.WriteTexture for a mip level region.
func (d *Device) writeLevel(halTex hal.Texture, level uint32, x, y, width, height int, data []byte) {
	w := uint32(width)
	h := uint32(height)
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  halTex,
			MipLevel: level,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(y), Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}

// CopyTexture copies the full content of src into dst at (dstX, dstY).
// The transfer is staged through a readback of the source; operations
// on the device are serialized, so the copy observes every prior write.
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

	pixels, err := d.readLevel(st)
	if err != nil {
		return fmt.Errorf("wgpu: copy texture: %w", err)
	}
	d.writeLevel(dt.halTex, 0, dstX, dstY, st.width, st.height, pixels)
	return nil
}

// ReadTexture returns the full base level content as tightly packed
// RGBA8.
func (d *Device) ReadTexture(id driver.TextureID) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	return d.readLevel(t)
}

// readLevel copies the base mip level into a staging buffer, waits for
// the GPU, and returns the tightly packed pixels. BytesPerRow is
// aligned to 256 per the WebGPU copy rules; the padding is stripped
// from the readback.
func (d *Device) readLevel(t *texture) ([]byte, error) {
	w := uint32(t.width)
	h := uint32(t.height)
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "tex_readback_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(stagingBuf)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "tex_readback",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("tex_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// The texture sits in COPY_DST layout after an upload;
	// CopyTextureToBuffer needs TRANSFER_SRC. Explicit barrier for the
	// Vulkan backend, a no-op on Metal, GLES, software and noop.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.halTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopyDst,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(t.halTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: t.halTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Return to COPY_DST so the next upload's implicit layout matches.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.halTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageCopyDst,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return nil, fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return nil, ErrGPUTimeout
	}

	readback := make([]byte, stagingBufSize)
	if err := d.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	if alignedBytesPerRow == bytesPerRow {
		return readback[:uint64(bytesPerRow)*uint64(h)], nil
	}
	// Strip per-row padding from the aligned readback.
	tight := make([]byte, uint64(bytesPerRow)*uint64(h))
	for row := uint32(0); row < h; row++ {
		srcOff := int(row) * int(alignedBytesPerRow)
		dstOff := int(row) * int(bytesPerRow)
		copy(tight[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
	}
	return tight, nil
}

// GenerateMipmaps reads the base level back, box-filters the chain on
// the CPU, and uploads every level. When the texture was allocated
// with a single level it is reallocated with the full chain; the
// public TextureID is stable through the indirection.
func (d *Device) GenerateMipmaps(id driver.TextureID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}

	base, err := d.readLevel(t)
	if err != nil {
		return fmt.Errorf("wgpu: generate mipmaps: read base: %w", err)
	}

	levels := uint32(blit.MipLevelCount(t.width, t.height))
	if t.mipLevels != levels {
		halTex, err := d.createHalTexture(t.width, t.height, t.format, levels, t.label)
		if err != nil {
			return fmt.Errorf("wgpu: generate mipmaps: reallocate: %w", err)
		}
		d.device.DestroyTexture(t.halTex)
		t.halTex = halTex
		t.mipLevels = levels
		d.writeLevel(t.halTex, 0, 0, 0, t.width, t.height, base)
	}

	level := base
	lw, lh := t.width, t.height
	for i := uint32(1); i < levels; i++ {
		level, lw, lh = blit.Downsample(level, lw, lh)
		d.writeLevel(t.halTex, i, 0, 0, lw, lh, level)
	}

	d.log().Debug("wgpu: mipmaps generated", "id", uint64(id), "levels", levels)
	return nil
}
