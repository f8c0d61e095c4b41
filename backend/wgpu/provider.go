//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/gputypes"
)

// Provider errors.
var (
	// ErrNilProvider is returned when constructing from a nil provider.
	ErrNilProvider = errors.New("wgpu: device provider is nil")

	// ErrNoHALAccess is returned when the provider does not expose the
	// underlying HAL device and queue.
	ErrNoHALAccess = errors.New("wgpu: provider does not expose HAL device access")
)

// halProvider is the conventional escape hatch gpucontext providers
// implement to hand out the raw wgpu HAL objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewFromProvider creates a texture device sharing the GPU context of a
// host application.
//
// The provider (typically a gogpu window context) must implement
// HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue. If limits is nil, WebGPU default limits are assumed.
//
//	dev, err := wgpu.NewFromProvider(app.Context(), nil)
//	if err != nil { ... }
//	tex.Register(dev)
func NewFromProvider(provider gpucontext.DeviceProvider, limits *gputypes.Limits) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}

	return New(device, queue, limits)
}
