//go:build !nogpu

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tex/driver"
)

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil, nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil, nil, nil) error = %v, want ErrNilDevice", err)
	}
}

func TestNewFromProviderNil(t *testing.T) {
	if _, err := NewFromProvider(nil, nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("error = %v, want ErrNilProvider", err)
	}
}

// nullProvider implements gpucontext.DeviceProvider without exposing
// HAL access.
type nullProvider struct{}

func (nullProvider) Device() gpucontext.Device   { return nil }
func (nullProvider) Queue() gpucontext.Queue     { return nil }
func (nullProvider) Adapter() gpucontext.Adapter { return nil }
func (nullProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
func (nullProvider) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

// bareHalProvider exposes the HAL accessors but returns nothing useful.
type bareHalProvider struct{ nullProvider }

func (bareHalProvider) HalDevice() any { return nil }
func (bareHalProvider) HalQueue() any  { return nil }

func TestNewFromProviderWithoutHAL(t *testing.T) {
	if _, err := NewFromProvider(nullProvider{}, nil); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("plain provider: error = %v, want ErrNoHALAccess", err)
	}
	if _, err := NewFromProvider(bareHalProvider{}, nil); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("nil HAL objects: error = %v, want ErrNoHALAccess", err)
	}
}

func TestToWGPUFormat(t *testing.T) {
	if got := toWGPUFormat(driver.FormatRGBA8); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("linear format = %v", got)
	}
	if got := toWGPUFormat(driver.FormatRGBA8SRGB); got == gputypes.TextureFormatRGBA8Unorm {
		t.Error("sRGB format mapped to the linear format")
	}
}
