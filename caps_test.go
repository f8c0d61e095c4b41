package tex

import (
	"testing"

	"github.com/gogpu/tex/backend/software"
)

func TestDeviceCapabilities(t *testing.T) {
	dev := software.New(
		software.WithMaxTextureSize(1024),
		software.WithoutSRGB(),
		software.WithoutMipmaps(),
	)

	caps := DeviceCapabilities(dev)
	if caps.MaxSize != 1024 {
		t.Errorf("MaxSize = %d, want 1024", caps.MaxSize)
	}
	if caps.SRGB {
		t.Error("SRGB = true for a device without sRGB")
	}
	if caps.Mipmaps {
		t.Error("Mipmaps = true for a device without mipmaps")
	}
}

func TestCapabilitiesCachedPerDevice(t *testing.T) {
	a := software.New(software.WithMaxTextureSize(256))
	b := software.New(software.WithMaxTextureSize(512))

	if got := DeviceCapabilities(a).MaxSize; got != 256 {
		t.Errorf("device a MaxSize = %d, want 256", got)
	}
	if got := DeviceCapabilities(b).MaxSize; got != 512 {
		t.Errorf("device b MaxSize = %d, want 512", got)
	}
	// Asking again returns the cached value.
	if got := DeviceCapabilities(a).MaxSize; got != 256 {
		t.Errorf("cached device a MaxSize = %d, want 256", got)
	}
}

func TestPackageCapabilityQuery(t *testing.T) {
	// The default software device backs the package-level queries when
	// no device is registered.
	if got := MaximumSize(); got < 1 {
		t.Errorf("MaximumSize() = %d, want a positive limit", got)
	}
	if !SupportsSRGB() {
		t.Error("SupportsSRGB() = false on the software device")
	}
	if !SupportsMipmaps() {
		t.Error("SupportsMipmaps() = false on the software device")
	}
}
