package tex

import (
	"sync"

	"github.com/gogpu/tex/driver"
)

// Capabilities reports what the hardware behind a device allows.
// Values are queried from the device once and cached for the process
// lifetime; the hardware context is assumed stable while the process
// runs.
type Capabilities struct {
	// MaxSize is the largest width or height a texture may have.
	MaxSize int

	// SRGB reports whether sRGB-encoded storage is available.
	SRGB bool

	// Mipmaps reports whether mipmap chains can be generated for
	// existing textures.
	Mipmaps bool
}

// capsCache maps driver.Device to *capsEntry. Reads after the first
// query for a device are lock-free.
var capsCache sync.Map

type capsEntry struct {
	once sync.Once
	caps Capabilities
}

// queryCaps returns the cached capabilities of d, querying the device
// on first use.
func queryCaps(d driver.Device) Capabilities {
	v, _ := capsCache.LoadOrStore(d, &capsEntry{})
	e := v.(*capsEntry)
	e.once.Do(func() {
		limits := d.Limits()
		features := d.Features()
		e.caps = Capabilities{
			MaxSize: limits.MaxTextureDimension2D,
			SRGB:    features.SRGB,
			Mipmaps: features.Mipmaps,
		}
		Logger().Debug("tex: device capabilities",
			"device", d.Name(),
			"maxSize", e.caps.MaxSize,
			"srgb", e.caps.SRGB,
			"mipmaps", e.caps.Mipmaps)
	})
	return e.caps
}

// DeviceCapabilities returns the capabilities of an explicit device.
func DeviceCapabilities(d driver.Device) Capabilities {
	return queryCaps(d)
}

// MaximumSize returns the largest texture dimension the active device
// supports.
func MaximumSize() int {
	return queryCaps(ActiveDevice()).MaxSize
}

// SupportsSRGB reports whether the active device can allocate
// sRGB-encoded textures.
func SupportsSRGB() bool {
	return queryCaps(ActiveDevice()).SRGB
}

// SupportsMipmaps reports whether the active device can generate
// mipmap chains.
func SupportsMipmaps() bool {
	return queryCaps(ActiveDevice()).Mipmaps
}
