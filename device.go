package tex

import (
	"errors"
	"sync"

	"github.com/gogpu/tex/backend/software"
	"github.com/gogpu/tex/driver"
)

var (
	deviceMu sync.RWMutex
	device   driver.Device

	softwareOnce sync.Once
	softwareDev  *software.Device
)

// Register installs a device for all subsequent texture allocations.
//
// Only one device can be registered. Subsequent calls replace the
// previous one; textures created on the old device keep working until
// closed, since each texture holds its own device reference.
//
// Typical usage with a GPU backend:
//
//	dev, err := wgpu.New(halDevice, halQueue, nil)
//	if err != nil { ... }
//	tex.Register(dev)
func Register(d driver.Device) error {
	if d == nil {
		return errors.New("tex: device must not be nil")
	}
	deviceMu.Lock()
	device = d
	deviceMu.Unlock()

	propagateLogger(d, Logger())
	Logger().Info("tex: device registered", "name", d.Name())
	return nil
}

// ActiveDevice returns the device new textures are allocated on: the
// registered device, or the built-in software device when none is
// registered.
func ActiveDevice() driver.Device {
	deviceMu.RLock()
	d := device
	deviceMu.RUnlock()
	if d != nil {
		return d
	}

	softwareOnce.Do(func() {
		softwareDev = software.New()
		propagateLogger(softwareDev, Logger())
	})
	return softwareDev
}
