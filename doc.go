// Package tex manages hardware-backed 2D texture resources.
//
// # Overview
//
// A Texture owns pixel storage on a hardware device (a GPU, or the
// built-in software device) and exposes explicit operations for
// creating, updating, duplicating and reading back that storage. The
// pixel format is always 8-bit RGBA, tightly packed, 4 bytes per pixel.
//
// # Quick Start
//
//	import "github.com/gogpu/tex"
//
//	// Load a texture from a PNG file.
//	t, err := tex.NewFromFile("sprite.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	t.SetSmooth(true)
//
//	// Read the pixels back for inspection.
//	pm, err := t.CopyToPixmap()
//
// # Devices
//
// Textures are allocated on the active device. By default this is the
// CPU software device, so the package works without any GPU. GPU
// backends register via [Register]:
//
//	dev, err := wgpu.New(halDevice, halQueue, nil)
//	if err != nil { ... }
//	tex.Register(dev)
//
// # Ownership semantics
//
// A Texture exclusively owns its storage. [Texture.Clone] duplicates
// the storage, [Texture.Take] transfers it leaving the source empty,
// and [Texture.Swap] exchanges it. [Texture.Close] releases it;
// closing twice is safe.
//
// A single Texture must not be mutated from multiple goroutines at
// once. Distinct textures on the same device may be used concurrently.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
package tex

// Version is the current version of the library.
const Version = "0.1.0"
