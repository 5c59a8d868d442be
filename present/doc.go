// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present uploads the changed parts of a brushsurf.Surface to a GPU
// texture.
//
// The data flow is:
//
//	brush engine -> Surface tiles (16-bit) -> ROI -> 8-bit region -> texture
//
// # Usage
//
//	p, err := present.New(app.GPUContextProvider(), surf, texture)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	surf.BeginAtomic()
//	// ... draw dabs ...
//	rois, _ := surf.EndAtomic()
//
//	p.Invalidate(rois)
//	if _, err := p.Flush(); err != nil {
//	    return err
//	}
//
// The first Flush always uploads the whole canvas. Later flushes upload
// only the invalidated rectangles, converted into the byte order the
// provider's surface format expects.
//
// # Thread Safety
//
// Presenter is NOT safe for concurrent use, and must be driven from the
// goroutine that drives the Surface.
//
// # Integration Without Circular Imports
//
// The package only depends on gpucontext interfaces:
//
//   - gpucontext.DeviceProvider selects the upload byte order
//   - gpucontext.TextureUpdater takes full-frame uploads when the target
//     implements it
//   - RegionWriter takes partial uploads
package present
