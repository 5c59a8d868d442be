// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/brushsurf"
)

// Common errors returned by Presenter operations.
var (
	// ErrClosed is returned when operations are attempted on a closed presenter.
	ErrClosed = errors.New("present: presenter is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("present: nil DeviceProvider")

	// ErrNilSurface is returned when a nil surface is passed.
	ErrNilSurface = errors.New("present: nil surface")

	// ErrNilTarget is returned when a nil RegionWriter is passed.
	ErrNilTarget = errors.New("present: nil target")
)

// RegionWriter receives partial texture uploads.
//
// data holds width*height pixels, tightly packed, in the presenter's
// byte order. It is only valid for the duration of the call.
type RegionWriter interface {
	WriteRegion(x, y, width, height int, data []byte) error
}

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Presenter tracks which parts of a surface still need uploading and
// pushes them to a texture.
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	provider gpucontext.DeviceProvider
	surface  *brushsurf.Surface
	target   RegionWriter
	format   brushsurf.PixelFormat

	pending brushsurf.Rectangles
	full    bool // Whole canvas must be uploaded on next Flush
	buf     []byte
	closed  bool
}

// New creates a Presenter uploading s into target. The upload byte order
// follows provider.SurfaceFormat(): BGRA8 for BGRA8Unorm swapchains and
// RGBA8 otherwise.
//
// Returns error if provider, s or target is nil.
func New(provider gpucontext.DeviceProvider, s *brushsurf.Surface, target RegionWriter) (*Presenter, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if s == nil {
		return nil, ErrNilSurface
	}
	if target == nil {
		return nil, ErrNilTarget
	}

	p := &Presenter{
		provider: provider,
		surface:  s,
		target:   target,
		format:   pixelFormatFor(provider.SurfaceFormat()),
		full:     true, // First Flush uploads everything
	}

	brushsurf.Logger().Debug("present: presenter created",
		"width", s.Width(), "height", s.Height(), "format", p.format.String())
	return p, nil
}

// pixelFormatFor maps a swapchain texture format to the readback byte order.
func pixelFormatFor(f gputypes.TextureFormat) brushsurf.PixelFormat {
	if f == gputypes.TextureFormatBGRA8Unorm {
		return brushsurf.FormatBGRA8
	}
	return brushsurf.FormatRGBA8
}

// TextureFormat returns the texture format uploads are encoded for.
func (p *Presenter) TextureFormat() gputypes.TextureFormat {
	if p.format == brushsurf.FormatBGRA8 {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// PixelFormat returns the byte order of upload data.
func (p *Presenter) PixelFormat() brushsurf.PixelFormat {
	return p.format
}

// Invalidate queues rects for the next Flush. Rectangles are clipped to the
// surface; empty ones are dropped. Invalidate on a closed presenter is a
// no-op.
func (p *Presenter) Invalidate(rects brushsurf.Rectangles) {
	if p.closed {
		return
	}
	bounds := p.surface.Bounds()
	for _, r := range rects {
		if c := r.Intersect(bounds); !c.Empty() {
			p.pending = append(p.pending, c)
		}
	}
}

// InvalidateAll schedules a full upload on the next Flush.
func (p *Presenter) InvalidateAll() {
	if p.closed {
		return
	}
	p.full = true
}

// IsDirty returns true if a Flush would upload anything.
func (p *Presenter) IsDirty() bool {
	return p.full || len(p.pending) > 0
}

// Flush uploads everything queued since the last Flush and returns the
// number of uploads made.
//
// A full upload goes through gpucontext.TextureUpdater when the target
// implements it, otherwise through WriteRegion. On error the failing
// region and the ones after it stay queued.
func (p *Presenter) Flush() (int, error) {
	if p.closed {
		return 0, ErrClosed
	}

	if p.full {
		if err := p.uploadFull(); err != nil {
			return 0, err
		}
		p.full = false
		p.pending = p.pending[:0]
		return 1, nil
	}

	n := 0
	for i, r := range p.pending {
		if err := p.upload(r); err != nil {
			p.pending = append(p.pending[:0], p.pending[i:]...)
			return n, err
		}
		n++
	}
	p.pending = p.pending[:0]
	return n, nil
}

// uploadFull pushes the whole canvas.
func (p *Presenter) uploadFull() error {
	bounds := p.surface.Bounds()
	data, err := p.read(bounds)
	if err != nil {
		return err
	}

	if updater, ok := p.target.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return fmt.Errorf("present: texture update failed: %w", err)
		}
		return nil
	}
	if err := p.target.WriteRegion(0, 0, bounds.Width, bounds.Height, data); err != nil {
		return fmt.Errorf("present: region write failed: %w", err)
	}
	return nil
}

// upload pushes one clipped rectangle.
func (p *Presenter) upload(r brushsurf.Rect) error {
	data, err := p.read(r)
	if err != nil {
		return err
	}
	if err := p.target.WriteRegion(r.X, r.Y, r.Width, r.Height, data); err != nil {
		return fmt.Errorf("present: region write failed at %v: %w", r, err)
	}
	return nil
}

// read converts r into the shared scratch buffer.
func (p *Presenter) read(r brushsurf.Rect) ([]byte, error) {
	need := p.format.RowBytes(r.Width) * r.Height
	if cap(p.buf) < need {
		p.buf = make([]byte, need)
	}
	data := p.buf[:need]
	if _, err := p.surface.ReadRegion(r, p.format, data); err != nil {
		return nil, fmt.Errorf("present: readback failed: %w", err)
	}
	return data, nil
}

// Provider returns the DeviceProvider associated with this presenter.
// Returns nil if the presenter is closed.
func (p *Presenter) Provider() gpucontext.DeviceProvider {
	if p.closed {
		return nil
	}
	return p.provider
}

// Close releases the presenter. The target is destroyed if it supports it;
// the surface is left open.
// Close is idempotent - multiple calls are safe.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if destroyer, ok := p.target.(textureDestroyer); ok {
		destroyer.Destroy()
	}

	p.pending = nil
	p.buf = nil
	p.provider = nil
	p.target = nil
	p.surface = nil
	return nil
}
