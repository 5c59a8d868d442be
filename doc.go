// Package brushsurf provides the raster backing store for a paint/brush
// engine: a fixed-size canvas kept as 64x64 tiles of 16-bit premultiplied
// RGBA, painted through a tile request protocol and read back as packed
// 8-bit RGBA.
//
// # Quick Start
//
//	s, err := brushsurf.New(400, 200)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	_ = s.BeginAtomic()
//	req := brushsurf.TileRequest{TX: 0, TY: 0}
//	_ = s.TileRequestStart(&req)
//	// ... write req.Buffer ...
//	_ = s.TileRequestEnd(&req)
//	rois, _ := s.EndAtomic()
//
//	pix := s.ReadRGBA8() // 400*200*4 bytes
//
// # Tile Store
//
// All tiles live in one contiguous buffer sized to the tile grid,
// ceil(width/64) x ceil(height/64) tiles, row-major by tile row. Edge tiles
// are partially unused. Every pixel starts at the background color, opaque
// white by default.
//
// # Tile Requests
//
// TileRequestStart hands out a direct view into the tile buffer for in-grid
// coordinates and a shared null tile otherwise. TileRequestEnd wipes the
// null tile, so painting past the canvas edge is a silent no-op and can
// never leak into neighbouring tiles. Requests are strictly sequential.
//
// # Atomic Sessions
//
// BeginAtomic and EndAtomic bracket a batch of dabs. EndAtomic reports the
// region of interest: the pixel rectangles covering every tile requested
// since BeginAtomic, or nothing when no tile was touched.
//
// # Readback
//
// ReadRGBA8 converts each 16-bit channel to 8 bits by keeping the high
// byte. The conversion truncates rather than rounds; this is part of the
// contract, not an approximation.
//
// # Concurrency
//
// A Surface is driven by one goroutine. The package provides no locking;
// hosts that read back from another goroutine must serialize access.
// ReadRGBA8Parallel fans conversion out over tile rows internally and joins
// before returning.
//
// # Related Packages
//
//   - dab: round brush dabs drawn through the tile request protocol
//   - present: uploads ROI rectangles to a GPU texture via gpucontext
package brushsurf
