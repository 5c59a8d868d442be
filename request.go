package brushsurf

import (
	"fmt"

	"github.com/gogpu/brushsurf/internal/tile"
)

// TileRequest describes one tile access by the brush engine.
//
// The caller sets TX, TY (tile units) and passes the request to
// TileRequestStart, which fills Buffer. Buffer is a borrowed view valid
// only until the matching TileRequestEnd, which sets it back to nil.
type TileRequest struct {
	// TX, TY are the tile coordinates. They may lie outside the grid.
	TX, TY int

	// Buffer holds TileSamples values: pixel (x, y) of the tile is at
	// Buffer[(y*TileSize+x)*4 : (y*TileSize+x)*4+4] as R, G, B, A.
	Buffer []uint16
}

// Pixel returns the four samples of tile-local pixel (x, y), or nil if the
// request holds no buffer or the coordinates are outside the tile.
func (r *TileRequest) Pixel(x, y int) []uint16 {
	off := tile.PixelOffset(x, y)
	if off < 0 || r.Buffer == nil {
		return nil
	}
	return r.Buffer[off : off+tile.Channels : off+tile.Channels]
}

// Origin returns the canvas pixel coordinates of the tile's top-left corner.
func (r *TileRequest) Origin() (x, y int) {
	return r.TX * tile.Size, r.TY * tile.Size
}

// TileRequestStart hands out the tile at (req.TX, req.TY).
//
// Inside the grid, req.Buffer is a direct view into the surface: writes
// change the canvas in place. Outside the grid, req.Buffer is the null
// tile, whose content is discarded by TileRequestEnd.
//
// Requests do not nest: each start must be followed by the matching end
// before the next start, otherwise ErrRequestPending is returned.
func (s *Surface) TileRequestStart(req *TileRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	if s.closed() {
		return ErrClosed
	}
	if s.pending {
		return fmt.Errorf("%w: tile (%d,%d) is still open", ErrRequestPending, s.pendingTX, s.pendingTY)
	}

	if s.store.InBounds(req.TX, req.TY) {
		req.Buffer = s.store.Tile(req.TX, req.TY)
		s.dirty.Mark(req.TX, req.TY)
	} else {
		req.Buffer = s.store.Null()
	}

	s.pending = true
	s.pendingTX = req.TX
	s.pendingTY = req.TY
	return nil
}

// TileRequestEnd finishes the access started by TileRequestStart.
//
// For the null tile it wipes everything the caller wrote, so drawing off
// the canvas never accumulates state. In-grid tiles were written in place
// and need no commit. req.Buffer is reset to nil either way.
func (s *Surface) TileRequestEnd(req *TileRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	if s.closed() {
		return ErrClosed
	}
	if !s.pending {
		return ErrNoPendingRequest
	}
	if req.TX != s.pendingTX || req.TY != s.pendingTY {
		return fmt.Errorf("%w: end (%d,%d), start (%d,%d)",
			ErrRequestMismatch, req.TX, req.TY, s.pendingTX, s.pendingTY)
	}

	if !s.store.InBounds(req.TX, req.TY) {
		s.store.ResetNull()
	}

	req.Buffer = nil
	s.pending = false
	return nil
}
