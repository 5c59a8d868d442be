package brushsurf

import (
	"errors"

	"github.com/gogpu/brushsurf/internal/tile"
)

// Construction errors. They alias the tile store errors so callers can
// match them with errors.Is without importing internal packages.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = tile.ErrInvalidDimensions

	// ErrAllocation is returned when the tile buffer cannot be allocated.
	// No surface is returned in that case.
	ErrAllocation = tile.ErrAllocation
)

// Protocol errors.
var (
	// ErrClosed is returned when a surface is used after Close.
	ErrClosed = errors.New("brushsurf: surface is closed")

	// ErrNilRequest is returned when a nil *TileRequest is passed.
	ErrNilRequest = errors.New("brushsurf: nil tile request")

	// ErrRequestPending is returned by TileRequestStart when the previous
	// request has not been ended yet.
	ErrRequestPending = errors.New("brushsurf: tile request already pending")

	// ErrNoPendingRequest is returned by TileRequestEnd when no request is
	// in flight.
	ErrNoPendingRequest = errors.New("brushsurf: no pending tile request")

	// ErrRequestMismatch is returned by TileRequestEnd when its coordinates
	// differ from the pending request.
	ErrRequestMismatch = errors.New("brushsurf: tile request end does not match start")

	// ErrAtomicActive is returned by BeginAtomic inside an atomic session.
	ErrAtomicActive = errors.New("brushsurf: atomic session already active")

	// ErrNotAtomic is returned by EndAtomic outside an atomic session.
	ErrNotAtomic = errors.New("brushsurf: no atomic session active")

	// ErrBufferTooSmall is returned when a readback destination is too small.
	ErrBufferTooSmall = errors.New("brushsurf: destination buffer too small")

	// ErrInvalidFormat is returned for an unknown readback pixel format.
	ErrInvalidFormat = errors.New("brushsurf: invalid pixel format")
)
