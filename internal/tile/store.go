package tile

import (
	"errors"
	"fmt"
	"math"
)

// Store errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("tile: invalid dimensions")

	// ErrAllocation is returned when the tile buffer cannot be allocated,
	// either because its size overflows or because it exceeds the limit.
	ErrAllocation = errors.New("tile: unable to allocate tile buffer")
)

// Store holds every tile of one canvas in a single linear buffer.
//
// Tiles are stored row-major by tile row: tile (tx, ty) starts at byte
// Offset(tx, ty). The null tile is a separate buffer outside the grid.
type Store struct {
	// buf holds tilesX*tilesY tiles of Samples uint16 values each.
	buf []uint16

	// null is the sacrificial tile for out-of-grid requests.
	null []uint16

	tilesX int
	tilesY int
	width  int
	height int
}

// BufferBytes returns the size in bytes of the tile buffer needed for a
// canvas of the given dimensions, or an error if it cannot be represented.
func BufferBytes(width, height int) (int64, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	tilesX, tilesY := GridSize(width, height)
	tiles := int64(tilesX) * int64(tilesY)
	if tiles > math.MaxInt64/Bytes {
		return 0, fmt.Errorf("%w: %dx%d tiles overflow", ErrAllocation, tilesX, tilesY)
	}
	return tiles * Bytes, nil
}

// New allocates a store for a width x height canvas.
// limit caps the tile buffer size in bytes; zero or negative means no cap.
// The buffer is zero-filled; callers choose the background with Fill.
// On error no store is returned.
func New(width, height int, limit int64) (*Store, error) {
	size, err := BufferBytes(width, height)
	if err != nil {
		return nil, err
	}
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, size, limit)
	}
	if size/2 > int64(math.MaxInt) {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocation, size)
	}

	tilesX, tilesY := GridSize(width, height)
	return &Store{
		buf:    make([]uint16, size/2),
		null:   make([]uint16, Samples),
		tilesX: tilesX,
		tilesY: tilesY,
		width:  width,
		height: height,
	}, nil
}

// Fill sets every pixel of every grid tile to (r, g, b, a).
// The null tile is not touched.
func (s *Store) Fill(r, g, b, a uint16) {
	if len(s.buf) < Channels {
		return
	}
	s.buf[0], s.buf[1], s.buf[2], s.buf[3] = r, g, b, a
	// Doubling copy: each pass copies the already-filled prefix.
	for filled := Channels; filled < len(s.buf); filled *= 2 {
		copy(s.buf[filled:], s.buf[:filled])
	}
}

// InBounds reports whether (tx, ty) addresses a tile inside the grid.
func (s *Store) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < s.tilesX && ty >= 0 && ty < s.tilesY
}

// Offset returns the byte offset of tile (tx, ty) within the tile buffer.
// It performs no bounds check; callers must check InBounds first.
func (s *Store) Offset(tx, ty int) int {
	rowstride := s.tilesX * Bytes
	return ty*rowstride + tx*Bytes
}

// Tile returns the samples of in-grid tile (tx, ty). Writes through the
// returned slice modify the canvas in place. The slice capacity is capped
// so appends cannot spill into the neighbouring tile.
func (s *Store) Tile(tx, ty int) []uint16 {
	start := s.Offset(tx, ty) / 2
	return s.buf[start : start+Samples : start+Samples]
}

// Null returns the null tile.
func (s *Store) Null() []uint16 {
	return s.null
}

// ResetNull wipes whatever was written into the null tile.
func (s *Store) ResetNull() {
	clear(s.null)
}

// Release drops the tile buffer and the null tile.
// The store must not be used afterwards.
func (s *Store) Release() {
	s.buf = nil
	s.null = nil
}

// Released reports whether Release has been called.
func (s *Store) Released() bool {
	return s.buf == nil
}

// TilesX returns the number of tiles horizontally.
func (s *Store) TilesX() int {
	return s.tilesX
}

// TilesY returns the number of tiles vertically.
func (s *Store) TilesY() int {
	return s.tilesY
}

// Width returns the canvas width in pixels.
func (s *Store) Width() int {
	return s.width
}

// Height returns the canvas height in pixels.
func (s *Store) Height() int {
	return s.height
}

// Len returns the size of the tile buffer in bytes.
func (s *Store) Len() int {
	return len(s.buf) * 2
}

// Sample returns channel c of canvas pixel (x, y).
// Coordinates must lie inside the canvas.
func (s *Store) Sample(x, y, c int) uint16 {
	return s.buf[s.sampleIndex(x, y)+c]
}

// Pixel returns the four samples of canvas pixel (x, y) as a slice into
// the buffer. Coordinates must lie inside the canvas.
func (s *Store) Pixel(x, y int) []uint16 {
	i := s.sampleIndex(x, y)
	return s.buf[i : i+Channels : i+Channels]
}

func (s *Store) sampleIndex(x, y int) int {
	tx, ty := x/Size, y/Size
	return s.Offset(tx, ty)/2 + ((y%Size)*Size+x%Size)*Channels
}
