package brushsurf

import (
	"errors"

	"github.com/gogpu/brushsurf/internal/dirty"
	"github.com/gogpu/brushsurf/internal/tile"
)

// TileSize is the edge length in pixels of one tile.
const TileSize = tile.Size

// TileSamples is the number of uint16 samples in one tile buffer
// (TileSize * TileSize pixels, 4 channels each).
const TileSamples = tile.Samples

// Surface is a fixed-size canvas stored as 64x64 tiles of 16-bit
// premultiplied RGBA.
//
// A brush engine paints into it through TileRequestStart/TileRequestEnd,
// bracketed by BeginAtomic/EndAtomic; a host reads it back with ReadRGBA8.
//
// Surface is NOT safe for concurrent use. One goroutine drives tile
// requests; hosts that read back from another goroutine must serialize
// access themselves.
type Surface struct {
	store *tile.Store
	dirty *dirty.Region
	opts  surfaceOptions

	width  int
	height int

	inAtomic bool

	// pending describes the tile request between start and end.
	pending   bool
	pendingTX int
	pendingTY int
}

// New creates a width x height surface with every pixel set to the
// background (opaque white unless WithBackground is given).
//
// Returns ErrInvalidDimensions if width or height is not positive and
// ErrAllocation if the tile buffer cannot be allocated. No surface is
// returned on error.
func New(width, height int, opts ...Option) (*Surface, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store, err := tile.New(width, height, o.memoryLimit)
	if err != nil {
		if errors.Is(err, ErrAllocation) {
			Logger().Warn("brushsurf: unable to allocate tile buffer",
				"width", width, "height", height, "err", err)
		}
		return nil, err
	}
	store.Fill(o.background[0], o.background[1], o.background[2], o.background[3])

	Logger().Debug("brushsurf: surface created",
		"width", width, "height", height,
		"tiles_x", store.TilesX(), "tiles_y", store.TilesY(),
		"bytes", store.Len())

	return &Surface{
		store:  store,
		dirty:  dirty.NewRegion(store.TilesX(), store.TilesY()),
		opts:   o,
		width:  width,
		height: height,
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(width, height int, opts ...Option) *Surface {
	s, err := New(width, height, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Close releases the tile buffer and the null tile. It is the only way
// the surface memory is freed. After Close every operation fails with
// ErrClosed and readback returns no data.
// Close is idempotent.
func (s *Surface) Close() error {
	if s.closed() {
		return nil
	}
	if s.pending {
		Logger().Warn("brushsurf: closing surface with a pending tile request",
			"tx", s.pendingTX, "ty", s.pendingTY)
	}
	s.store.Release()
	s.dirty = nil
	s.pending = false
	s.inAtomic = false
	return nil
}

func (s *Surface) closed() bool {
	return s == nil || s.store == nil || s.store.Released()
}

// Width returns the canvas width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the canvas height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Bounds returns the canvas rectangle (0, 0, Width, Height).
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// TilesX returns the number of tile columns, ceil(Width / TileSize).
func (s *Surface) TilesX() int {
	return s.store.TilesX()
}

// TilesY returns the number of tile rows, ceil(Height / TileSize).
func (s *Surface) TilesY() int {
	return s.store.TilesY()
}

// ROIMode returns the region-of-interest mode chosen at creation.
func (s *Surface) ROIMode() ROIMode {
	return s.opts.roiMode
}
