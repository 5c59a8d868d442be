// Package dirty tracks which tiles of a surface were touched during an
// atomic session.
//
// The tracker is a bitmap with one bit per tile, packed into uint64 words
// (64 tiles per word). Marking is O(1) and allocation-free so it can sit on
// the tile request hot path.
package dirty

import (
	"math/bits"
	"sync/atomic"
)

// Region tracks dirty tiles using an atomic bitmap.
//
// Bit index = ty * tilesX + tx, word index = bit index / 64.
// All methods are safe for concurrent use without external synchronization.
type Region struct {
	words []atomic.Uint64

	tilesX int
	tilesY int
}

// Span is a horizontal run of dirty tiles in one tile row, in tile units.
// It covers tiles X0 through X1 inclusive in row Y.
type Span struct {
	X0, X1, Y int
}

// NewRegion creates a tracker for a tilesX x tilesY grid.
// All tiles start clean. Returns nil if dimensions are invalid.
func NewRegion(tilesX, tilesY int) *Region {
	if tilesX <= 0 || tilesY <= 0 {
		return nil
	}

	totalTiles := tilesX * tilesY
	numWords := (totalTiles + 63) / 64

	return &Region{
		words:  make([]atomic.Uint64, numWords),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Mark marks tile (tx, ty) as dirty. Out-of-grid coordinates are ignored.
func (d *Region) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// IsDirty reports whether tile (tx, ty) is dirty.
// Returns false for out-of-grid coordinates.
func (d *Region) IsDirty(tx, ty int) bool {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return false
	}
	idx := ty*d.tilesX + tx
	return d.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// Clear marks every tile clean.
func (d *Region) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// IsEmpty reports whether no tile is dirty.
func (d *Region) IsEmpty() bool {
	for i := range d.words {
		if d.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of dirty tiles.
func (d *Region) Count() int {
	count := 0
	for i := range d.words {
		count += bits.OnesCount64(d.words[i].Load())
	}
	return count
}

// ForEachDirty calls fn for each dirty tile in row-major order without
// clearing anything.
func (d *Region) ForEachDirty(fn func(tx, ty int)) {
	if fn == nil {
		return
	}

	totalTiles := d.tilesX * d.tilesY
	for wordIdx := range d.words {
		word := d.words[wordIdx].Load()
		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)
			tileIdx := wordIdx*64 + bitIdx
			if tileIdx >= totalTiles {
				break
			}
			fn(tileIdx%d.tilesX, tileIdx/d.tilesX)
			word &^= 1 << bitIdx
		}
	}
}

// Bounds returns the smallest tile rectangle containing every dirty tile,
// as inclusive tile coordinates. ok is false when nothing is dirty.
func (d *Region) Bounds() (tx0, ty0, tx1, ty1 int, ok bool) {
	tx0, ty0 = d.tilesX, d.tilesY
	tx1, ty1 = -1, -1
	d.ForEachDirty(func(tx, ty int) {
		tx0 = min(tx0, tx)
		ty0 = min(ty0, ty)
		tx1 = max(tx1, tx)
		ty1 = max(ty1, ty)
	})
	if tx1 < 0 {
		return 0, 0, 0, 0, false
	}
	return tx0, ty0, tx1, ty1, true
}

// Spans returns the horizontal runs of dirty tiles, top-to-bottom and
// left-to-right. Adjacent dirty tiles in one row merge into one span.
func (d *Region) Spans() []Span {
	var spans []Span
	d.ForEachDirty(func(tx, ty int) {
		if n := len(spans); n > 0 {
			last := &spans[n-1]
			if last.Y == ty && last.X1+1 == tx {
				last.X1 = tx
				return
			}
		}
		spans = append(spans, Span{X0: tx, X1: tx, Y: ty})
	})
	return spans
}

// TilesX returns the number of tiles horizontally.
func (d *Region) TilesX() int {
	return d.tilesX
}

// TilesY returns the number of tiles vertically.
func (d *Region) TilesY() int {
	return d.tilesY
}
