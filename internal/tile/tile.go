// Package tile implements the fixed tile store behind a brushsurf.Surface.
//
// The canvas is divided into 64x64 pixel tiles. All tiles live in one
// contiguous buffer of 16-bit RGBA samples, row-major by tile row, plus one
// extra "null" tile that absorbs accesses outside the grid:
//
//   - 64x64 tiles, 4 channels of uint16 each (32KB per tile)
//   - no per-tile allocation; a tile is a fixed offset into the buffer
//   - null tile handed out for out-of-grid coordinates, wiped on release
//
// Thread safety: Store is NOT thread-safe. The owning surface serializes
// access.
package tile

// Tile geometry constants.
const (
	// Size is the edge length of a tile in pixels.
	Size = 64

	// Channels is the number of samples per pixel (R, G, B, A).
	Channels = 4

	// Pixels is the number of pixels in a tile.
	Pixels = Size * Size

	// Samples is the number of uint16 samples in a tile.
	Samples = Pixels * Channels

	// Bytes is the size of a tile in bytes.
	Bytes = Samples * 2
)

// PixelOffset returns the sample index of pixel (x, y) inside a tile.
// Coordinates are tile-local. Returns -1 if they fall outside the tile.
func PixelOffset(x, y int) int {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return -1
	}
	return (y*Size + x) * Channels
}

// GridSize returns the number of tiles needed to cover a canvas of the
// given pixel dimensions. Each result is ceil(n / Size).
func GridSize(width, height int) (tilesX, tilesY int) {
	return (width + Size - 1) / Size, (height + Size - 1) / Size
}

// FloorDiv converts a pixel coordinate to the tile coordinate containing
// it, rounding toward negative infinity so that pixel -1 lands in tile -1.
func FloorDiv(px int) int {
	if px >= 0 {
		return px / Size
	}
	return -((-px + Size - 1) / Size)
}
