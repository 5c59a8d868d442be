package brushsurf

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/brushsurf/internal/pixfmt"
	"github.com/gogpu/brushsurf/internal/tile"
)

// PixelFormat is a packed 8-bit-per-channel readback format.
type PixelFormat = pixfmt.Format

// Readback formats.
const (
	// FormatRGBA8 is R, G, B, A byte order (the ReadRGBA8 format).
	FormatRGBA8 = pixfmt.RGBA8

	// FormatBGRA8 is B, G, R, A byte order.
	FormatBGRA8 = pixfmt.BGRA8
)

// ReadRGBA8 returns the canvas as Width*Height*4 bytes of RGBA, row-major,
// top-to-bottom. Each channel is the high byte of the 16-bit sample
// (v >> 8): a truncating conversion, so 0x80FF reads back as 0x80.
//
// ReadRGBA8 never modifies the canvas. Returns nil on a nil or closed
// surface.
func (s *Surface) ReadRGBA8() []byte {
	if s.closed() {
		return nil
	}
	dst := make([]byte, s.width*s.height*4)
	s.convertRows(pixfmt.RGBA8, dst, s.width*4, s.Bounds(), 0, s.height)
	return dst
}

// ReadRGBA8Into is like ReadRGBA8 but writes into dst, which must hold at
// least Width*Height*4 bytes. A nil dst is a no-op.
func (s *Surface) ReadRGBA8Into(dst []byte) error {
	if dst == nil {
		return nil
	}
	if s.closed() {
		return ErrClosed
	}
	if need := s.width * s.height * 4; len(dst) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(dst), need)
	}
	s.convertRows(pixfmt.RGBA8, dst, s.width*4, s.Bounds(), 0, s.height)
	return nil
}

// ReadRegion converts the part of r that lies on the canvas into dst in
// format f, tightly packed (row stride = width*4). It returns the clipped
// rectangle that was read; an empty result means r missed the canvas and
// dst is untouched.
func (s *Surface) ReadRegion(r Rect, f PixelFormat, dst []byte) (Rect, error) {
	if s.closed() {
		return Rect{}, ErrClosed
	}
	if !f.IsValid() {
		return Rect{}, fmt.Errorf("%w: %d", ErrInvalidFormat, f)
	}
	clip := r.Intersect(s.Bounds())
	if clip.Empty() {
		return Rect{}, nil
	}
	stride := f.RowBytes(clip.Width)
	if need := stride * clip.Height; len(dst) < need {
		return Rect{}, fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(dst), need)
	}
	s.convertRows(f, dst, stride, clip, clip.Y, clip.Y+clip.Height)
	return clip, nil
}

// ReadRGBA8Parallel produces the same bytes as ReadRGBA8Into, converting
// tile rows concurrently on up to workers goroutines (GOMAXPROCS when
// workers <= 0). It returns ctx.Err() if the context is canceled before
// every row is converted. A nil dst is a no-op.
//
// The caller must not have a tile request in flight while this runs.
func (s *Surface) ReadRGBA8Parallel(ctx context.Context, dst []byte, workers int) error {
	if dst == nil {
		return nil
	}
	if s.closed() {
		return ErrClosed
	}
	if need := s.width * s.height * 4; len(dst) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(dst), need)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	full := s.Bounds()
	for ty := range s.store.TilesY() {
		y0 := ty * tile.Size
		y1 := min(y0+tile.Size, s.height)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.convertRows(pixfmt.RGBA8, dst, s.width*4, full, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// RGBA64 returns a full-precision copy of the canvas. Samples are
// premultiplied, matching image.RGBA64 semantics. Returns nil on a nil or
// closed surface.
func (s *Surface) RGBA64() *image.RGBA64 {
	if s.closed() {
		return nil
	}
	img := image.NewRGBA64(image.Rect(0, 0, s.width, s.height))
	for y := range s.height {
		row := img.Pix[y*img.Stride:]
		for x := range s.width {
			p := s.store.Pixel(x, y)
			o := x * 8
			for c := range tile.Channels {
				row[o+c*2] = uint8(p[c] >> 8)
				row[o+c*2+1] = uint8(p[c])
			}
		}
	}
	return img
}

// convertRows converts canvas rows [y0, y1) restricted to the columns of
// r into dst. Row y lands at dst[(y-r.Y)*stride:]. The span of each row is
// walked tile by tile so every tile contributes one contiguous run.
func (s *Surface) convertRows(f PixelFormat, dst []byte, stride int, r Rect, y0, y1 int) {
	bpp := f.BytesPerPixel()
	x1 := r.X + r.Width
	for y := y0; y < y1; y++ {
		ty := y / tile.Size
		yIn := y % tile.Size
		row := dst[(y-r.Y)*stride:]
		for x := r.X; x < x1; {
			tx := x / tile.Size
			xIn := x % tile.Size
			n := min(tile.Size-xIn, x1-x)

			src := s.store.Tile(tx, ty)[(yIn*tile.Size+xIn)*tile.Channels:]
			pixfmt.ConvertRow(f, row[(x-r.X)*bpp:], src, n)
			x += n
		}
	}
}
