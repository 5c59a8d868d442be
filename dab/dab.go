// Package dab rasterizes round brush dabs into a tiled surface through the
// tile request protocol.
//
// It is a small stand-in for a full brush engine: one dab is a
// filled circle with a hardness falloff, composited source-over in 16-bit
// premultiplied RGBA. Positions and radii are 26.6 fixed point so strokes
// keep sub-pixel placement.
package dab

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/brushsurf"
	"github.com/gogpu/brushsurf/internal/tile"
)

// Surface is the tile access protocol a dab is drawn through.
// *brushsurf.Surface implements it.
type Surface interface {
	TileRequestStart(req *brushsurf.TileRequest) error
	TileRequestEnd(req *brushsurf.TileRequest) error
}

// Dab describes one round brush imprint.
type Dab struct {
	// X, Y is the dab centre in canvas pixels.
	X, Y fixed.Int26_6

	// Radius is the dab radius in pixels. Non-positive radii draw nothing.
	Radius fixed.Int26_6

	// Color is the straight (non-premultiplied) RGB color, 16 bits per channel.
	Color [3]uint16

	// Opacity scales the dab alpha, 0 to 0xFFFF.
	Opacity uint16

	// Hardness is the fraction of the radius painted at full opacity,
	// 0 (soft) to 1 (hard edge). Values outside that range are clamped.
	Hardness float64
}

// Bounds returns the pixel rectangle a dab may touch.
func (d Dab) Bounds() brushsurf.Rect {
	if d.Radius <= 0 {
		return brushsurf.Rect{}
	}
	x0 := (d.X - d.Radius).Floor()
	y0 := (d.Y - d.Radius).Floor()
	x1 := (d.X + d.Radius).Ceil()
	y1 := (d.Y + d.Radius).Ceil()
	return brushsurf.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Draw paints d into s. Every tile overlapping the dab is requested once,
// including tiles past the canvas edge, which the surface discards.
// Draw stops at the first protocol error.
func Draw(s Surface, d Dab) error {
	b := d.Bounds()
	if b.Empty() || d.Opacity == 0 {
		return nil
	}

	tx0 := tile.FloorDiv(b.X)
	ty0 := tile.FloorDiv(b.Y)
	tx1 := tile.FloorDiv(b.X + b.Width - 1)
	ty1 := tile.FloorDiv(b.Y + b.Height - 1)

	r := fix2f(d.Radius)
	cx, cy := fix2f(d.X), fix2f(d.Y)
	hard := min(max(d.Hardness, 0), 1)

	var req brushsurf.TileRequest
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			req = brushsurf.TileRequest{TX: tx, TY: ty}
			if err := s.TileRequestStart(&req); err != nil {
				return err
			}
			paintTile(&req, b, cx, cy, r, hard, d)
			if err := s.TileRequestEnd(&req); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stroke draws dabs evenly spaced along the segment from..to, using brush
// for everything but the position. Both endpoints get a dab. A
// non-positive spacing defaults to half the brush radius.
//
// Returns the number of dabs drawn.
func Stroke(s Surface, from, to fixed.Point26_6, brush Dab, spacing fixed.Int26_6) (int, error) {
	if spacing <= 0 {
		spacing = max(brush.Radius/2, 1)
	}

	dx := fix2f(to.X - from.X)
	dy := fix2f(to.Y - from.Y)
	length := math.Hypot(dx, dy)
	steps := int(length / fix2f(spacing))

	n := 0
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		d := brush
		d.X = from.X + fixed.Int26_6(math.Round(dx*t*64))
		d.Y = from.Y + fixed.Int26_6(math.Round(dy*t*64))
		if err := Draw(s, d); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// paintTile composites the part of the dab that falls inside req's tile.
func paintTile(req *brushsurf.TileRequest, b brushsurf.Rect, cx, cy, r, hard float64, d Dab) {
	ox, oy := req.Origin()

	x0 := max(b.X, ox) - ox
	y0 := max(b.Y, oy) - oy
	x1 := min(b.X+b.Width, ox+brushsurf.TileSize) - ox
	y1 := min(b.Y+b.Height, oy+brushsurf.TileSize) - oy

	for y := y0; y < y1; y++ {
		py := float64(oy+y) + 0.5 - cy
		for x := x0; x < x1; x++ {
			px := float64(ox+x) + 0.5 - cx
			cov := coverage(math.Hypot(px, py), r, hard)
			if cov <= 0 {
				continue
			}
			a := uint32(cov*float64(d.Opacity) + 0.5)
			blend(req.Pixel(x, y), d.Color, a)
		}
	}
}

// coverage returns the dab opacity factor at distance dist from the centre:
// 1 inside hard*r, falling linearly to 0 at r.
func coverage(dist, r, hard float64) float64 {
	if dist >= r {
		return 0
	}
	inner := r * hard
	if dist <= inner {
		return 1
	}
	return (r - dist) / (r - inner)
}

// blend composites straight color c at alpha a (0..0xFFFF) over the
// premultiplied pixel p.
func blend(p []uint16, c [3]uint16, a uint32) {
	if a > 0xFFFF {
		a = 0xFFFF
	}
	inv := 0xFFFF - a
	for i := range 3 {
		p[i] = uint16((uint32(c[i])*a + uint32(p[i])*inv + 0x7FFF) / 0xFFFF)
	}
	p[3] = uint16((0xFFFF*a + uint32(p[3])*inv + 0x7FFF) / 0xFFFF)
}

func fix2f(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
