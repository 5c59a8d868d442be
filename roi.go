package brushsurf

import (
	"fmt"
	"image"

	"github.com/gogpu/brushsurf/internal/dirty"
	"github.com/gogpu/brushsurf/internal/tile"
)

// Rect is a pixel-space rectangle. X, Y is the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Intersect returns the largest rectangle contained by both r and o.
// The result is the zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	ir := r.Image().Intersect(o.Image())
	if ir.Empty() {
		return Rect{}
	}
	return Rect{X: ir.Min.X, Y: ir.Min.Y, Width: ir.Dx(), Height: ir.Dy()}
}

// Union returns the smallest rectangle containing both r and o.
// Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	u := r.Image().Union(o.Image())
	return Rect{X: u.Min.X, Y: u.Min.Y, Width: u.Dx(), Height: u.Dy()}
}

func (r Rect) String() string {
	return fmt.Sprintf("x=%d y=%d w=%d h=%d", r.X, r.Y, r.Width, r.Height)
}

// Rectangles is a region-of-interest report: the changed parts of a canvas.
// An empty report means nothing changed.
type Rectangles []Rect

// Bounds returns the union of all rectangles.
func (rs Rectangles) Bounds() Rect {
	var u Rect
	for _, r := range rs {
		u = u.Union(r)
	}
	return u
}

// ROIMode selects how an atomic session reports its region of interest.
type ROIMode uint8

const (
	// ROIBounds reports a single rectangle bounding every touched tile.
	ROIBounds ROIMode = iota

	// ROITileRuns reports one rectangle per horizontal run of touched
	// tiles in each tile row.
	ROITileRuns
)

// String returns the mode name.
func (m ROIMode) String() string {
	switch m {
	case ROIBounds:
		return "bounds"
	case ROITileRuns:
		return "runs"
	default:
		return fmt.Sprintf("ROIMode(%d)", m)
	}
}

// tileRect converts an inclusive tile range to pixel space, clipped to the
// canvas.
func tileRect(tx0, ty0, tx1, ty1 int, canvas Rect) Rect {
	r := Rect{
		X:      tx0 * tile.Size,
		Y:      ty0 * tile.Size,
		Width:  (tx1 - tx0 + 1) * tile.Size,
		Height: (ty1 - ty0 + 1) * tile.Size,
	}
	return r.Intersect(canvas)
}

// collectROI builds the report for the tiles marked in d.
func collectROI(d *dirty.Region, mode ROIMode, canvas Rect) Rectangles {
	switch mode {
	case ROITileRuns:
		spans := d.Spans()
		if len(spans) == 0 {
			return nil
		}
		rects := make(Rectangles, 0, len(spans))
		for _, sp := range spans {
			rects = append(rects, tileRect(sp.X0, sp.Y, sp.X1, sp.Y, canvas))
		}
		return rects
	default:
		tx0, ty0, tx1, ty1, ok := d.Bounds()
		if !ok {
			return nil
		}
		return Rectangles{tileRect(tx0, ty0, tx1, ty1, canvas)}
	}
}
