package dirty

import (
	"reflect"
	"sync"
	"testing"
)

func TestRegion_Create(t *testing.T) {
	tests := []struct {
		name   string
		tilesX int
		tilesY int
		wantOK bool
	}{
		{"valid small", 4, 4, true},
		{"valid large", 100, 100, true},
		{"valid single", 1, 1, true},
		{"invalid zero x", 0, 10, false},
		{"invalid negative y", 10, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRegion(tt.tilesX, tt.tilesY)
			if (d != nil) != tt.wantOK {
				t.Fatalf("NewRegion(%d, %d) = %v, want ok=%v", tt.tilesX, tt.tilesY, d, tt.wantOK)
			}
			if d == nil {
				return
			}
			if d.TilesX() != tt.tilesX || d.TilesY() != tt.tilesY {
				t.Errorf("dimensions = %dx%d, want %dx%d", d.TilesX(), d.TilesY(), tt.tilesX, tt.tilesY)
			}
			if !d.IsEmpty() {
				t.Error("new Region should be empty")
			}
		})
	}
}

func TestRegion_MarkAndClear(t *testing.T) {
	d := NewRegion(10, 10)

	d.Mark(3, 4)
	d.Mark(3, 4)
	d.Mark(-1, 0) // ignored
	d.Mark(10, 0) // ignored

	if !d.IsDirty(3, 4) {
		t.Error("IsDirty(3,4) = false after Mark")
	}
	if d.IsDirty(4, 3) {
		t.Error("IsDirty(4,3) = true, never marked")
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}

	d.Clear()
	if !d.IsEmpty() {
		t.Error("IsEmpty() = false after Clear")
	}
}

func TestRegion_Bounds(t *testing.T) {
	d := NewRegion(8, 8)

	if _, _, _, _, ok := d.Bounds(); ok {
		t.Fatal("Bounds() ok = true on empty region")
	}

	d.Mark(5, 1)
	d.Mark(2, 6)
	d.Mark(3, 3)

	tx0, ty0, tx1, ty1, ok := d.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if tx0 != 2 || ty0 != 1 || tx1 != 5 || ty1 != 6 {
		t.Errorf("Bounds() = (%d,%d)-(%d,%d), want (2,1)-(5,6)", tx0, ty0, tx1, ty1)
	}
}

func TestRegion_Spans(t *testing.T) {
	d := NewRegion(70, 3) // crosses a word boundary within row 0

	for tx := 62; tx <= 66; tx++ {
		d.Mark(tx, 0)
	}
	d.Mark(0, 1)
	d.Mark(2, 1)
	d.Mark(69, 2)

	want := []Span{
		{X0: 62, X1: 66, Y: 0},
		{X0: 0, X1: 0, Y: 1},
		{X0: 2, X1: 2, Y: 1},
		{X0: 69, X1: 69, Y: 2},
	}
	if got := d.Spans(); !reflect.DeepEqual(got, want) {
		t.Errorf("Spans() = %v, want %v", got, want)
	}
}

func TestRegion_SpansDoNotWrapRows(t *testing.T) {
	d := NewRegion(4, 2)
	d.Mark(3, 0)
	d.Mark(0, 1)

	if got := d.Spans(); len(got) != 2 {
		t.Errorf("Spans() = %v, want two spans (row wrap must not merge)", got)
	}
}

func TestRegion_ConcurrentMark(t *testing.T) {
	d := NewRegion(64, 64)

	var wg sync.WaitGroup
	for ty := range 64 {
		wg.Add(1)
		go func(ty int) {
			defer wg.Done()
			for tx := range 64 {
				d.Mark(tx, ty)
			}
		}(ty)
	}
	wg.Wait()

	if d.Count() != 64*64 {
		t.Errorf("Count() = %d, want %d", d.Count(), 64*64)
	}
}
