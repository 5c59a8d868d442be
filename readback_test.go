package brushsurf

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestReadRGBA8_FreshCanvasIsBackground(t *testing.T) {
	s := MustNew(70, 65)
	defer s.Close()

	pix := s.ReadRGBA8()
	if len(pix) != 70*65*4 {
		t.Fatalf("len = %d, want %d", len(pix), 70*65*4)
	}
	for i, b := range pix {
		if b != 0xFF {
			t.Fatalf("byte %d = %#x, want 0xff (opaque white)", i, b)
		}
	}
}

func TestReadRGBA8_Truncates(t *testing.T) {
	s := MustNew(4, 4)
	defer s.Close()

	paintTile(t, s, 0, 0, 0x80FF, 0x7FFF, 0x00FF, 0x0100)

	pix := s.ReadRGBA8()
	want := []byte{0x80, 0x7F, 0x00, 0x01}
	if !bytes.Equal(pix[:4], want) {
		t.Errorf("pixel = %x, want %x (high byte, no rounding)", pix[:4], want)
	}
}

func TestReadRGBA8_Idempotent(t *testing.T) {
	s := MustNew(130, 90)
	defer s.Close()

	paintTile(t, s, 1, 1, 0x1234, 0x5678, 0x9ABC, 0xDEF0)

	a := s.ReadRGBA8()
	b := s.ReadRGBA8()
	if !bytes.Equal(a, b) {
		t.Error("two readbacks without writes differ")
	}
}

func TestReadRGBA8_DoesNotMutate(t *testing.T) {
	s := MustNew(64, 64)
	defer s.Close()

	paintTile(t, s, 0, 0, 0x12FF, 0x34FF, 0x56FF, 0x78FF)
	_ = s.ReadRGBA8()

	if got := s.store.Sample(0, 0, 0); got != 0x12FF {
		t.Errorf("sample after readback = %#x, want 0x12ff", got)
	}
}

func TestReadRGBA8Into(t *testing.T) {
	s := MustNew(10, 10)
	defer s.Close()

	if err := s.ReadRGBA8Into(nil); err != nil {
		t.Errorf("ReadRGBA8Into(nil) error = %v, want nil", err)
	}
	if err := s.ReadRGBA8Into(make([]byte, 10)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("short buffer error = %v, want %v", err, ErrBufferTooSmall)
	}

	dst := make([]byte, 10*10*4)
	if err := s.ReadRGBA8Into(dst); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, s.ReadRGBA8()) {
		t.Error("ReadRGBA8Into differs from ReadRGBA8")
	}
}

func TestReadRGBA8_NilSurface(t *testing.T) {
	var s *Surface
	if pix := s.ReadRGBA8(); pix != nil {
		t.Errorf("nil surface ReadRGBA8 = %d bytes, want nil", len(pix))
	}
}

func TestReadRegion(t *testing.T) {
	s := MustNew(100, 100)
	defer s.Close()

	paintTile(t, s, 1, 1, 0x1000, 0x2000, 0x3000, 0xFF00)

	tests := []struct {
		name     string
		r        Rect
		format   PixelFormat
		wantClip Rect
		wantPix  []byte // first pixel
	}{
		{"inside painted tile", Rect{X: 70, Y: 70, Width: 5, Height: 5}, FormatRGBA8,
			Rect{X: 70, Y: 70, Width: 5, Height: 5}, []byte{0x10, 0x20, 0x30, 0xFF}},
		{"bgra", Rect{X: 64, Y: 64, Width: 2, Height: 2}, FormatBGRA8,
			Rect{X: 64, Y: 64, Width: 2, Height: 2}, []byte{0x30, 0x20, 0x10, 0xFF}},
		{"clipped at canvas edge", Rect{X: 90, Y: 90, Width: 50, Height: 50}, FormatRGBA8,
			Rect{X: 90, Y: 90, Width: 10, Height: 10}, []byte{0x10, 0x20, 0x30, 0xFF}},
		{"background", Rect{X: -10, Y: -10, Width: 12, Height: 12}, FormatRGBA8,
			Rect{X: 0, Y: 0, Width: 2, Height: 2}, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.r.Width*tt.r.Height*4)
			clip, err := s.ReadRegion(tt.r, tt.format, dst)
			if err != nil {
				t.Fatal(err)
			}
			if clip != tt.wantClip {
				t.Errorf("clip = %v, want %v", clip, tt.wantClip)
			}
			if !bytes.Equal(dst[:4], tt.wantPix) {
				t.Errorf("first pixel = %x, want %x", dst[:4], tt.wantPix)
			}
		})
	}
}

func TestReadRegion_CrossesTiles(t *testing.T) {
	s := MustNew(200, 200)
	defer s.Close()
	paintTile(t, s, 1, 0, 0x4000, 0x4000, 0x4000, 0xFFFF)

	r := Rect{X: 60, Y: 10, Width: 10, Height: 3}
	dst := make([]byte, r.Width*r.Height*4)
	if _, err := s.ReadRegion(r, FormatRGBA8, dst); err != nil {
		t.Fatal(err)
	}

	full := s.ReadRGBA8()
	for y := range r.Height {
		want := full[((r.Y+y)*200+r.X)*4 : ((r.Y+y)*200+r.X+r.Width)*4]
		got := dst[y*r.Width*4 : (y+1)*r.Width*4]
		if !bytes.Equal(got, want) {
			t.Errorf("row %d = %x, want %x", y, got, want)
		}
	}
}

func TestReadRegion_Errors(t *testing.T) {
	s := MustNew(10, 10)
	defer s.Close()

	if _, err := s.ReadRegion(Rect{Width: 5, Height: 5}, FormatRGBA8, make([]byte, 4)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("short buffer error = %v, want %v", err, ErrBufferTooSmall)
	}
	if _, err := s.ReadRegion(Rect{Width: 1, Height: 1}, PixelFormat(99), make([]byte, 4)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("bad format error = %v, want %v", err, ErrInvalidFormat)
	}
	clip, err := s.ReadRegion(Rect{X: 50, Y: 50, Width: 5, Height: 5}, FormatRGBA8, nil)
	if err != nil || !clip.Empty() {
		t.Errorf("off-canvas region = (%v, %v), want empty and nil", clip, err)
	}
}

func TestReadRGBA8Parallel(t *testing.T) {
	s := MustNew(300, 250)
	defer s.Close()

	for ty := range s.TilesY() {
		for tx := range s.TilesX() {
			v := uint16(tx*16+ty) << 8
			paintTile(t, s, tx, ty, v, 0, v, 0xFFFF)
		}
	}

	want := s.ReadRGBA8()
	for _, workers := range []int{0, 1, 3, 16} {
		got := make([]byte, len(want))
		if err := s.ReadRGBA8Parallel(context.Background(), got, workers); err != nil {
			t.Fatalf("workers=%d: error = %v", workers, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("workers=%d: parallel readback differs from sequential", workers)
		}
	}
}

func TestReadRGBA8Parallel_Canceled(t *testing.T) {
	s := MustNew(300, 300)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.ReadRGBA8Parallel(ctx, make([]byte, 300*300*4), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want %v", err, context.Canceled)
	}
}

func TestReadRGBA8Parallel_Errors(t *testing.T) {
	s := MustNew(10, 10)
	if err := s.ReadRGBA8Parallel(context.Background(), nil, 1); err != nil {
		t.Errorf("nil dst error = %v, want nil", err)
	}
	if err := s.ReadRGBA8Parallel(context.Background(), make([]byte, 1), 1); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("short dst error = %v, want %v", err, ErrBufferTooSmall)
	}
	_ = s.Close()
	if err := s.ReadRGBA8Parallel(context.Background(), make([]byte, 400), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("closed error = %v, want %v", err, ErrClosed)
	}
}

func TestRGBA64(t *testing.T) {
	s := MustNew(70, 3)
	defer s.Close()

	paintTile(t, s, 1, 0, 0x1234, 0x5678, 0x9ABC, 0xDEF0)

	img := s.RGBA64()
	if img.Bounds().Dx() != 70 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v, want 70x3", img.Bounds())
	}
	c := img.RGBA64At(65, 2)
	if c.R != 0x1234 || c.G != 0x5678 || c.B != 0x9ABC || c.A != 0xDEF0 {
		t.Errorf("RGBA64At(65,2) = %+v, want {0x1234 0x5678 0x9abc 0xdef0}", c)
	}
	if c := img.RGBA64At(0, 0); c.R != 0xFFFF || c.A != 0xFFFF {
		t.Errorf("RGBA64At(0,0) = %+v, want opaque white", c)
	}
}
