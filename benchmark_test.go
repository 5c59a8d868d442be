package brushsurf

import (
	"context"
	"testing"
)

func BenchmarkTileRequest_InGrid(b *testing.B) {
	s := MustNew(1024, 1024)
	defer s.Close()
	req := TileRequest{TX: 3, TY: 7}

	b.ReportAllocs()
	for b.Loop() {
		_ = s.TileRequestStart(&req)
		_ = s.TileRequestEnd(&req)
	}
}

func BenchmarkTileRequest_NullTile(b *testing.B) {
	s := MustNew(1024, 1024)
	defer s.Close()
	req := TileRequest{TX: -1, TY: 0}

	b.ReportAllocs()
	for b.Loop() {
		_ = s.TileRequestStart(&req)
		_ = s.TileRequestEnd(&req)
	}
}

func BenchmarkReadRGBA8(b *testing.B) {
	s := MustNew(1920, 1080)
	defer s.Close()
	dst := make([]byte, 1920*1080*4)

	b.SetBytes(int64(len(dst)))
	for b.Loop() {
		_ = s.ReadRGBA8Into(dst)
	}
}

func BenchmarkReadRGBA8Parallel(b *testing.B) {
	s := MustNew(1920, 1080)
	defer s.Close()
	dst := make([]byte, 1920*1080*4)
	ctx := context.Background()

	b.SetBytes(int64(len(dst)))
	for b.Loop() {
		_ = s.ReadRGBA8Parallel(ctx, dst, 0)
	}
}
