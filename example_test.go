package brushsurf_test

import (
	"fmt"

	"github.com/gogpu/brushsurf"
)

func Example() {
	s, err := brushsurf.New(100, 50)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	_ = s.BeginAtomic()
	req := brushsurf.TileRequest{TX: 1, TY: 0}
	_ = s.TileRequestStart(&req)
	for i := 0; i < len(req.Buffer); i += 4 {
		req.Buffer[i+0] = 0xFF00 // R
		req.Buffer[i+1] = 0x8000 // G
		req.Buffer[i+2] = 0x4000 // B
		req.Buffer[i+3] = 0xFFFF // A
	}
	_ = s.TileRequestEnd(&req)
	rois, _ := s.EndAtomic()

	pix := s.ReadRGBA8()
	fmt.Println(rois)
	fmt.Printf("%x\n", pix[(10*100+70)*4:(10*100+70)*4+4])
	// Output:
	// [x=64 y=0 w=36 h=50]
	// ff8040ff
}
