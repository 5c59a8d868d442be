package brushsurf

// Stats summarizes the alpha channel of an RGBA8 readback.
type Stats struct {
	// Pixels is the number of pixels examined.
	Pixels int

	// Painted is the number of pixels with non-zero alpha.
	Painted int

	// MeanAlpha is the average alpha over all pixels.
	MeanAlpha float64

	// MinAlpha and MaxAlpha range over painted pixels only.
	// Both are zero when nothing is painted.
	MinAlpha uint8
	MaxAlpha uint8
}

// AlphaStats computes Stats for an RGBA8 buffer as returned by ReadRGBA8.
// Trailing bytes that do not form a whole pixel are ignored.
func AlphaStats(rgba8 []byte) Stats {
	st := Stats{Pixels: len(rgba8) / 4}
	if st.Pixels == 0 {
		return st
	}

	var sum uint64
	minA, maxA := uint8(0xFF), uint8(0)
	for i := 3; i < st.Pixels*4; i += 4 {
		a := rgba8[i]
		sum += uint64(a)
		if a == 0 {
			continue
		}
		st.Painted++
		minA = min(minA, a)
		maxA = max(maxA, a)
	}

	st.MeanAlpha = float64(sum) / float64(st.Pixels)
	if st.Painted > 0 {
		st.MinAlpha, st.MaxAlpha = minA, maxA
	}
	return st
}
