// Package pixfmt describes the pixel formats a surface can be read back in
// and converts 16-bit tile samples into them.
package pixfmt

// Format represents a packed readback pixel format.
type Format uint8

const (
	// RGBA8 is 8 bits per channel in R, G, B, A byte order.
	// This is the default readback format.
	RGBA8 Format = iota

	// BGRA8 is 8 bits per channel in B, G, R, A byte order.
	// Common for swapchain surfaces.
	BGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Name is a short human-readable name.
	Name string
}

var formatInfoTable = [formatCount]FormatInfo{
	RGBA8: {BytesPerPixel: 4, Name: "RGBA8"},
	BGRA8: {BytesPerPixel: 4, Name: "BGRA8"},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// RowBytes returns the number of bytes for a row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns the format name.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatInfoTable[f].Name
}

// To8 converts a 16-bit sample to 8 bits by keeping the high byte.
// This is a truncating downscale, not a rounding one: 0x80FF becomes 0x80.
func To8(v uint16) uint8 {
	return uint8(v >> 8)
}

// ConvertRow writes n pixels of 16-bit RGBA samples from src into dst in
// format f. src must hold at least n*4 samples and dst at least
// f.RowBytes(n) bytes.
func ConvertRow(f Format, dst []byte, src []uint16, n int) {
	switch f {
	case BGRA8:
		for i := range n {
			s := src[i*4 : i*4+4 : i*4+4]
			d := dst[i*4 : i*4+4 : i*4+4]
			d[0] = To8(s[2])
			d[1] = To8(s[1])
			d[2] = To8(s[0])
			d[3] = To8(s[3])
		}
	default:
		for i := range n {
			s := src[i*4 : i*4+4 : i*4+4]
			d := dst[i*4 : i*4+4 : i*4+4]
			d[0] = To8(s[0])
			d[1] = To8(s[1])
			d[2] = To8(s[2])
			d[3] = To8(s[3])
		}
	}
}
