package brushsurf

// Option configures a Surface during creation.
//
// Example:
//
//	// Default: opaque white background, single bounding-box ROI
//	s, err := brushsurf.New(800, 600)
//
//	// Transparent background, ROI split into tile runs, 64MB cap
//	s, err := brushsurf.New(800, 600,
//	    brushsurf.WithBackground(0, 0, 0, 0),
//	    brushsurf.WithROIMode(brushsurf.ROITileRuns),
//	    brushsurf.WithMemoryLimit(64<<20))
type Option func(*surfaceOptions)

// surfaceOptions holds optional configuration for Surface creation.
type surfaceOptions struct {
	background  [4]uint16
	memoryLimit int64
	roiMode     ROIMode
}

// defaultOptions returns the default surface options.
func defaultOptions() surfaceOptions {
	return surfaceOptions{
		background:  DefaultBackground,
		memoryLimit: 0, // unlimited
		roiMode:     ROIBounds,
	}
}

// DefaultBackground is the initial content of every tile: opaque white,
// all four channels at 0xFFFF.
var DefaultBackground = [4]uint16{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}

// WithBackground sets the value every pixel starts with.
// Channels are 16-bit premultiplied RGBA.
func WithBackground(r, g, b, a uint16) Option {
	return func(o *surfaceOptions) {
		o.background = [4]uint16{r, g, b, a}
	}
}

// WithMemoryLimit caps the tile buffer size in bytes. New fails with
// ErrAllocation when the canvas would need more. Zero means no cap.
func WithMemoryLimit(bytes int64) Option {
	return func(o *surfaceOptions) {
		o.memoryLimit = bytes
	}
}

// WithROIMode selects how EndAtomic reports the changed region.
func WithROIMode(m ROIMode) Option {
	return func(o *surfaceOptions) {
		o.roiMode = m
	}
}
