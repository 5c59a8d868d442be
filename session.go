package brushsurf

// BeginAtomic opens a drawing transaction. Tile tracking for the region
// of interest starts clean here.
//
// Atomic sessions do not nest: calling BeginAtomic inside one returns
// ErrAtomicActive and leaves the open session untouched.
func (s *Surface) BeginAtomic() error {
	if s.closed() {
		return ErrClosed
	}
	if s.inAtomic {
		return ErrAtomicActive
	}
	s.dirty.Clear()
	s.inAtomic = true
	return nil
}

// EndAtomic closes the transaction and reports which part of the canvas
// changed since BeginAtomic, as pixel rectangles clipped to the canvas.
//
// The report is empty when no in-grid tile was requested. Its shape
// depends on the surface ROIMode. Callers that don't need it may ignore
// the returned Rectangles.
//
// Returns ErrNotAtomic when no session is open.
func (s *Surface) EndAtomic() (Rectangles, error) {
	if s.closed() {
		return nil, ErrClosed
	}
	if !s.inAtomic {
		return nil, ErrNotAtomic
	}
	if s.pending {
		Logger().Warn("brushsurf: atomic session ended with a pending tile request",
			"tx", s.pendingTX, "ty", s.pendingTY)
	}

	rois := collectROI(s.dirty, s.opts.roiMode, s.Bounds())
	s.inAtomic = false

	Logger().Debug("brushsurf: atomic session ended",
		"tiles", s.dirty.Count(), "rects", len(rois), "bounds", rois.Bounds().String())
	return rois, nil
}

// InAtomic reports whether an atomic session is open.
func (s *Surface) InAtomic() bool {
	return s.inAtomic
}
