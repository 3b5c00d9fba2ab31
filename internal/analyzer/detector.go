package analyzer

// Timing is the result of animation timing detection: the effective
// length of one full play-through and whether any per-element start
// offsets (staggered starts) were found.
type Timing struct {
	Duration  float64 // seconds
	Staggered bool
}

// Detector infers animation timing from a source document.
type Detector interface {
	Detect() (Timing, error)
	// Rate is the recommended frame rate for the source, within the
	// supported range.
	Rate() int
}
