// Package browser drives an off-screen browser as the rendering
// surface for animation sampling. The pipeline only ever sees the
// Surface capability: position the animation at a normalized progress
// value, capture the current still, close the session.
package browser

import "image"

// Surface is a live rendering session. Calls must arrive in a single
// ordered stream; the session holds in-flight animation state and is
// not safe for concurrent use.
type Surface interface {
	// SetProgress positions every timed element at progress in [0, 1]
	// of the effective animation length.
	SetProgress(progress float64) error
	// CaptureStill renders the current state to a still image.
	CaptureStill() (image.Image, error)
	Close() error
}
