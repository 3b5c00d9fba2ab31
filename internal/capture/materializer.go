package capture

import (
	"fmt"
	"image"
	"time"

	"svg2gif/internal/browser"
	"svg2gif/internal/schedule"
)

// frameSettle is how long the renderer gets to apply a paused
// animation state before the still is taken.
const frameSettle = 150 * time.Millisecond

// Frame is one captured still together with its schedule index. Frames
// are created here and consumed exactly once downstream.
type Frame struct {
	Index int
	Image *image.RGBA
}

// ProgressFunc receives the monotonically increasing percentage for
// this phase, which is bounded to the first half of total progress.
type ProgressFunc func(percent int, message string)

// Materializer drives the rendering surface across a schedule. It owns
// the session: one session per run, torn down unconditionally.
type Materializer struct {
	// OpenSurface starts the rendering session for this run.
	OpenSurface func() (browser.Surface, error)

	// DeviceScale is the capture oversampling factor; captures come
	// back this many times larger than the logical size.
	DeviceScale int

	// Settle overrides the per-frame settle delay (tests).
	Settle time.Duration
}

// Materialize captures one still per scheduled sample, in schedule
// order. Any single failure aborts the run; no partial sequence is
// returned.
func (m *Materializer) Materialize(sched *schedule.Schedule, notify ProgressFunc) ([]Frame, error) {
	surface, err := m.OpenSurface()
	if err != nil {
		return nil, fmt.Errorf("open rendering surface: %w", err)
	}
	defer surface.Close()

	settle := m.Settle
	if settle == 0 {
		settle = frameSettle
	}

	total := len(sched.Samples)
	frames := make([]Frame, 0, total)
	for i, s := range sched.Samples {
		if err := surface.SetProgress(s.Progress); err != nil {
			return nil, fmt.Errorf("frame %d: set progress: %w", i, err)
		}
		time.Sleep(settle)

		img, err := surface.CaptureStill()
		if err != nil {
			return nil, fmt.Errorf("frame %d: capture: %w", i, err)
		}

		frames = append(frames, Frame{Index: i, Image: Downscale(img, m.DeviceScale)})

		if notify != nil {
			notify((i+1)*50/total, fmt.Sprintf("captured frame %d/%d", i+1, total))
		}
	}
	return frames, nil
}
