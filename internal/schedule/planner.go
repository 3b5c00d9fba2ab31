package schedule

import "math"

// Phase tags which window of the run a sample falls in.
type Phase int

const (
	PhaseLeadIn Phase = iota
	PhaseActive
	PhaseLeadOut
)

func (p Phase) String() string {
	switch p {
	case PhaseLeadIn:
		return "lead_in"
	case PhaseActive:
		return "active"
	case PhaseLeadOut:
		return "lead_out"
	default:
		return "unknown"
	}
}

// Sample is one scheduled capture instant: the normalized animation
// progress to set on the rendering surface, tagged with its phase.
type Sample struct {
	Progress float64 // in [0, 1]
	Phase    Phase
}

// Schedule is the deterministic sampling plan for one run. It is
// derived from the settings and never mutated; any parameter change
// produces a new schedule.
type Schedule struct {
	FrameCount      int
	FrameDurationMS int
	Samples         []Sample
}

const (
	// minFrames keeps degenerate (near-zero length) animations from
	// collapsing into a loop too short to play smoothly.
	minFrames = 10

	// minFrameDelayMS is the floor on the per-frame display interval.
	// Players commonly refuse or mis-time intervals below roughly a
	// 20fps equivalent.
	minFrameDelayMS = 50
)

// Plan maps the animation length, frame rate and lead windows onto an
// ordered sequence of sample instants. All times are in seconds.
func Plan(length float64, fps int, leadIn, leadOut float64) *Schedule {
	total := length + leadIn + leadOut

	frameCount := int(total * float64(fps))
	if frameCount < minFrames {
		frameCount = minFrames
	}

	delayMS := minFrameDelayMS
	if d := int(math.Round(total * 1000 / float64(frameCount))); d > delayMS {
		delayMS = d
	}

	// A zero-length animation holds its initial state for the whole
	// run; the linear mapping would divide by zero.
	endProgress := 1.0
	if length == 0 {
		endProgress = 0
	}

	samples := make([]Sample, frameCount)
	lastActive := -1
	for i := 0; i < frameCount; i++ {
		t := float64(i) * total / float64(frameCount)
		switch {
		case t < leadIn:
			samples[i] = Sample{Progress: 0, Phase: PhaseLeadIn}
		case t < leadIn+length:
			samples[i] = Sample{Progress: (t - leadIn) / length, Phase: PhaseActive}
			lastActive = i
		default:
			samples[i] = Sample{Progress: endProgress, Phase: PhaseLeadOut}
		}
	}

	// The linear formula rounds short of the end state; the final
	// active sample is pinned so the rendered end state is reached at
	// least once.
	if lastActive >= 0 {
		samples[lastActive].Progress = 1
	}

	return &Schedule{
		FrameCount:      frameCount,
		FrameDurationMS: delayMS,
		Samples:         samples,
	}
}
