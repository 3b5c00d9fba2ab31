package effects

import (
	"math"

	"svg2gif/internal/capture"
	"svg2gif/internal/config"
)

// Envelope is the per-frame opacity curve derived from the configured
// lead and fade windows: held at 0 through the lead-in, a linear ramp
// up across the fade-in, 1 through the steady region, a linear ramp
// down across the fade-out, held at 0 through the lead-out.
type Envelope struct {
	leadIn, fadeIn   int
	fadeOut, leadOut int
	total            int
}

// NewEnvelope computes the window frame-counts for a run. Each window
// spans floor(seconds * fps) frames.
func NewEnvelope(s *config.ConversionSettings, frameCount int) *Envelope {
	return &Envelope{
		leadIn:  int(math.Floor(s.LeadIn * float64(s.FPS))),
		fadeIn:  int(math.Floor(s.FadeIn * float64(s.FPS))),
		fadeOut: int(math.Floor(s.FadeOut * float64(s.FPS))),
		leadOut: int(math.Floor(s.LeadOut * float64(s.FPS))),
		total:   frameCount,
	}
}

// Opacity returns the envelope value for frame i in [0, 1]. A window
// with zero frames contributes no ramp.
func (e *Envelope) Opacity(i int) float64 {
	if i < e.leadIn {
		return 0
	}
	if e.fadeIn > 0 && i < e.leadIn+e.fadeIn {
		return float64(i-e.leadIn+1) / float64(e.fadeIn)
	}

	j := e.total - 1 - i
	if j < e.leadOut {
		return 0
	}
	if e.fadeOut > 0 && j < e.leadOut+e.fadeOut {
		return float64(j-e.leadOut) / float64(e.fadeOut)
	}

	return 1
}

// Composite attenuates the captured frames toward the background
// color according to the envelope. Frames at full opacity pass through
// untouched; the rest are blended per channel, per pixel, in place.
// The sequence keeps its length and order.
func Composite(frames []capture.Frame, env *Envelope) []capture.Frame {
	bg := config.Background
	for _, f := range frames {
		opacity := env.Opacity(f.Index)
		if opacity >= 1 {
			continue
		}
		img := f.Image
		inv := 1 - opacity
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p+0] = blend(img.Pix[p+0], bg[0], opacity, inv)
			img.Pix[p+1] = blend(img.Pix[p+1], bg[1], opacity, inv)
			img.Pix[p+2] = blend(img.Pix[p+2], bg[2], opacity, inv)
			img.Pix[p+3] = 255
		}
	}
	return frames
}

func blend(c, bg uint8, opacity, inv float64) uint8 {
	v := float64(c)*opacity + float64(bg)*inv
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
