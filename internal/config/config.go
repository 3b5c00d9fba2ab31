package config

const (
	// MinFPS and MaxFPS bound the output frame rate. Values outside the
	// range are clamped, never rejected.
	MinFPS = 5
	MaxFPS = 30

	DefaultFPS = 20

	// DefaultDuration is the fallback animation length when detection
	// finds nothing usable in the markup.
	DefaultDuration = 1.0
)

// Background is the fixed background color frames are flattened onto
// and faded toward.
var Background = [3]uint8{255, 255, 255}

// ConversionSettings describes one conversion run. It is built once per
// run and not mutated afterwards.
type ConversionSettings struct {
	InputPath    string
	OutputDir    string
	ArtifactName string

	// AnimationDuration is the effective animation length in seconds,
	// detected from the source or supplied explicitly.
	AnimationDuration float64
	FPS               int

	// Lead/fade windows, all in seconds, all >= 0.
	LeadIn  float64
	LeadOut float64
	FadeIn  float64
	FadeOut float64

	// Format selects the output container ("gif" or "apng").
	Format string

	// BrowserPath overrides the probed headless browser binary.
	BrowserPath string

	Debug bool
}

// Clamp normalizes out-of-range values in place. Frame rate is clamped
// to [MinFPS, MaxFPS]; negative windows are treated as zero.
func (s *ConversionSettings) Clamp() {
	s.FPS = ClampFPS(s.FPS)
	if s.AnimationDuration < 0 {
		s.AnimationDuration = 0
	}
	if s.LeadIn < 0 {
		s.LeadIn = 0
	}
	if s.LeadOut < 0 {
		s.LeadOut = 0
	}
	if s.FadeIn < 0 {
		s.FadeIn = 0
	}
	if s.FadeOut < 0 {
		s.FadeOut = 0
	}
	if s.Format == "" {
		s.Format = "gif"
	}
}

// TotalTime is the full scheduled span: lead-in + animation + lead-out.
func (s *ConversionSettings) TotalTime() float64 {
	return s.LeadIn + s.AnimationDuration + s.LeadOut
}

// ClampFPS bounds a frame rate to the supported range.
func ClampFPS(fps int) int {
	if fps < MinFPS {
		return MinFPS
	}
	if fps > MaxFPS {
		return MaxFPS
	}
	return fps
}
