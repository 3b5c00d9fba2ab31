package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"svg2gif/internal/config"
)

// Tuned values for the spinner_ class family. The regex arithmetic
// undercounts staggered starts for that motif, so detection
// short-circuits to these instead.
const (
	spinnerMotif    = "spinner_"
	spinnerDuration = 1.65
	spinnerFPS      = 20
)

var (
	// Covers both the animation shorthand and the explicit
	// animation-duration property.
	cssDurationRe = regexp.MustCompile(`animation(?:-duration)?:[^;]*?(\d+(?:\.\d+)?)(s|ms)`)

	cssDelayRe = regexp.MustCompile(`animation-delay:\s*(\d+(?:\.\d+)?)(s|ms)`)

	// Value with no digit before the decimal point, e.g. ".45s".
	cssDelayShortRe = regexp.MustCompile(`animation-delay:\s*\.(\d+)(s)?`)

	smilDurRe = regexp.MustCompile(`dur="(\d+(?:\.\d+)?)(s|ms)?"`)
)

// MarkupDetector scans markup text for declared animation timing. The
// source may be malformed or partial, so the text is matched with
// pattern rules rather than parsed as a document.
type MarkupDetector struct {
	Markup string
}

func NewMarkupDetector(markup string) *MarkupDetector {
	return &MarkupDetector{Markup: markup}
}

// Detect returns the effective animation length and whether any
// per-element start offsets were found. Detection is best-effort and
// never fails: if nothing is declared, the fixed default length is
// returned.
func (d *MarkupDetector) Detect() (Timing, error) {
	base := config.DefaultDuration
	for _, m := range cssDurationRe.FindAllStringSubmatch(d.Markup, -1) {
		if v, ok := parseSeconds(m[1], m[2]); ok && v > base {
			base = v
		}
	}

	maxDelay := 0.0
	staggered := false
	for _, m := range cssDelayRe.FindAllStringSubmatch(d.Markup, -1) {
		if v, ok := parseSeconds(m[1], m[2]); ok {
			if v > maxDelay {
				maxDelay = v
			}
			staggered = true
		}
	}
	for _, m := range cssDelayShortRe.FindAllStringSubmatch(d.Markup, -1) {
		if v, err := strconv.ParseFloat("0."+m[1], 64); err == nil {
			if v > maxDelay {
				maxDelay = v
			}
			staggered = true
		}
	}

	total := base + maxDelay

	// SMIL dur raises the running total, it never replaces it.
	for _, m := range smilDurRe.FindAllStringSubmatch(d.Markup, -1) {
		if v, ok := parseSeconds(m[1], m[2]); ok && v > total {
			total = v
		}
	}

	if d.spinner(staggered) {
		return Timing{Duration: spinnerDuration, Staggered: staggered}, nil
	}
	return Timing{Duration: total, Staggered: staggered}, nil
}

func (d *MarkupDetector) Rate() int {
	t, _ := d.Detect()
	if d.spinner(t.Staggered) {
		return spinnerFPS
	}
	return config.DefaultFPS
}

func (d *MarkupDetector) spinner(staggered bool) bool {
	return staggered && strings.Contains(d.Markup, spinnerMotif)
}

// DetectOptimal returns the recommended (length, fps) pair for the
// markup, including the spinner motif override.
func DetectOptimal(markup string) (float64, int) {
	d := NewMarkupDetector(markup)
	t, _ := d.Detect()
	return t.Duration, d.Rate()
}

func parseSeconds(num, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if unit == "ms" {
		v /= 1000
	}
	return v, true
}
