package analyzer

import (
	"fmt"
	"image/gif"

	"svg2gif/internal/config"
)

// RasterDetector derives timing from an already-rasterized loop: the
// artifact's own per-frame delay metadata replaces text scanning.
type RasterDetector struct {
	GIF *gif.GIF
}

func NewRasterDetector(g *gif.GIF) *RasterDetector {
	return &RasterDetector{GIF: g}
}

func (d *RasterDetector) Detect() (Timing, error) {
	if d.GIF == nil || len(d.GIF.Image) == 0 {
		return Timing{}, fmt.Errorf("raster input has no frames")
	}
	// GIF delays are in hundredths of a second.
	totalCS := 0
	for _, delay := range d.GIF.Delay {
		if delay > 0 {
			totalCS += delay
		}
	}
	length := float64(totalCS) / 100
	if length <= 0 {
		length = config.DefaultDuration
	}
	return Timing{Duration: length}, nil
}

// Rate returns the frame rate implied by the loop's own metadata,
// clamped to the supported range.
func (d *RasterDetector) Rate() int {
	t, err := d.Detect()
	if err != nil || t.Duration <= 0 {
		return config.DefaultFPS
	}
	return config.ClampFPS(int(float64(len(d.GIF.Image)) / t.Duration))
}
