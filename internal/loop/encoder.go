package loop

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"

	"github.com/setanarut/apng"
)

// Encoder writes one artifact to disk.
type Encoder interface {
	// Ext is the enforced artifact suffix, without the dot.
	Ext() string
	Encode(path string, art *Artifact) error
}

// ForFormat selects the encoder for an output container name.
func ForFormat(format string) (Encoder, error) {
	switch format {
	case "gif", "":
		return &GIFEncoder{}, nil
	case "apng", "png":
		return &APNGEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// GIFEncoder writes an infinitely looping GIF with explicit per-frame
// delays and full-frame-replace disposal. No frame-merging
// optimization takes place, so the decoded artifact reports exactly
// the encoded frame count.
type GIFEncoder struct{}

func (e *GIFEncoder) Ext() string { return "gif" }

func (e *GIFEncoder) Encode(path string, art *Artifact) error {
	if len(art.Images) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	out := &gif.GIF{LoopCount: art.LoopCount}
	var prev *image.Paletted
	// Delays land on the GIF 10ms grid; the rounding remainder is
	// carried forward so total playback never drifts off schedule.
	totalMS, emittedCS := 0, 0
	for i, img := range art.Images {
		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})

		// Quantization can erase the pre-palette perturbation; keep
		// neighbors bit-distinct on the palette side too.
		if prev != nil && bytes.Equal(pal.Pix, prev.Pix) {
			n := len(pal.Pix)
			step := i % len(pal.Palette)
			if step == 0 {
				step = 1
			}
			pal.Pix[n-1] = uint8((int(pal.Pix[n-1]) + step) % len(pal.Palette))
		}
		prev = pal

		out.Image = append(out.Image, pal)
		totalMS += art.DelayMS[i]
		cs := int(math.Round(float64(totalMS)/10)) - emittedCS
		emittedCS += cs
		out.Delay = append(out.Delay, cs)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// APNGEncoder writes the same loop as an animated PNG. Delays are
// expressed in hundredths of a second, matching the GIF timing grid.
type APNGEncoder struct{}

func (e *APNGEncoder) Ext() string { return "png" }

func (e *APNGEncoder) Encode(path string, art *Artifact) error {
	if len(art.Images) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	frames := make([]image.Image, len(art.Images))
	for i, img := range art.Images {
		frames[i] = img
	}
	delayCS := uint16(math.Round(float64(art.DelayMS[0]) / 10))
	delays := make([]uint16, len(frames))
	for i := range delays {
		delays[i] = delayCS
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := apng.EncodeAll(f, &apng.APNG{Images: frames, Delays: delays}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
