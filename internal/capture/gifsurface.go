package capture

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"math"
)

// GIFSurface replays an existing raster loop as a rendering surface:
// SetProgress positions the loop, CaptureStill returns the coalesced
// frame for that instant. No browser is involved.
type GIFSurface struct {
	frames []*image.RGBA
	cursor int
}

// NewGIFSurface coalesces the loop's frames onto a shared canvas,
// honoring each frame's disposal so partial-frame updates replay
// without ghosting.
func NewGIFSurface(g *gif.GIF) (*GIFSurface, error) {
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("raster loop has no frames")
	}

	canvasRect := g.Image[0].Bounds()
	for _, fr := range g.Image {
		canvasRect = canvasRect.Union(fr.Bounds())
	}

	canvas := image.NewRGBA(canvasRect)
	frames := make([]*image.RGBA, 0, len(g.Image))
	for i, fr := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var saved *image.RGBA
		if disposal == gif.DisposalPrevious {
			saved = image.NewRGBA(canvasRect)
			draw.Draw(saved, canvasRect, canvas, canvasRect.Min, draw.Src)
		}

		draw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)
		snap := image.NewRGBA(image.Rect(0, 0, canvasRect.Dx(), canvasRect.Dy()))
		draw.Draw(snap, snap.Bounds(), canvas, canvasRect.Min, draw.Src)
		frames = append(frames, snap)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, fr.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return &GIFSurface{frames: frames}, nil
}

func (s *GIFSurface) SetProgress(progress float64) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	s.cursor = int(math.Round(progress * float64(len(s.frames)-1)))
	return nil
}

func (s *GIFSurface) CaptureStill() (image.Image, error) {
	return s.frames[s.cursor], nil
}

func (s *GIFSurface) Close() error {
	s.frames = nil
	return nil
}
