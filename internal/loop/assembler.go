// Package loop turns a captured frame sequence into one looping raster
// artifact with explicit per-frame timing.
package loop

import (
	"image"
	"image/draw"

	"svg2gif/internal/capture"
	"svg2gif/internal/config"
	"svg2gif/internal/system"
)

// Artifact is the terminal output of a run: flattened opaque frames
// with a parallel per-frame delay list. LoopCount 0 repeats forever.
type Artifact struct {
	Images    []*image.RGBA
	DelayMS   []int
	LoopCount int
}

// Release returns the frame buffers to the image pool. Call once the
// artifact has been encoded.
func (a *Artifact) Release() {
	for i, img := range a.Images {
		system.PutImage(img)
		a.Images[i] = nil
	}
}

// Assemble normalizes captured frames into an artifact: trims the
// uniform background margin, flattens everything onto the opaque
// background, and perturbs each frame so that no two neighbors are
// bit-identical. All frames share one display duration.
func Assemble(frames []capture.Frame, frameDurationMS int) *Artifact {
	crop := contentBounds(frames)

	art := &Artifact{
		Images:    make([]*image.RGBA, 0, len(frames)),
		DelayMS:   make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for _, f := range frames {
		img := flatten(f.Image, crop)
		perturb(img, f.Index)
		art.Images = append(art.Images, img)
		art.DelayMS = append(art.DelayMS, frameDurationMS)
	}
	return art
}

// contentBounds is the union of every frame's tight non-background
// bounding box, so all frames keep one canvas size. A fully-background
// sequence crops nothing.
func contentBounds(frames []capture.Frame) image.Rectangle {
	var union image.Rectangle
	for _, f := range frames {
		if b := tightBounds(f.Image); !b.Empty() {
			union = union.Union(b)
		}
	}
	if union.Empty() && len(frames) > 0 {
		return frames[0].Image.Bounds()
	}
	return union
}

func tightBounds(img *image.RGBA) image.Rectangle {
	bg := config.Background
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			p := (x - b.Min.X) * 4
			if row[p] != bg[0] || row[p+1] != bg[1] || row[p+2] != bg[2] {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// flatten crops to the shared content box and composites any
// transparency over the background, yielding an opaque frame.
func flatten(src *image.RGBA, crop image.Rectangle) *image.RGBA {
	dst := system.GetImage(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	bg := config.Background
	for p := 0; p < len(dst.Pix); p += 4 {
		dst.Pix[p+0] = bg[0]
		dst.Pix[p+1] = bg[1]
		dst.Pix[p+2] = bg[2]
		dst.Pix[p+3] = 255
	}
	draw.Draw(dst, dst.Bounds(), src, crop.Min, draw.Over)
	return dst
}

// perturb nudges the last pixel by the frame index so consecutive
// frames are never bit-identical even when the renderer produced
// identical captures. Encoders and viewers silently merge duplicated
// frames, which corrupts the timing.
func perturb(img *image.RGBA, index int) {
	n := len(img.Pix)
	if n < 4 {
		return
	}
	b := int(img.Pix[n-2])
	img.Pix[n-2] = uint8((b + index) % 256)
}
