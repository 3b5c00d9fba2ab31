package capture

import (
	"image"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// Downscale resamples an oversampled capture back to logical size.
// factor <= 1 only normalizes the representation. The result is a
// fresh buffer owned by the caller; surfaces may reuse theirs.
func Downscale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	if factor <= 1 {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		stddraw.Draw(dst, dst.Bounds(), img, b.Min, stddraw.Src)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/factor, b.Dy()/factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
