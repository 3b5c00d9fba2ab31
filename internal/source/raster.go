package source

import (
	"fmt"
	"image/gif"
	"os"
)

// RasterInput is an existing looping raster document. Its per-frame
// delay metadata is the timing source.
type RasterInput struct {
	path string
	gif  *gif.GIF
}

func NewRasterInput(path string) (*RasterInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster loop %s: %w", path, err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decode raster loop %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("raster loop %s has no frames", path)
	}
	return &RasterInput{path: path, gif: g}, nil
}

func (r *RasterInput) Path() string { return r.path }

// GIF exposes the decoded loop for timing re-derivation.
func (r *RasterInput) GIF() *gif.GIF { return r.gif }

func (r *RasterInput) Dimensions() (float64, float64, error) {
	b := r.gif.Image[0].Bounds()
	return float64(b.Dx()), float64(b.Dy()), nil
}

func (r *RasterInput) Close() error { return nil }
