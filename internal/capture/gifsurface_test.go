package capture

import (
	"image"
	"image/color"
	"image/gif"
	"testing"
)

func dotLoop(disposal byte) *gif.GIF {
	pal := color.Palette{color.Transparent, color.Black}
	g := &gif.GIF{}
	for i := 0; i < 2; i++ {
		fr := image.NewPaletted(image.Rect(0, 0, 8, 8), pal)
		fr.SetColorIndex(i*4, 4, 1)
		g.Image = append(g.Image, fr)
		g.Delay = append(g.Delay, 5)
		g.Disposal = append(g.Disposal, disposal)
	}
	return g
}

func TestGIFSurfaceDisposalBackground(t *testing.T) {
	s, err := NewGIFSurface(dotLoop(gif.DisposalBackground))
	if err != nil {
		t.Fatalf("NewGIFSurface failed: %v", err)
	}
	if err := s.SetProgress(1); err != nil {
		t.Fatal(err)
	}
	img, err := s.CaptureStill()
	if err != nil {
		t.Fatal(err)
	}

	// The first frame's dot was disposed to background; it must not
	// ghost into the second frame.
	if _, _, _, a := img.At(0, 4).RGBA(); a != 0 {
		t.Errorf("disposed dot still visible at (0,4), alpha %d", a)
	}
	if _, _, _, a := img.At(4, 4).RGBA(); a == 0 {
		t.Error("current frame's dot missing at (4,4)")
	}
}

func TestGIFSurfaceDisposalNoneAccumulates(t *testing.T) {
	s, err := NewGIFSurface(dotLoop(gif.DisposalNone))
	if err != nil {
		t.Fatalf("NewGIFSurface failed: %v", err)
	}
	if err := s.SetProgress(1); err != nil {
		t.Fatal(err)
	}
	img, err := s.CaptureStill()
	if err != nil {
		t.Fatal(err)
	}

	// Without disposal the canvas accumulates; both dots show.
	for _, x := range []int{0, 4} {
		if _, _, _, a := img.At(x, 4).RGBA(); a == 0 {
			t.Errorf("accumulated dot missing at (%d,4)", x)
		}
	}
}
