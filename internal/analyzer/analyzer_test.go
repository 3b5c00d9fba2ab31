package analyzer

import (
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	"svg2gif/internal/config"
	"svg2gif/internal/source"
)

func TestMarkupDetector(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		duration  float64
		staggered bool
	}{
		{
			name:     "css shorthand seconds",
			markup:   `<style>.a { animation: spin 2.5s linear infinite; }</style>`,
			duration: 2.5,
		},
		{
			name:     "css explicit duration milliseconds",
			markup:   `<style>.a { animation-duration: 1800ms; }</style>`,
			duration: 1.8,
		},
		{
			name:      "delay extends duration",
			markup:    `<style>.a { animation: pulse 1.2s infinite; animation-delay: 0.45s; }</style>`,
			duration:  1.65,
			staggered: true,
		},
		{
			name:      "decimal-only delay shorthand",
			markup:    `<style>.a { animation-delay: .45s; }</style>`,
			duration:  1.45, // default 1.0 base + 0.45 offset
			staggered: true,
		},
		{
			name:     "smil dur raises total",
			markup:   `<animate attributeName="opacity" dur="3s" repeatCount="indefinite"/>`,
			duration: 3.0,
		},
		{
			name:      "smil dur below css total is ignored",
			markup:    `<style>.a{animation: s 2s;}</style><animate dur="0.5s"/>`,
			duration:  2.0,
			staggered: false,
		},
		{
			name:     "duration below default keeps default base",
			markup:   `<style>.a { animation: blink 0.3s infinite; }</style>`,
			duration: 1.0,
		},
		{
			name:     "empty markup falls back",
			markup:   "",
			duration: config.DefaultDuration,
		},
		{
			name:     "malformed markup falls back",
			markup:   `<svg><style>animation: ;;;</style`,
			duration: config.DefaultDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMarkupDetector(tt.markup).Detect()
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if math.Abs(got.Duration-tt.duration) > 1e-9 {
				t.Errorf("duration = %v, want %v", got.Duration, tt.duration)
			}
			if got.Staggered != tt.staggered {
				t.Errorf("staggered = %v, want %v", got.Staggered, tt.staggered)
			}
		})
	}
}

func TestMarkupDetectorIdempotent(t *testing.T) {
	markup := `<style>.a{animation: s 2s; animation-delay: .3s;}</style><animate dur="4s"/>`
	d := NewMarkupDetector(markup)

	first, _ := d.Detect()
	second, _ := d.Detect()
	if first != second {
		t.Errorf("detection not idempotent: %+v vs %+v", first, second)
	}
}

func TestDetectOptimalSpinnerOverride(t *testing.T) {
	markup := `<svg><style>
		.spinner_LWk7 { animation: scale 1.2s infinite; }
		.spinner_yOMU { animation: scale 1.2s infinite; animation-delay: .15s; }
	</style></svg>`

	length, fps := DetectOptimal(markup)
	if length != spinnerDuration || fps != spinnerFPS {
		t.Errorf("spinner override: got (%v, %v), want (%v, %v)", length, fps, spinnerDuration, spinnerFPS)
	}

	// The motif alone, without staggered starts, must not trigger it.
	length, fps = DetectOptimal(`<svg class="spinner_x"><style>.a{animation: s 2s;}</style></svg>`)
	if length != 2.0 || fps != config.DefaultFPS {
		t.Errorf("no-delay motif: got (%v, %v), want (2, %v)", length, fps, config.DefaultFPS)
	}
}

func TestRasterDetector(t *testing.T) {
	g := &gif.GIF{}
	for i := 0; i < 20; i++ {
		g.Image = append(g.Image, image.NewPaletted(image.Rect(0, 0, 2, 2), nil))
		g.Delay = append(g.Delay, 5) // 50ms per frame
	}

	d := NewRasterDetector(g)
	timing, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if math.Abs(timing.Duration-1.0) > 1e-9 {
		t.Errorf("duration = %v, want 1.0", timing.Duration)
	}
	if rate := d.Rate(); rate != 20 {
		t.Errorf("rate = %d, want 20", rate)
	}
}

func TestRasterDetectorEmpty(t *testing.T) {
	if _, err := NewRasterDetector(&gif.GIF{}).Detect(); err == nil {
		t.Error("expected error for empty raster input")
	}
}

func TestForInput(t *testing.T) {
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "a.svg")
	if err := os.WriteFile(svgPath, []byte(`<style>.a{animation: s 2s;}</style>`), 0644); err != nil {
		t.Fatal(err)
	}
	in, err := source.Open(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	det, err := ForInput(in)
	if err != nil {
		t.Fatalf("ForInput failed: %v", err)
	}
	if _, ok := det.(*MarkupDetector); !ok {
		t.Errorf("detector = %T, want *MarkupDetector", det)
	}
	timing, _ := det.Detect()
	if timing.Duration != 2.0 {
		t.Errorf("duration = %v, want 2.0", timing.Duration)
	}

	gifPath := filepath.Join(dir, "a.gif")
	g := &gif.GIF{
		Image: []*image.Paletted{image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.White, color.Black})},
		Delay: []int{10},
	}
	f, err := os.Create(gifPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rin, err := source.Open(gifPath)
	if err != nil {
		t.Fatal(err)
	}
	defer rin.Close()
	det, err = ForInput(rin)
	if err != nil {
		t.Fatalf("ForInput failed: %v", err)
	}
	if _, ok := det.(*RasterDetector); !ok {
		t.Errorf("detector = %T, want *RasterDetector", det)
	}
}
