package analyzer

import (
	"fmt"

	"svg2gif/internal/source"
)

// ForInput picks the detector matching the source kind: markup
// scanning for a vector document, metadata re-derivation for an
// existing raster loop.
func ForInput(in source.Input) (Detector, error) {
	switch in := in.(type) {
	case *source.MarkupInput:
		return NewMarkupDetector(in.Markup()), nil
	case *source.RasterInput:
		return NewRasterDetector(in.GIF()), nil
	default:
		return nil, fmt.Errorf("no timing detector for %T", in)
	}
}
