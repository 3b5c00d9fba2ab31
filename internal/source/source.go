package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Input abstracts a conversion source: either a vector-animation
// markup document or an existing raster loop whose timing is
// re-derived from its own metadata.
type Input interface {
	Path() string
	// Dimensions reports the intrinsic pixel size of the content.
	Dimensions() (width, height float64, err error)
	Close() error
}

// Open picks an input implementation based on the file extension.
func Open(path string) (Input, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg", ".html":
		return NewMarkupInput(path)
	case ".gif":
		return NewRasterInput(path)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", path)
	}
}
