package source

import (
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"
)

// MarkupInput is a vector-animation document read as text. Geometry is
// probed through mupdf, which understands enough SVG to report the
// intrinsic bounds; timing never comes from here, only from the
// analyzer's text scan.
type MarkupInput struct {
	path   string
	markup string
	doc    *fitz.Document
}

func NewMarkupInput(path string) (*MarkupInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markup %s: %w", path, err)
	}
	return &MarkupInput{path: path, markup: string(data)}, nil
}

func (m *MarkupInput) Path() string { return m.path }

// Markup returns the raw document text for timing detection and for
// the rendering harness.
func (m *MarkupInput) Markup() string { return m.markup }

func (m *MarkupInput) Dimensions() (float64, float64, error) {
	if m.doc == nil {
		doc, err := fitz.New(m.path)
		if err != nil {
			return 0, 0, fmt.Errorf("probe %s: %w", m.path, err)
		}
		m.doc = doc
	}
	rect, err := m.doc.Bound(0)
	if err != nil {
		return 0, 0, fmt.Errorf("probe %s: %w", m.path, err)
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (m *MarkupInput) Close() error {
	if m.doc != nil {
		err := m.doc.Close()
		m.doc = nil
		return err
	}
	return nil
}
