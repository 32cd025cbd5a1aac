package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGPanel writes every frame to a PNG file. Writes are atomic: a reader
// never sees a partial file.
type PNGPanel struct {
	path string
	rect image.Rectangle
}

// NewPNGPanel returns a w by h panel writing to path. The parent
// directory is created if needed.
func NewPNGPanel(path string, w, h int) (*PNGPanel, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png panel size %dx%d must be positive", w, h)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &PNGPanel{path: path, rect: image.Rect(0, 0, w, h)}, nil
}

// Path returns the file frames are written to.
func (p *PNGPanel) Path() string { return p.path }

func (p *PNGPanel) Bounds() image.Rectangle { return p.rect }

// Show encodes img to a temporary file and renames it over the target.
func (p *PNGPanel) Show(img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("create temp frame: %w", err)
	}
	name := tmp.Name()
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp frame: %w", err)
	}
	if err := os.Rename(name, p.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename frame: %w", err)
	}
	return nil
}

// Close leaves the last frame in place.
func (p *PNGPanel) Close() error { return nil }
