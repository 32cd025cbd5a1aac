// Package display shows rendered frames on a panel.
// The e-paper implementation drives a Waveshare HAT over SPI.
// The PNG implementation writes each frame to a file.
// The fake implementation records frames for tests.
package display

import (
	"bytes"
	"image"
	"image/png"
)

// Panel shows complete frames.
type Panel interface {
	// Bounds returns the size frames should be rendered at.
	Bounds() image.Rectangle

	// Show replaces the panel contents with img.
	Show(img image.Image) error

	// Close releases the panel. The panel is left blank where supported.
	Close() error
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NopPanel discards frames.
type NopPanel struct {
	Rect image.Rectangle
}

// NewNopPanel returns a panel of the given size that shows nothing.
func NewNopPanel(w, h int) *NopPanel {
	return &NopPanel{Rect: image.Rect(0, 0, w, h)}
}

func (p *NopPanel) Bounds() image.Rectangle { return p.Rect }
func (p *NopPanel) Show(image.Image) error  { return nil }
func (p *NopPanel) Close() error            { return nil }
