package display

import (
	"image"
	"image/draw"
)

// FakePanel records frames instead of showing them.
type FakePanel struct {
	Rect image.Rectangle

	// Frames contains a copy of every frame shown, in order.
	Frames []*image.Gray

	// ShowError, if set, is returned by Show and the frame is not recorded.
	ShowError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakePanel returns a w by h fake panel.
func NewFakePanel(w, h int) *FakePanel {
	return &FakePanel{Rect: image.Rect(0, 0, w, h)}
}

func (p *FakePanel) Bounds() image.Rectangle { return p.Rect }

// Show records a grayscale copy of img.
func (p *FakePanel) Show(img image.Image) error {
	if p.ShowError != nil {
		return p.ShowError
	}
	cp := image.NewGray(img.Bounds())
	draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
	p.Frames = append(p.Frames, cp)
	return nil
}

// Last returns the most recent frame, or nil.
func (p *FakePanel) Last() *image.Gray {
	if len(p.Frames) == 0 {
		return nil
	}
	return p.Frames[len(p.Frames)-1]
}

// Close marks the panel as closed.
func (p *FakePanel) Close() error {
	p.Closed = true
	return nil
}

// Reset clears recorded frames.
func (p *FakePanel) Reset() {
	p.Frames = nil
	p.Closed = false
}
