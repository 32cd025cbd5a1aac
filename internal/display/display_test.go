package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func checker(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

func TestPNGPanel_WritesFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames", "face.png")
	p, err := NewPNGPanel(path, 8, 6)
	if err != nil {
		t.Fatalf("NewPNGPanel: %v", err)
	}
	if p.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("Bounds: got %v", p.Bounds())
	}

	if err := p.Show(checker(8, 6)); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if err := p.Show(checker(8, 6)); err != nil {
		t.Fatalf("second Show: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if img.Bounds().Size() != image.Pt(8, 6) {
		t.Errorf("frame size: got %v", img.Bounds().Size())
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0xFFFF {
		t.Errorf("pixel (0,0): got %v, want white", img.At(0, 0))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory entries: got %d, want 1 (no temp files left)", len(entries))
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("frame removed on Close: %v", err)
	}
}

func TestPNGPanel_BadSize(t *testing.T) {
	if _, err := NewPNGPanel(filepath.Join(t.TempDir(), "x.png"), 0, 10); err == nil {
		t.Error("expected error")
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(checker(4, 4))
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("missing PNG signature")
	}
}

func TestFakePanel(t *testing.T) {
	p := NewFakePanel(4, 4)
	var panel Panel = p

	src := checker(4, 4)
	if err := panel.Show(src); err != nil {
		t.Fatalf("Show: %v", err)
	}
	src.SetGray(0, 0, color.Gray{})
	if got := p.Last().GrayAt(0, 0).Y; got != 0xFF {
		t.Errorf("recorded frame aliases source: got %d", got)
	}

	p.ShowError = errors.New("panel busy")
	if err := panel.Show(src); err == nil {
		t.Error("expected scripted error")
	}
	if len(p.Frames) != 1 {
		t.Errorf("Frames: got %d, want 1", len(p.Frames))
	}

	panel.Close()
	if !p.Closed {
		t.Error("expected Closed")
	}
	p.Reset()
	if p.Last() != nil || p.Closed {
		t.Error("Reset did not clear state")
	}
}

func TestNopPanel(t *testing.T) {
	var p Panel = NewNopPanel(250, 122)
	if p.Bounds().Dx() != 250 {
		t.Errorf("Bounds: got %v", p.Bounds())
	}
	if err := p.Show(checker(2, 2)); err != nil {
		t.Errorf("Show: %v", err)
	}
}
