package assets

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/sweeney/arc-diem/internal/logic"
	"github.com/sweeney/arc-diem/internal/render"
)

func rgbaAt(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestLoad_RendersEverything(t *testing.T) {
	s := NewStore()
	if err := s.Load(image.Pt(144, 168)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := s.Len(), len(Icons())+2; got != want {
		t.Errorf("cached: got %d, want %d", got, want)
	}
	s.Release()
	if got := s.Len(); got != 0 {
		t.Errorf("cached after Release: got %d, want 0", got)
	}
}

func TestEveryIconHasSource(t *testing.T) {
	for _, icon := range Icons() {
		if _, ok := icons[icon]; !ok {
			t.Errorf("no source for %s", icon)
		}
	}
	// Every icon the face logic can select must be renderable.
	for _, charging := range []bool{false, true} {
		for _, daytime := range []bool{false, true} {
			icon := logic.BatteryIcon(charging, daytime)
			if _, ok := icons[icon]; !ok {
				t.Errorf("battery icon %s has no source", icon)
			}
		}
	}
	for _, st := range []logic.IconState{logic.IconShownConnected, logic.IconShownDisconnected, logic.IconShownOff} {
		for _, daytime := range []bool{false, true} {
			icon, _ := logic.BluetoothIcon(st, daytime)
			if _, ok := icons[icon]; !ok {
				t.Errorf("bluetooth icon %s has no source", icon)
			}
		}
	}
}

func TestBitmap_NativeSize(t *testing.T) {
	s := NewStore()
	img, ok := s.Bitmap(logic.IconBattery, image.Point{})
	if !ok {
		t.Fatal("battery icon not rendered")
	}
	if got := img.Bounds().Size(); got != image.Pt(21, 9) {
		t.Errorf("size: got %v, want (21,9)", got)
	}
	if got := rgbaAt(t, img, 18, 4); got != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Errorf("nub pixel: got %v, want opaque black", got)
	}
	if got := rgbaAt(t, img, 9, 4); got.A != 0 {
		t.Errorf("interior pixel: got %v, want transparent", got)
	}
}

func TestBitmap_DarkVariantInverted(t *testing.T) {
	s := NewStore()
	img, ok := s.Bitmap(logic.IconBatteryDark, image.Point{})
	if !ok {
		t.Fatal("dark battery icon not rendered")
	}
	if got := rgbaAt(t, img, 18, 4); got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("nub pixel: got %v, want opaque white", got)
	}
}

func TestBitmap_ScaledAndCached(t *testing.T) {
	s := NewStore()
	a, ok := s.Bitmap(logic.IconBluetooth, image.Pt(36, 36))
	if !ok {
		t.Fatal("bluetooth icon not rendered")
	}
	if got := a.Bounds().Size(); got != image.Pt(36, 36) {
		t.Errorf("size: got %v, want (36,36)", got)
	}
	b, _ := s.Bitmap(logic.IconBluetooth, image.Pt(36, 36))
	if a != b {
		t.Error("second lookup did not hit the cache")
	}
	if got := s.Len(); got != 1 {
		t.Errorf("cached: got %d, want 1", got)
	}
}

func TestBitmap_Unknown(t *testing.T) {
	s := NewStore()
	if _, ok := s.Bitmap(logic.Icon("NOPE"), image.Point{}); ok {
		t.Error("unknown icon rendered")
	}
	if got := s.Len(); got != 0 {
		t.Errorf("cached: got %d, want 0", got)
	}
}

func TestDial(t *testing.T) {
	svg, err := Dial(image.Pt(144, 168), inkDay)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	doc := string(svg)
	if got := strings.Count(doc, "<line"); got != 13 {
		t.Errorf("ticks: got %d, want 13", got)
	}
	if got := strings.Count(doc, `stroke-width="2"`); got != 5 {
		t.Errorf("major ticks: got %d, want 5", got)
	}
	if !strings.Contains(doc, "M 1 168 A 71 71 0 0 1 143 168") {
		t.Errorf("arc missing from dial:\n%s", doc)
	}
	if strings.Contains(doc, inkNight) {
		t.Error("day dial uses night ink")
	}
}

func TestDial_EmptySize(t *testing.T) {
	if _, err := Dial(image.Point{}, inkDay); err == nil {
		t.Error("expected error for empty size")
	}
}

func TestBackgroundAtPanelSize(t *testing.T) {
	s := NewStore()
	img, ok := s.Bitmap(logic.IconBackgroundNight, image.Pt(144, 168))
	if !ok {
		t.Fatal("night background not rendered")
	}
	if got := img.Bounds().Size(); got != image.Pt(144, 168) {
		t.Errorf("size: got %v, want (144,168)", got)
	}
	// The top of the dial sits on the arc at the vertical through the pivot.
	top := render.Polar(image.Pt(72, 168), 71, 0)
	if got := rgbaAt(t, img, top.X, top.Y); got.A == 0 {
		t.Errorf("dial top %v: transparent", top)
	}
}
