package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/sweeney/arc-diem/internal/logic"
)

type fakeBitmaps struct {
	icons map[logic.Icon]image.Image
	sizes []image.Point
}

func (f *fakeBitmaps) Bitmap(icon logic.Icon, size image.Point) (image.Image, bool) {
	f.sizes = append(f.sizes, size)
	img, ok := f.icons[icon]
	return img, ok
}

func solid(w, h int, c color.Gray) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = c.Y
	}
	return img
}

func countGray(img *image.Gray, r image.Rectangle, y uint8) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			if img.GrayAt(px, py).Y == y {
				n++
			}
		}
	}
	return n
}

func TestRaster_FillRect(t *testing.T) {
	r := NewRaster(20, 20, nil)
	r.FillRect(r.Bounds(), white)
	r.FillRect(image.Rect(5, 5, 10, 10), black)

	img := r.Image()
	if got := img.GrayAt(7, 7).Y; got != 0 {
		t.Errorf("inside: got %d, want 0", got)
	}
	if got := img.GrayAt(12, 12).Y; got != 0xFF {
		t.Errorf("outside: got %d, want 255", got)
	}
	if got := countGray(img, r.Bounds(), 0); got != 25 {
		t.Errorf("black pixels: got %d, want 25", got)
	}
}

func TestRaster_FillCircle(t *testing.T) {
	r := NewRaster(40, 40, nil)
	r.FillRect(r.Bounds(), white)
	r.FillCircle(image.Pt(20, 20), 8, black)

	img := r.Image()
	if got := img.GrayAt(20, 20).Y; got != 0 {
		t.Errorf("centre: got %d, want 0", got)
	}
	if got := img.GrayAt(2, 2).Y; got != 0xFF {
		t.Errorf("corner: got %d, want 255", got)
	}
}

func TestRaster_DrawPathStrokes(t *testing.T) {
	r := NewRaster(40, 40, nil)
	r.FillRect(r.Bounds(), white)
	r.DrawPath([]image.Point{{5, 20}, {35, 20}}, 3, black)

	img := r.Image()
	if got := img.GrayAt(20, 20).Y; got != 0 {
		t.Errorf("on line: got %d, want 0", got)
	}
	if got := img.GrayAt(20, 30).Y; got != 0xFF {
		t.Errorf("off line: got %d, want 255", got)
	}
}

func TestRaster_DegeneratePolygonsIgnored(t *testing.T) {
	r := NewRaster(10, 10, nil)
	r.FillRect(r.Bounds(), white)
	r.FillPolygon([]image.Point{{1, 1}, {5, 5}}, black)
	r.DrawPath([]image.Point{{1, 1}}, 3, black)
	if got := countGray(r.Image(), r.Bounds(), 0xFF); got != 100 {
		t.Errorf("white pixels: got %d, want 100", got)
	}
}

func TestRaster_DrawIcon(t *testing.T) {
	bm := &fakeBitmaps{icons: map[logic.Icon]image.Image{
		logic.IconBluetooth: solid(4, 4, black),
	}}
	r := NewRaster(20, 20, bm)
	r.FillRect(r.Bounds(), white)

	r.DrawIcon(logic.IconBluetooth, image.Rect(2, 2, 6, 6))
	if got := countGray(r.Image(), r.Bounds(), 0); got != 16 {
		t.Errorf("same-size icon: got %d black pixels, want 16", got)
	}

	r.DrawIcon(logic.IconBluetooth, image.Rect(10, 10, 18, 18))
	if got := countGray(r.Image(), image.Rect(10, 10, 18, 18), 0); got != 64 {
		t.Errorf("scaled icon: got %d black pixels, want 64", got)
	}
	if bm.sizes[1] != image.Pt(8, 8) {
		t.Errorf("requested size: got %v, want (8,8)", bm.sizes[1])
	}
}

func TestRaster_MissingIconRecorded(t *testing.T) {
	r := NewRaster(20, 20, &fakeBitmaps{})
	r.DrawIcon(logic.IconBatteryPlus, image.Rect(0, 0, 5, 5))
	if len(r.Missing) != 1 || r.Missing[0] != logic.IconBatteryPlus {
		t.Errorf("Missing: got %v", r.Missing)
	}
	r.Reset()
	if len(r.Missing) != 0 {
		t.Errorf("Missing after Reset: got %v", r.Missing)
	}
}

func TestRaster_DrawTextClipped(t *testing.T) {
	r := NewRaster(144, 168, nil)
	r.FillRect(r.Bounds(), white)
	box := image.Rect(0, 48, 144, 98)
	r.DrawText("12:59", box, AlignCenter, black)

	img := r.Image()
	if got := countGray(img, box, 0xFF); got == box.Dx()*box.Dy() {
		t.Error("no ink inside text box")
	}
	outside := countGray(img, image.Rect(0, 0, 144, 48), 0xFF) + countGray(img, image.Rect(0, 98, 144, 168), 0xFF)
	if want := 144*48 + 144*70; outside != want {
		t.Errorf("ink outside box: got %d white pixels, want %d", outside, want)
	}
}

func TestRaster_SnapshotIsCopy(t *testing.T) {
	r := NewRaster(4, 4, nil)
	r.FillRect(r.Bounds(), white)
	snap := r.Snapshot()
	r.FillRect(r.Bounds(), black)
	if got := snap.GrayAt(0, 0).Y; got != 0xFF {
		t.Errorf("snapshot pixel: got %d, want 255", got)
	}
}

func TestRaster_FrameSmoke(t *testing.T) {
	for _, size := range []image.Point{{144, 168}, {250, 122}} {
		r := NewRaster(size.X, size.Y, nil)
		DrawFrame(r, Frame{
			Daytime:   night(),
			Angle:     30,
			Text:      ClockText{Time: "21:30", Weekday: "Tue", Date: "Mar 10", Clock24: true},
			Battery:   logic.BatteryState{Percent: 10},
			BatteryOn: logic.BatteryLow,
			Bluetooth: logic.IconShownOff,
		})
		if got := countGray(r.Image(), r.Bounds(), 0xFF); got == 0 {
			t.Errorf("%v: night frame has no white ink", size)
		}
	}
}
