package render

import (
	"image"

	"github.com/sweeney/arc-diem/internal/logic"
)

// Battery layer geometry, relative to the top-left of the panel.
const (
	batteryBarX      = 25
	batteryBarY      = 1
	batteryBarHeight = 8
	batteryBarInset  = 2
	batteryIconW     = 21
	batteryIconH     = 9
)

// BatteryLayout is the gauge geometry for one panel width.
type BatteryLayout struct {
	Back image.Rectangle
	// Interior origin and width available to the charge bar
	Inner     image.Point
	Available int
	InnerH    int
	Icon      image.Rectangle
}

// NewBatteryLayout derives the gauge geometry for a panel.
func NewBatteryLayout(bounds image.Rectangle) BatteryLayout {
	o := bounds.Min
	backW := bounds.Dx() - 2*batteryBarX
	if backW < 0 {
		backW = 0
	}
	available := backW - 2*batteryBarInset
	if available < 0 {
		available = 0
	}
	return BatteryLayout{
		Back:      image.Rect(batteryBarX, batteryBarY, batteryBarX+backW, batteryBarY+batteryBarHeight).Add(o),
		Inner:     image.Pt(batteryBarX+batteryBarInset, batteryBarY+batteryBarInset).Add(o),
		Available: available,
		InnerH:    batteryBarHeight - 2*batteryBarInset,
		Icon:      image.Rect(0, 0, batteryIconW, batteryIconH).Add(o),
	}
}

// BarRect returns the charge bar for a percentage.
func (b BatteryLayout) BarRect(percent int) image.Rectangle {
	w := logic.GaugeWidth(percent, b.Available)
	return image.Rect(b.Inner.X, b.Inner.Y, b.Inner.X+w, b.Inner.Y+b.InnerH)
}

// DrawBattery draws the gauge when the policy allows it and reports
// whether anything was drawn.
// The bar is cut out of a foreground block in the background color.
func DrawBattery(s Surface, bounds image.Rectangle, st logic.BatteryState, v logic.BatteryVisibility, d logic.DaytimeState) bool {
	if !logic.BatteryVisible(st, v) {
		return false
	}
	l := NewBatteryLayout(bounds)
	s.FillRect(l.Back, d.Palette.Foreground)
	if bar := l.BarRect(st.Percent); !bar.Empty() {
		s.FillRect(bar, d.Palette.Background)
	}
	s.DrawIcon(logic.BatteryIcon(st.IsCharging, d.IsDaytime), l.Icon)
	return true
}
