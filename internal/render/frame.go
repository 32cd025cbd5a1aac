package render

import (
	"github.com/sweeney/arc-diem/internal/logic"
)

// Frame is everything needed to draw one complete face.
type Frame struct {
	Daytime   logic.DaytimeState
	Angle     float64
	Text      ClockText
	Battery   logic.BatteryState
	BatteryOn logic.BatteryVisibility
	Bluetooth logic.IconState
}

// DrawFrame paints the background, hand and emblem, text, battery gauge
// and connectivity icon, in that order.
func DrawFrame(s Surface, f Frame) {
	b := s.Bounds()
	p := f.Daytime.Palette

	s.FillRect(b, p.Background)
	s.DrawIcon(logic.Icon(p.Image), b)

	DrawHand(s, NewLayout(b), f.Angle, f.Daytime)
	DrawText(s, b, f.Text, p.Foreground)
	DrawBattery(s, b, f.Battery, f.BatteryOn, f.Daytime)
	DrawBluetooth(s, b, f.Bluetooth, f.Daytime.IsDaytime)
}
