package render

import (
	"image"
	"image/color"
)

// ClockText holds the already formatted strings for the text layers.
type ClockText struct {
	Time     string
	Weekday  string
	Date     string
	Meridiem string
	Clock24  bool
}

const (
	timeHeight     = 50
	dateHeight     = 35
	meridiemWidth  = 30
	meridiemHeight = 25
	meridiemInset  = 46
	meridiemDrop   = 13
	// Room left for the meridiem in 12h mode
	timeShrink = 50
)

// TextRects returns the boxes of the time, weekday, date and meridiem layers.
func TextRects(bounds image.Rectangle, clock24 bool) (clock, weekday, date, meridiem image.Rectangle) {
	w, h := bounds.Dx(), bounds.Dy()
	o := bounds.Min
	timeY := h * 6 / 21
	if clock24 {
		clock = image.Rect(0, timeY, w, timeY+timeHeight)
	} else {
		clock = image.Rect(0, timeY, w-timeShrink, timeY+timeHeight)
	}
	weekdayY := h * 5 / 84
	dateY := h * 15 / 84
	weekday = image.Rect(0, weekdayY, w, weekdayY+dateHeight)
	date = image.Rect(0, dateY, w, dateY+dateHeight)
	mx, my := w-meridiemInset, timeY+meridiemDrop
	meridiem = image.Rect(mx, my, mx+meridiemWidth, my+meridiemHeight)
	return clock.Add(o), weekday.Add(o), date.Add(o), meridiem.Add(o)
}

// DrawText draws the time and date layers in the foreground color.
// The meridiem is only drawn in 12h mode.
func DrawText(s Surface, bounds image.Rectangle, t ClockText, fg color.Color) {
	clock, weekday, date, meridiem := TextRects(bounds, t.Clock24)
	if t.Clock24 {
		s.DrawText(t.Time, clock, AlignCenter, fg)
	} else {
		s.DrawText(t.Time, clock, AlignRight, fg)
	}
	s.DrawText(t.Weekday, weekday, AlignCenter, fg)
	s.DrawText(t.Date, date, AlignCenter, fg)
	if !t.Clock24 && t.Meridiem != "" {
		s.DrawText(t.Meridiem, meridiem, AlignLeft, fg)
	}
}
