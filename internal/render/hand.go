package render

import (
	"image"

	"github.com/sweeney/arc-diem/internal/logic"
)

// DrawHand draws the progress hand and the sun or moon emblem at angle.
func DrawHand(s Surface, l Layout, angle float64, d logic.DaytimeState) {
	fg := d.Palette.Foreground

	tip := Polar(l.Pivot, l.HandRadius, angle)
	left := Polar(l.Pivot, l.BarbRadius, angle-BarbDelta)
	right := Polar(l.Pivot, l.BarbRadius, angle+BarbDelta)
	s.DrawPath([]image.Point{l.Pivot, tip, left, tip, right}, StrokeWidth, fg)

	s.FillCircle(l.Pivot, PivotRadius, fg)
	s.DrawCircle(l.Pivot, PivotRadius, StrokeWidth, fg)

	center := Polar(l.Pivot, l.EmblemRadius, angle)
	if d.IsDaytime {
		drawSun(s, emblems[l.Class], center, d.Palette)
	} else {
		drawMoon(s, l, emblems[l.Class], angle, d.Palette)
	}
}

func drawSun(s Surface, e emblem, center image.Point, p logic.Palette) {
	origin := center.Sub(image.Pt(e.sunOffset, e.sunOffset))

	inner := translate(e.innerRays, origin)
	s.FillPolygon(inner, p.Foreground)
	s.DrawPolygon(inner, StrokeWidth, p.Foreground)

	outer := translate(e.outerRays, origin)
	s.FillPolygon(outer, p.Background)
	s.DrawPolygon(outer, StrokeWidth, p.Foreground)

	s.FillCircle(center, e.smallSunRadius, p.Foreground)
}

// drawMoon cuts a background disc out of a foreground disc. The cut-out
// sits slightly further along the emblem circle, leaving a crescent.
func drawMoon(s Surface, l Layout, e emblem, angle float64, p logic.Palette) {
	center := Polar(l.Pivot, l.EmblemRadius, angle)
	s.FillCircle(center, e.moonOuter, p.Foreground)
	s.DrawCircle(center, e.moonOuter, StrokeWidth, p.Foreground)

	cut := Polar(l.Pivot, l.EmblemRadius, angle+MoonOffset)
	s.FillCircle(cut, e.moonInner, p.Background)
	s.DrawCircle(cut, e.moonInner, StrokeWidth, p.Background)
}
