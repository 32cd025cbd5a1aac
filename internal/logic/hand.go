package logic

import "time"

// NeutralAngle is used when the segment has no length.
const NeutralAngle = 0.0

// HandAngle returns the progress hand direction in degrees, 0 pointing up
// and positive clockwise. A fresh segment points at -90 and a segment
// about to end points at 90.
func HandAngle(now time.Time, b TimeBoundary, d DaytimeState) float64 {
	window := WindowMinutes(b, d.IsDaytime)
	if window == 0 {
		return NeutralAngle
	}
	remaining := RemainingMinutes(now, d)
	return 90 - remaining/float64(2*window)*360
}
