package logic

import (
	"image/color"
	"time"
)

// HoursPerDay bounds TimeBoundary hours.
const HoursPerDay = 24

var (
	dayPalette = Palette{
		Foreground: color.Gray{Y: 0x00},
		Background: color.Gray{Y: 0xFF},
		Image:      BackgroundDay,
	}
	nightPalette = Palette{
		Foreground: color.Gray{Y: 0xFF},
		Background: color.Gray{Y: 0x00},
		Image:      BackgroundNight,
	}
)

// PaletteFor returns the fixed palette for daytime or nighttime.
func PaletteFor(daytime bool) Palette {
	if daytime {
		return dayPalette
	}
	return nightPalette
}

// ClampHour forces an hour into [0,23].
func ClampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > HoursPerDay-1 {
		return HoursPerDay - 1
	}
	return h
}

// NextOccurrence returns the next instant strictly after now at which the
// wall clock in now's location reads hour:00. An occurrence equal to now
// has already passed, so a segment starts exactly at hour:00.
func NextOccurrence(now time.Time, hour int) time.Time {
	hour = ClampHour(hour)
	y, m, d := now.Date()
	next := time.Date(y, m, d, hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, hour, 0, 0, 0, now.Location())
	}
	return next
}

// ComputeDaytime decides whether now lies inside the day segment.
// Daytime holds iff the next end-of-day comes before the next start-of-day.
// Equal start and end hours never produce daytime.
func ComputeDaytime(now time.Time, b TimeBoundary) DaytimeState {
	start := NextOccurrence(now, b.StartHour)
	end := NextOccurrence(now, b.EndHour)
	daytime := end.Before(start)
	return DaytimeState{
		IsDaytime:  daytime,
		Palette:    PaletteFor(daytime),
		StartStamp: start,
		EndStamp:   end,
	}
}

// WindowMinutes returns the length of the current day or night segment.
// It is zero when start and end hours coincide.
func WindowMinutes(b TimeBoundary, daytime bool) int {
	start, end := ClampHour(b.StartHour), ClampHour(b.EndHour)
	if daytime {
		return ((end + HoursPerDay - start) % HoursPerDay) * 60
	}
	return ((start + HoursPerDay - end) % HoursPerDay) * 60
}

// RemainingMinutes returns the time left in the current segment.
func RemainingMinutes(now time.Time, d DaytimeState) float64 {
	if d.IsDaytime {
		return d.EndStamp.Sub(now).Minutes()
	}
	return d.StartStamp.Sub(now).Minutes()
}
