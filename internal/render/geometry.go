package render

import (
	"image"
	"math"
)

// SizeClass selects emblem dimensions for the panel size.
type SizeClass int

const (
	Small SizeClass = iota // 144 px wide reference
	Large                  // 200 px wide reference
)

func (c SizeClass) String() string {
	if c == Large {
		return "large"
	}
	return "small"
}

// LargeWidth is the narrowest panel that uses the large emblems.
const LargeWidth = 200

// ClassFor returns the size class for a panel width.
func ClassFor(width int) SizeClass {
	if width >= LargeWidth {
		return Large
	}
	return Small
}

const (
	StrokeWidth = 3
	PivotRadius = 5

	// Angular offsets in degrees, taken from a 65536-step turn.
	BarbDelta  = 1000.0 / 65536 * 360
	MoonOffset = 2200.0 / 65536 * 360
)

// emblem holds the size-dependent sun and moon dimensions.
// Ray points are relative to the top-left of a box centred on the emblem.
type emblem struct {
	innerRays      []image.Point
	outerRays      []image.Point
	sunOffset      int
	smallSunRadius int
	moonOuter      int
	moonInner      int
}

var emblems = map[SizeClass]emblem{
	Small: {
		innerRays:      []image.Point{{5, 5}, {15, 10}, {25, 5}, {20, 15}, {25, 25}, {15, 20}, {5, 25}, {10, 15}},
		outerRays:      []image.Point{{15, 0}, {20, 10}, {30, 15}, {20, 20}, {15, 30}, {10, 20}, {0, 15}, {10, 10}},
		sunOffset:      15,
		smallSunRadius: 7,
		moonOuter:      14,
		moonInner:      8,
	},
	Large: {
		innerRays:      []image.Point{{7, 7}, {21, 14}, {35, 7}, {28, 21}, {35, 35}, {21, 28}, {7, 35}, {14, 21}},
		outerRays:      []image.Point{{21, 0}, {28, 14}, {42, 21}, {28, 28}, {21, 42}, {14, 28}, {0, 21}, {14, 14}},
		sunOffset:      21,
		smallSunRadius: 10,
		moonOuter:      19,
		moonInner:      11,
	},
}

// Layout holds the dial geometry derived from the panel bounds.
// All circles share the pivot at the bottom centre of the panel.
type Layout struct {
	Bounds       image.Rectangle
	Class        SizeClass
	Pivot        image.Point
	HandRadius   int
	BarbRadius   int
	EmblemRadius int
}

// NewLayout derives the dial geometry for a panel.
func NewLayout(bounds image.Rectangle) Layout {
	w, h := bounds.Dx(), bounds.Dy()
	return Layout{
		Bounds:       bounds,
		Class:        ClassFor(w),
		Pivot:        image.Pt(bounds.Min.X+w/2, bounds.Min.Y+h),
		HandRadius:   (w - 4) / 2,
		BarbRadius:   (w - 24) / 2,
		EmblemRadius: w / 4,
	}
}

// Polar returns the point at radius and angle from center.
// Angles are degrees, 0 pointing up and increasing clockwise.
func Polar(center image.Point, radius int, deg float64) image.Point {
	rad := deg * math.Pi / 180
	return image.Pt(
		center.X+int(math.Round(float64(radius)*math.Sin(rad))),
		center.Y-int(math.Round(float64(radius)*math.Cos(rad))),
	)
}

func translate(pts []image.Point, by image.Point) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(by)
	}
	return out
}
