// Package render draws the face onto a Surface of immediate-mode
// primitives. Renderers are pure functions of the state they are given;
// nothing is retained between frames.
package render

import (
	"image"
	"image/color"

	"github.com/sweeney/arc-diem/internal/logic"
)

// Align is horizontal text alignment inside a box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is the drawing backend.
// Widths are stroke widths in pixels. Polygons are closed, paths are open.
type Surface interface {
	Bounds() image.Rectangle
	FillRect(r image.Rectangle, c color.Color)
	FillCircle(center image.Point, radius int, c color.Color)
	DrawCircle(center image.Point, radius, width int, c color.Color)
	FillPolygon(pts []image.Point, c color.Color)
	DrawPolygon(pts []image.Point, width int, c color.Color)
	DrawPath(pts []image.Point, width int, c color.Color)
	DrawIcon(icon logic.Icon, r image.Rectangle)
	DrawText(s string, r image.Rectangle, align Align, c color.Color)
}
