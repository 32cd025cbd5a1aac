package render

import (
	"image"
	"image/color"

	"github.com/sweeney/arc-diem/internal/logic"
)

// OpKind identifies a recorded drawing primitive.
type OpKind string

const (
	OpFillRect    OpKind = "fill_rect"
	OpFillCircle  OpKind = "fill_circle"
	OpDrawCircle  OpKind = "draw_circle"
	OpFillPolygon OpKind = "fill_polygon"
	OpDrawPolygon OpKind = "draw_polygon"
	OpDrawPath    OpKind = "draw_path"
	OpIcon        OpKind = "icon"
	OpText        OpKind = "text"
)

// Op is one recorded call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Rect   image.Rectangle
	Center image.Point
	Radius int
	Width  int
	Points []image.Point
	Color  color.Color
	Icon   logic.Icon
	Text   string
	Align  Align
}

// Recorder is a Surface that records calls instead of drawing them.
type Recorder struct {
	Rect image.Rectangle
	Ops  []Op
}

// NewRecorder returns a Recorder for a panel of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{Rect: image.Rect(0, 0, w, h)}
}

func (r *Recorder) Bounds() image.Rectangle { return r.Rect }

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) FillCircle(center image.Point, radius int, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: c})
}

func (r *Recorder) DrawCircle(center image.Point, radius, width int, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawCircle, Center: center, Radius: radius, Width: width, Color: c})
}

func (r *Recorder) FillPolygon(pts []image.Point, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPolygon, Points: clonePoints(pts), Color: c})
}

func (r *Recorder) DrawPolygon(pts []image.Point, width int, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawPolygon, Points: clonePoints(pts), Width: width, Color: c})
}

func (r *Recorder) DrawPath(pts []image.Point, width int, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawPath, Points: clonePoints(pts), Width: width, Color: c})
}

func (r *Recorder) DrawIcon(icon logic.Icon, rect image.Rectangle) {
	r.Ops = append(r.Ops, Op{Kind: OpIcon, Icon: icon, Rect: rect})
}

func (r *Recorder) DrawText(s string, rect image.Rectangle, align Align, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: s, Rect: rect, Align: align, Color: c})
}

// Find returns the recorded ops of one kind, in call order.
func (r *Recorder) Find(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Icons returns the drawn icons in call order.
func (r *Recorder) Icons() []logic.Icon {
	var out []logic.Icon
	for _, op := range r.Find(OpIcon) {
		out = append(out, op.Icon)
	}
	return out
}

// Texts returns the drawn strings in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Find(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Reset clears recorded ops.
func (r *Recorder) Reset() {
	r.Ops = nil
}

func clonePoints(pts []image.Point) []image.Point {
	out := make([]image.Point, len(pts))
	copy(out, pts)
	return out
}
