package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/sweeney/arc-diem/internal/logic"
)

// Bitmaps resolves icon identifiers to images rendered at size.
type Bitmaps interface {
	Bitmap(icon logic.Icon, size image.Point) (image.Image, bool)
}

const (
	miterLimit = 4
	// Text boxes at least this tall use the bold face
	boldHeight = timeHeight
)

// Raster is a Surface backed by an 8-bit grayscale image.
// It is not safe for concurrent use.
type Raster struct {
	img     *image.Gray
	filler  *rasterx.Filler
	stroker *rasterx.Stroker
	bitmaps Bitmaps
	faces   map[int]font.Face
	// Icons that could not be resolved since the last Reset
	Missing []logic.Icon
}

// NewRaster returns a w by h raster. bitmaps may be nil, in which case
// icons are skipped.
func NewRaster(w, h int, bitmaps Bitmaps) *Raster {
	img := image.NewGray(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Raster{
		img:     img,
		filler:  rasterx.NewFiller(w, h, scanner),
		stroker: rasterx.NewStroker(w, h, scanner),
		bitmaps: bitmaps,
		faces:   make(map[int]font.Face),
	}
}

func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// Image returns the live backing image. It changes on the next draw.
func (r *Raster) Image() *image.Gray { return r.img }

// Snapshot returns a copy of the current frame.
func (r *Raster) Snapshot() *image.Gray {
	out := image.NewGray(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// Reset clears the missing icon list.
func (r *Raster) Reset() {
	r.Missing = nil
}

func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(center image.Point, radius int, c color.Color) {
	r.fill(c, func(a rasterx.Adder) {
		cx, cy := pixelCenter(center)
		rasterx.AddCircle(cx, cy, float64(radius), a)
	})
}

func (r *Raster) DrawCircle(center image.Point, radius, width int, c color.Color) {
	r.stroke(width, c, func(a rasterx.Adder) {
		cx, cy := pixelCenter(center)
		rasterx.AddCircle(cx, cy, float64(radius), a)
	})
}

func (r *Raster) FillPolygon(pts []image.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	r.fill(c, func(a rasterx.Adder) { addPolyline(a, pts, true) })
}

func (r *Raster) DrawPolygon(pts []image.Point, width int, c color.Color) {
	if len(pts) < 2 {
		return
	}
	r.stroke(width, c, func(a rasterx.Adder) { addPolyline(a, pts, true) })
}

func (r *Raster) DrawPath(pts []image.Point, width int, c color.Color) {
	if len(pts) < 2 {
		return
	}
	r.stroke(width, c, func(a rasterx.Adder) { addPolyline(a, pts, false) })
}

func (r *Raster) DrawIcon(icon logic.Icon, rect image.Rectangle) {
	if r.bitmaps == nil || rect.Empty() {
		return
	}
	src, ok := r.bitmaps.Bitmap(icon, rect.Size())
	if !ok {
		r.Missing = append(r.Missing, icon)
		return
	}
	if src.Bounds().Size() == rect.Size() {
		draw.Draw(r.img, rect, src, src.Bounds().Min, draw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(r.img, rect, src, src.Bounds(), xdraw.Over, nil)
}

// DrawText draws s vertically centred in rect, clipped to it.
func (r *Raster) DrawText(s string, rect image.Rectangle, align Align, c color.Color) {
	rect = rect.Intersect(r.img.Bounds())
	if s == "" || rect.Empty() {
		return
	}
	face := r.face(rect.Dy())
	d := font.Drawer{
		Dst:  r.img.SubImage(rect).(*image.Gray),
		Src:  image.NewUniform(c),
		Face: face,
	}
	w := d.MeasureString(s).Round()
	x := rect.Min.X
	switch align {
	case AlignCenter:
		x += (rect.Dx() - w) / 2
	case AlignRight:
		x = rect.Max.X - w
	}
	m := face.Metrics()
	y := rect.Min.Y + (rect.Dy()+m.Ascent.Round()-m.Descent.Round())/2
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func (r *Raster) fill(c color.Color, build func(rasterx.Adder)) {
	r.filler.Clear()
	r.filler.SetColor(c)
	build(r.filler)
	r.filler.Draw()
	r.filler.Clear()
}

func (r *Raster) stroke(width int, c color.Color, build func(rasterx.Adder)) {
	r.stroker.Clear()
	r.stroker.SetStroke(fixed.I(width), fixed.I(miterLimit),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	r.stroker.SetColor(c)
	build(r.stroker)
	r.stroker.Draw()
	r.stroker.Clear()
}

func (r *Raster) face(height int) font.Face {
	if f, ok := r.faces[height]; ok {
		return f
	}
	f := newFace(height)
	r.faces[height] = f
	return f
}

func addPolyline(a rasterx.Adder, pts []image.Point, closed bool) {
	x, y := pixelCenter(pts[0])
	a.Start(rasterx.ToFixedP(x, y))
	for _, p := range pts[1:] {
		x, y = pixelCenter(p)
		a.Line(rasterx.ToFixedP(x, y))
	}
	a.Stop(closed)
}

func pixelCenter(p image.Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

var goFonts = sync.OnceValues(func() ([2]*opentype.Font, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return [2]*opentype.Font{}, err
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return [2]*opentype.Font{}, err
	}
	return [2]*opentype.Font{bold, regular}, nil
})

// newFace picks a Go font face sized to fill a box of the given height.
// It falls back to the fixed 7x13 face if the fonts cannot be loaded.
func newFace(height int) font.Face {
	fonts, err := goFonts()
	if err != nil {
		return basicfont.Face7x13
	}
	src, scale := fonts[1], 0.6
	if height >= boldHeight {
		src, scale = fonts[0], 0.7
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(height) * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return f
}
