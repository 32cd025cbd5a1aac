// Package assets rasterizes the face's icons and dial backgrounds from
// embedded SVG sources. Rendered bitmaps are cached per icon and size.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"strings"
	"sync"
	"text/template"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/sweeney/arc-diem/internal/logic"
	"github.com/sweeney/arc-diem/internal/render"
)

//go:embed icons/*.svg
var iconFS embed.FS

//go:embed dial.svg.tmpl
var dialSource string

var dialTemplate = template.Must(template.New("dial").Parse(dialSource))

const (
	inkDay   = "#000000"
	inkNight = "#ffffff"
)

// dark swaps the ink of a day icon for the night palette.
var dark = strings.NewReplacer(inkDay, inkNight)

type source struct {
	file  string
	night bool
}

var icons = map[logic.Icon]source{
	logic.IconBattery:          {"battery.svg", false},
	logic.IconBatteryDark:      {"battery.svg", true},
	logic.IconBatteryPlus:      {"battery_plus.svg", false},
	logic.IconBatteryPlusDark:  {"battery_plus.svg", true},
	logic.IconBluetooth:        {"bluetooth.svg", false},
	logic.IconBluetoothDark:    {"bluetooth.svg", true},
	logic.IconBluetoothOn:      {"bluetooth_on.svg", false},
	logic.IconBluetoothOnDark:  {"bluetooth_on.svg", true},
	logic.IconBluetoothOff:     {"bluetooth_off.svg", false},
	logic.IconBluetoothOffDark: {"bluetooth_off.svg", true},
}

// Icons lists every bitmap icon the face can draw, backgrounds excluded.
func Icons() []logic.Icon {
	return []logic.Icon{
		logic.IconBattery, logic.IconBatteryDark,
		logic.IconBatteryPlus, logic.IconBatteryPlusDark,
		logic.IconBluetooth, logic.IconBluetoothDark,
		logic.IconBluetoothOn, logic.IconBluetoothOnDark,
		logic.IconBluetoothOff, logic.IconBluetoothOffDark,
	}
}

type key struct {
	icon logic.Icon
	size image.Point
}

// Store renders and caches bitmaps. It implements render.Bitmaps and is
// safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	cache map[key]image.Image
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{cache: make(map[key]image.Image)}
}

// Load pre-renders every icon at its native size and both dial
// backgrounds for a panel, so a broken asset fails at startup.
func (s *Store) Load(panel image.Point) error {
	for _, icon := range Icons() {
		if _, err := s.render(icon, image.Point{}); err != nil {
			return err
		}
	}
	for _, bg := range []logic.Icon{logic.IconBackgroundDay, logic.IconBackgroundNight} {
		if _, err := s.render(bg, panel); err != nil {
			return err
		}
	}
	return nil
}

// Release drops every cached bitmap.
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[key]image.Image)
}

// Len returns the number of cached bitmaps.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Bitmap returns icon rendered at size. The zero size means the icon's
// native size.
func (s *Store) Bitmap(icon logic.Icon, size image.Point) (image.Image, bool) {
	img, err := s.render(icon, size)
	if err != nil {
		return nil, false
	}
	return img, true
}

func (s *Store) render(icon logic.Icon, size image.Point) (image.Image, error) {
	k := key{icon, size}
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.cache[k]; ok {
		return img, nil
	}

	svg, err := svgFor(icon, size)
	if err != nil {
		return nil, err
	}
	img, err := rasterize(svg, size)
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", icon, err)
	}
	s.cache[k] = img
	return img, nil
}

func svgFor(icon logic.Icon, size image.Point) ([]byte, error) {
	switch icon {
	case logic.IconBackgroundDay:
		return Dial(size, inkDay)
	case logic.IconBackgroundNight:
		return Dial(size, inkNight)
	}
	src, ok := icons[icon]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", icon)
	}
	b, err := iconFS.ReadFile("icons/" + src.file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.file, err)
	}
	if src.night {
		return []byte(dark.Replace(string(b))), nil
	}
	return b, nil
}

// rasterize draws an SVG document into a new RGBA image. A zero size
// uses the document's view box.
func rasterize(svg []byte, size image.Point) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}
	w, h := size.X, size.Y
	if w <= 0 || h <= 0 {
		w, h = int(icon.ViewBox.W), int(icon.ViewBox.H)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty view box")
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

type tick struct {
	From, To image.Point
	Width    int
}

type dial struct {
	W, H             int
	Ink              string
	Radius           int
	ArcStart, ArcEnd image.Point
	Ticks            []tick
}

const (
	tickStep  = 15
	majorStep = 45
	minorLen  = 3
	majorLen  = 6
)

// Dial renders the SVG of the background dial for a panel: a half circle
// around the hand pivot with a tick every 15 degrees.
func Dial(size image.Point, ink string) ([]byte, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("dial size %v", size)
	}
	l := render.NewLayout(image.Rectangle{Max: size})
	r := (size.X - 2) / 2
	d := dial{
		W:        size.X,
		H:        size.Y,
		Ink:      ink,
		Radius:   r,
		ArcStart: render.Polar(l.Pivot, r, -90),
		ArcEnd:   render.Polar(l.Pivot, r, 90),
	}
	for deg := -90; deg <= 90; deg += tickStep {
		t := tick{Width: 1, To: render.Polar(l.Pivot, r-minorLen, float64(deg))}
		if deg%majorStep == 0 {
			t.Width = 2
			t.To = render.Polar(l.Pivot, r-majorLen, float64(deg))
		}
		t.From = render.Polar(l.Pivot, r, float64(deg))
		d.Ticks = append(d.Ticks, t)
	}
	var buf bytes.Buffer
	if err := dialTemplate.Execute(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
