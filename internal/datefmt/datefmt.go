// Package datefmt formats the clock face strings: time of day, weekday,
// short date and meridiem. Names come from embedded go-i18n message files;
// unsupported locales fall back to English.
package datefmt

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/sweeney/arc-diem/internal/render"
)

//go:embed locales/*.toml
var localeFS embed.FS

const (
	msgDate = "date"
	msgAM   = "am"
	msgPM   = "pm"
)

var loadBundle = sync.OnceValues(func() (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	paths, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if _, err := b.LoadMessageFileFS(localeFS, p); err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}
	return b, nil
})

// Languages returns the locales with embedded message files.
func Languages() ([]language.Tag, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return b.LanguageTags(), nil
}

// Formatter produces localized face strings for one locale.
type Formatter struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New returns a Formatter for a BCP 47 locale such as "en" or "de-AT".
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	b, err := loadBundle()
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return &Formatter{
		tag:       tag,
		localizer: i18n.NewLocalizer(b, tag.String(), language.English.String()),
	}, nil
}

// Locale returns the requested locale tag.
func (f *Formatter) Locale() language.Tag { return f.tag }

// Clock formats hours and minutes. The hour never has a leading zero.
func Clock(t time.Time, clock24 bool) string {
	layout := "03:04"
	if clock24 {
		layout = "15:04"
	}
	return strings.TrimPrefix(t.Format(layout), "0")
}

// Weekday returns the full weekday name.
func (f *Formatter) Weekday(t time.Time) string {
	return f.localize(t.Weekday().String(), nil)
}

// Date returns the abbreviated month and day of month, e.g. "Jan 5".
func (f *Formatter) Date(t time.Time) string {
	month := f.localize(t.Month().String()[:3], nil)
	return f.localize(msgDate, map[string]string{
		"Month": month,
		"Day":   strconv.Itoa(t.Day()),
	})
}

// Meridiem returns the lower-case am or pm marker.
func (f *Formatter) Meridiem(t time.Time) string {
	if t.Hour() < 12 {
		return f.localize(msgAM, nil)
	}
	return f.localize(msgPM, nil)
}

// Text returns every face string for t.
func (f *Formatter) Text(t time.Time, clock24 bool) render.ClockText {
	ct := render.ClockText{
		Time:    Clock(t, clock24),
		Weekday: f.Weekday(t),
		Date:    f.Date(t),
		Clock24: clock24,
	}
	if !clock24 {
		ct.Meridiem = f.Meridiem(t)
	}
	return ct
}

// localize falls back to the message id, which is the English text for
// every name.
func (f *Formatter) localize(id string, data map[string]string) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if data != nil {
		cfg.TemplateData = data
	}
	s, err := f.localizer.Localize(cfg)
	if err != nil || s == "" {
		return id
	}
	return s
}
