package datefmt

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestClock(t *testing.T) {
	tests := []struct {
		h, m    int
		clock24 bool
		want    string
	}{
		{7, 5, true, "7:05"},
		{19, 5, true, "19:05"},
		{0, 30, true, "0:30"},
		{7, 5, false, "7:05"},
		{19, 5, false, "7:05"},
		{0, 30, false, "12:30"},
		{12, 0, false, "12:00"},
		{10, 45, false, "10:45"},
	}
	for _, tt := range tests {
		if got := Clock(at(tt.h, tt.m), tt.clock24); got != tt.want {
			t.Errorf("Clock(%02d:%02d, 24h=%v): got %q, want %q", tt.h, tt.m, tt.clock24, got, tt.want)
		}
	}
}

func TestEnglish(t *testing.T) {
	f, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f.Weekday(at(9, 0)); got != "Tuesday" {
		t.Errorf("Weekday: got %q, want Tuesday", got)
	}
	if got := f.Date(at(9, 0)); got != "Mar 10" {
		t.Errorf("Date: got %q, want Mar 10", got)
	}
	if got := f.Date(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)); got != "Jan 5" {
		t.Errorf("Date: got %q, want Jan 5", got)
	}
	if got := f.Meridiem(at(11, 59)); got != "am" {
		t.Errorf("Meridiem 11:59: got %q, want am", got)
	}
	if got := f.Meridiem(at(12, 0)); got != "pm" {
		t.Errorf("Meridiem 12:00: got %q, want pm", got)
	}
}

func TestGerman(t *testing.T) {
	f, err := New("de")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f.Weekday(at(9, 0)); got != "Dienstag" {
		t.Errorf("Weekday: got %q, want Dienstag", got)
	}
	if got := f.Date(at(9, 0)); got != "10. März" {
		t.Errorf("Date: got %q, want 10. März", got)
	}
}

func TestUnsupportedLocaleFallsBack(t *testing.T) {
	f, err := New("fr")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f.Weekday(at(9, 0)); got != "Tuesday" {
		t.Errorf("Weekday: got %q, want Tuesday", got)
	}
	if f.Locale() != language.French {
		t.Errorf("Locale: got %v, want fr", f.Locale())
	}
}

func TestInvalidLocale(t *testing.T) {
	if _, err := New("not a locale!"); err == nil {
		t.Error("expected error for invalid locale")
	}
}

func TestText(t *testing.T) {
	f, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ct := f.Text(at(19, 5), false)
	if ct.Time != "7:05" || ct.Meridiem != "pm" || ct.Clock24 {
		t.Errorf("12h text: got %+v", ct)
	}

	ct = f.Text(at(19, 5), true)
	if ct.Time != "19:05" || ct.Meridiem != "" || !ct.Clock24 {
		t.Errorf("24h text: got %+v", ct)
	}
	if ct.Weekday != "Tuesday" || ct.Date != "Mar 10" {
		t.Errorf("date text: got %+v", ct)
	}
}

func TestLanguages(t *testing.T) {
	tags, err := Languages()
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	found := map[language.Tag]bool{}
	for _, tag := range tags {
		found[tag] = true
	}
	for _, want := range []language.Tag{language.English, language.German} {
		if !found[want] {
			t.Errorf("missing %v in %v", want, tags)
		}
	}
}
