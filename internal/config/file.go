package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Display drivers.
const (
	DriverPNG    = "png"
	DriverEPaper = "epaper"
	DriverNone   = "none"
)

// File is the daemon configuration file.
type File struct {
	MQTT     MQTT     `toml:"mqtt"`
	Display  Display  `toml:"display"`
	Haptic   Haptic   `toml:"haptic"`
	HTTP     HTTP     `toml:"http"`
	Log      Log      `toml:"log"`
	Clock    Clock    `toml:"clock"`
	Settings Settings `toml:"settings"`
}

type MQTT struct {
	Broker      string `toml:"broker"`
	ClientID    string `toml:"client_id"`
	TopicPrefix string `toml:"topic_prefix"`
}

type Display struct {
	Driver string `toml:"driver"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Out    string `toml:"out"`
}

type Haptic struct {
	Chip string `toml:"chip"`
	// Pin 0 disables the motor
	Pin int `toml:"pin"`
}

type HTTP struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

type Clock struct {
	Locale  string `toml:"locale"`
	Clock24 bool   `toml:"clock24h"`
}

// DefaultFile returns the configuration used when no file is given.
func DefaultFile() File {
	return File{
		MQTT: MQTT{
			Broker:      "tcp://localhost:1883",
			TopicPrefix: "arcdiem",
		},
		Display: Display{
			Driver: DriverPNG,
			Width:  144,
			Height: 168,
			Out:    "/tmp/arcdiem.png",
		},
		Haptic:   Haptic{Chip: "gpiochip0"},
		HTTP:     HTTP{Addr: ":8080"},
		Log:      Log{Level: "info"},
		Clock:    Clock{Locale: "en", Clock24: true},
		Settings: Defaults(),
	}
}

// LoadFile reads a TOML file over the defaults. Keys the file sets but
// File does not know are an error.
func LoadFile(path string) (File, error) {
	f := DefaultFile()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return f, nil
}

// Validate checks the daemon settings. Face settings are not checked
// here; they are resolved with substitution instead.
func (f File) Validate() error {
	var errs []error
	switch f.Display.Driver {
	case DriverPNG, DriverEPaper, DriverNone:
	default:
		errs = append(errs, fmt.Errorf("display.driver %q: %w", f.Display.Driver, ErrUnknownValue))
	}
	if f.Display.Driver == DriverPNG && (f.Display.Width <= 0 || f.Display.Height <= 0) {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", f.Display.Width, f.Display.Height))
	}
	if f.Display.Driver == DriverPNG && f.Display.Out == "" {
		errs = append(errs, errors.New("display.out is required for the png driver"))
	}
	if f.Haptic.Pin < 0 {
		errs = append(errs, fmt.Errorf("haptic.pin %d must not be negative", f.Haptic.Pin))
	}
	if f.MQTT.TopicPrefix == "" {
		errs = append(errs, errors.New("mqtt.topic_prefix is required"))
	}
	return errors.Join(errs...)
}
