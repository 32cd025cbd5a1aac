// Package config holds the user-facing face settings and the daemon's
// TOML configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sweeney/arc-diem/internal/logic"
)

var (
	ErrHourOutOfRange = errors.New("hour out of range")
	ErrUnknownValue   = errors.New("unknown value")
)

// Toggle values for the haptic settings.
const (
	Yes = "yes"
	No  = "no"
)

// Settings are the user-facing options, keyed the way the phone-side
// configuration page sends them. Values are raw until resolved.
type Settings struct {
	DayStart            int    `json:"DayStart" toml:"DayStart"`
	DayEnd              int    `json:"DayEnd" toml:"DayEnd"`
	BatteryStatus       string `json:"BatteryStatus" toml:"BatteryStatus"`
	BluetoothStatus     string `json:"BluetoothStatus" toml:"BluetoothStatus"`
	BluetoothDisconnect string `json:"BluetoothDisconnect" toml:"BluetoothDisconnect"`
	BluetoothConnect    string `json:"BluetoothConnect" toml:"BluetoothConnect"`
}

// Defaults returns the settings used before any have been received.
func Defaults() Settings {
	return Settings{
		DayStart:            7,
		DayEnd:              23,
		BatteryStatus:       string(logic.BatteryLow),
		BluetoothStatus:     string(logic.BluetoothDisconnectedOnly),
		BluetoothDisconnect: Yes,
		BluetoothConnect:    Yes,
	}
}

// Problem is a setting that could not be used as given. The resolved
// value replaces it.
type Problem struct {
	Field string
	Value any
	Used  any
	Err   error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s=%v: %v (using %v)", p.Field, p.Value, p.Err, p.Used)
}

func (p Problem) Unwrap() error { return p.Err }

// Resolve converts raw settings into the face's boundary and display
// configuration. Out-of-range hours are clamped and unknown values fall
// back to their defaults; each substitution is reported as a Problem.
func (s Settings) Resolve() (logic.TimeBoundary, logic.DisplayConfig, []Problem) {
	var problems []Problem
	def := Defaults()

	hour := func(field string, v int) int {
		c := logic.ClampHour(v)
		if c != v {
			problems = append(problems, Problem{Field: field, Value: v, Used: c, Err: ErrHourOutOfRange})
		}
		return c
	}
	b := logic.TimeBoundary{
		StartHour: hour("DayStart", s.DayStart),
		EndHour:   hour("DayEnd", s.DayEnd),
	}

	var cfg logic.DisplayConfig
	switch v := logic.BatteryVisibility(s.BatteryStatus); v {
	case logic.BatteryAlways, logic.BatteryLow, logic.BatteryNever:
		cfg.Battery = v
	default:
		cfg.Battery = logic.BatteryVisibility(def.BatteryStatus)
		problems = append(problems, Problem{Field: "BatteryStatus", Value: s.BatteryStatus, Used: cfg.Battery, Err: ErrUnknownValue})
	}
	switch v := logic.BluetoothVisibility(s.BluetoothStatus); v {
	case logic.BluetoothAlways, logic.BluetoothDisconnectedOnly, logic.BluetoothNever:
		cfg.Bluetooth = v
	default:
		cfg.Bluetooth = logic.BluetoothVisibility(def.BluetoothStatus)
		problems = append(problems, Problem{Field: "BluetoothStatus", Value: s.BluetoothStatus, Used: cfg.Bluetooth, Err: ErrUnknownValue})
	}

	toggle := func(field, v, fallback string) bool {
		switch v {
		case Yes:
			return true
		case No:
			return false
		}
		problems = append(problems, Problem{Field: field, Value: v, Used: fallback, Err: ErrUnknownValue})
		return fallback == Yes
	}
	cfg.HapticOnDisconnect = toggle("BluetoothDisconnect", s.BluetoothDisconnect, def.BluetoothDisconnect)
	cfg.HapticOnConnect = toggle("BluetoothConnect", s.BluetoothConnect, def.BluetoothConnect)

	return b, cfg, problems
}

// Merge overlays a JSON settings message on s. Keys missing from the
// message keep their current values.
func (s Settings) Merge(data []byte) (Settings, error) {
	out := s
	if err := json.Unmarshal(data, &out); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return out, nil
}
