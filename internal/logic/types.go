// Package logic contains the pure face logic: day/night decisions, hand
// geometry, battery gauge policy and connectivity icon state.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"image/color"
	"time"
)

// TimeBoundary holds the configured hours at which day starts and ends.
// Both hours are in [0,23]; minutes are always zero.
type TimeBoundary struct {
	StartHour int
	EndHour   int
}

// Background selects the full-screen background bitmap.
type Background string

const (
	BackgroundDay   Background = "DAY_ON_WHITE"
	BackgroundNight Background = "NIGHT_ON_BLACK"
)

// Palette is the foreground/background color pair for one half of the day.
type Palette struct {
	Foreground color.Gray
	Background color.Gray
	Image      Background
}

// DaytimeState is recomputed on every redraw and never cached.
type DaytimeState struct {
	IsDaytime bool
	Palette   Palette
	// Next time the wall clock reads StartHour:00 and EndHour:00.
	StartStamp time.Time
	EndStamp   time.Time
}

// BatteryState is the last battery notification, percent already clamped.
type BatteryState struct {
	Percent    int
	IsCharging bool
}

// BatteryVisibility is the BatteryStatus policy.
type BatteryVisibility string

const (
	BatteryAlways BatteryVisibility = "yes"
	BatteryLow    BatteryVisibility = "low"
	BatteryNever  BatteryVisibility = "no"
)

// BluetoothVisibility is the BluetoothStatus policy.
type BluetoothVisibility string

const (
	BluetoothAlways           BluetoothVisibility = "yes"
	BluetoothDisconnectedOnly BluetoothVisibility = "disconnected"
	BluetoothNever            BluetoothVisibility = "no"
)

// DisplayConfig holds the visibility and haptic settings.
type DisplayConfig struct {
	Battery            BatteryVisibility
	Bluetooth          BluetoothVisibility
	HapticOnDisconnect bool
	HapticOnConnect    bool
}

// IconState is the connectivity icon state.
type IconState string

const (
	IconHidden            IconState = "HIDDEN"
	IconShownConnected    IconState = "SHOWN_CONNECTED"
	IconShownDisconnected IconState = "SHOWN_DISCONNECTED"
	IconShownOff          IconState = "SHOWN_OFF"
)

// Visible reports whether the icon is drawn at all.
func (s IconState) Visible() bool {
	return s != IconHidden && s != ""
}

// Icon identifies a bitmap drawn by the face. Dark variants are used on
// the night palette.
type Icon string

const (
	IconBattery         Icon = "BATTERY"
	IconBatteryDark     Icon = "BATTERY_DARK"
	IconBatteryPlus     Icon = "BATTERY_PLUS"
	IconBatteryPlusDark Icon = "BATTERY_PLUS_DARK"

	IconBluetooth        Icon = "BLUETOOTH"
	IconBluetoothDark    Icon = "BLUETOOTH_DARK"
	IconBluetoothOn      Icon = "BLUETOOTH_ON"
	IconBluetoothOnDark  Icon = "BLUETOOTH_ON_DARK"
	IconBluetoothOff     Icon = "BLUETOOTH_OFF"
	IconBluetoothOffDark Icon = "BLUETOOTH_OFF_DARK"

	IconBackgroundDay   Icon = Icon(BackgroundDay)
	IconBackgroundNight Icon = Icon(BackgroundNight)
)

// HapticKind names a vibration pattern.
type HapticKind string

const (
	HapticNone  HapticKind = ""
	HapticLost  HapticKind = "LOST"
	HapticFound HapticKind = "FOUND"
)

// Pattern is a vibration pattern. Segments alternate motor on and off,
// starting with on.
type Pattern struct {
	Kind     HapticKind
	Segments []time.Duration
}

// Total returns the summed length of all segments.
func (p Pattern) Total() time.Duration {
	var d time.Duration
	for _, s := range p.Segments {
		d += s
	}
	return d
}

// SignalLost is played when the phone connection drops.
var SignalLost = Pattern{
	Kind:     HapticLost,
	Segments: []time.Duration{200 * time.Millisecond, 300 * time.Millisecond, 500 * time.Millisecond},
}

// SignalFound is played when the phone connection returns.
var SignalFound = Pattern{
	Kind:     HapticFound,
	Segments: []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 100 * time.Millisecond},
}
