package logic

import "testing"

func hapticsOn(v BluetoothVisibility) DisplayConfig {
	return DisplayConfig{
		Battery:            BatteryLow,
		Bluetooth:          v,
		HapticOnDisconnect: true,
		HapticOnConnect:    true,
	}
}

func TestNewConnectivityController(t *testing.T) {
	c := NewConnectivityController()
	if _, known := c.Current(); known {
		t.Error("new controller should not have a known state")
	}
	if c.Icon() != IconHidden {
		t.Errorf("initial icon: got %s, want %s", c.Icon(), IconHidden)
	}
}

func TestFirstObservationNeverVibrates(t *testing.T) {
	for _, connected := range []bool{true, false} {
		c := NewConnectivityController()
		_, haptic := c.Observe(connected, hapticsOn(BluetoothAlways))
		if haptic != nil {
			t.Errorf("first observation connected=%v: unexpected haptic %s", connected, haptic.Kind)
		}
	}
}

func TestLostHapticFiresOnce(t *testing.T) {
	c := NewConnectivityController()
	cfg := DisplayConfig{Bluetooth: BluetoothDisconnectedOnly, HapticOnDisconnect: true}

	if _, h := c.Observe(true, cfg); h != nil {
		t.Fatalf("unknown->true: unexpected haptic %s", h.Kind)
	}
	_, h := c.Observe(false, cfg)
	if h == nil {
		t.Fatal("true->false: expected LOST haptic")
	}
	if h.Kind != HapticLost {
		t.Errorf("true->false: got %s, want %s", h.Kind, HapticLost)
	}
	for i := 0; i < 3; i++ {
		if _, h := c.Observe(false, cfg); h != nil {
			t.Errorf("repeat %d false->false: unexpected haptic %s", i, h.Kind)
		}
	}
	if got := c.Counts(); got.Lost != 1 || got.Found != 0 {
		t.Errorf("counts: got %+v, want {Lost:1 Found:0}", got)
	}
}

func TestFoundHaptic(t *testing.T) {
	c := NewConnectivityController()
	cfg := hapticsOn(BluetoothAlways)
	c.Observe(false, cfg)
	_, h := c.Observe(true, cfg)
	if h == nil || h.Kind != HapticFound {
		t.Fatalf("false->true: got %v, want FOUND", h)
	}
	if len(h.Segments) != 3 {
		t.Errorf("FOUND segments: got %d, want 3", len(h.Segments))
	}
}

func TestHapticGatedByConfig(t *testing.T) {
	c := NewConnectivityController()
	cfg := DisplayConfig{Bluetooth: BluetoothAlways}
	c.Observe(true, cfg)
	if _, h := c.Observe(false, cfg); h != nil {
		t.Errorf("disconnect with haptic disabled: unexpected %s", h.Kind)
	}
	if _, h := c.Observe(true, cfg); h != nil {
		t.Errorf("connect with haptic disabled: unexpected %s", h.Kind)
	}
	// Transitions are still counted even when silent.
	if got := c.Counts(); got.Lost != 1 || got.Found != 1 {
		t.Errorf("counts: got %+v, want {Lost:1 Found:1}", got)
	}
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		connected bool
		policy    BluetoothVisibility
		want      IconState
	}{
		{true, BluetoothNever, IconHidden},
		{false, BluetoothNever, IconHidden},
		{true, BluetoothAlways, IconShownConnected},
		{false, BluetoothAlways, IconShownOff},
		{true, BluetoothDisconnectedOnly, IconHidden},
		{false, BluetoothDisconnectedOnly, IconShownDisconnected},
		{false, BluetoothVisibility("bogus"), IconHidden},
	}
	for _, tt := range tests {
		if got := IconFor(tt.connected, tt.policy); got != tt.want {
			t.Errorf("IconFor(%v, %q): got %s, want %s", tt.connected, tt.policy, got, tt.want)
		}
	}
}

func TestDisconnectedOnlyScenario(t *testing.T) {
	c := NewConnectivityController()
	cfg := hapticsOn(BluetoothDisconnectedOnly)
	if icon, _ := c.Observe(true, cfg); icon != IconHidden {
		t.Errorf("connected: got %s, want %s", icon, IconHidden)
	}
	if icon, _ := c.Observe(false, cfg); icon != IconShownDisconnected {
		t.Errorf("disconnected: got %s, want %s", icon, IconShownDisconnected)
	}
}

func TestRefreshChangesIconWithoutHaptic(t *testing.T) {
	c := NewConnectivityController()
	c.Observe(true, hapticsOn(BluetoothDisconnectedOnly))
	if got := c.Refresh(hapticsOn(BluetoothAlways)); got != IconShownConnected {
		t.Errorf("refresh to always: got %s, want %s", got, IconShownConnected)
	}
	if connected, known := c.Current(); !connected || !known {
		t.Errorf("current: got (%v, %v), want (true, true)", connected, known)
	}
	if got := c.Counts(); got != (TransitionCounts{}) {
		t.Errorf("counts after refresh: got %+v, want zero", got)
	}
}

func TestRefreshBeforeObservation(t *testing.T) {
	c := NewConnectivityController()
	if got := c.Refresh(hapticsOn(BluetoothAlways)); got != IconHidden {
		t.Errorf("refresh with unknown state: got %s, want %s", got, IconHidden)
	}
}

func TestBluetoothIcon(t *testing.T) {
	tests := []struct {
		state   IconState
		daytime bool
		want    Icon
		ok      bool
	}{
		{IconShownConnected, true, IconBluetoothOn, true},
		{IconShownConnected, false, IconBluetoothOnDark, true},
		{IconShownOff, true, IconBluetoothOff, true},
		{IconShownOff, false, IconBluetoothOffDark, true},
		{IconShownDisconnected, true, IconBluetooth, true},
		{IconShownDisconnected, false, IconBluetoothDark, true},
		{IconHidden, true, "", false},
	}
	for _, tt := range tests {
		got, ok := BluetoothIcon(tt.state, tt.daytime)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BluetoothIcon(%s, %v): got (%s, %v), want (%s, %v)", tt.state, tt.daytime, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPatternTotal(t *testing.T) {
	if got := SignalLost.Total().Milliseconds(); got != 1000 {
		t.Errorf("SignalLost total: got %dms, want 1000ms", got)
	}
	if got := SignalFound.Total().Milliseconds(); got != 400 {
		t.Errorf("SignalFound total: got %dms, want 400ms", got)
	}
}
