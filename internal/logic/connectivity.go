package logic

// TransitionCounts tracks connection changes since startup.
type TransitionCounts struct {
	Lost  int
	Found int
}

// ConnectivityController tracks the last rendered connection state and
// decides the icon and haptic feedback for each new observation.
type ConnectivityController struct {
	connected bool
	// Whether a first observation has been recorded
	known  bool
	icon   IconState
	counts TransitionCounts
}

// NewConnectivityController creates a controller with no known state.
func NewConnectivityController() *ConnectivityController {
	return &ConnectivityController{icon: IconHidden}
}

// Observe records a connection value and returns the icon state to render
// plus the haptic pattern to play, if any.
// No haptic is returned for the first observation or for a value equal to
// the previous one. The observed value always becomes the previous value.
func (c *ConnectivityController) Observe(connected bool, cfg DisplayConfig) (IconState, *Pattern) {
	var haptic *Pattern
	if c.known && connected != c.connected {
		if connected {
			c.counts.Found++
			if cfg.HapticOnConnect {
				haptic = &SignalFound
			}
		} else {
			c.counts.Lost++
			if cfg.HapticOnDisconnect {
				haptic = &SignalLost
			}
		}
	}
	c.connected = connected
	c.known = true
	c.icon = IconFor(connected, cfg.Bluetooth)
	return c.icon, haptic
}

// Refresh re-evaluates the icon for a new policy without a new observation.
func (c *ConnectivityController) Refresh(cfg DisplayConfig) IconState {
	if !c.known {
		c.icon = IconHidden
		return c.icon
	}
	c.icon = IconFor(c.connected, cfg.Bluetooth)
	return c.icon
}

// Current returns the last observed value and whether one exists.
func (c *ConnectivityController) Current() (connected, known bool) {
	return c.connected, c.known
}

// Icon returns the icon state of the last observation.
func (c *ConnectivityController) Icon() IconState {
	return c.icon
}

// Counts returns the transition counts since startup.
func (c *ConnectivityController) Counts() TransitionCounts {
	return c.counts
}

// IconFor maps a connection value and visibility policy to an icon state.
func IconFor(connected bool, v BluetoothVisibility) IconState {
	switch v {
	case BluetoothAlways:
		if connected {
			return IconShownConnected
		}
		return IconShownOff
	case BluetoothDisconnectedOnly:
		if connected {
			return IconHidden
		}
		return IconShownDisconnected
	default:
		return IconHidden
	}
}

// BluetoothIcon selects the bitmap for a visible icon state.
// The second return is false for hidden states.
func BluetoothIcon(s IconState, daytime bool) (Icon, bool) {
	var day, night Icon
	switch s {
	case IconShownConnected:
		day, night = IconBluetoothOn, IconBluetoothOnDark
	case IconShownOff:
		day, night = IconBluetoothOff, IconBluetoothOffDark
	case IconShownDisconnected:
		day, night = IconBluetooth, IconBluetoothDark
	default:
		return "", false
	}
	if daytime {
		return day, true
	}
	return night, true
}
