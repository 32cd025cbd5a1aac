package logic

// LowBatteryPercent is the threshold below which the "low" policy shows the gauge.
const LowBatteryPercent = 30

// ClampPercent forces a charge percentage into [0,100].
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// BatteryVisible applies the battery visibility policy.
func BatteryVisible(s BatteryState, v BatteryVisibility) bool {
	switch v {
	case BatteryAlways:
		return true
	case BatteryLow:
		return s.Percent < LowBatteryPercent || s.IsCharging
	default:
		return false
	}
}

// GaugeWidth scales the charge percentage to the available bar width.
func GaugeWidth(percent, available int) int {
	if available <= 0 {
		return 0
	}
	return ClampPercent(percent) * available / 100
}

// BatteryIcon selects one of the four battery icon variants.
func BatteryIcon(charging, daytime bool) Icon {
	switch {
	case charging && daytime:
		return IconBatteryPlus
	case charging:
		return IconBatteryPlusDark
	case daytime:
		return IconBattery
	default:
		return IconBatteryDark
	}
}
