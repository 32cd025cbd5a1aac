package render

import (
	"image"

	"github.com/sweeney/arc-diem/internal/logic"
)

const (
	bluetoothSize   = 18
	bluetoothMargin = 4
)

// BluetoothRect is the icon box in the top-right corner.
func BluetoothRect(bounds image.Rectangle) image.Rectangle {
	x := bounds.Max.X - bluetoothSize - bluetoothMargin
	y := bounds.Min.Y + bluetoothMargin
	return image.Rect(x, y, x+bluetoothSize, y+bluetoothSize)
}

// DrawBluetooth draws the connectivity icon for a visible state and
// reports whether anything was drawn.
func DrawBluetooth(s Surface, bounds image.Rectangle, state logic.IconState, daytime bool) bool {
	icon, ok := logic.BluetoothIcon(state, daytime)
	if !ok {
		return false
	}
	s.DrawIcon(icon, BluetoothRect(bounds))
	return true
}
