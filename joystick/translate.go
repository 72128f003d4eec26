package joystick

import (
	"encoding/binary"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/wire"
)

// HatCentered is written for a hat with no direction pressed.
const HatCentered uint32 = 0xFFFF

const axisCenter = 32767

// buttonMasks maps button instances to state bits.
var buttonMasks = [...]uint16{
	wire.ButtonA,
	wire.ButtonB,
	wire.ButtonX,
	wire.ButtonY,
	wire.ButtonRightShoulder,
	wire.ButtonLeftShoulder,
	wire.ButtonBack,
	wire.ButtonStart,
	wire.ButtonLeftThumb,
	wire.ButtonRightThumb,
}

// Translate fills buf from the slot's latest state according to format. It
// returns false, leaving buf untouched, when the slot is not connected.
//
// buf is zeroed first, then every descriptor is written in order. Objects
// that do not fit into buf and instances the controller does not have are
// skipped, except hats, which read as centered.
func Translate(slot *controller.Slot, format Format, buf []byte) bool {
	if !slot.Connected() {
		return false
	}
	slot.With(func(st wire.GamepadState) {
		fill(st, format, buf)
	})
	return true
}

func fill(st wire.GamepadState, format Format, buf []byte) {
	clear(buf)
	for _, o := range format.Objects {
		if o.Offset < 0 || o.Offset+o.Size() > len(buf) {
			continue
		}
		switch o.Kind {
		case KindAxis:
			v, ok := axisValue(st, o.Instance)
			if ok {
				binary.LittleEndian.PutUint32(buf[o.Offset:], uint32(v))
			}
		case KindButton:
			if o.Instance < 0 || o.Instance >= len(buttonMasks) {
				continue
			}
			if st.Buttons&buttonMasks[o.Instance] != 0 {
				buf[o.Offset] = 0x80
			}
		case KindHat:
			v := HatCentered
			if o.Instance == 0 {
				v = HatAngle(st.Buttons)
			}
			binary.LittleEndian.PutUint32(buf[o.Offset:], v)
		}
	}
}

func axisValue(st wire.GamepadState, instance int) (int32, bool) {
	switch instance {
	case 0:
		return int32(st.LeftX) + axisCenter, true
	case 1:
		return -int32(st.LeftY) + axisCenter, true
	case 2:
		return int32(TriggerAxis(st.LeftTrigger, st.RightTrigger)), true
	case 3:
		return int32(st.RightX) + axisCenter, true
	case 4:
		return -int32(st.RightY) + axisCenter, true
	default:
		return 0, false
	}
}

// TriggerAxis folds both triggers into one centered axis: released triggers
// read as the middle of the range, the right trigger pushes it up and the
// left one down.
func TriggerAxis(left, right uint8) uint16 {
	return wire.Scale(uint16(int(right)/2 - int(left)/2 + 128))
}

// HatAngle converts D-pad direction bits into hundredths of a degree
// clockwise from north, or HatCentered. Adjacent pairs yield the diagonal.
func HatAngle(buttons uint16) uint32 {
	up := buttons&wire.ButtonDPadUp != 0
	down := buttons&wire.ButtonDPadDown != 0
	left := buttons&wire.ButtonDPadLeft != 0
	right := buttons&wire.ButtonDPadRight != 0

	switch {
	case up && right:
		return 4500
	case right && down:
		return 13500
	case down && left:
		return 22500
	case left && up:
		return 31500
	case up:
		return 0
	case right:
		return 9000
	case down:
		return 18000
	case left:
		return 27000
	default:
		return HatCentered
	}
}
