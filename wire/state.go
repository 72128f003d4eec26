package wire

// Button bitmasks of GamepadState.Buttons (XInput compatible).
const (
	ButtonDPadUp        uint16 = 0x0001
	ButtonDPadDown      uint16 = 0x0002
	ButtonDPadLeft      uint16 = 0x0004
	ButtonDPadRight     uint16 = 0x0008
	ButtonStart         uint16 = 0x0010
	ButtonBack          uint16 = 0x0020
	ButtonLeftThumb     uint16 = 0x0040
	ButtonRightThumb    uint16 = 0x0080
	ButtonLeftShoulder  uint16 = 0x0100
	ButtonRightShoulder uint16 = 0x0200
	ButtonA             uint16 = 0x1000
	ButtonB             uint16 = 0x2000
	ButtonX             uint16 = 0x4000
	ButtonY             uint16 = 0x8000
)

// ButtonDPadMask covers the four direction bits.
const ButtonDPadMask = ButtonDPadUp | ButtonDPadDown | ButtonDPadLeft | ButtonDPadRight

// GamepadState is the decoded state of one controller.
//
// Sticks are signed and not inverted: a raw byte of 255 on LeftY decodes to
// 32767 whatever the provider's notion of "up" is.
type GamepadState struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	LeftX        int16
	LeftY        int16
	RightX       int16
	RightY       int16
}

// Pressed reports whether every bit in mask is set.
func (s GamepadState) Pressed(mask uint16) bool {
	return s.Buttons&mask == mask
}

// Stick maps an analog byte onto the full int16 range:
// -32768 + round(b*65535/255). 65535/255 is exactly 257, so no rounding
// ever happens.
func Stick(b byte) int16 {
	return int16(-32768 + int32(b)*257)
}

// Scale maps an analog byte value onto 0-65535 (v*65535/255, truncating).
func Scale(v uint16) uint16 {
	return uint16(uint32(v) * 65535 / 255)
}
