package wire

import "io"

// Record is one controller's raw state as received over the wire.
//
// Layout:
//
//	0: type echo
//	1: presence (nonzero = controller bound to this slot)
//	2: primary buttons, see RawButtonA..RawButtonRightThumb
//	3: modifier buttons, see RawButtonStart, RawButtonBack
//	4: D-pad compass code, see DPadCode
//	5-8: left X, left Y, right X, right Y (0-255, 128 = centre)
//	9: left trigger (0-255)
//	10: right trigger (0-255)
type Record [RecordSize]byte

// Primary button bits (record byte 2).
const (
	RawButtonA             uint8 = 0x01
	RawButtonB             uint8 = 0x02
	RawButtonX             uint8 = 0x04
	RawButtonY             uint8 = 0x08
	RawButtonRightShoulder uint8 = 0x10
	RawButtonLeftShoulder  uint8 = 0x20
	RawButtonLeftThumb     uint8 = 0x40
	RawButtonRightThumb    uint8 = 0x80
)

// Modifier button bits (record byte 3).
const (
	RawButtonStart uint8 = 0x01
	RawButtonBack  uint8 = 0x02
)

// DPadCode is the compass code of record byte 4, clockwise from north:
//
//	8 1 2
//	7 0 3
//	6 5 4
type DPadCode uint8

const (
	DPadNone DPadCode = iota
	DPadNorth
	DPadNorthEast
	DPadEast
	DPadSouthEast
	DPadSouth
	DPadSouthWest
	DPadWest
	DPadNorthWest
)

// RawInput is the field-by-field view of a Record.
type RawInput struct {
	Present      bool
	Buttons      uint8
	Modifiers    uint8
	DPad         DPadCode
	LeftX        uint8
	LeftY        uint8
	RightX       uint8
	RightY       uint8
	LeftTrigger  uint8
	RightTrigger uint8
}

// Present reports whether the provider has a controller bound to the slot.
func (r Record) Present() bool { return r[1] != 0 }

// Raw returns the field-by-field view of r.
func (r Record) Raw() RawInput {
	return RawInput{
		Present:      r.Present(),
		Buttons:      r[2],
		Modifiers:    r[3],
		DPad:         DPadCode(r[4]),
		LeftX:        r[5],
		LeftY:        r[6],
		RightX:       r[7],
		RightY:       r[8],
		LeftTrigger:  r[9],
		RightTrigger: r[10],
	}
}

// Record packs in into a Record with a state response type echo.
func (in RawInput) Record() Record {
	var r Record
	r[0] = byte(RequestGetControllerState)
	if in.Present {
		r[1] = 1
	}
	r[2] = in.Buttons
	r[3] = in.Modifiers
	r[4] = byte(in.DPad)
	r[5] = in.LeftX
	r[6] = in.LeftY
	r[7] = in.RightX
	r[8] = in.RightY
	r[9] = in.LeftTrigger
	r[10] = in.RightTrigger
	return r
}

// MarshalBinary returns the 11 record bytes.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, RecordSize)
	copy(b, r[:])
	return b, nil
}

// UnmarshalBinary copies 11 bytes into r.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) < RecordSize {
		return io.ErrUnexpectedEOF
	}
	copy(r[:], data[:RecordSize])
	return nil
}

var primaryButtons = [...]struct {
	raw uint8
	bit uint16
}{
	{RawButtonA, ButtonA},
	{RawButtonB, ButtonB},
	{RawButtonX, ButtonX},
	{RawButtonY, ButtonY},
	{RawButtonRightShoulder, ButtonRightShoulder},
	{RawButtonLeftShoulder, ButtonLeftShoulder},
	{RawButtonLeftThumb, ButtonLeftThumb},
	{RawButtonRightThumb, ButtonRightThumb},
}

var dpadBits = [...]uint16{
	DPadNone:      0,
	DPadNorth:     ButtonDPadUp,
	DPadNorthEast: ButtonDPadUp | ButtonDPadRight,
	DPadEast:      ButtonDPadRight,
	DPadSouthEast: ButtonDPadRight | ButtonDPadDown,
	DPadSouth:     ButtonDPadDown,
	DPadSouthWest: ButtonDPadDown | ButtonDPadLeft,
	DPadWest:      ButtonDPadLeft,
	DPadNorthWest: ButtonDPadLeft | ButtonDPadUp,
}

// DPadBits returns the direction button bits for a D-pad code. Codes above
// DPadNorthWest yield no direction.
func DPadBits(code DPadCode) uint16 {
	if int(code) >= len(dpadBits) {
		return 0
	}
	return dpadBits[code]
}

// DecodeRecord converts a raw record into a GamepadState. The result is a
// pure function of r; the presence byte is not part of it.
func DecodeRecord(r Record) GamepadState {
	var st GamepadState
	for _, b := range primaryButtons {
		if r[2]&b.raw != 0 {
			st.Buttons |= b.bit
		}
	}
	if r[3]&RawButtonBack != 0 {
		st.Buttons |= ButtonBack
	}
	if r[3]&RawButtonStart != 0 {
		st.Buttons |= ButtonStart
	}
	st.Buttons |= DPadBits(DPadCode(r[4]))

	st.LeftX = Stick(r[5])
	st.LeftY = Stick(r[6])
	st.RightX = Stick(r[7])
	st.RightY = Stick(r[8])

	st.LeftTrigger = r[9]
	st.RightTrigger = r[10]
	return st
}
