// Package wire implements the datagram protocol spoken by the remote gamepad
// provider and decodes its controller records into GamepadState.
//
// Every datagram, in both directions, is FrameSize bytes. A request carries the
// request kind in byte 0 followed by zero padding. A state response carries
// RequestGetControllerState in byte 0 and four RecordSize records laid out back
// to back from offset 0, so byte 0 doubles as the first record's type echo.
package wire

// Port is the UDP port the provider listens on.
const Port = 7941

const (
	// RecordSize is the size of one controller record.
	RecordSize = 11
	// Slots is the number of controller records carried by one frame.
	Slots = 4
	// FrameSize is the size of every request and response datagram.
	FrameSize = RecordSize * Slots
)

// RequestKind is the value of byte 0 of a request or response.
type RequestKind uint8

const (
	RequestGetConnection      RequestKind = 1
	RequestGetControllerState RequestKind = 3
)

func (k RequestKind) String() string {
	switch k {
	case RequestGetConnection:
		return "get-connection"
	case RequestGetControllerState:
		return "get-controller-state"
	default:
		return "unknown"
	}
}

// Frame holds the four records of one state response in slot order.
type Frame [Slots]Record

// EncodeRequest builds a request datagram of the given kind.
func EncodeRequest(kind RequestKind) []byte {
	b := make([]byte, FrameSize)
	b[0] = byte(kind)
	return b
}

// DecodeResponse splits a state response into its per-slot records.
// ok is false for any datagram that is not a state response; callers ignore
// those. A datagram shorter than FrameSize is read as if zero padded.
func DecodeResponse(buf []byte) (frame Frame, ok bool) {
	if len(buf) == 0 || RequestKind(buf[0]) != RequestGetControllerState {
		return frame, false
	}
	var padded [FrameSize]byte
	copy(padded[:], buf)
	for i := range frame {
		copy(frame[i][:], padded[i*RecordSize:(i+1)*RecordSize])
	}
	return frame, true
}

// EncodeResponse is the inverse of DecodeResponse. The provider side uses it;
// the poller never does.
func EncodeResponse(frame Frame) []byte {
	b := make([]byte, FrameSize)
	for i, r := range frame {
		copy(b[i*RecordSize:], r[:])
	}
	b[0] = byte(RequestGetControllerState)
	return b
}
