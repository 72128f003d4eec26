package apitypes

// Shared response structs used by the monitor server, the CLI and clients.

type SlotState struct {
	Index        int      `json:"index" yaml:"index" toml:"index"`
	Connected    bool     `json:"connected" yaml:"connected" toml:"connected"`
	Buttons      uint16   `json:"buttons" yaml:"buttons" toml:"buttons"`
	Pressed      []string `json:"pressed" yaml:"pressed" toml:"pressed"`
	LeftX        int16    `json:"leftX" yaml:"leftX" toml:"leftX"`
	LeftY        int16    `json:"leftY" yaml:"leftY" toml:"leftY"`
	RightX       int16    `json:"rightX" yaml:"rightX" toml:"rightX"`
	RightY       int16    `json:"rightY" yaml:"rightY" toml:"rightY"`
	LeftTrigger  uint8    `json:"leftTrigger" yaml:"leftTrigger" toml:"leftTrigger"`
	RightTrigger uint8    `json:"rightTrigger" yaml:"rightTrigger" toml:"rightTrigger"`
}

type SlotsResponse struct {
	Ready bool        `json:"ready"`
	Slots []SlotState `json:"slots"`
}

// MonitorMessage is sent over the monitor websocket. Type is "full" (Slots
// set) or "slot" (Slot set).
type MonitorMessage struct {
	Type      string      `json:"type"`
	Seq       int64       `json:"seq"`
	Timestamp int64       `json:"timestamp"` // Unix milliseconds
	Slots     []SlotState `json:"slots,omitempty"`
	Slot      *SlotState  `json:"slot,omitempty"`
}

type Object struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	Instance int    `json:"instance" yaml:"instance" toml:"instance"`
	Offset   int    `json:"offset" yaml:"offset" toml:"offset"`
	Type     uint32 `json:"type" yaml:"type" toml:"type"`
	Flags    uint32 `json:"flags" yaml:"flags" toml:"flags"`
}

type ObjectsResponse struct {
	DataSize int      `json:"dataSize" yaml:"dataSize" toml:"dataSize"`
	Objects  []Object `json:"objects" yaml:"objects" toml:"objects"`
}

type PingResponse struct {
	Server    string `json:"server"`
	Ready     bool   `json:"ready"`
	Connected int    `json:"connected"`
}
