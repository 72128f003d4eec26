package monitor

import (
	"github.com/Honkonx/wine-mice/apitypes"
	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/wire"
)

var buttonNames = []struct {
	mask uint16
	name string
}{
	{wire.ButtonA, "A"},
	{wire.ButtonB, "B"},
	{wire.ButtonX, "X"},
	{wire.ButtonY, "Y"},
	{wire.ButtonLeftShoulder, "LB"},
	{wire.ButtonRightShoulder, "RB"},
	{wire.ButtonBack, "Back"},
	{wire.ButtonStart, "Start"},
	{wire.ButtonLeftThumb, "LS"},
	{wire.ButtonRightThumb, "RS"},
	{wire.ButtonDPadUp, "Up"},
	{wire.ButtonDPadDown, "Down"},
	{wire.ButtonDPadLeft, "Left"},
	{wire.ButtonDPadRight, "Right"},
}

// PressedNames lists the names of the buttons set in buttons.
func PressedNames(buttons uint16) []string {
	st := wire.GamepadState{Buttons: buttons}
	out := []string{}
	for _, b := range buttonNames {
		if st.Pressed(b.mask) {
			out = append(out, b.name)
		}
	}
	return out
}

// SlotState converts a slot's state to its API form.
func SlotState(index int, connected bool, st wire.GamepadState) apitypes.SlotState {
	return apitypes.SlotState{
		Index:        index,
		Connected:    connected,
		Buttons:      st.Buttons,
		Pressed:      PressedNames(st.Buttons),
		LeftX:        st.LeftX,
		LeftY:        st.LeftY,
		RightX:       st.RightX,
		RightY:       st.RightY,
		LeftTrigger:  st.LeftTrigger,
		RightTrigger: st.RightTrigger,
	}
}

func snapshot(s *controller.Slot) apitypes.SlotState {
	return SlotState(s.Index(), s.Connected(), s.Snapshot())
}

func snapshotAll(reg *controller.Registry) []apitypes.SlotState {
	slots := reg.Slots()
	out := make([]apitypes.SlotState, 0, len(slots))
	for _, s := range slots {
		out = append(out, snapshot(s))
	}
	return out
}
