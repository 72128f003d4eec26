// Package joystick exposes the controller slots as virtual joysticks: it
// describes their objects (axes, buttons, hat), fills caller-described state
// buffers from the latest slot state, answers property queries and creates
// devices for the host's device layer.
package joystick

import "fmt"

// Kind classifies an object. Kinds are bits so they can be combined into
// enumeration filters.
type Kind uint8

const (
	KindAxis Kind = 1 << iota
	KindButton
	KindHat

	KindAll = KindAxis | KindButton | KindHat
)

func (k Kind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindButton:
		return "button"
	case KindHat:
		return "hat"
	default:
		return fmt.Sprintf("kind(%#x)", uint8(k))
	}
}

// ObjectFlags are descriptive flags reported during enumeration.
type ObjectFlags uint32

const (
	FlagAspectPosition ObjectFlags = 0x00000100
)

// Type tags reported during enumeration, as the device layer expects them.
const (
	typeAbsAxis    uint32 = 0x02
	typePushButton uint32 = 0x04
	typeHat        uint32 = 0x10
)

// ObjectDescriptor places one object in a state buffer. Axes occupy four
// bytes (little-endian int32), buttons one byte, hats four bytes
// (little-endian uint32, hundredths of a degree).
type ObjectDescriptor struct {
	Kind     Kind
	Instance int
	Offset   int
	Name     string
	Flags    ObjectFlags
}

// Size returns the number of buffer bytes the object occupies.
func (o ObjectDescriptor) Size() int {
	if o.Kind == KindButton {
		return 1
	}
	return 4
}

// TypeTag returns the kind tag combined with the instance number.
func (o ObjectDescriptor) TypeTag() uint32 {
	var t uint32
	switch o.Kind {
	case KindAxis:
		t = typeAbsAxis
	case KindButton:
		t = typePushButton
	case KindHat:
		t = typeHat
	}
	return t | uint32(o.Instance&0xFFFF)<<8
}

// Format is an ordered list of objects and the size of the buffer they fill.
// Descriptors may come in any order and may name instances this controller
// does not have; those are skipped.
type Format struct {
	DataSize int
	Objects  []ObjectDescriptor
}

// Validate checks that every object fits within DataSize.
func (f Format) Validate() error {
	if f.DataSize < 0 {
		return fmt.Errorf("%w: negative data size", ErrInvalidFormat)
	}
	for i, o := range f.Objects {
		if o.Offset < 0 || o.Offset+o.Size() > f.DataSize {
			return fmt.Errorf("%w: object %d (%s %d) at offset %d exceeds data size %d",
				ErrInvalidFormat, i, o.Kind, o.Instance, o.Offset, f.DataSize)
		}
	}
	return nil
}

// Clone returns a deep copy of f.
func (f Format) Clone() Format {
	out := Format{DataSize: f.DataSize, Objects: make([]ObjectDescriptor, len(f.Objects))}
	copy(out.Objects, f.Objects)
	return out
}

var objects = []ObjectDescriptor{
	{Kind: KindButton, Instance: 0, Offset: 24, Name: "Button 0"},
	{Kind: KindButton, Instance: 1, Offset: 25, Name: "Button 1"},
	{Kind: KindButton, Instance: 2, Offset: 26, Name: "Button 2"},
	{Kind: KindButton, Instance: 3, Offset: 27, Name: "Button 3"},
	{Kind: KindButton, Instance: 4, Offset: 28, Name: "Button 4"},
	{Kind: KindButton, Instance: 5, Offset: 29, Name: "Button 5"},
	{Kind: KindButton, Instance: 6, Offset: 30, Name: "Button 6"},
	{Kind: KindButton, Instance: 7, Offset: 31, Name: "Button 7"},
	{Kind: KindButton, Instance: 8, Offset: 32, Name: "Button 8"},
	{Kind: KindButton, Instance: 9, Offset: 33, Name: "Button 9"},

	{Kind: KindAxis, Instance: 0, Offset: 0, Name: "X Axis", Flags: FlagAspectPosition},
	{Kind: KindAxis, Instance: 1, Offset: 4, Name: "Y Axis", Flags: FlagAspectPosition},
	{Kind: KindAxis, Instance: 2, Offset: 8, Name: "Z Axis", Flags: FlagAspectPosition},
	{Kind: KindAxis, Instance: 3, Offset: 12, Name: "X Rotation", Flags: FlagAspectPosition},
	{Kind: KindAxis, Instance: 4, Offset: 16, Name: "Y Rotation", Flags: FlagAspectPosition},

	{Kind: KindHat, Instance: 0, Offset: 20, Name: "Hat Switch"},
}

// StandardFormat returns the layout matching the objects reported by
// EnumerateObjects.
func StandardFormat() Format {
	return Format{DataSize: 36, Objects: Objects()}
}

// Objects returns the static object table in enumeration order: buttons 0-9,
// axes 0-4, hat 0.
func Objects() []ObjectDescriptor {
	out := make([]ObjectDescriptor, len(objects))
	copy(out, objects)
	return out
}
