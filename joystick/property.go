package joystick

import "fmt"

// PropertyID names a descriptive device property.
type PropertyID int

const (
	PropProductName PropertyID = iota + 1
	PropInstanceName
	PropVIDPID
	PropJoystickID
	PropGUIDAndPath
	PropFFLoad
)

func (p PropertyID) String() string {
	switch p {
	case PropProductName:
		return "product-name"
	case PropInstanceName:
		return "instance-name"
	case PropVIDPID:
		return "vidpid"
	case PropJoystickID:
		return "joystick-id"
	case PropGUIDAndPath:
		return "guid-and-path"
	case PropFFLoad:
		return "ff-load"
	default:
		return fmt.Sprintf("property(%d)", int(p))
	}
}

// PropertyValue carries the answer to a property query. Which field is set
// depends on the property: String for names, Uint32 for numeric values,
// GUID and Path for PropGUIDAndPath.
type PropertyValue struct {
	String string
	Uint32 uint32
	GUID   GUID
	Path   string
}

// Property answers a descriptive property query for the controller in slot
// index. The force-feedback load is always zero.
func Property(index int, id PropertyID) (PropertyValue, error) {
	switch id {
	case PropProductName:
		return PropertyValue{String: ProductName}, nil
	case PropInstanceName:
		return PropertyValue{String: InstanceName(index)}, nil
	case PropVIDPID:
		return PropertyValue{Uint32: VIDPID()}, nil
	case PropJoystickID:
		return PropertyValue{Uint32: uint32(InstanceGUID(index).Data3)}, nil
	case PropGUIDAndPath:
		return PropertyValue{GUID: GUIDClassHID, Path: DevicePath(index)}, nil
	case PropFFLoad:
		return PropertyValue{Uint32: 0}, nil
	default:
		return PropertyValue{}, fmt.Errorf("%w: %s", ErrUnsupported, id)
	}
}

// Property answers a property query for the device's slot.
func (d *Device) Property(id PropertyID) (PropertyValue, error) {
	return Property(d.index, id)
}
