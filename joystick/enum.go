package joystick

import "fmt"

// ObjectInstance is the descriptive record reported for one object.
type ObjectInstance struct {
	Name      string
	Kind      Kind
	Instance  int
	Type      uint32
	Offset    int
	Flags     ObjectFlags
	GUIDType  GUID
	UsagePage uint16
	Usage     uint16
}

// EnumerateObjects calls fn for every static object whose kind is in kinds,
// buttons first, then axes, then the hat. Enumeration stops when fn returns
// false.
func EnumerateObjects(kinds Kind, fn func(ObjectInstance) bool) {
	for _, k := range [...]Kind{KindButton, KindAxis, KindHat} {
		if kinds&k == 0 {
			continue
		}
		for _, o := range objects {
			if o.Kind != k {
				continue
			}
			inst := ObjectInstance{
				Name:      o.Name,
				Kind:      o.Kind,
				Instance:  o.Instance,
				Type:      o.TypeTag(),
				Offset:    o.Offset,
				Flags:     o.Flags,
				GUIDType:  GUIDJoystick,
				UsagePage: usagePageGenericDesktop,
				Usage:     usageGamePad,
			}
			if !fn(inst) {
				return
			}
		}
	}
}

// DeviceInstance describes an attached virtual controller.
type DeviceInstance struct {
	InstanceGUID GUID
	ProductGUID  GUID
	DevType      uint32
	UsagePage    uint16
	Usage        uint16
	InstanceName string
	ProductName  string
}

// ProductName is reported for every virtual controller.
const ProductName = "MiceWine Product"

// InstanceName returns the display name of the controller in slot index.
func InstanceName(index int) string {
	return fmt.Sprintf("MiceWine Virtual Controller %d", index)
}

func newDeviceInstance(index int) DeviceInstance {
	return DeviceInstance{
		InstanceGUID: InstanceGUID(index),
		ProductGUID:  ProductGUID(),
		DevType:      DevType,
		UsagePage:    usagePageGenericDesktop,
		Usage:        usageGamePad,
		InstanceName: InstanceName(index),
		ProductName:  ProductName,
	}
}
