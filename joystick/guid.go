package joystick

import "fmt"

// GUID is a 128-bit identifier in the mixed-endian layout used by the host's
// device layer.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

func (g GUID) String() string {
	return fmt.Sprintf("{%08x-%04x-%04x-%02x%02x-%02x%02x%02x%02x%02x%02x}",
		g.Data1, g.Data2, g.Data3,
		g.Data4[0], g.Data4[1], g.Data4[2], g.Data4[3],
		g.Data4[4], g.Data4[5], g.Data4[6], g.Data4[7])
}

var (
	// GUIDJoystick is the generic joystick product class.
	GUIDJoystick = GUID{0x6F1D2B70, 0xD5A0, 0x11CF, [8]byte{0xBF, 0xC7, 0x44, 0x45, 0x53, 0x54, 0x00, 0x00}}

	// GUIDClassHID is the HID device setup class reported with the device path.
	GUIDClassHID = GUID{0x745A17A0, 0x74D3, 0x11D0, [8]byte{0xB6, 0xFE, 0x00, 0xA0, 0xC9, 0x0F, 0x57, 0xDA}}

	// GUIDInterfaceHID is the HID device interface class used in device paths.
	GUIDInterfaceHID = GUID{0x4D1E55B2, 0xF16F, 0x11CF, [8]byte{0x88, 0xCB, 0x00, 0x11, 0x11, 0x00, 0x00, 0x30}}

	virtualJoystickGUID = GUID{0xDEADBEEF, 0x7734, 0x11D2, [8]byte{0x8D, 0x4A, 0x23, 0x90, 0x3F, 0xB6, 0xBD, 0xF7}}
)

// Vendor and product id reported for every virtual controller.
const (
	VendorID  uint16 = 0x045E
	ProductID uint16 = 0x028E
)

// VIDPID packs vendor and product id as the device layer expects them:
// vendor in the low word.
func VIDPID() uint32 { return uint32(ProductID)<<16 | uint32(VendorID) }

// ProductGUID identifies the product by vendor and product id.
func ProductGUID() GUID {
	return GUID{Data1: VIDPID(), Data4: [8]byte{0, 0, 'P', 'I', 'D', 'V', 'I', 'D'}}
}

// InstanceGUID identifies the virtual controller in slot index.
func InstanceGUID(index int) GUID {
	g := virtualJoystickGUID
	g.Data3 = uint16(index)
	return g
}

// DevicePath returns the HID interface path reported for slot index.
func DevicePath(index int) string {
	return fmt.Sprintf(`\\?\hid#vid_2563&pid_0575&ig_0%d#273&03006316632500007505000011010000.0&0&0&1#%s`,
		index, GUIDInterfaceHID)
}
