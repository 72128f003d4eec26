package joystick

import (
	"fmt"
	"sync"

	"github.com/Honkonx/wine-mice/controller"
)

// Device type reported for every virtual controller: gamepad, standard
// subtype.
const (
	DevTypeGamepad       uint32 = 0x15
	DevSubtypeGamepadStd uint32 = 0x02
	DevType              uint32 = DevTypeGamepad | DevSubtypeGamepadStd<<8
)

const (
	usagePageGenericDesktop uint16 = 0x01
	usageGamePad            uint16 = 0x05
)

// CapFlags describe device capabilities.
type CapFlags uint32

const (
	CapAttached      CapFlags = 0x00000001
	CapEmulated      CapFlags = 0x00000004
	CapForceFeedback CapFlags = 0x00000100
)

// Capabilities summarizes a virtual controller.
type Capabilities struct {
	DevType             uint32
	Flags               CapFlags
	Axes                int
	Buttons             int
	Hats                int
	FFSamplePeriod      uint32
	FFMinTimeResolution uint32
}

// DefaultCapabilities describes the controllers bridged from the provider.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		DevType:             DevType,
		Flags:               CapAttached | CapEmulated | CapForceFeedback,
		Axes:                5,
		Buttons:             10,
		Hats:                1,
		FFSamplePeriod:      1000000,
		FFMinTimeResolution: 1000000,
	}
}

// maxObjects bounds the device format table.
const maxObjects = 256

// NewDeviceFormat lays out every object of caps in a four-byte cell: axes
// first, then buttons, then hats.
func NewDeviceFormat(caps Capabilities) (Format, error) {
	if caps.Axes < 0 || caps.Buttons < 0 || caps.Hats < 0 {
		return Format{}, fmt.Errorf("%w: negative object count", ErrOutOfMemory)
	}
	n := caps.Axes + caps.Buttons + caps.Hats
	if n > maxObjects {
		return Format{}, fmt.Errorf("%w: %d objects", ErrOutOfMemory, n)
	}
	f := Format{DataSize: 4 * n, Objects: make([]ObjectDescriptor, 0, n)}
	add := func(kind Kind, count int) {
		for i := range count {
			f.Objects = append(f.Objects, ObjectDescriptor{Kind: kind, Instance: i, Offset: 4 * len(f.Objects)})
		}
	}
	add(KindAxis, caps.Axes)
	add(KindButton, caps.Buttons)
	add(KindHat, caps.Hats)
	return f, nil
}

// Device is a virtual joystick bound to one controller slot.
type Device struct {
	index    int
	slot     *controller.Slot
	guid     GUID
	instance DeviceInstance
	caps     Capabilities

	mu         sync.Mutex
	format     Format
	userFormat Format
	state      []byte
	acquired   bool

	updated chan struct{}
}

func newDevice(index int, slot *controller.Slot, guid GUID, caps Capabilities) (*Device, error) {
	format, err := NewDeviceFormat(caps)
	if err != nil {
		return nil, err
	}
	return &Device{
		index:      index,
		slot:       slot,
		guid:       guid,
		instance:   newDeviceInstance(index),
		caps:       caps,
		format:     format,
		userFormat: format.Clone(),
		state:      make([]byte, format.DataSize),
		updated:    make(chan struct{}, 1),
	}, nil
}

// Index returns the slot the device reads from.
func (d *Device) Index() int { return d.index }

// GUID returns the guid the device was created with.
func (d *Device) GUID() GUID { return d.guid }

// Instance returns the device's descriptive record.
func (d *Device) Instance() DeviceInstance { return d.instance }

// Capabilities returns the device's capability summary.
func (d *Device) Capabilities() Capabilities { return d.caps }

// Format returns a copy of the format Read fills.
func (d *Device) Format() Format {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.format.Clone()
}

// SetDataFormat stores the caller's format; it takes effect on Acquire.
func (d *Device) SetDataFormat(f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.acquired {
		return ErrAcquired
	}
	d.userFormat = f.Clone()
	return nil
}

// Acquire activates the caller's format and enables Read.
func (d *Device) Acquire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.acquired {
		return
	}
	d.format = d.userFormat.Clone()
	d.state = make([]byte, d.format.DataSize)
	d.acquired = true
}

// Unacquire disables Read.
func (d *Device) Unacquire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquired = false
}

// Acquired reports whether the device is acquired.
func (d *Device) Acquired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acquired
}

// Read refreshes the device's state buffer from its slot and signals
// Updated. It does nothing, returning false, while the device is not
// acquired or the slot is not connected.
func (d *Device) Read() bool {
	d.mu.Lock()
	if !d.acquired {
		d.mu.Unlock()
		return false
	}
	ok := Translate(d.slot, d.format, d.state)
	d.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case d.updated <- struct{}{}:
	default:
	}
	return true
}

// State returns a copy of the state buffer filled by the last Read.
func (d *Device) State() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.state))
	copy(out, d.state)
	return out
}

// Updated receives after each Read that wrote the state buffer.
func (d *Device) Updated() <-chan struct{} { return d.updated }

// EnumerateObjects reports the device's objects, see EnumerateObjects.
func (d *Device) EnumerateObjects(kinds Kind, fn func(ObjectInstance) bool) {
	EnumerateObjects(kinds, fn)
}
