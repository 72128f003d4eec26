package joystick

import "errors"

var (
	// ErrNotAttached is returned for slots beyond MaxSlots or without a
	// connected controller.
	ErrNotAttached = errors.New("device not attached")

	// ErrUnsupported is returned for property ids the device does not answer.
	ErrUnsupported = errors.New("property unsupported")

	// ErrOutOfMemory is returned when a device's format table cannot be built.
	ErrOutOfMemory = errors.New("cannot allocate device format")

	ErrInvalidFormat = errors.New("invalid data format")

	ErrAcquired = errors.New("device is acquired")
)
