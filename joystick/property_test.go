package joystick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Honkonx/wine-mice/joystick"
)

func TestProperty(t *testing.T) {
	v, err := joystick.Property(1, joystick.PropProductName)
	require.NoError(t, err)
	assert.Equal(t, "MiceWine Product", v.String)

	v, err = joystick.Property(1, joystick.PropInstanceName)
	require.NoError(t, err)
	assert.Equal(t, "MiceWine Virtual Controller 1", v.String)

	v, err = joystick.Property(1, joystick.PropVIDPID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x028E045E), v.Uint32)

	v, err = joystick.Property(3, joystick.PropJoystickID)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v.Uint32)

	v, err = joystick.Property(2, joystick.PropGUIDAndPath)
	require.NoError(t, err)
	assert.Equal(t, joystick.GUIDClassHID, v.GUID)
	assert.Contains(t, v.Path, "ig_02#")
	assert.Contains(t, v.Path, "{4d1e55b2-f16f-11cf-88cb-001111000030}")

	v, err = joystick.Property(0, joystick.PropFFLoad)
	require.NoError(t, err)
	assert.Zero(t, v.Uint32)
}

func TestPropertyUnsupported(t *testing.T) {
	for _, id := range []joystick.PropertyID{0, 99, -1} {
		_, err := joystick.Property(0, id)
		assert.ErrorIs(t, err, joystick.ErrUnsupported)
	}
}

func TestGUIDs(t *testing.T) {
	assert.Equal(t, "{6f1d2b70-d5a0-11cf-bfc7-444553540000}", joystick.GUIDJoystick.String())

	g := joystick.InstanceGUID(2)
	assert.Equal(t, "{deadbeef-7734-0002-8d4a-23903fb6bdf7}", g.String())

	p := joystick.ProductGUID()
	assert.Equal(t, uint32(0x028E045E), p.Data1)
	assert.Equal(t, [8]byte{0, 0, 'P', 'I', 'D', 'V', 'I', 'D'}, p.Data4)
}
