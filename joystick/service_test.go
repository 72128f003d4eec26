package joystick_test

import (
	"context"
	"encoding/binary"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/internal/poller"
	th "github.com/Honkonx/wine-mice/internal/testing"
	"github.com/Honkonx/wine-mice/joystick"
	"github.com/Honkonx/wine-mice/wire"
)

func newService(connected ...int) (*joystick.Service, *controller.Registry, *th.MockStarter) {
	reg := controller.NewRegistry()
	starter := th.NewMockStarter(reg, connected...)
	return joystick.NewService(reg, starter, nil), reg, starter
}

func TestCreateDeviceRoundRobin(t *testing.T) {
	svc, _, starter := newService(0, 1)
	ctx := context.Background()

	var got []int
	for range 3 {
		dev, err := svc.CreateDevice(ctx, joystick.GUIDJoystick)
		require.NoError(t, err)
		got = append(got, dev.Index())
	}
	assert.Equal(t, []int{0, 1, 0}, got)
	assert.Equal(t, 3, starter.Starts())
	assert.Equal(t, 2, svc.ConnectedCount())
}

func TestCreateDeviceWaitsForReady(t *testing.T) {
	reg := controller.NewRegistry()
	svc := joystick.NewService(reg, th.NewMockStarter(controller.NewRegistry()), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.CreateDevice(ctx, joystick.GUIDJoystick)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateDevice(context.Background(), joystick.GUIDJoystick)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	reg.SetReady()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("CreateDevice did not return after ready")
	}
}

func TestWorkerOutlivesCallerContext(t *testing.T) {
	prov := th.StartProvider(t)
	prov.SetSlot(0, wire.RawInput{Present: true})

	cfg := poller.DefaultConfig()
	cfg.Host = prov.Host()
	cfg.Port = prov.Port()
	cfg.ReceiveTimeout = 50 * time.Millisecond
	cfg.Interval = time.Millisecond

	reg := controller.NewRegistry()
	// The worker runs for the rest of the test binary.
	p := poller.New(cfg, reg, slog.New(slog.DiscardHandler), nil)
	svc := joystick.NewService(reg, p, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_, err := svc.EnumerateDevice(ctx, 0)
	cancel()
	require.NoError(t, err)

	before := prov.Requests(wire.RequestGetControllerState)
	require.Eventually(t, func() bool {
		return prov.Requests(wire.RequestGetControllerState) > before+5
	}, 3*time.Second, 5*time.Millisecond)

	select {
	case <-p.Done():
		t.Fatal("poll worker stopped with the caller's context")
	default:
	}

	prov.SetSlot(0, wire.RawInput{})
	slot, _ := reg.Slot(0)
	require.Eventually(t, func() bool { return !slot.Connected() }, 3*time.Second, 5*time.Millisecond)
}

func TestEnumerateDevice(t *testing.T) {
	svc, _, _ := newService(0, 2)
	ctx := context.Background()

	inst, err := svc.EnumerateDevice(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "MiceWine Virtual Controller 2", inst.InstanceName)
	assert.Equal(t, "MiceWine Product", inst.ProductName)
	assert.Equal(t, joystick.InstanceGUID(2), inst.InstanceGUID)
	assert.Equal(t, joystick.ProductGUID(), inst.ProductGUID)
	assert.Equal(t, joystick.DevType, inst.DevType)

	for _, i := range []int{1, 3, controller.MaxSlots, -1} {
		_, err := svc.EnumerateDevice(ctx, i)
		assert.ErrorIs(t, err, joystick.ErrNotAttached, "index %d", i)
	}
}

func TestDeviceRead(t *testing.T) {
	svc, reg, _ := newService(0)
	dev, err := svc.CreateDevice(context.Background(), joystick.GUIDJoystick)
	require.NoError(t, err)

	slot, _ := reg.Slot(0)
	slot.Store(wire.GamepadState{Buttons: wire.ButtonA | wire.ButtonDPadDown})

	assert.False(t, dev.Read(), "read before acquire")
	select {
	case <-dev.Updated():
		t.Fatal("unexpected update")
	default:
	}

	require.NoError(t, dev.SetDataFormat(joystick.StandardFormat()))
	dev.Acquire()
	assert.ErrorIs(t, dev.SetDataFormat(joystick.StandardFormat()), joystick.ErrAcquired)

	require.True(t, dev.Read())
	select {
	case <-dev.Updated():
	default:
		t.Fatal("no update signal")
	}
	st := dev.State()
	require.Len(t, st, 36)
	assert.Equal(t, byte(0x80), st[24])
	assert.Equal(t, uint32(18000), binary.LittleEndian.Uint32(st[20:]))

	slot.SetConnected(false)
	slot.Store(wire.GamepadState{})
	assert.False(t, dev.Read())
	assert.Equal(t, byte(0x80), dev.State()[24], "disconnected read keeps last state")

	dev.Unacquire()
	assert.False(t, dev.Acquired())
}

func TestDeviceDefaultFormat(t *testing.T) {
	svc, _, _ := newService(0)
	dev, err := svc.CreateDevice(context.Background(), joystick.GUIDJoystick)
	require.NoError(t, err)

	f := dev.Format()
	assert.Equal(t, 64, f.DataSize)
	require.Len(t, f.Objects, 16)
	assert.Equal(t, joystick.KindAxis, f.Objects[0].Kind)
	assert.Equal(t, joystick.KindButton, f.Objects[5].Kind)
	assert.Equal(t, joystick.KindHat, f.Objects[15].Kind)
	assert.Equal(t, 60, f.Objects[15].Offset)

	caps := dev.Capabilities()
	assert.Equal(t, 5, caps.Axes)
	assert.Equal(t, 10, caps.Buttons)
	assert.Equal(t, 1, caps.Hats)
	assert.NotZero(t, caps.Flags&joystick.CapForceFeedback)

	v, err := dev.Property(joystick.PropInstanceName)
	require.NoError(t, err)
	assert.Equal(t, "MiceWine Virtual Controller 0", v.String)
}

func TestNewDeviceFormatLimits(t *testing.T) {
	_, err := joystick.NewDeviceFormat(joystick.Capabilities{Axes: 200, Buttons: 100})
	assert.ErrorIs(t, err, joystick.ErrOutOfMemory)

	_, err = joystick.NewDeviceFormat(joystick.Capabilities{Axes: -1})
	assert.ErrorIs(t, err, joystick.ErrOutOfMemory)

	f, err := joystick.NewDeviceFormat(joystick.Capabilities{Buttons: 256})
	require.NoError(t, err)
	assert.Len(t, f.Objects, 256)
}
