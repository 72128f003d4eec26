package poller_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/internal/poller"
	th "github.com/Honkonx/wine-mice/internal/testing"
	"github.com/Honkonx/wine-mice/wire"
)

func testConfig(p *th.Provider) poller.Config {
	cfg := poller.DefaultConfig()
	cfg.Host = p.Host()
	cfg.Port = p.Port()
	cfg.ReceiveTimeout = 20 * time.Millisecond
	cfg.ResetPause = 5 * time.Millisecond
	cfg.Interval = time.Millisecond
	return cfg
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", msg)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPollerPublishesFrames(t *testing.T) {
	prov := th.StartProvider(t)
	prov.SetSlot(0, wire.RawInput{Present: true, Buttons: wire.RawButtonA, DPad: wire.DPadEast, LeftX: 255})
	prov.SetSlot(2, wire.RawInput{Present: true, Modifiers: wire.RawButtonStart, RightTrigger: 200})

	reg := controller.NewRegistry()
	p := poller.New(testConfig(prov), reg, slog.Default(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitCtx, waitCancel := context.WithTimeout(ctx, 3*time.Second)
	defer waitCancel()
	require.NoError(t, reg.WaitReady(waitCtx))

	s0, _ := reg.Slot(0)
	s1, _ := reg.Slot(1)
	s2, _ := reg.Slot(2)
	assert.True(t, s0.Connected())
	assert.False(t, s1.Connected())
	assert.True(t, s2.Connected())
	assert.Equal(t, 2, reg.ConnectedCount())

	st := s0.Snapshot()
	assert.Equal(t, wire.ButtonA|wire.ButtonDPadRight, st.Buttons)
	assert.Equal(t, int16(32767), st.LeftX)
	assert.Equal(t, uint8(200), s2.Snapshot().RightTrigger)
	assert.Equal(t, 1, prov.Requests(wire.RequestGetConnection))
	assert.Greater(t, prov.Requests(wire.RequestGetControllerState), 0)

	prov.SetSlot(2, wire.RawInput{})
	waitFor(t, func() bool { return !s2.Connected() }, "slot 2 to disconnect")

	prov.SetSlot(0, wire.RawInput{Present: true, Buttons: wire.RawButtonB})
	waitFor(t, func() bool { return s0.Snapshot().Buttons == wire.ButtonB }, "slot 0 update")
}

func TestPollerStartsOnce(t *testing.T) {
	prov := th.StartProvider(t)
	prov.SetSlot(1, wire.RawInput{Present: true})

	reg := controller.NewRegistry()
	p := poller.New(testConfig(prov), reg, slog.Default(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	for range 5 {
		p.Start(ctx)
	}
	waitFor(t, reg.Ready, "first data")
	assert.Equal(t, 1, prov.Requests(wire.RequestGetConnection))

	cancel()
	select {
	case <-p.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("poller did not stop")
	}
	assert.NoError(t, p.Err())
}

func TestPollerStopDisconnectsSlots(t *testing.T) {
	prov := th.StartProvider(t)
	prov.SetSlot(0, wire.RawInput{Present: true, Buttons: wire.RawButtonA})
	prov.SetSlot(3, wire.RawInput{Present: true})

	reg := controller.NewRegistry()
	p := poller.New(testConfig(prov), reg, slog.Default(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	waitFor(t, func() bool { return reg.ConnectedCount() == 2 }, "slots connected")
	cancel()
	select {
	case <-p.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("poller did not stop")
	}
	assert.Zero(t, reg.ConnectedCount())
}

func TestPollerSilentProviderDisconnectsAll(t *testing.T) {
	prov := th.StartProvider(t)
	for i := range wire.Slots {
		prov.SetSlot(i, wire.RawInput{Present: true})
	}

	cfg := testConfig(prov)
	cfg.ReceiveTimeout = 2 * time.Millisecond
	cfg.TimeoutThreshold = 5
	cfg.ResetPause = 200 * time.Millisecond

	reg := controller.NewRegistry()
	p := poller.New(cfg, reg, slog.Default(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitFor(t, func() bool { return reg.ConnectedCount() == wire.Slots }, "all slots connected")

	prov.SetSilent(true)
	waitFor(t, func() bool { return reg.ConnectedCount() == 0 }, "all slots disconnected")
	assert.True(t, reg.Ready(), "readiness is pulsed while disconnecting")

	waitFor(t, func() bool { return !reg.Ready() }, "readiness to clear")

	prov.SetSilent(false)
	waitFor(t, func() bool { return reg.ConnectedCount() == wire.Slots }, "reconnect")
	waitFor(t, func() bool { return p.TimeoutCount() == 0 }, "timeout counter reset")
}

func TestPollerSetupFailure(t *testing.T) {
	cfg := poller.DefaultConfig()
	cfg.Port = 70000

	reg := controller.NewRegistry()
	p := poller.New(cfg, reg, slog.Default(), nil)
	p.Start(context.Background())

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("poller should stop on setup failure")
	}
	assert.Error(t, p.Err())
	assert.False(t, reg.Ready())
	assert.Zero(t, reg.ConnectedCount())
}

func TestProbe(t *testing.T) {
	prov := th.StartProvider(t)
	prov.SetSlot(3, wire.RawInput{Present: true, Buttons: wire.RawButtonY})

	frame, err := poller.Probe(context.Background(), testConfig(prov), nil)
	require.NoError(t, err)
	assert.True(t, frame[3].Present())
	assert.False(t, frame[0].Present())
	assert.Equal(t, wire.ButtonY, wire.DecodeRecord(frame[3]).Buttons)
}

func TestProbeTimeout(t *testing.T) {
	prov := th.StartProvider(t)
	prov.SetSilent(true)

	_, err := poller.Probe(context.Background(), testConfig(prov), nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, poller.DefaultConfig().Validate())

	cases := map[string]func(*poller.Config){
		"port zero":          func(c *poller.Config) { c.Port = 0 },
		"port too large":     func(c *poller.Config) { c.Port = 65536 },
		"no timeout":         func(c *poller.Config) { c.ReceiveTimeout = 0 },
		"negative threshold": func(c *poller.Config) { c.TimeoutThreshold = -1 },
		"negative interval":  func(c *poller.Config) { c.Interval = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := poller.DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
