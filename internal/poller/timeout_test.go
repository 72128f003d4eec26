package poller

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/wire"
)

func TestHandleTimeoutThreshold(t *testing.T) {
	reg := controller.NewRegistry()
	for _, s := range reg.Slots() {
		s.SetConnected(true)
	}
	cfg := DefaultConfig()
	cfg.ResetPause = 0
	p := New(cfg, reg, slog.Default(), nil)
	ctx := context.Background()

	for range 60 {
		p.handleTimeout(ctx)
	}
	assert.Equal(t, 60, p.TimeoutCount())
	assert.Equal(t, controller.MaxSlots, reg.ConnectedCount())

	p.handleTimeout(ctx)
	assert.Zero(t, p.TimeoutCount())
	assert.Zero(t, reg.ConnectedCount())
	assert.False(t, reg.Ready(), "readiness is cleared again after the pulse")
}

func TestApplyIgnoresOtherKinds(t *testing.T) {
	reg := controller.NewRegistry()
	p := New(DefaultConfig(), reg, slog.Default(), nil)

	connReply := wire.EncodeRequest(wire.RequestGetConnection)
	connReply[1] = 1
	p.apply(connReply)
	p.apply(nil)
	assert.False(t, reg.Ready())
	assert.Zero(t, reg.ConnectedCount())

	var frame wire.Frame
	frame[1] = wire.RawInput{Present: true, LeftY: 0}.Record()
	p.apply(wire.EncodeResponse(frame))
	assert.True(t, reg.Ready())
	s1, _ := reg.Slot(1)
	assert.True(t, s1.Connected())
	assert.Equal(t, int16(-32768), s1.Snapshot().LeftY)
}
