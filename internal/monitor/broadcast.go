package monitor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Honkonx/wine-mice/apitypes"
	"github.com/Honkonx/wine-mice/controller"
)

const fullSyncInterval = 5 * time.Second

// Broadcaster turns slot change notifications into monitor messages.
type Broadcaster struct {
	hub    *Hub
	reg    *controller.Registry
	logger *slog.Logger
	seq    atomic.Int64

	// FullSync is the period of unconditional full-state messages.
	FullSync time.Duration
}

func NewBroadcaster(h *Hub, reg *controller.Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{hub: h, reg: reg, logger: logger, FullSync: fullSyncInterval}
}

// Run forwards changes until ctx is done. It is the sole consumer of every
// slot's Changed channel; run at most one Broadcaster per registry. A slot message is only sent when
// the slot differs from the last one sent.
func (b *Broadcaster) Run(ctx context.Context) {
	changes := make(chan int, controller.MaxSlots)
	var wg sync.WaitGroup
	for _, s := range b.reg.Slots() {
		wg.Add(1)
		go func(s *controller.Slot) {
			defer wg.Done()
			for {
				select {
				case <-s.Changed():
				case <-ctx.Done():
					return
				}
				select {
				case changes <- s.Index():
				case <-ctx.Done():
					return
				}
			}
		}(s)
	}
	defer wg.Wait()

	ticker := time.NewTicker(b.FullSync)
	defer ticker.Stop()

	var last [controller.MaxSlots]apitypes.SlotState
	for i, st := range snapshotAll(b.reg) {
		last[i] = st
	}
	for {
		select {
		case i := <-changes:
			s, _ := b.reg.Slot(i)
			st := snapshot(s)
			if equalSlot(st, last[i]) {
				continue
			}
			last[i] = st
			b.send(ctx, b.SlotMessage(st))
		case <-ticker.C:
			b.send(ctx, b.FullMessage())
		case <-ctx.Done():
			return
		}
	}
}

// FullMessage builds a message carrying every slot.
func (b *Broadcaster) FullMessage() apitypes.MonitorMessage {
	return apitypes.MonitorMessage{
		Type:      "full",
		Seq:       b.seq.Add(1),
		Timestamp: time.Now().UnixMilli(),
		Slots:     snapshotAll(b.reg),
	}
}

// SlotMessage builds a message carrying one slot.
func (b *Broadcaster) SlotMessage(st apitypes.SlotState) apitypes.MonitorMessage {
	return apitypes.MonitorMessage{
		Type:      "slot",
		Seq:       b.seq.Add(1),
		Timestamp: time.Now().UnixMilli(),
		Slot:      &st,
	}
}

// SendInitial queues a full message for a newly connected client.
func (b *Broadcaster) SendInitial(c *Client) {
	data, err := json.Marshal(b.FullMessage())
	if err != nil {
		b.logger.Error("marshal initial state", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) send(ctx context.Context, msg apitypes.MonitorMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("marshal monitor message", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(ctx, data)
}

func equalSlot(a, b apitypes.SlotState) bool {
	return a.Index == b.Index && a.Connected == b.Connected && a.Buttons == b.Buttons &&
		a.LeftX == b.LeftX && a.LeftY == b.LeftY && a.RightX == b.RightX && a.RightY == b.RightY &&
		a.LeftTrigger == b.LeftTrigger && a.RightTrigger == b.RightTrigger
}
