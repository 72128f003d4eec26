// Package controller holds the fixed table of controller slots shared between
// the poll worker, which writes it, and the device layer, which reads it.
//
// A slot's state is only ever replaced as a whole under the slot's lock, so a
// reader never sees a mixture of two poll cycles within one slot. There is no
// atomicity across slots.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Honkonx/wine-mice/wire"
)

// MaxSlots is the number of controller slots.
const MaxSlots = wire.Slots

var ErrSlotOutOfRange = errors.New("slot index out of range")

// Slot tracks one virtual controller.
type Slot struct {
	index     int
	connected atomic.Bool

	mu    sync.Mutex
	state wire.GamepadState

	changed chan struct{}
}

func newSlot(index int) *Slot {
	return &Slot{index: index, changed: make(chan struct{}, 1)}
}

// Index returns the slot's fixed position.
func (s *Slot) Index() int { return s.index }

// Connected reports whether the last poll cycle saw a controller in this slot.
func (s *Slot) Connected() bool { return s.connected.Load() }

// SetConnected updates the connectivity flag and reports whether it changed.
// A change signals Changed.
func (s *Slot) SetConnected(v bool) bool {
	if s.connected.Swap(v) == v {
		return false
	}
	s.notify()
	return true
}

// Store replaces the slot's state and signals Changed.
func (s *Slot) Store(st wire.GamepadState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.notify()
}

func (s *Slot) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the latest state.
func (s *Slot) Snapshot() wire.GamepadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// With calls fn with the latest state while holding the slot lock. fn must
// not call back into the slot.
func (s *Slot) With(fn func(st wire.GamepadState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Changed receives after Store or a connectivity change. It behaves as an
// auto-reset event with a single consumer: signals coalesce, and each one
// wakes exactly one receiver. In this module the monitor's broadcaster is
// that consumer; device readers use Device.Updated instead.
func (s *Slot) Changed() <-chan struct{} { return s.changed }

// Registry is the table of MaxSlots slots plus the "first data received"
// condition.
type Registry struct {
	slots [MaxSlots]*Slot

	readyMu sync.Mutex
	ready   chan struct{}
	isReady bool
}

// NewRegistry allocates all slots disconnected.
func NewRegistry() *Registry {
	r := &Registry{ready: make(chan struct{})}
	for i := range r.slots {
		r.slots[i] = newSlot(i)
	}
	return r
}

// Slot returns the slot at index i.
func (r *Registry) Slot(i int) (*Slot, error) {
	if i < 0 || i >= MaxSlots {
		return nil, fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	return r.slots[i], nil
}

// Slots returns all slots in index order.
func (r *Registry) Slots() [MaxSlots]*Slot { return r.slots }

// ConnectedCount returns the number of connected slots.
func (r *Registry) ConnectedCount() int {
	n := 0
	for _, s := range r.slots {
		if s.Connected() {
			n++
		}
	}
	return n
}

// DisconnectAll marks every slot disconnected and returns the indices of
// the slots that were connected.
func (r *Registry) DisconnectAll() []int {
	var changed []int
	for _, s := range r.slots {
		if s.SetConnected(false) {
			changed = append(changed, s.index)
		}
	}
	return changed
}

// SetReady raises the "first data received" condition, releasing every
// WaitReady caller.
func (r *Registry) SetReady() {
	r.readyMu.Lock()
	defer r.readyMu.Unlock()
	if r.isReady {
		return
	}
	r.isReady = true
	close(r.ready)
}

// ClearReady lowers the condition; later WaitReady calls block again.
func (r *Registry) ClearReady() {
	r.readyMu.Lock()
	defer r.readyMu.Unlock()
	if !r.isReady {
		return
	}
	r.isReady = false
	r.ready = make(chan struct{})
}

// Ready reports whether the condition is currently raised.
func (r *Registry) Ready() bool {
	r.readyMu.Lock()
	defer r.readyMu.Unlock()
	return r.isReady
}

// WaitReady blocks until the condition is raised or ctx is done.
func (r *Registry) WaitReady(ctx context.Context) error {
	r.readyMu.Lock()
	ch := r.ready
	r.readyMu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
