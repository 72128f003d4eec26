package testing

import (
	"context"
	"sync/atomic"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/wire"
)

// MockStarter stands in for the poll worker: Start marks the given slots
// connected with a zero state and raises readiness.
type MockStarter struct {
	reg       *controller.Registry
	connected []int
	starts    atomic.Int32
}

func NewMockStarter(reg *controller.Registry, connected ...int) *MockStarter {
	return &MockStarter{reg: reg, connected: connected}
}

func (m *MockStarter) Start(context.Context) {
	if m.starts.Add(1) > 1 {
		return
	}
	for _, i := range m.connected {
		s, err := m.reg.Slot(i)
		if err != nil {
			continue
		}
		s.SetConnected(true)
		s.Store(wire.GamepadState{})
	}
	m.reg.SetReady()
}

// Starts returns how many times Start was called.
func (m *MockStarter) Starts() int { return int(m.starts.Load()) }
