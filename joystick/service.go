package joystick

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Honkonx/wine-mice/controller"
)

// Starter launches the poll worker. Start must be safe to call repeatedly;
// only the first call has an effect, and ctx bounds the worker's lifetime.
type Starter interface {
	Start(ctx context.Context)
}

// Backend is what the host's device layer needs from the bridge.
type Backend interface {
	EnumerateDevice(ctx context.Context, index int) (DeviceInstance, error)
	CreateDevice(ctx context.Context, guid GUID) (*Device, error)
	ConnectedCount() int
}

var _ Backend = (*Service)(nil)

// Service hands out devices bound to registry slots.
type Service struct {
	reg     *controller.Registry
	starter Starter
	logger  *slog.Logger
	caps    Capabilities

	mu   sync.Mutex
	next int
}

// NewService creates a service over reg. starter is invoked before any call
// that needs slot data.
func NewService(reg *controller.Registry, starter Starter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reg:     reg,
		starter: starter,
		logger:  logger.With("component", "joystick"),
		caps:    DefaultCapabilities(),
	}
}

// EnumerateDevice describes the controller in slot index. It waits for the
// first poll cycle and returns ErrNotAttached for indices outside the slot
// table or slots without a connected controller.
func (s *Service) EnumerateDevice(ctx context.Context, index int) (DeviceInstance, error) {
	s.start(ctx)
	if index < 0 || index >= controller.MaxSlots {
		return DeviceInstance{}, fmt.Errorf("%w: index %d", ErrNotAttached, index)
	}
	if err := s.reg.WaitReady(ctx); err != nil {
		return DeviceInstance{}, err
	}
	slot, _ := s.reg.Slot(index)
	if !slot.Connected() {
		return DeviceInstance{}, fmt.Errorf("%w: slot %d", ErrNotAttached, index)
	}
	return newDeviceInstance(index), nil
}

// start launches the worker detached from ctx's cancellation: a caller's
// deadline only bounds its own wait for the first poll cycle.
func (s *Service) start(ctx context.Context) {
	s.starter.Start(context.WithoutCancel(ctx))
}

// ConnectedCount returns the number of connected slots.
func (s *Service) ConnectedCount() int { return s.reg.ConnectedCount() }

// CreateDevice binds a new device to the next slot in round-robin order. The
// counter wraps to 0 once it reaches the connected count, which is sampled
// before waiting for the first poll cycle.
func (s *Service) CreateDevice(ctx context.Context, guid GUID) (*Device, error) {
	s.mu.Lock()
	if s.next >= s.reg.ConnectedCount() {
		s.next = 0
	}
	index := s.next
	s.next++
	s.mu.Unlock()

	s.start(ctx)
	if err := s.reg.WaitReady(ctx); err != nil {
		return nil, err
	}

	slot, err := s.reg.Slot(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAttached, err)
	}
	dev, err := newDevice(index, slot, guid, s.caps)
	if err != nil {
		s.logger.Error("create device failed", "slot", index, "error", err)
		return nil, err
	}
	s.logger.Debug("device created", "slot", index, "guid", guid.String())
	return dev, nil
}
