// Package poller runs the background worker that fetches controller frames
// from the provider and publishes them into a controller.Registry.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/internal/log"
	"github.com/Honkonx/wine-mice/wire"
)

// Poller owns the provider session. It is the only writer of the registry.
type Poller struct {
	cfg    Config
	reg    *controller.Registry
	logger *slog.Logger
	raw    log.RawLogger

	timeouts atomic.Int64

	once sync.Once
	done chan struct{}
	err  error
}

// New creates a poller for reg. rawLogger may be nil.
func New(cfg Config, reg *controller.Registry, logger *slog.Logger, rawLogger log.RawLogger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	return &Poller{
		cfg:    cfg,
		reg:    reg,
		logger: logger.With("component", "poller"),
		raw:    rawLogger,
		done:   make(chan struct{}),
	}
}

// Registry returns the registry the poller writes to.
func (p *Poller) Registry() *controller.Registry { return p.reg }

// Start launches Run in the background. Only the first call has any effect;
// ctx of later calls is ignored.
func (p *Poller) Start(ctx context.Context) {
	p.once.Do(func() {
		go func() {
			defer close(p.done)
			if err := p.Run(ctx); err != nil {
				p.err = err
				p.logger.Error("poll worker stopped", "error", err)
			}
		}()
	})
}

// Done is closed once a started worker has returned.
func (p *Poller) Done() <-chan struct{} { return p.done }

// Err returns the worker's setup error. Only valid after Done is closed.
func (p *Poller) Err() error { return p.err }

// TimeoutCount returns the current number of consecutive receive timeouts.
func (p *Poller) TimeoutCount() int { return int(p.timeouts.Load()) }

// Run opens the session and polls until ctx is done. It only returns an
// error when the session cannot be set up; runtime socket errors are logged
// and the loop carries on.
func (p *Poller) Run(ctx context.Context) error {
	conn, addr, err := open(p.cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer p.disconnectAll()

	p.logger.Info("polling provider", "addr", addr.String(), "timeout", p.cfg.ReceiveTimeout)

	if err := p.send(conn, addr, wire.RequestGetConnection); err != nil {
		p.logger.Warn("connection request failed", "error", err)
	}

	buf := make([]byte, wire.FrameSize)
	for {
		if ctx.Err() != nil {
			return nil
		}
		started := time.Now()

		if err := p.send(conn, addr, wire.RequestGetControllerState); err != nil {
			p.logger.Debug("state request failed", "error", err)
		}

		_ = conn.SetReadDeadline(time.Now().Add(p.cfg.ReceiveTimeout))
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				p.handleTimeout(ctx)
				continue
			}
			p.logger.Warn("receive failed", "error", err)
			continue
		}

		p.timeouts.Store(0)
		p.raw.Log(false, from.String(), buf[:n])
		p.apply(buf[:n])

		if p.cfg.Interval > 0 {
			sleep(ctx, p.cfg.Interval-time.Since(started))
		}
	}
}

func (p *Poller) send(conn *net.UDPConn, addr *net.UDPAddr, kind wire.RequestKind) error {
	req := wire.EncodeRequest(kind)
	p.raw.Log(true, addr.String(), req)
	_, err := conn.WriteToUDP(req, addr)
	return err
}

// apply publishes one datagram. Datagrams that are not state responses are
// ignored and do not raise readiness.
func (p *Poller) apply(data []byte) {
	frame, ok := wire.DecodeResponse(data)
	if !ok {
		p.logger.Debug("ignoring datagram", "len", len(data))
		return
	}
	for i, rec := range frame {
		slot, _ := p.reg.Slot(i)
		if rec.Present() {
			changed := slot.SetConnected(true)
			slot.Store(wire.DecodeRecord(rec))
			if changed {
				p.logger.Info("controller connected", "slot", i)
			}
			continue
		}
		if slot.SetConnected(false) {
			p.logger.Info("controller disconnected", "slot", i)
		}
	}
	p.reg.SetReady()
}

// handleTimeout counts a receive timeout. Once the count exceeds the
// threshold every slot is disconnected and readiness is pulsed so callers
// waiting for first data are released.
func (p *Poller) handleTimeout(ctx context.Context) {
	n := p.timeouts.Add(1)
	if n <= int64(p.cfg.TimeoutThreshold) {
		return
	}
	p.logger.Warn("provider not responding, disconnecting all controllers", "timeouts", n)
	p.disconnectAll()
	p.reg.SetReady()
	sleep(ctx, p.cfg.ResetPause)
	p.reg.ClearReady()
	p.timeouts.Store(0)
}

func (p *Poller) disconnectAll() {
	for _, i := range p.reg.DisconnectAll() {
		p.logger.Info("controller disconnected", "slot", i)
	}
}

// Probe sends one connection request and one state request and returns the
// decoded response.
func Probe(ctx context.Context, cfg Config, rawLogger log.RawLogger) (wire.Frame, error) {
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	conn, addr, err := open(cfg)
	if err != nil {
		return wire.Frame{}, err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	p := &Poller{raw: rawLogger}
	if err := p.send(conn, addr, wire.RequestGetConnection); err != nil {
		return wire.Frame{}, fmt.Errorf("send connection request: %w", err)
	}
	if err := p.send(conn, addr, wire.RequestGetControllerState); err != nil {
		return wire.Frame{}, fmt.Errorf("send state request: %w", err)
	}

	buf := make([]byte, wire.FrameSize)
	deadline := time.Now().Add(cfg.ReceiveTimeout)
	for {
		_ = conn.SetReadDeadline(deadline)
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return wire.Frame{}, ctx.Err()
			}
			return wire.Frame{}, fmt.Errorf("receive: %w", err)
		}
		rawLogger.Log(false, from.String(), buf[:n])
		if frame, ok := wire.DecodeResponse(buf[:n]); ok {
			return frame, nil
		}
	}
}

func open(cfg Config) (*net.UDPConn, *net.UDPAddr, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve provider: %w", err)
	}
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open socket: %w", err)
	}
	return conn, addr, nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
