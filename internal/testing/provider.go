package testing

import (
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/Honkonx/wine-mice/wire"
)

// Provider is a fake gamepad provider answering state requests with a
// configurable frame.
type Provider struct {
	conn *net.UDPConn

	mu       sync.Mutex
	frame    wire.Frame
	silent   bool
	requests map[wire.RequestKind]int

	done chan struct{}
}

// StartProvider listens on a free loopback port. The provider is closed when
// the test ends.
func StartProvider(t *testing.T) *Provider {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	p := &Provider{
		conn:     conn,
		requests: make(map[wire.RequestKind]int),
		done:     make(chan struct{}),
	}
	go p.serve()
	t.Cleanup(p.Close)
	return p
}

// Host returns the address the provider listens on.
func (p *Provider) Host() string { return "127.0.0.1" }

// Port returns the provider's UDP port.
func (p *Provider) Port() int { return p.conn.LocalAddr().(*net.UDPAddr).Port }

// SetFrame replaces the frame sent in every following response.
func (p *Provider) SetFrame(f wire.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = f
}

// SetSlot replaces one slot of the current frame.
func (p *Provider) SetSlot(i int, in wire.RawInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame[i] = in.Record()
}

// SetSilent makes the provider swallow requests without answering.
func (p *Provider) SetSilent(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.silent = v
}

// Requests returns how many requests of kind were received.
func (p *Provider) Requests(kind wire.RequestKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[kind]
}

// Close stops the provider.
func (p *Provider) Close() {
	_ = p.conn.Close()
	<-p.done
}

func (p *Provider) serve() {
	defer close(p.done)
	buf := make([]byte, wire.FrameSize)
	for {
		n, from, err := p.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		if n == 0 {
			continue
		}
		kind := wire.RequestKind(buf[0])

		p.mu.Lock()
		p.requests[kind]++
		silent := p.silent
		frame := p.frame
		p.mu.Unlock()

		if silent || kind != wire.RequestGetControllerState {
			continue
		}
		_, _ = p.conn.WriteToUDP(wire.EncodeResponse(frame), from)
	}
}
