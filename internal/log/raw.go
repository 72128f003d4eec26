package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps datagrams exchanged with the provider.
type RawLogger interface {
	// Log records one datagram. outbound is true for datagrams sent by us.
	Log(outbound bool, peer string, data []byte)
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewRaw returns a RawLogger writing hex dumps to w. A nil w discards
// everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w}
}

func (l *rawLogger) Log(outbound bool, peer string, data []byte) {
	dir := "<-"
	if outbound {
		dir = "->"
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s %s %d bytes\n%s",
		time.Now().Format("15:04:05.000000"), dir, peer, len(data), hex.Dump(data))
}

type nopRaw struct{}

func (nopRaw) Log(bool, string, []byte) {}
