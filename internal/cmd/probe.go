package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Honkonx/wine-mice/internal/log"
	"github.com/Honkonx/wine-mice/internal/monitor"
	"github.com/Honkonx/wine-mice/internal/poller"
	"github.com/Honkonx/wine-mice/wire"
)

type Probe struct {
	Provider poller.Config `embed:"" prefix:"provider."`
}

// Validate is called by Kong after parsing.
func (p *Probe) Validate() error { return p.Provider.Validate() }

// Run is called by Kong when the probe command is executed.
func (p *Probe) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("probing provider", "host", p.Provider.Host, "port", p.Provider.Port)
	frame, err := poller.Probe(ctx, p.Provider, rawLogger)
	if err != nil {
		return fmt.Errorf("probe %s:%d: %w", p.Provider.Host, p.Provider.Port, err)
	}
	renderFrame(os.Stdout, frame, newStyles(log.IsTerminal(os.Stdout)))
	return nil
}

func renderFrame(w io.Writer, frame wire.Frame, s styles) {
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%-4s  %-12s  %-13s  %-13s  %-7s  %s",
		"slot", "status", "left", "right", "trigg", "pressed")))
	for i, rec := range frame {
		if !rec.Present() {
			fmt.Fprintf(w, "%-4d  %s\n", i, s.disconnected.Render("disconnected"))
			continue
		}
		st := wire.DecodeRecord(rec)
		fmt.Fprintf(w, "%-4d  %s  %s  %s  %s  %s\n", i,
			s.connected.Render(fmt.Sprintf("%-12s", "connected")),
			s.value.Render(fmt.Sprintf("%6d,%6d", st.LeftX, st.LeftY)),
			s.value.Render(fmt.Sprintf("%6d,%6d", st.RightX, st.RightY)),
			s.value.Render(fmt.Sprintf("%3d,%3d", st.LeftTrigger, st.RightTrigger)),
			s.pressed.Render(strings.Join(monitor.PressedNames(st.Buttons), " ")))
	}
}
