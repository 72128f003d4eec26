package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Honkonx/wine-mice/controller"
	"github.com/Honkonx/wine-mice/internal/log"
	"github.com/Honkonx/wine-mice/internal/monitor"
	"github.com/Honkonx/wine-mice/internal/poller"
	"github.com/Honkonx/wine-mice/joystick"
)

type Monitor struct {
	Addr string `help:"Monitor HTTP/websocket listen address (empty = disabled)" env:"MICEWINE_MONITOR_ADDR"`
}

type Run struct {
	Provider poller.Config `embed:"" prefix:"provider."`
	Monitor  Monitor       `embed:"" prefix:"monitor."`
}

// Validate is called by Kong after parsing.
func (r *Run) Validate() error { return r.Provider.Validate() }

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.run(ctx, logger, rawLogger)
}

func (r *Run) run(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	reg := controller.NewRegistry()
	p := poller.New(r.Provider, reg, logger, rawLogger)
	svc := joystick.NewService(reg, p, logger)

	logger.Info("Starting MiceWine joystick bridge", "provider", r.Provider.Host, "port", r.Provider.Port)

	g, ctx := errgroup.WithContext(ctx)
	p.Start(ctx)
	g.Go(func() error {
		select {
		case <-p.Done():
		case <-ctx.Done():
			return nil
		}
		// Setup failures only end the worker; the monitor keeps serving
		// the disconnected slots until shutdown.
		if err := p.Err(); err != nil {
			logger.Warn("running without provider", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		reportDevices(ctx, svc, logger)
		return nil
	})
	if r.Monitor.Addr != "" {
		srv := monitor.New(r.Monitor.Addr, reg, logger)
		g.Go(func() error { return srv.Run(ctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("Shutting down")
	return err
}

// reportDevices logs the devices visible after the first poll cycle.
func reportDevices(ctx context.Context, svc *joystick.Service, logger *slog.Logger) {
	for i := range controller.MaxSlots {
		inst, err := svc.EnumerateDevice(ctx, i)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		logger.Info("device available", "slot", i, "name", inst.InstanceName, "guid", inst.InstanceGUID.String())
	}
	logger.Info("provider ready", "connected", svc.ConnectedCount())
}
