// Package monitor serves a websocket feed of the controller slots for
// diagnostics: a full snapshot on connect, then one message per slot change.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Honkonx/wine-mice/apitypes"
	"github.com/Honkonx/wine-mice/controller"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local diagnostics only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Server is the monitor HTTP server.
type Server struct {
	addr   string
	reg    *controller.Registry
	logger *slog.Logger

	hub         *Hub
	broadcaster *Broadcaster
}

func New(addr string, reg *controller.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "monitor")
	hub := NewHub(logger)
	return &Server{
		addr:        addr,
		reg:         reg,
		logger:      logger,
		hub:         hub,
		broadcaster: NewBroadcaster(hub, reg, logger),
	}
}

// Hub returns the server's client hub.
func (s *Server) Hub() *Hub { return s.hub }

// Broadcaster returns the server's change forwarder.
func (s *Server) Broadcaster() *Broadcaster { return s.broadcaster }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.hub.Run(ctx)
	go s.broadcaster.Run(ctx)

	srv := &http.Server{
		Handler:           s.handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	s.logger.Info("monitor listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket(ctx))
	mux.HandleFunc("GET /slots", s.handleSlots)
	mux.HandleFunc("GET /ping", s.handlePing)
	return mux
}

func (s *Server) handleWebSocket(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		c := NewClient(s.hub, conn)
		s.broadcaster.SendInitial(c)
		s.hub.Register(ctx, c)
		if ctx.Err() != nil {
			_ = conn.Close()
			return
		}

		go c.WritePump()
		go c.ReadPump(ctx)
	}
}

func (s *Server) handleSlots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := apitypes.SlotsResponse{Ready: s.reg.Ready(), Slots: snapshotAll(s.reg)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("write slots response", "error", err)
	}
}

// handlePing answers with a minimal identity and liveness response.
func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := apitypes.PingResponse{Server: "MiceWine", Ready: s.reg.Ready(), Connected: s.reg.ConnectedCount()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("write ping response", "error", err)
	}
}
