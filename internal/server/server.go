// Package server exposes the odds engine to presentation-layer clients
// over WebSocket. Clients stream card/pot selections; the server streams
// back sequenced distribution and expected-value results.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-odds/internal/session"
)

// Server represents the WebSocket odds server
type Server struct {
	config      *Config
	refresh     time.Duration
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a new WebSocket server from a validated config
func NewServer(config *Config, logger *log.Logger) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	refresh, err := config.RefreshInterval()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		config:  config,
		refresh: refresh,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local tool; the UI client is served from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Start starts the WebSocket server and blocks serving requests
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.logger.Info("Starting WebSocket server", "addr", s.config.ListenAddress())
	return http.ListenAndServe(s.config.ListenAddress(), mux)
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// handleWebSocket upgrades HTTP connections to WebSocket and wires up a
// per-connection recomputer.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	recomputer := session.NewRecomputer(session.Config{
		Iterations:      s.config.Engine.Iterations,
		Cost:            s.config.Engine.Cost,
		RefreshInterval: s.refresh,
		Logger:          s.logger,
	})

	conn := NewConnection(ws, recomputer, s.logger)

	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	conn.Start()

	// Reap the connection entry once its context ends
	go func() {
		select {
		case <-conn.ctx.Done():
		case <-s.ctx.Done():
			_ = conn.Close()
		}
		s.mu.Lock()
		delete(s.connections, conn)
		remaining := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "total", remaining)
	}()
}

// handleHealth reports server liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
