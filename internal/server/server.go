// Package server provides the HTTP server for the gestify daemon: health,
// the MJPEG camera stream, the event log API, action binding management, and
// the live gesture event WebSocket.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ranjeetds/gestify/internal/capture"
	"github.com/ranjeetds/gestify/internal/server/api"
	"github.com/ranjeetds/gestify/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Hub       *Hub

	// OnBindingsChange is called after a binding mutation so the running
	// dispatcher can reload its table.
	OnBindingsChange func()
}

// Server represents the HTTP server for the gestify daemon.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		eventsHandler := api.NewEventsHandler(s.config.Store)
		s.mux.Handle("/api/events", eventsHandler)

		bindingsHandler := api.NewBindingsHandler(s.config.Store)
		bindingsHandler.OnChange = s.config.OnBindingsChange
		s.mux.Handle("/api/bindings", bindingsHandler)
		s.mux.Handle("/api/bindings/", bindingsHandler)
	}

	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	if s.config.Hub != nil {
		s.mux.Handle("/ws/events", s.config.Hub)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
