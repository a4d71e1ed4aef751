// Package server provides the HTTP server for the Rangoli air drawing system.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/rangoli/internal/pipeline"
	"github.com/ayusman/rangoli/internal/server/api"
	"github.com/ayusman/rangoli/internal/store"
)

// Source exposes the pipeline output the server publishes. The app
// owns the camera and pipeline; the server only reads its snapshots.
type Source interface {
	// LastJPEG returns the most recent composited frame encoded as
	// JPEG, or nil when no frame has been processed yet.
	LastJPEG() []byte
	// Snapshot returns the most recent pipeline frame state.
	Snapshot() pipeline.Frame
	// Enabled reports whether interpretation is currently running.
	Enabled() bool
	// ClearCanvas erases all strokes.
	ClearCanvas()
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Source    Source
}

// Server represents the HTTP server for the Rangoli application.
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
		samplesHandler := api.NewSamplesHandler(s.config.Store)
		s.mux.Handle("/api/samples", samplesHandler)
		s.mux.Handle("/api/samples/", samplesHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings/", settingsHandler)
	}

	if s.config.Source != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/canvas/clear", s.handleClear)
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Source))
		s.mux.Handle("/api/ws", NewStateHandler(s.config.Source))
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
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"enabled": s.config.Source.Enabled(),
		"frame":   s.config.Source.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleClear handles POST requests to /api/canvas/clear.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.config.Source.ClearCanvas()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
