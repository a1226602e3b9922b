// Package api provides a read-only HTTP view of a running replica.
// Handlers serve the most recently published snapshot, never live
// engine state, so the tick loop stays single-threaded.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/talgya/contagion/internal/engine"
)

// Server serves the latest snapshot over HTTP.
type Server struct {
	Port int

	mu     sync.RWMutex
	latest engine.Snapshot
	ready  bool
}

// Publish makes a snapshot visible to HTTP clients. Called by the run
// loop after each tick.
func (s *Server) Publish(snap engine.Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.ready = true
	s.mu.Unlock()
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) snapshot() (engine.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ready
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{
		"tick":       snap.Tick,
		"timestamp":  snap.Timestamp,
		"population": snap.Population,
		"level":      snap.Level,
		"counts":     snap.Counts(),
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{
		"tick":   snap.Tick,
		"agents": snap.Agents,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
