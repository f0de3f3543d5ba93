// Package diag exposes an optional localhost diagnostics listener: health,
// Prometheus metrics, and the manual data-integrity check. The core itself
// has no network surface; this exists for operators poking at a store.
package diag

import (
	"encoding/json"
	"net/http"

	"jyambere.org/internal/obs"
	"jyambere.org/internal/report"
)

// Server wires the diagnostics endpoints.
type Server struct {
	repo *report.Repository
}

// New constructs a diagnostics server over the given repository.
func New(repo *report.Repository) *Server {
	return &Server{repo: repo}
}

// Handler returns the wrapped diagnostics mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", obs.Handler())
	mux.HandleFunc("/integrity", s.handleIntegrity)

	var h http.Handler = mux
	h = RateLimit(h, 10, 5)
	h = Logging(h)
	return h
}

func (s *Server) handleIntegrity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	out, err := s.repo.VerifyIntegrity(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
