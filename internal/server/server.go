// Package server exposes the upload/job/download HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rcwtools/paintsum/internal/storage"
	"github.com/rcwtools/paintsum/internal/worker"
)

const serviceName = "paintsum"

// Config carries the server's runtime settings.
type Config struct {
	UploadDir  string
	OutputDir  string
	Version    string
	GasRigRate float64
}

// Server handles the HTTP API backed by the job store and worker pool.
type Server struct {
	store *storage.Store
	pool  *worker.Pool
	cfg   Config
}

// New builds a Server.
func New(store *storage.Store, pool *worker.Pool, cfg Config) *Server {
	return &Server{store: store, pool: pool, cfg: cfg}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/uploads", s.handleUpload)
	mux.HandleFunc("GET /api/v1/jobs/{id}", s.handleJobStatus)
	mux.HandleFunc("GET /api/v1/jobs/{id}/download", s.handleDownload)
	mux.HandleFunc("POST /api/v1/gas-rig/process", s.handleGasRig)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": s.cfg.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
