package api

import (
	"log/slog"
	"net/http"
	"time"
)

// NewServer creates and configures the HTTP server.
func NewServer(addr string, h *ResolveHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/resolve", h.HandleResolve)
	mux.HandleFunc("GET /api/resolve/coarse", h.HandleCoarse)

	return &http.Server{
		Addr:              addr,
		Handler:           withRequestID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}
