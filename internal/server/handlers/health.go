package handlers

import (
	"net/http"
	"time"
)

// Healthz reports liveness: the process is up and serving.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondJson(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Readyz reports readiness. A wash job cannot be admitted without the
// database, so readiness pings it and includes the round trip time.
func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.store.Ping(r.Context()); err != nil {
		h.httpError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	h.respondJson(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"db_ms":  time.Since(start).Milliseconds(),
	})
}
