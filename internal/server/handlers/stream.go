package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"washplane/internal/server/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from arbitrary origins in self-hosted
	// deployments; authentication happens via the API key, not the origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamJobs handles GET /ws/jobs.
// Upgrades to a websocket and registers the client on the job board; the
// client then receives every job event for its business.
func (h *Handlers) StreamJobs(w http.ResponseWriter, r *http.Request) {
	business, ok := middleware.BusinessFromContext(r.Context())
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if h.hub == nil {
		h.httpError(w, "Streaming not enabled", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		return
	}

	// The hijacked connection still carries the server's per-request
	// read/write deadlines; clear them or the client is dropped once
	// they fire.
	conn.UnderlyingConn().SetDeadline(time.Time{})

	h.hub.Add(conn, business.ID)
}
