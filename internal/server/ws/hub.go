// Package ws broadcasts job events to connected dashboard clients.
package ws

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Conn is the subset of *websocket.Conn the hub needs.
type Conn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Hub tracks connected clients per business and fans job events out to them.
// Events are scoped: a client only sees its own business's jobs.
type Hub struct {
	mu      sync.Mutex
	clients map[Conn]uuid.UUID
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[Conn]uuid.UUID),
		log:     log,
	}
}

// Add registers a client for a business and starts watching for disconnect.
func (h *Hub) Add(conn Conn, businessID uuid.UUID) {
	h.mu.Lock()
	h.clients[conn] = businessID
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Info("websocket client connected", "business_id", businessID, "clients", total)

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	total := len(h.clients)
	h.mu.Unlock()

	conn.Close()
	h.log.Info("websocket client disconnected", "clients", total)
}

// Broadcast sends the event to every client of the given business.
// Clients that fail to write are dropped.
func (h *Hub) Broadcast(businessID uuid.UUID, event interface{}) {
	h.mu.Lock()
	var failed []Conn
	for conn, id := range h.clients {
		if id != businessID {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.log.Warn("websocket write failed", "business_id", businessID, "error", err)
			failed = append(failed, conn)
		}
	}
	for _, conn := range failed {
		delete(h.clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range failed {
		conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
