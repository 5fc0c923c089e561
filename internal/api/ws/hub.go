package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a connection with a write lock. gorilla/websocket allows
// only one concurrent writer, and broadcasts race against direct replies.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(data)
}

// Hub tracks connected clients and fans deck updates out to all of
// them, so every open client sees the same card state.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{} // Protected by mu
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every connected client. Write failures
// are ignored here; the failing client's read loop tears it down.
func (h *Hub) Broadcast(data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		_ = c.write(data)
	}
}
