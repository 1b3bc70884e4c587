package http

import (
	"sync"

	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// Hub fans update events out to the connected live reload clients.
// A client whose buffer is full is dropped: its channel is closed and
// its write pump hangs up.
type Hub struct {
	mu      sync.Mutex
	clients map[string]chan ports.UpdateEvent
	closed  bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]chan ports.UpdateEvent)}
}

// Join registers a client channel. After Close it closes send and returns false.
func (h *Hub) Join(id string, send chan ports.UpdateEvent) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(send)
		return false
	}
	h.clients[id] = send
	return true
}

// Leave removes a client and closes its channel; unknown ids are ignored
func (h *Hub) Leave(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(id)
}

// Publish queues event for every client and returns how many received it
func (h *Hub) Publish(event ports.UpdateEvent) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for id, send := range h.clients {
		select {
		case send <- event:
			delivered++
		default:
			h.drop(id)
		}
	}
	return delivered
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client; later joins are refused
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id := range h.clients {
		h.drop(id)
	}
}

// drop must be called with mu held
func (h *Hub) drop(id string) {
	if send, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(send)
	}
}
