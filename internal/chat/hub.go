package chat

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/gofiber/contrib/websocket"
)

// session is the subset of a websocket connection the hub needs. Kept
// as an interface so the fan-out logic is testable without sockets.
type session interface {
	WriteMessage(messageType int, data []byte) error
}

// Hub owns the registry of connected chat clients and fans events out
// to all of them. It is constructed once at process start and torn down
// at shutdown; it holds no message state of its own, the persisted chat
// log is the single source of truth.
type Hub struct {
	mu       sync.Mutex
	sessions map[session]struct{}
	closed   bool
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[session]struct{})}
}

func (h *Hub) Register(s session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.sessions[s] = struct{}{}
}

func (h *Hub) Unregister(s session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s)
}

// Broadcast sends a chat_message event to every connected client.
// Sessions whose write fails are dropped from the registry.
func (h *Hub) Broadcast(evt dto.ChatEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Error("chat event marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.sessions {
		if err := s.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.sessions, s)
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close empties the registry and rejects further registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.sessions = make(map[session]struct{})
}
