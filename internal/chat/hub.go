package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/studyhive-dev/studyhive/internal/models"
)

const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 4096
)

// Hub tracks websocket connections per chat room. It is the only shared
// mutable state outside the connection pool and is guarded by its own lock.
type Hub struct {
	rooms map[uint]map[*websocket.Conn]bool
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(roomID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true
}

func (h *Hub) Unregister(roomID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, exists := h.rooms[roomID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

type wsEvent struct {
	Type    string              `json:"type"`
	RoomID  uint                `json:"room_id"`
	Message *models.ChatMessage `json:"message,omitempty"`
}

// BroadcastMessage pushes a persisted message to every connection in the
// room. Dead connections are dropped on write failure.
func (h *Hub) BroadcastMessage(roomID uint, message *models.ChatMessage) {
	h.mu.RLock()
	conns, exists := h.rooms[roomID]
	if !exists || len(conns) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held during writes.
	connsCopy := make([]*websocket.Conn, 0, len(conns))
	for conn := range conns {
		connsCopy = append(connsCopy, conn)
	}
	h.mu.RUnlock()

	event := wsEvent{Type: "message", RoomID: roomID, Message: message}

	for _, conn := range connsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
			log.WithError(err).Debug("failed to set write deadline for broadcast")
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			log.WithError(err).Debug("failed to broadcast chat message")
			h.Unregister(roomID, conn)
			conn.Close()
		}
	}
}
