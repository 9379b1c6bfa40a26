package chat

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/studyhive-dev/studyhive/internal/models"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()

	connA := &websocket.Conn{}
	connB := &websocket.Conn{}

	hub.Register(1, connA)
	hub.Register(1, connB)
	hub.Register(2, connA)

	assert.Len(t, hub.rooms[1], 2)
	assert.Len(t, hub.rooms[2], 1)

	hub.Unregister(1, connA)
	assert.Len(t, hub.rooms[1], 1)

	// Last connection out removes the room entry entirely.
	hub.Unregister(1, connB)
	_, exists := hub.rooms[1]
	assert.False(t, exists)
}

func TestHubUnregisterUnknownRoom(t *testing.T) {
	hub := NewHub()

	// No-op, must not panic.
	hub.Unregister(42, &websocket.Conn{})
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()

	// Nothing registered: broadcast must return without touching any conn.
	hub.BroadcastMessage(1, &models.ChatMessage{RoomID: 1, Content: "hello"})
}
