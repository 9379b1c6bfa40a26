package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/chat"
	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/types"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type ChatSocketHandler struct {
	hub  *chat.Hub
	chat *services.ChatService
}

func NewChatSocketHandler(hub *chat.Hub, chatService *services.ChatService) *ChatSocketHandler {
	return &ChatSocketHandler{hub: hub, chat: chatService}
}

// Connect upgrades the request to a websocket and subscribes the caller to
// the room's message stream. Only room participants may connect.
func (h *ChatSocketHandler) Connect(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	roomID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ok, err := h.chat.IsParticipant(ctx.Request.Context(), roomID, user.ID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	if !ok {
		utils.RespondError(ctx, apperrors.NotFound("Chat room not found"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	conn.SetReadLimit(chat.MaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(chat.PongWait)); err != nil {
		log.WithError(err).Warn("failed to set initial read deadline")
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chat.PongWait))
	})

	h.hub.Register(roomID, conn)

	defer func() {
		h.hub.Unregister(roomID, conn)
		conn.Close()
		log.WithFields(log.Fields{"room_id": roomID, "user_id": user.ID}).Debug("chat connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(chat.WriteWait)); err != nil {
		return
	}

	err = conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"room_id": roomID,
	})
	if err != nil {
		log.WithError(err).Debug("failed to send welcome message")
		return
	}

	ticker := time.NewTicker(chat.PingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(chat.WriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	// The read loop only keeps the connection alive; clients post messages
	// over the REST endpoint so persistence and fan-out stay in one path.
	for {
		if err := conn.SetReadDeadline(time.Now().Add(chat.PongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).WithField("room_id", roomID).Debug("websocket read error")
			}
			break
		}
	}
}
