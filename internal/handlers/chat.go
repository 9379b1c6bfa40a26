package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type CreateDirectRoomRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type PostMessageRequest struct {
	Type    string `json:"type"`
	Content string `json:"content" binding:"required"`
}

type MarkReadRequest struct {
	MessageID uint `json:"message_id" binding:"required"`
}

func (h *ChatHandler) CreateDirectRoom(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body CreateDirectRoomRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	room, err := h.chat.CreateDirectRoom(ctx.Request.Context(), userID, body.UserID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, room)
}

func (h *ChatHandler) CreateGroupRoom(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	groupID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	room, err := h.chat.CreateGroupRoom(ctx.Request.Context(), groupID, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, room)
}

func (h *ChatHandler) ListRooms(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	rooms, total, err := h.chat.ListRooms(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: rooms, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *ChatHandler) PostMessage(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	roomID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body PostMessageRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	message, err := h.chat.PostMessage(ctx.Request.Context(), roomID, userID, body.Type, body.Content)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, message)
}

func (h *ChatHandler) ListMessages(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	roomID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	messages, total, err := h.chat.ListMessages(ctx.Request.Context(), roomID, userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: messages, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *ChatHandler) MarkRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	roomID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body MarkReadRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	if err := h.chat.MarkRead(ctx.Request.Context(), roomID, userID, body.MessageID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Messages marked as read")
}
