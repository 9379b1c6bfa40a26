package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type FriendHandler struct {
	friends *services.FriendService
}

func NewFriendHandler(friends *services.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

type SendFriendRequestBody struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *FriendHandler) SendRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body SendFriendRequestBody

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	friend, err := h.friends.SendRequest(ctx.Request.Context(), userID, body.UserID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, friend)
}

func (h *FriendHandler) Accept(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	friend, err := h.friends.Accept(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, friend)
}

func (h *FriendHandler) Reject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.friends.Reject(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Friend request rejected")
}

func (h *FriendHandler) Unfriend(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	friendUserID, err := utils.ParseIDParam(ctx, "user_id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.friends.Unfriend(ctx.Request.Context(), userID, friendUserID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Friend removed")
}

func (h *FriendHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	friends, total, err := h.friends.List(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: friends, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *FriendHandler) ListPending(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	requests, total, err := h.friends.ListPending(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: requests, Total: total, Page: page.Page, Limit: page.Limit})
}
