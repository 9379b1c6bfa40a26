package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type MentorshipHandler struct {
	mentorships *services.MentorshipService
}

func NewMentorshipHandler(mentorships *services.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{mentorships: mentorships}
}

type MentorshipRequest struct {
	MentorID uint   `json:"mentor_id" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
}

func (h *MentorshipHandler) Request(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body MentorshipRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	mentorship, err := h.mentorships.Request(ctx.Request.Context(), userID, body.MentorID, body.Subject)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, mentorship)
}

func (h *MentorshipHandler) Accept(ctx *gin.Context) {
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

	mentorship, err := h.mentorships.Accept(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, mentorship)
}

func (h *MentorshipHandler) Decline(ctx *gin.Context) {
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

	if err := h.mentorships.Decline(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Mentorship request declined")
}

func (h *MentorshipHandler) End(ctx *gin.Context) {
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

	if err := h.mentorships.End(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Mentorship ended")
}

func (h *MentorshipHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	mentorships, total, err := h.mentorships.List(ctx.Request.Context(), userID, ctx.Query("role"), ctx.Query("status"), page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: mentorships, Total: total, Page: page.Page, Limit: page.Limit})
}
