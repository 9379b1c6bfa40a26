package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type ExperienceHandler struct {
	experience *services.ExperienceService
}

func NewExperienceHandler(experience *services.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{experience: experience}
}

type GrantExperienceRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

func (h *ExperienceHandler) Grant(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body GrantExperienceRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	if err := h.experience.Grant(ctx.Request.Context(), userID, body.Amount, body.Reason); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Experience granted")
}

func (h *ExperienceHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	logs, total, err := h.experience.List(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: logs, Total: total, Page: page.Page, Limit: page.Limit})
}
