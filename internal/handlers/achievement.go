package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type AchievementHandler struct {
	achievements *services.AchievementService
}

func NewAchievementHandler(achievements *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

type AddProgressRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *AchievementHandler) ListCatalog(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	achievements, total, err := h.achievements.ListCatalog(ctx.Request.Context(), userID, ctx.Query("category"), page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: achievements, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *AchievementHandler) ListMine(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	records, total, err := h.achievements.ListMine(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: records, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *AchievementHandler) AddProgress(ctx *gin.Context) {
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

	var body AddProgressRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	record, err := h.achievements.AddProgress(ctx.Request.Context(), userID, id, body.Delta)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, record)
}

func (h *AchievementHandler) Acquire(ctx *gin.Context) {
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

	record, err := h.achievements.Acquire(ctx.Request.Context(), userID, id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, record)
}

func (h *AchievementHandler) History(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	history, total, err := h.achievements.History(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: history, Total: total, Page: page.Page, Limit: page.Limit})
}
