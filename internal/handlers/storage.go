package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type StorageHandler struct {
	storage *services.StorageService
}

func NewStorageHandler(storage *services.StorageService) *StorageHandler {
	return &StorageHandler{storage: storage}
}

type UpdateStorageRequest struct {
	Provider  *string `json:"provider"`
	BucketURL *string `json:"bucket_url"`
}

func (h *StorageHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	setting, err := h.storage.GetSettings(ctx.Request.Context(), userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, setting)
}

func (h *StorageHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body UpdateStorageRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	setting, err := h.storage.UpdateSettings(ctx.Request.Context(), userID, services.UpdateStorageInput{
		Provider:  body.Provider,
		BucketURL: body.BucketURL,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, setting)
}

func (h *StorageHandler) Usage(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	logs, total, err := h.storage.ListUsage(ctx.Request.Context(), userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: logs, Total: total, Page: page.Page, Limit: page.Limit})
}
