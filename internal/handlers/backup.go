package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type BackupHandler struct {
	backups *services.BackupService
}

func NewBackupHandler(backups *services.BackupService) *BackupHandler {
	return &BackupHandler{backups: backups}
}

func (h *BackupHandler) Create(ctx *gin.Context) {
	record, err := h.backups.Create(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, record)
}

func (h *BackupHandler) List(ctx *gin.Context) {
	page := utils.ParsePage(ctx)

	backups, total, err := h.backups.List(ctx.Request.Context(), page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: backups, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *BackupHandler) Restore(ctx *gin.Context) {
	record, err := h.backups.RestoreLatest(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, record)
}

func (h *BackupHandler) Delete(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.backups.Delete(ctx.Request.Context(), id); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Backup deleted")
}
