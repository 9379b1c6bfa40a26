package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type MaterialHandler struct {
	materials *services.MaterialService
	storage   *services.StorageService
	uploader  *utils.Uploader
}

func NewMaterialHandler(materials *services.MaterialService, storage *services.StorageService, uploader *utils.Uploader) *MaterialHandler {
	return &MaterialHandler{materials: materials, storage: storage, uploader: uploader}
}

type UpdateMaterialRequest struct {
	Title      *string `json:"title"`
	Category   *string `json:"category"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
	Rating     *int    `json:"rating"`
}

// Create accepts multipart form data so the material's optional file rides
// in the same request as its fields.
func (h *MaterialHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		utils.RespondValidation(ctx, "Title is required")
		return
	}

	input := services.CreateMaterialInput{
		Title:      title,
		Category:   ctx.PostForm("category"),
		Content:    ctx.PostForm("content"),
		Visibility: ctx.PostForm("visibility"),
	}

	if file, err := ctx.FormFile("file"); err == nil {
		if err := h.storage.CheckQuota(ctx.Request.Context(), userID, file.Size); err != nil {
			utils.RespondError(ctx, err)
			return
		}

		storedPath, err := h.uploader.Save("material", file)
		if err != nil {
			utils.RespondError(ctx, err)
			return
		}

		input.FilePath = storedPath
		input.FileSize = file.Size
	}

	material, err := h.materials.Create(ctx.Request.Context(), userID, input)
	if err != nil {
		if input.FilePath != "" {
			_ = h.uploader.Remove(input.FilePath)
		}
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, material)
}

func (h *MaterialHandler) Get(ctx *gin.Context) {
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

	material, err := h.materials.Get(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, material)
}

func (h *MaterialHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	materials, total, err := h.materials.List(ctx.Request.Context(), userID, services.MaterialFilters{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: materials, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *MaterialHandler) Update(ctx *gin.Context) {
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

	var body UpdateMaterialRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	material, err := h.materials.Update(ctx.Request.Context(), id, userID, services.UpdateMaterialInput{
		Title:      body.Title,
		Category:   body.Category,
		Content:    body.Content,
		Visibility: body.Visibility,
		Rating:     body.Rating,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, material)
}

func (h *MaterialHandler) Delete(ctx *gin.Context) {
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

	if err := h.materials.Delete(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Material deleted successfully")
}
