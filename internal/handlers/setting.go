package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type SettingHandler struct {
	settings *services.SettingService
}

func NewSettingHandler(settings *services.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

type UpdateSettingRequest struct {
	Theme              *string           `json:"theme"`
	Language           *string           `json:"language"`
	FontSize           *int              `json:"font_size"`
	NotifyFriends      *bool             `json:"notify_friends"`
	NotifyChat         *bool             `json:"notify_chat"`
	NotifyAchievements *bool             `json:"notify_achievements"`
	FocusMode          *models.FocusMode `json:"focus_mode"`
}

func (h *SettingHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	setting, err := h.settings.Get(ctx.Request.Context(), userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, setting)
}

func (h *SettingHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body UpdateSettingRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	setting, err := h.settings.Update(ctx.Request.Context(), userID, services.UpdateSettingInput{
		Theme:              body.Theme,
		Language:           body.Language,
		FontSize:           body.FontSize,
		NotifyFriends:      body.NotifyFriends,
		NotifyChat:         body.NotifyChat,
		NotifyAchievements: body.NotifyAchievements,
		FocusMode:          body.FocusMode,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, setting)
}
