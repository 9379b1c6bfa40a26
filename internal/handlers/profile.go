package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	uploader *utils.Uploader
}

func NewProfileHandler(profiles *services.ProfileService, uploader *utils.Uploader) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, uploader: uploader}
}

type UpdateProfileRequest struct {
	Bio              *string `json:"bio"`
	Timezone         *string `json:"timezone"`
	DailyGoalMinutes *int    `json:"daily_goal_minutes"`
}

func (h *ProfileHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	profile, err := h.profiles.Get(ctx.Request.Context(), userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, profile)
}

func (h *ProfileHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	profile, err := h.profiles.Update(ctx.Request.Context(), userID, services.UpdateProfileInput{
		Bio:              body.Bio,
		Timezone:         body.Timezone,
		DailyGoalMinutes: body.DailyGoalMinutes,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, profile)
}

// UploadAvatar stores the image and points the profile at it.
func (h *ProfileHandler) UploadAvatar(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		utils.RespondValidation(ctx, "Avatar file is required")
		return
	}

	storedPath, err := h.uploader.Save("profile", file)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	profile, err := h.profiles.Update(ctx.Request.Context(), userID, services.UpdateProfileInput{
		AvatarPath: &storedPath,
	})
	if err != nil {
		_ = h.uploader.Remove(storedPath)
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, profile)
}
