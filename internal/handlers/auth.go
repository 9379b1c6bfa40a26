package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type RegisterRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateAccountRequest struct {
	Nickname        string `json:"nickname"`
	Email           string `json:"email" binding:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=8"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID         uint   `json:"id"`
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	user, tokens, err := h.users.Register(ctx.Request.Context(), services.RegisterInput{
		Nickname: body.Nickname,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, gin.H{
		"user": UserResponse{
			ID:         user.ID,
			Nickname:   user.Nickname,
			Email:      user.Email,
			Status:     user.Status,
			Level:      user.Level,
			Experience: user.Experience,
		},
		"tokens": tokens,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	user, tokens, err := h.users.Login(ctx.Request.Context(), body.Email, body.Password)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, gin.H{
		"user": UserResponse{
			ID:         user.ID,
			Nickname:   user.Nickname,
			Email:      user.Email,
			Status:     user.Status,
			Level:      user.Level,
			Experience: user.Experience,
		},
		"tokens": tokens,
	})
}

func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var body RefreshRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Refresh token is required")
		return
	}

	tokens, err := h.users.Refresh(ctx.Request.Context(), body.RefreshToken)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, gin.H{"tokens": tokens})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	if err := h.users.Logout(ctx.Request.Context(), userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Logged out successfully")
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := h.users.Get(ctx.Request.Context(), userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, gin.H{
		"user": UserResponse{
			ID:         user.ID,
			Nickname:   user.Nickname,
			Email:      user.Email,
			Status:     user.Status,
			Level:      user.Level,
			Experience: user.Experience,
		},
		"profile": user.Profile,
		"setting": user.Setting,
	})
}

func (h *AuthHandler) UpdateAccount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body UpdateAccountRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	user, err := h.users.UpdateAccount(ctx.Request.Context(), userID, services.UpdateAccountInput{
		Nickname:        body.Nickname,
		Email:           body.Email,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, UserResponse{
		ID:         user.ID,
		Nickname:   user.Nickname,
		Email:      user.Email,
		Status:     user.Status,
		Level:      user.Level,
		Experience: user.Experience,
	})
}

func (h *AuthHandler) DeleteAccount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body DeleteAccountRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Password is required for account deletion")
		return
	}

	if err := h.users.DeleteAccount(ctx.Request.Context(), userID, body.Password); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Account deleted successfully")
}
