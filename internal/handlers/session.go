package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type CreateSessionRequest struct {
	Subject     string    `json:"subject" binding:"required"`
	StartedAt   time.Time `json:"started_at" binding:"required"`
	EndedAt     time.Time `json:"ended_at" binding:"required"`
	FocusRating int       `json:"focus_rating"`
	Note        string    `json:"note"`
}

type UpdateSessionRequest struct {
	Subject     *string `json:"subject"`
	FocusRating *int    `json:"focus_rating"`
	Note        *string `json:"note"`
}

func (h *SessionHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body CreateSessionRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	session, err := h.sessions.Create(ctx.Request.Context(), userID, services.CreateSessionInput{
		Subject:     body.Subject,
		StartedAt:   body.StartedAt,
		EndedAt:     body.EndedAt,
		FocusRating: body.FocusRating,
		Note:        body.Note,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, session)
}

func (h *SessionHandler) Get(ctx *gin.Context) {
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

	session, err := h.sessions.Get(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, session)
}

func (h *SessionHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)
	filters := services.SessionFilters{Subject: ctx.Query("subject")}

	if raw := ctx.Query("from"); raw != "" {
		if from, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.From = &from
		}
	}

	if raw := ctx.Query("to"); raw != "" {
		if to, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.To = &to
		}
	}

	sessions, total, err := h.sessions.List(ctx.Request.Context(), userID, filters, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: sessions, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *SessionHandler) Update(ctx *gin.Context) {
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

	var body UpdateSessionRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	session, err := h.sessions.Update(ctx.Request.Context(), id, userID, services.UpdateSessionInput{
		Subject:     body.Subject,
		FocusRating: body.FocusRating,
		Note:        body.Note,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, session)
}

func (h *SessionHandler) Delete(ctx *gin.Context) {
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

	if err := h.sessions.Delete(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Study session deleted successfully")
}
