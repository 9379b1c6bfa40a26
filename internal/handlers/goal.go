package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type GoalHandler struct {
	goals *services.GoalService
}

func NewGoalHandler(goals *services.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

type CreateGoalRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Progress    *int    `json:"progress"`
	Status      *string `json:"status"`
}

func (h *GoalHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body CreateGoalRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	goal, err := h.goals.Create(ctx.Request.Context(), userID, services.CreateGoalInput{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, goal)
}

func (h *GoalHandler) Get(ctx *gin.Context) {
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

	goal, err := h.goals.Get(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, goal)
}

func (h *GoalHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	goals, total, err := h.goals.List(ctx.Request.Context(), userID, services.GoalFilters{
		Category: ctx.Query("category"),
		Status:   ctx.Query("status"),
		Search:   ctx.Query("search"),
	}, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: goals, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *GoalHandler) Update(ctx *gin.Context) {
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

	var body UpdateGoalRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	goal, err := h.goals.Update(ctx.Request.Context(), id, userID, services.UpdateGoalInput{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Progress:    body.Progress,
		Status:      body.Status,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, goal)
}

func (h *GoalHandler) Delete(ctx *gin.Context) {
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

	if err := h.goals.Delete(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Goal deleted successfully")
}
