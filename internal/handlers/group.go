package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type GroupHandler struct {
	groups *services.GroupService
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Capacity    int    `json:"capacity"`
	Visibility  string `json:"visibility"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Capacity    *int    `json:"capacity"`
	Visibility  *string `json:"visibility"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *GroupHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body CreateGroupRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	group, err := h.groups.Create(ctx.Request.Context(), userID, services.CreateGroupInput{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		Capacity:    body.Capacity,
		Visibility:  body.Visibility,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, group)
}

func (h *GroupHandler) Get(ctx *gin.Context) {
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

	group, err := h.groups.Get(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, group)
}

func (h *GroupHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	page := utils.ParsePage(ctx)

	groups, total, err := h.groups.List(ctx.Request.Context(), userID, services.GroupFilters{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: groups, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *GroupHandler) Update(ctx *gin.Context) {
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

	var body UpdateGroupRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	group, err := h.groups.Update(ctx.Request.Context(), id, userID, services.UpdateGroupInput{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		Capacity:    body.Capacity,
		Visibility:  body.Visibility,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, group)
}

func (h *GroupHandler) Delete(ctx *gin.Context) {
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

	if err := h.groups.Delete(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Group deleted successfully")
}

func (h *GroupHandler) Join(ctx *gin.Context) {
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

	member, err := h.groups.Join(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondCreated(ctx, member)
}

func (h *GroupHandler) Leave(ctx *gin.Context) {
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

	if err := h.groups.Leave(ctx.Request.Context(), id, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Left the group")
}

func (h *GroupHandler) Members(ctx *gin.Context) {
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

	page := utils.ParsePage(ctx)

	members, total, err := h.groups.Members(ctx.Request.Context(), id, userID, page)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondOK(ctx, utils.PageResult{Items: members, Total: total, Page: page.Page, Limit: page.Limit})
}

func (h *GroupHandler) SetRole(ctx *gin.Context) {
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

	memberUserID, err := utils.ParseIDParam(ctx, "user_id")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var body SetRoleRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.RespondValidation(ctx, "Invalid request")
		return
	}

	if err := h.groups.SetRole(ctx.Request.Context(), id, userID, memberUserID, body.Role); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.RespondMessage(ctx, "Role updated")
}
