package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/types"
)

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePage reads ?page= and ?limit= with defaults and a hard cap.
func ParsePage(ctx *gin.Context) Page {
	page := types.DefaultPage
	limit := types.DefaultPageSize

	if raw := ctx.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if limit > types.MaxPageSize {
		limit = types.MaxPageSize
	}

	return Page{Page: page, Limit: limit}
}

// PageResult carries one page of records plus the total count so clients can
// paginate. Ordering is created_at DESC, id DESC for a stable tiebreak.
type PageResult struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}
