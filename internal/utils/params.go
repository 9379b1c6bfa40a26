package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

// ParseIDParam reads a numeric path parameter, rejecting non-positive and
// non-numeric values before they reach a query.
func ParseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid " + name)
	}

	return uint(id), nil
}
