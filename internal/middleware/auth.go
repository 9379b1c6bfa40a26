package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func AuthMiddleware(tokens *auth.Manager, gormDB *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		userID, err := tokens.VerifyAccessToken(parts[1])

		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abortUnauthorized(ctx, "Token has expired")
				return
			}
			abortUnauthorized(ctx, "Invalid token")
			return
		}

		var user models.User

		err = gormDB.WithContext(ctx.Request.Context()).
			Where("id = ? AND status <> ?", userID, types.UserStatusSuspended).
			First(&user).Error

		if err != nil {
			abortUnauthorized(ctx, "User not found")
			return
		}

		ctx.Set(types.ContextUserKey, types.AuthenticatedUser{
			ID:       user.ID,
			Nickname: user.Nickname,
			Email:    user.Email,
		})
		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
		Success: false,
		Message: message,
	})
}
