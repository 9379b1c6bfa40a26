package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

// Envelope is the uniform response wrapper: {success, message?, data?}.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func RespondCreated(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func RespondMessage(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// RespondError normalizes err to the taxonomy and writes the envelope.
// Unexpected errors become a 500 with a generic message; the detail only
// goes to the log, never to the client.
func RespondError(ctx *gin.Context, err error) {
	appErr := apperrors.From(err)

	if appErr.Status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", ctx.FullPath()).Error("request failed")
	}

	ctx.JSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}

func RespondValidation(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}
