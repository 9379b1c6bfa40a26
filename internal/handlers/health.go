package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-dev/studyhive/internal/utils"
)

func HealthCheck(c *gin.Context) {
	c.JSON(200, utils.Envelope{
		Success: true,
		Message: "StudyHive is running",
		Data:    gin.H{"timestamp": time.Now().Format(time.RFC3339)},
	})
}
