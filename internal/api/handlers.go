package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/types"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "recipebox API is running",
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.ErrorResponse{Error: message})
}

// errorMessage returns the collaborator's message, or fallback when there is none
func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
