package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/types"
	"go.uber.org/zap"
)

// Recovery turns panics into a JSON 500 and logs them
func Recovery(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		c.Next()
	}
}
