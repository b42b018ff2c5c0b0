package middlewares

import (
	"fmt"
	"net/http"

	"newsgraph-ai/internal/apis/dtos"

	"github.com/gin-gonic/gin"
)

// CustomRecoveryMiddleware converts panics into the standard error response shape.
func CustomRecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		errorMsg := fmt.Sprintf("internal server error: %v", recovered)
		c.JSON(http.StatusInternalServerError, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
	})
}
