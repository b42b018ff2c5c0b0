package routes

import (
	"newsgraph-ai/internal/apis/dtos"

	"github.com/gin-gonic/gin"
)

func SetupDefaultRoutes(router *gin.Engine) {
	// Health check route
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, dtos.Response{
			Success: true,
			Data:    "newsgraph-ai is up",
		})
	})

	SetupAuthRoutes(router)
	SetupQueryRoutes(router)
}
