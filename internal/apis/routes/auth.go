package routes

import (
	"log"

	"newsgraph-ai/internal/di"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.Engine) {
	authHandler, err := di.GetAuthHandler()
	if err != nil {
		log.Fatalf("Failed to get auth handler: %v", err)
	}

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
	}
}
