package routes

import (
	"log"

	"newsgraph-ai/internal/di"
	"newsgraph-ai/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupQueryRoutes(router *gin.Engine) {
	queryHandler, err := di.GetQueryHandler()
	if err != nil {
		log.Fatalf("Failed to get query handler: %v", err)
	}

	jwtService, err := di.GetJWTService()
	if err != nil {
		log.Fatalf("Failed to get JWT service: %v", err)
	}

	protected := router.Group("/api")
	protected.Use(middlewares.AuthMiddleware(jwtService))
	{
		// Natural language entry point
		protected.POST("/ask", queryHandler.Ask)

		// Raw structured queries through the same validated executor
		protected.POST("/graphql", queryHandler.GraphQL)

		// Tool invocation contract for assistant integrations
		protected.GET("/tools", queryHandler.ListTools)
		protected.POST("/tools/invoke", queryHandler.InvokeTool)

		// Pipeline run history and corpus stats
		protected.GET("/history", queryHandler.History)
		protected.GET("/stats", queryHandler.Stats)
	}
}
