package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes sets up the API routes
func SetupRoutes(handler *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(RequestLogger(logger))

	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Session gate
		v1.POST("/session", handler.Login)
		v1.DELETE("/session", handler.Logout)

		// Data routes, all behind the gate
		data := v1.Group("")
		data.Use(RequireSession(handler.sessions))
		{
			data.GET("/dashboard", handler.GetDashboard)
			data.GET("/repositories", handler.GetRepositories)
			data.GET("/summary", handler.GetSummary)
			data.GET("/categories", handler.GetCategories)
			data.GET("/top/:metric", handler.GetTopPerformers)
		}
	}

	return router
}
