package http

import (
	"github.com/gin-gonic/gin"
	"github.com/menuscan/backend/config"
	"github.com/rs/zerolog"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Menu extraction endpoints
		menus := v1.Group("/menus")
		menus.Use(BodyLimitMiddleware(cfg.Server.MaxUploadBytes))
		{
			menus.POST("/extract", handler.ExtractMenu)
			menus.POST("/extract/stream", handler.ExtractMenuStream)
		}

		// Presentation endpoints
		presentations := v1.Group("/presentations")
		{
			presentations.POST("/generate", handler.GeneratePresentation)
		}
	}

	return router
}
