package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"talent-utils/internal/api/handlers"
	"talent-utils/internal/api/middleware"
	"talent-utils/internal/background"
	"talent-utils/internal/cache"
	"talent-utils/internal/config"
	"talent-utils/internal/extractor"
	"talent-utils/internal/hrclient"
	"talent-utils/internal/lookup"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, extractorMgr *extractor.Manager, taskManager background.TaskManager, store cache.Store, lookups *lookup.Store, hrClient *hrclient.Client) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	// Body bound slightly above the CV size limit to leave room for the
	// multipart envelope
	e.Use(middleware.RequestValidation(cfg.Extractor.MaxFileSize + 1024*1024))
	// Extraction endpoints wait on the upstream provider and get the long
	// timeout
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, cfg.Extractor.Timeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(extractorMgr, store, taskManager, lookups))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(extractorMgr, taskManager, lookups))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		cv := v1.Group("/cv")
		{
			cv.POST("/extract", handlers.ExtractHandler(cfg, extractorMgr, taskManager, store))
			cv.GET("/extract/:processId", handlers.GetExtractStatusHandler(taskManager))
		}

		suggestions := v1.Group("/suggestions")
		{
			suggestions.GET("/:kind/:talentId", handlers.PeekSuggestionsHandler(store))
			suggestions.POST("/:kind/:talentId/consume", handlers.ConsumeSuggestionsHandler(store, lookups))
			suggestions.DELETE("/:kind/:talentId", handlers.DismissSuggestionsHandler(store))
		}

		availability := v1.Group("/availability")
		{
			availability.POST("/check", handlers.CheckAvailabilityHandler(hrClient))
			availability.POST("", handlers.CreateAvailabilityHandler(hrClient))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Talent Utils",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
