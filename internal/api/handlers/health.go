package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talent-utils/internal/background"
	"talent-utils/internal/cache"
	"talent-utils/internal/extractor"
	"talent-utils/internal/logging"
	"talent-utils/internal/lookup"
	"talent-utils/pkg/models"
	"talent-utils/pkg/utils"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can take traffic. The
// extraction provider being down degrades the check but does not fail it;
// extraction requests fail individually instead.
func ReadinessHandler(extractorMgr *extractor.Manager, store cache.Store, taskManager background.TaskManager, lookups *lookup.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api": "ok",
		}
		status := "ready"
		httpStatus := http.StatusOK

		if taskManager.IsHealthy() {
			checks["tasks"] = "ok"
		} else {
			checks["tasks"] = "unavailable"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		if err := store.IsHealthy(c.Request().Context()); err != nil {
			checks["cache"] = "unavailable"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["cache"] = "ok"
		}

		if extractorMgr.IsHealthy() {
			checks["extractor"] = "ok"
		} else {
			checks["extractor"] = "degraded"
		}

		if lookups.LastRefresh().IsZero() {
			checks["lookups"] = "empty"
		} else {
			checks["lookups"] = "ok"
		}

		return c.JSON(httpStatus, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status
func StatusHandler(extractorMgr *extractor.Manager, taskManager background.TaskManager, lookups *lookup.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":       "operational",
			"extractor": extractorMgr.GetProviderName(),
		}

		if taskManager.IsHealthy() {
			checks["tasks"] = "operational"
		} else {
			checks["tasks"] = "stopped"
		}

		if last := lookups.LastRefresh(); !last.IsZero() {
			checks["lookups_refreshed"] = last.Format(time.RFC3339)
		} else {
			checks["lookups_refreshed"] = "never"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}
