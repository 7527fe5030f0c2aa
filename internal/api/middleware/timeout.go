package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies a longer timeout to extraction endpoints,
// which wait on the upstream provider, and the default timeout everywhere
// else
func SelectiveTimeoutConfig(defaultTimeout, extractionTimeout time.Duration) echo.MiddlewareFunc {
	standard := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	extended := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: extractionTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		standardNext := standard(next)
		extendedNext := extended(next)

		return func(c echo.Context) error {
			if strings.HasPrefix(c.Path(), "/api/v1/cv/extract") {
				return extendedNext(c)
			}
			return standardNext(c)
		}
	}
}
