package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talent-utils/pkg/models"
	"talent-utils/pkg/utils"
)

// RequestValidation middleware tags requests with an id and bounds body
// sizes. maxBodySize should accommodate the largest allowed CV upload.
func RequestValidation(maxBodySize int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			if c.Request().Method == http.MethodPost {
				contentLength := c.Request().ContentLength
				if maxBodySize > 0 && contentLength > maxBodySize {
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Message:   "Request body too large",
						RequestID: requestID,
						Timestamp: time.Now(),
					})
				}
			}

			return next(c)
		}
	}
}
