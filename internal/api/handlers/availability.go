package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talent-utils/internal/availability"
	"talent-utils/internal/hrclient"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
	"talent-utils/pkg/utils"
)

// CheckAvailabilityHandler validates a proposed availability interval and
// scans the talent's existing intervals for a conflict. Temporal validation
// happens before any backend fetch.
func CheckAvailabilityHandler(hrClient *hrclient.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		req, errResp := bindAvailabilityRequest(c, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		response, status, errResp := runAvailabilityCheck(c, hrClient, *req, requestID)
		if errResp != nil {
			return c.JSON(status, errResp)
		}

		return c.JSON(status, response)
	}
}

// CreateAvailabilityHandler runs the conflict check and, when it passes,
// forwards the create to the HR backend
func CreateAvailabilityHandler(hrClient *hrclient.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		req, errResp := bindAvailabilityRequest(c, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		response, status, errResp := runAvailabilityCheck(c, hrClient, *req, requestID)
		if errResp != nil {
			return c.JSON(status, errResp)
		}
		if response.Conflict {
			return c.JSON(status, response)
		}

		created, err := hrClient.CreateAvailability(c.Request().Context(), req.Interval())
		if err != nil {
			logger.Error("Failed to create availability interval", map[string]interface{}{
				"talent_id": req.TalentID,
				"error":     err.Error(),
			})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "backend_error",
				Message:   "Failed to save the availability interval, please retry",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Availability interval created", map[string]interface{}{
			"talent_id": req.TalentID,
			"start":     req.StartTime,
		})

		response.Created = created
		return c.JSON(http.StatusCreated, response)
	}
}

func bindAvailabilityRequest(c echo.Context, requestID string) (*models.AvailabilityCheckRequest, *models.ErrorResponse) {
	var req models.AvailabilityCheckRequest
	if err := c.Bind(&req); err != nil {
		return nil, &models.ErrorResponse{
			Error:     "invalid_request",
			Message:   "Invalid request format",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	if err := validate.Struct(&req); err != nil {
		return nil, &models.ErrorResponse{
			Error:     "validation_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	return &req, nil
}

// runAvailabilityCheck performs temporal validation and the conflict scan.
// The returned status is 200 on a clean pass, 409 on conflict.
func runAvailabilityCheck(c echo.Context, hrClient *hrclient.Client, req models.AvailabilityCheckRequest, requestID string) (*models.AvailabilityCheckResponse, int, *models.ErrorResponse) {
	proposed := req.Interval()

	if err := availability.ValidateProposed(proposed, time.Now()); err != nil {
		return nil, http.StatusBadRequest, &models.ErrorResponse{
			Error:     "INVALID_TEMPORAL_INPUT",
			Message:   err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	existing, err := hrClient.GetAvailability(c.Request().Context(), req.TalentID)
	if err != nil {
		status := http.StatusBadGateway
		var customErr *utils.CustomError
		if errors.As(err, &customErr) {
			status = customErr.Code
		}
		return nil, status, &models.ErrorResponse{
			Error:     "backend_error",
			Message:   "Failed to fetch existing availability, please retry",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	if conflict, found := availability.FindConflict(proposed, existing); found {
		return &models.AvailabilityCheckResponse{
			Conflict:      true,
			ConflictsWith: &conflict,
			Message:       "Proposed interval overlaps existing availability " + conflict.HumanRange(),
			RequestID:     requestID,
		}, http.StatusConflict, nil
	}

	return &models.AvailabilityCheckResponse{
		Conflict:  false,
		Message:   "No conflicts found",
		RequestID: requestID,
	}, http.StatusOK, nil
}
