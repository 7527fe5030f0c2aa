package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"talent-utils/internal/background"
	"talent-utils/internal/cache"
	"talent-utils/internal/config"
	"talent-utils/internal/extractor"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
	"talent-utils/pkg/utils"
)

var validate = validator.New()

// ExtractHandler handles CV extraction uploads. Requests run in the
// background by default and answer 202 with a process id; ?sync=true runs
// the extraction inline.
func ExtractHandler(cfg *config.Config, extractorMgr *extractor.Manager, taskManager background.TaskManager, store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		logger.Info("CV extraction request received", map[string]interface{}{})

		doc, opts, errResp := bindExtractRequest(c, cfg, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		if c.QueryParam("sync") == "true" {
			return handleSyncExtract(c, extractorMgr, store, *doc, *opts, requestID, startTime, logger)
		}

		processID := utils.GenerateExtractProcessID()

		if err := taskManager.SubmitExtractTask(c.Request().Context(), processID, *doc, *opts, extractorMgr, store); err != nil {
			logger.Error("Failed to submit extraction task", map[string]interface{}{
				"process_id": processID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"task_submission_failed",
				fmt.Sprintf("Failed to submit extraction task: %v", err),
				processID,
			))
		}

		logger.Info("CV extraction task submitted", map[string]interface{}{
			"process_id": processID,
			"talent_id":  opts.TalentID,
			"filename":   doc.Filename,
		})

		return c.JSON(http.StatusAccepted, models.CreateAsyncExtractResponse(processID))
	}
}

// GetExtractStatusHandler returns the status or result of a background
// extraction task
func GetExtractStatusHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		processID := c.Param("processId")
		if processID == "" {
			return c.JSON(http.StatusBadRequest, models.CreateAsyncErrorResponse(
				"missing_process_id",
				"Process ID is required",
			))
		}

		result, err := taskManager.GetTaskResult(c.Request().Context(), processID)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.CreateAsyncErrorResponse(
				"task_not_found",
				fmt.Sprintf("No extraction task found for process ID %s", processID),
				processID,
			))
		}

		response := models.AsyncTaskStatusResponse{
			ProcessID:   result.ProcessID,
			Status:      models.AsyncStatus(result.Status),
			Data:        result.Data,
			Error:       result.Error,
			CreatedAt:   result.CreatedAt,
			CompletedAt: result.CompletedAt,
			Metadata:    result.Metadata,
		}
		if result.ProcessingTime > 0 {
			pt := result.ProcessingTime
			response.ProcessingTime = &pt
		}

		return c.JSON(http.StatusOK, response)
	}
}

func handleSyncExtract(c echo.Context, extractorMgr *extractor.Manager, store cache.Store, doc models.CVDocument, opts models.ExtractOptions, requestID string, startTime time.Time, logger logging.Logger) error {
	ctx := c.Request().Context()

	candidate, err := extractorMgr.ExtractCandidate(ctx, doc)
	if err != nil {
		logger.Error("Synchronous extraction failed", map[string]interface{}{
			"talent_id": opts.TalentID,
			"filename":  doc.Filename,
			"error":     err.Error(),
		})
		status, code := extractErrorStatus(err)
		return c.JSON(status, models.ErrorResponse{
			Error:     code,
			Message:   err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}

	staged, err := background.StageSuggestions(ctx, store, candidate, opts, extractorMgr.GetProviderName())
	if err != nil {
		logger.Warn("Failed to stage suggestions after extraction", map[string]interface{}{
			"talent_id": opts.TalentID,
			"error":     err.Error(),
		})
	}

	logger.Info("Synchronous extraction completed", map[string]interface{}{
		"talent_id":       opts.TalentID,
		"staged":          staged,
		"processing_time": time.Since(startTime),
	})

	return c.JSON(http.StatusOK, models.ExtractResponse{
		Success:        true,
		Candidate:      candidate,
		ProcessingTime: time.Since(startTime),
		Provider:       extractorMgr.GetProviderName(),
		RequestID:      requestID,
	})
}

// bindExtractRequest parses and validates the multipart upload. The second
// return value is non-nil on failure and already shaped for a 400 response.
func bindExtractRequest(c echo.Context, cfg *config.Config, requestID string) (*models.CVDocument, *models.ExtractOptions, *models.ErrorResponse) {
	opts := models.ExtractOptions{
		TalentID: c.FormValue("talent_id"),
		Category: c.FormValue("category"),
	}

	if err := validate.Struct(&opts); err != nil {
		return nil, nil, &models.ErrorResponse{
			Error:     "validation_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, &models.ErrorResponse{
			Error:     "missing_file",
			Message:   "A CV file is required in the 'file' form field",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	if cfg.Extractor.MaxFileSize > 0 && fileHeader.Size > cfg.Extractor.MaxFileSize {
		return nil, nil, &models.ErrorResponse{
			Error:     "file_too_large",
			Message:   fmt.Sprintf("CV file exceeds the %d byte limit", cfg.Extractor.MaxFileSize),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, &models.ErrorResponse{
			Error:     "unreadable_file",
			Message:   "Failed to open the uploaded CV file",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, &models.ErrorResponse{
			Error:     "unreadable_file",
			Message:   "Failed to read the uploaded CV file",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeFromExtension(fileHeader.Filename)
	}

	return &models.CVDocument{
		Filename: fileHeader.Filename,
		MIMEType: mimeType,
		Data:     data,
	}, &opts, nil
}

func mimeFromExtension(filename string) string {
	switch utils.FileExtension(filename) {
	case "pdf":
		return "application/pdf"
	case "html", "htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// extractErrorStatus maps extraction failures to stable machine codes
func extractErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, extractor.ErrExtractionFailed):
		return http.StatusBadGateway, "EXTRACTION_FAILED"
	case errors.Is(err, extractor.ErrMalformedPayload):
		return http.StatusUnprocessableEntity, "MALFORMED_EXTRACTION_PAYLOAD"
	default:
		return http.StatusInternalServerError, "extraction_error"
	}
}
