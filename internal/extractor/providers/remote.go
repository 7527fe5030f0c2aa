package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"talent-utils/internal/config"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
)

// RemoteProvider implements the extraction provider interface against the
// platform's own extraction endpoint. The endpoint accepts a multipart
// document upload and answers with an extraction envelope.
type RemoteProvider struct {
	endpoint   string
	httpClient *http.Client
	config     *config.Config
	logger     logging.Logger
}

// NewRemoteProvider creates a new remote extraction provider instance
func NewRemoteProvider(cfg *config.Config) *RemoteProvider {
	return &RemoteProvider{
		endpoint: cfg.Extractor.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Extractor.Timeout,
		},
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractCandidate uploads the document to the extraction endpoint and
// decodes the envelope. The envelope's success flag is NOT interpreted here;
// the manager's parse step owns that decision.
func (rp *RemoteProvider) ExtractCandidate(ctx context.Context, doc models.CVDocument) (*models.ExtractionEnvelope, error) {
	startTime := time.Now()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, fmt.Errorf("failed to write document data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rp.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := rp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("extraction endpoint returned status %d: %s", resp.StatusCode, string(data))
	}

	var envelope models.ExtractionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode extraction envelope: %w", err)
	}

	rp.logger.Info("Remote extraction completed", map[string]interface{}{
		"filename":        doc.Filename,
		"is_success":      envelope.IsSuccess,
		"processing_time": time.Since(startTime),
		"provider":        "remote",
	})

	return &envelope, nil
}

// IsHealthy checks if the remote provider is configured and reachable
func (rp *RemoteProvider) IsHealthy(ctx context.Context) error {
	if rp.endpoint == "" {
		return fmt.Errorf("extraction endpoint not configured - set EXTRACTOR_ENDPOINT environment variable")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rp.endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := rp.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("extraction endpoint health check failed: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("extraction endpoint unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

// GetProviderName returns the name of the extraction provider
func (rp *RemoteProvider) GetProviderName() string {
	return "remote"
}
