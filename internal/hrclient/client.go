package hrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"talent-utils/internal/config"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
	"talent-utils/pkg/utils"
)

// Client talks to the HR backend REST API. Lookup reads retry with a flat
// delay; writes never retry because the backend does not deduplicate them.
type Client struct {
	baseURL    string
	apiToken   string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a new HR backend client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.HRBackend.BaseURL,
		apiToken:   cfg.HRBackend.APIToken,
		maxRetries: cfg.HRBackend.MaxRetries,
		retryDelay: cfg.HRBackend.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.HRBackend.Timeout,
		},
		logger: logging.GetGlobalLogger(),
	}
}

// GetSkills fetches the canonical skill list
func (c *Client) GetSkills(ctx context.Context) ([]models.LookupEntity, error) {
	var skills []models.LookupEntity
	if err := c.getJSON(ctx, "/skills", &skills); err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	return skills, nil
}

// GetCertificateTypes fetches the canonical certificate-type list
func (c *Client) GetCertificateTypes(ctx context.Context) ([]models.LookupEntity, error) {
	var types []models.LookupEntity
	if err := c.getJSON(ctx, "/certificate-types", &types); err != nil {
		return nil, fmt.Errorf("failed to fetch certificate types: %w", err)
	}
	return types, nil
}

// GetJobRoleLevels fetches the canonical job-role-level list
func (c *Client) GetJobRoleLevels(ctx context.Context) ([]models.JobRoleLevel, error) {
	var levels []models.JobRoleLevel
	if err := c.getJSON(ctx, "/job-role-levels", &levels); err != nil {
		return nil, fmt.Errorf("failed to fetch job role levels: %w", err)
	}
	return levels, nil
}

// GetAvailability fetches the existing availability intervals for a talent
func (c *Client) GetAvailability(ctx context.Context, talentID string) ([]models.AvailabilityInterval, error) {
	var intervals []models.AvailabilityInterval
	if err := c.getJSON(ctx, "/talents/"+talentID+"/availability", &intervals); err != nil {
		return nil, fmt.Errorf("failed to fetch availability for talent %s: %w", talentID, err)
	}
	return intervals, nil
}

// CreateAvailability submits a new availability interval. No retries: the
// conflict check has already passed and a duplicate write would undo it.
func (c *Client) CreateAvailability(ctx context.Context, interval models.AvailabilityInterval) (*models.AvailabilityInterval, error) {
	body, err := json.Marshal(interval)
	if err != nil {
		return nil, fmt.Errorf("failed to encode availability interval: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/talents/"+interval.TalentID+"/availability", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability interval: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, utils.NewBackendError(fmt.Sprintf("status %d creating availability: %s", resp.StatusCode, string(data)))
	}

	var created models.AvailabilityInterval
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created availability interval: %w", err)
	}

	return &created, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// getJSON performs a GET with bounded flat-delay retries and decodes the
// response body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.logger.Debug("Retrying HR backend request", map[string]interface{}{
				"path":    path,
				"attempt": attempt,
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		lastErr = c.doGet(ctx, path, out)
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}

func (c *Client) doGet(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return utils.NewBackendError(fmt.Sprintf("status %d for %s: %s", resp.StatusCode, path, string(data)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
