package extractor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"talent-utils/internal/config"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
)

// Manager manages the extraction provider and its lifecycle
type Manager struct {
	config   *config.Config
	factory  *Factory
	provider Provider
	limiter  *rate.Limiter
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new extraction manager instance
func NewManager(cfg *config.Config) *Manager {
	rpm := cfg.Extractor.RateLimit
	if rpm <= 0 {
		rpm = 30
	}

	return &Manager{
		config:  cfg,
		factory: NewFactory(cfg),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		logger:  logging.GetGlobalLogger(),
	}
}

// Start initializes the extraction manager and creates the provider
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting extraction manager", map[string]interface{}{
		"provider": m.config.Extractor.Provider,
	})

	provider, err := m.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create extraction provider: %w", err)
	}

	m.provider = provider

	ctx, cancel := context.WithTimeout(context.Background(), m.config.Extractor.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.logger.Warn("Extraction provider health check failed - extraction will be unavailable", map[string]interface{}{
			"provider": m.config.Extractor.Provider,
			"error":    err.Error(),
		})
		m.healthy = false
		// Allow the server to start without extraction
	} else {
		m.healthy = true
		m.logger.Info("Extraction manager started successfully", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
		})
	}

	return nil
}

// Stop shuts down the extraction manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping extraction manager")
	m.provider = nil
	m.healthy = false
	return nil
}

// ExtractCandidate runs the document through the provider and parses the
// envelope into a candidate record. Calls are rate limited across the whole
// process so a burst of uploads cannot exhaust the provider quota.
func (m *Manager) ExtractCandidate(ctx context.Context, doc models.CVDocument) (*models.ExtractedCandidate, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider == nil {
		return nil, fmt.Errorf("extraction manager not started or provider not available")
	}

	if !healthy {
		return nil, fmt.Errorf("extraction provider is not available - check API key configuration (set EXTRACTOR_API_KEY environment variable)")
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("extraction rate limit wait aborted: %w", err)
	}

	envelope, err := provider.ExtractCandidate(ctx, doc)
	if err != nil {
		return nil, err
	}

	return ParseEnvelope(envelope)
}

// IsHealthy checks if the extraction manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current extraction provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// CheckHealth performs a live health check on the extraction provider and
// updates the cached health flag
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("extraction provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = err == nil
	m.mu.Unlock()

	return err
}
