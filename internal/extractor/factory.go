package extractor

import (
	"fmt"

	"talent-utils/internal/config"
	"talent-utils/internal/extractor/providers"
)

// Factory creates extraction provider instances based on configuration
type Factory struct {
	config *config.Config
}

// NewFactory creates a new extraction provider factory
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateProvider creates an extraction provider based on the configured type
func (f *Factory) CreateProvider() (Provider, error) {
	switch f.config.Extractor.Provider {
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	case "remote":
		return providers.NewRemoteProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", f.config.Extractor.Provider)
	}
}
