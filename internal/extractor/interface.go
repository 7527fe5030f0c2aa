package extractor

import (
	"context"

	"talent-utils/pkg/models"
)

// Provider defines the interface for CV extraction providers
type Provider interface {
	// ExtractCandidate sends the document for extraction and returns the raw
	// envelope; parsing into a candidate record happens in the manager
	ExtractCandidate(ctx context.Context, doc models.CVDocument) (*models.ExtractionEnvelope, error)

	// IsHealthy checks if the provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
