package cache

import (
	"context"
	"errors"
	"fmt"

	"talent-utils/pkg/models"
)

// ErrNotFound means no suggestion payload is staged under the requested key
var ErrNotFound = errors.New("no staged suggestions for key")

// StagedSuggestions is one staged suggestion list for a subject, stored
// alongside the provider that produced it
type StagedSuggestions struct {
	Kind     models.SuggestionKind `json:"kind"`
	Provider string                `json:"provider"`
	Payload  []byte                `json:"payload"`
}

// Store stages suggestion payloads keyed by category, kind and subject.
// Consume must be atomic: two concurrent consumers of the same key must not
// both receive the payload.
type Store interface {
	// Put stages a suggestion payload, replacing any previous payload for
	// the same key
	Put(ctx context.Context, key string, staged StagedSuggestions) error

	// Peek returns the staged payload without removing it
	Peek(ctx context.Context, key string) (*StagedSuggestions, error)

	// Consume atomically returns and removes the staged payload
	Consume(ctx context.Context, key string) (*StagedSuggestions, error)

	// Dismiss discards the staged payload without returning it. Dismissing
	// an absent key is not an error.
	Dismiss(ctx context.Context, key string) error

	// IsHealthy checks the backing store's connectivity
	IsHealthy(ctx context.Context) error

	// Close releases the backing store's resources
	Close() error
}

// DefaultCategory is the cache category for CV-derived suggestions
const DefaultCategory = "cv"

// BuildKey derives the storage key for one staged suggestion list. Category
// names the suggestion source, kind the suggestion list, subjectID the talent.
func BuildKey(category string, kind models.SuggestionKind, subjectID string) string {
	if category == "" {
		category = DefaultCategory
	}
	return fmt.Sprintf("%s-prefill-%s-%s", category, kind, subjectID)
}
