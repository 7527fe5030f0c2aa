package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"talent-utils/pkg/models"
)

var (
	// ErrExtractionFailed means the upstream extraction call reported failure;
	// there is no payload to parse
	ErrExtractionFailed = errors.New("extraction service reported failure")

	// ErrMalformedPayload means the upstream call succeeded but its text is
	// not valid JSON after fence stripping
	ErrMalformedPayload = errors.New("extraction payload is not valid JSON")
)

// StripCodeFences removes a leading ```json or ``` fence and a trailing ```
// fence if present. Already-unfenced text passes through unchanged, so the
// operation is idempotent.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	return text
}

// NormalizePhone strips every non-digit character, preserving digit order.
// Idempotent: normalizing an already-normalized string is a no-op.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseEnvelope turns a raw extraction envelope into a typed candidate
// record. It is a pure transform: no form writes, no cache writes.
//
// The two failure modes are distinct on purpose: ErrExtractionFailed means
// the upstream call itself failed, ErrMalformedPayload means the call
// succeeded but the content contract was violated. Neither is retried.
func ParseEnvelope(envelope *models.ExtractionEnvelope) (*models.ExtractedCandidate, error) {
	if envelope == nil || !envelope.IsSuccess {
		return nil, ErrExtractionFailed
	}

	payload := StripCodeFences(envelope.GenerateText)

	var candidate models.ExtractedCandidate
	if err := json.Unmarshal([]byte(payload), &candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if candidate.Phone != "" {
		candidate.Phone = NormalizePhone(candidate.Phone)
	}

	return &candidate, nil
}
