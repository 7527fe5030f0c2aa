package models

import "time"

// ExtractResponse represents the response from a synchronous extraction request
type ExtractResponse struct {
	Success        bool                `json:"success"`
	Candidate      *ExtractedCandidate `json:"candidate,omitempty"`
	Error          string              `json:"error,omitempty"`
	ProcessingTime time.Duration       `json:"processing_time"`
	Provider       string              `json:"provider_used"`
	RequestID      string              `json:"request_id"`
}

// SuggestionPeekResponse represents staged suggestions read without consuming
type SuggestionPeekResponse struct {
	Kind        SuggestionKind `json:"kind"`
	TalentID    string         `json:"talent_id"`
	Suggestions interface{}    `json:"suggestions"`
	Count       int            `json:"count"`
}

// ConsumeSuggestionsResponse represents the result of atomically consuming a
// staged suggestion list and reconciling it against canonical lookups
type ConsumeSuggestionsResponse struct {
	Kind      SuggestionKind `json:"kind"`
	TalentID  string         `json:"talent_id"`
	Prefills  interface{}    `json:"prefills"`
	Unmatched int            `json:"unmatched"`
	RequestID string         `json:"request_id"`
}

// AvailabilityCheckResponse represents the outcome of an overlap check
type AvailabilityCheckResponse struct {
	Conflict      bool                  `json:"conflict"`
	ConflictsWith *AvailabilityInterval `json:"conflicts_with,omitempty"`
	Message       string                `json:"message,omitempty"`
	Created       *AvailabilityInterval `json:"created,omitempty"`
	RequestID     string                `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
