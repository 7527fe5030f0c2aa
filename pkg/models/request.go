package models

import "time"

// AvailabilityCheckRequest is the payload for availability validation.
// Temporal preconditions (start in the future, end after start) are enforced
// by the availability checker before any backend call is made.
type AvailabilityCheckRequest struct {
	TalentID  string     `json:"talent_id" validate:"required"`
	StartTime time.Time  `json:"startTime" validate:"required"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Notes     string     `json:"notes"`
}

// Interval converts the request into the shared interval model
func (r AvailabilityCheckRequest) Interval() AvailabilityInterval {
	return AvailabilityInterval{
		TalentID:  r.TalentID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}
}

// ExtractOptions carries the non-file fields of a CV extraction upload
type ExtractOptions struct {
	TalentID string `json:"talent_id" validate:"required"`
	Category string `json:"category"`
}
