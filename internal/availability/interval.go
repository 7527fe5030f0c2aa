package availability

import (
	"errors"
	"time"

	"talent-utils/pkg/models"
)

var (
	// ErrStartNotBeforeEnd means the proposed interval is empty or inverted
	ErrStartNotBeforeEnd = errors.New("start time must be before end time")

	// ErrStartInPast means the proposed interval does not begin strictly
	// after the reference instant
	ErrStartInPast = errors.New("start time must be in the future")
)

// maxInstant stands in for "no end" so the overlap test stays a single
// uniform comparison instead of nil checks in every branch
var maxInstant = time.Unix(1<<62, 0)

func endOrMax(end *time.Time) time.Time {
	if end == nil {
		return maxInstant
	}
	return *end
}

// Overlaps reports whether two intervals intersect under half-open
// semantics: [s1, e1) and [s2, e2) conflict iff s1 < e2 && s2 < e1. An
// interval ending exactly when another starts does not conflict.
func Overlaps(a, b models.AvailabilityInterval) bool {
	return a.StartTime.Before(endOrMax(b.EndTime)) && b.StartTime.Before(endOrMax(a.EndTime))
}

// FindConflict returns the first existing interval, in list order, that
// overlaps the proposed one. Existing intervals are assumed to belong to the
// same talent; the caller filters by subject before calling.
func FindConflict(proposed models.AvailabilityInterval, existing []models.AvailabilityInterval) (models.AvailabilityInterval, bool) {
	for _, interval := range existing {
		if Overlaps(proposed, interval) {
			return interval, true
		}
	}
	return models.AvailabilityInterval{}, false
}

// ValidateProposed checks the structural invariants of a proposed interval
// against a reference instant (normally time.Now). The start must be strictly
// after the reference instant. Overlap is checked separately by FindConflict.
func ValidateProposed(proposed models.AvailabilityInterval, now time.Time) error {
	if !proposed.StartTime.After(now) {
		return ErrStartInPast
	}
	if proposed.EndTime != nil && !proposed.StartTime.Before(*proposed.EndTime) {
		return ErrStartNotBeforeEnd
	}
	return nil
}
