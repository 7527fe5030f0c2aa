package models

import "time"

// AvailabilityInterval is a talent's availability window. A nil EndTime means
// "until further notice" and is treated as unbounded during overlap checks.
type AvailabilityInterval struct {
	ID        int64      `json:"id,omitempty"`
	TalentID  string     `json:"talent_id,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Notes     string     `json:"notes"`
}

// HumanRange renders the interval bounds for user-facing conflict messages
func (i AvailabilityInterval) HumanRange() string {
	start := i.StartTime.Format("2006-01-02 15:04")
	if i.EndTime == nil {
		return start + " - open ended"
	}
	return start + " - " + i.EndTime.Format("2006-01-02 15:04")
}
