package reconciler

import (
	"strings"
	"time"
)

// ongoingMarkers are end-date spellings that mean "still ongoing". They map
// to an empty string, which form consumers render as an absent end date.
var ongoingMarkers = map[string]struct{}{
	"present":  {},
	"hiện tại": {},
	"hien tai": {},
	"now":      {},
	"current":  {},
}

// fallbackLayouts cover date spellings extraction sometimes emits besides the
// canonical partial forms
var fallbackLayouts = []string{
	"2006/01/02",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-01-2006",
}

// NormalizeDate widens a loosely formatted date string to YYYY-MM-DD.
// Partial inputs snap to the first day of the period: a bare year becomes
// January 1st, a year-month becomes the 1st. Ongoing markers and unparseable
// input both yield the empty string; nothing here returns an error.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if _, ok := ongoingMarkers[strings.ToLower(s)]; ok {
		return ""
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006", s); err == nil {
		return t.Format("2006-01-02")
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}
