package utils

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// StartOfDay normalizes t to midnight in its own location so that
// time-of-day never affects day counting.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar date; the zero time signals failure to the
// pricing fallback path.
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
