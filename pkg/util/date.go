package util

import "time"

const dayLayout = "2006-01-02"

// ParseDay parses a calendar date in YYYY-MM-DD form. Returns (t, true) if it worked.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayString formats a time as YYYY-MM-DD.
func DayString(t time.Time) string {
	return t.Format(dayLayout)
}

// WithinTrailingDays reports whether day falls inside the trailing window
// [now-days, now]. Unparseable dates report false.
func WithinTrailingDays(day string, now time.Time, days int) bool {
	t, ok := ParseDay(day)
	if !ok {
		return false
	}
	cutoff := now.AddDate(0, 0, -days)
	return !t.Before(cutoff) && !t.After(now)
}
