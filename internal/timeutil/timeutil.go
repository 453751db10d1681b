package timeutil

import (
	"strings"
	"time"
)

const (
	// DateLayout is the dateEvent format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// ClockLayout is the strTime format once offsets are stripped.
	ClockLayout = "15:04:05"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats the wall clock of t as HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// NormalizeClock trims UTC offsets ("+00:00", "Z") that upstream appends to
// kickoff times. Values that still do not parse are returned trimmed but
// otherwise untouched.
func NormalizeClock(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	candidate := strings.TrimSuffix(raw, "Z")
	if i := strings.IndexAny(candidate, "+-"); i > 0 {
		candidate = candidate[:i]
	}
	if _, err := time.Parse(ClockLayout, candidate); err != nil {
		return raw
	}
	return candidate
}

// Kickoff combines a date and clock into a UTC instant. ok is false when the
// date is missing or malformed; a missing clock means midnight.
func Kickoff(date, clock string) (time.Time, bool) {
	day, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, false
	}
	c, err := time.Parse(ClockLayout, NormalizeClock(clock))
	if err != nil {
		return day, true
	}
	return day.Add(time.Duration(c.Hour())*time.Hour +
		time.Duration(c.Minute())*time.Minute +
		time.Duration(c.Second())*time.Second), true
}
