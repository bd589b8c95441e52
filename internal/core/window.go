package core

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of schedule_start cells.
const DateLayout = "2006-01-02"

// Window is the projection horizon [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
	Days  int
}

// NewWindow returns the window of days calendar days starting at now.
func NewWindow(now time.Time, days int) (Window, error) {
	if days <= 0 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	return Window{Start: now, End: now.AddDate(0, 0, days), Days: days}, nil
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Ended reports whether t is at or past the window end.
func (w Window) Ended(t time.Time) bool {
	return !t.Before(w.End)
}

// Location is the location every date of the window is expressed in.
func (w Window) Location() *time.Location {
	return w.Start.Location()
}

// ParseDate parses a schedule_start cell as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	// Spreadsheet exports sometimes carry a time part, e.g. "2024-01-01 00:00:00".
	if len(s) > len(DateLayout) && (s[len(DateLayout)] == ' ' || s[len(DateLayout)] == 'T') {
		s = s[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedDate, err)
	}
	return t, nil
}

// FormatTimestamp renders an occurrence date for storage and transport. The
// time of day is kept: cron occurrences are not at midnight.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimestamp reads a FormatTimestamp value. The wall clock is kept as
// written; loc is used when its offset matches.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.RFC3339, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedDate, err)
	}
	return t, nil
}

// IsMidnight reports whether t has no time of day.
func IsMidnight(t time.Time) bool {
	h, m, sec := t.Clock()
	return h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0
}

// LastDayOfMonth returns midnight of the last day of month in year.
func LastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}
