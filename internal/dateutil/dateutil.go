// Package dateutil normalizes the two day-string conventions that coexist
// in the data: dotted (2023.10.26) in content fields and ISO (2023-10-26)
// in the analytics path. All comparisons go through ParseDay so the two
// never meet unnormalized.
package dateutil

import (
	"strings"
	"time"
)

const (
	// LayoutDotted is the day format used by content fields.
	LayoutDotted = "2006.01.02"
	// LayoutISO is the day format used by the analytics path.
	LayoutISO = "2006-01-02"
)

// ParseDay parses a day string in either convention. Malformed or empty
// input yields the zero time, which sorts before every real date.
func ParseDay(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(LayoutISO, strings.ReplaceAll(s, ".", "-"))
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseDayPtr parses a nullable day string; nil yields the zero time.
func ParseDayPtr(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	return ParseDay(*s)
}

// FormatDotted renders t as a dotted day string.
func FormatDotted(t time.Time) string {
	return t.Format(LayoutDotted)
}

// FormatISO renders t as an ISO day string.
func FormatISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// TodayDotted returns the current local day in dotted form.
func TodayDotted() string {
	return FormatDotted(time.Now())
}

// TodayISO returns the current local day in ISO form.
func TodayISO() string {
	return FormatISO(time.Now())
}

// WithinDay reports whether day falls inside [start, end], all three at
// day granularity with both bounds closed.
func WithinDay(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}
