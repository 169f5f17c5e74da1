// Package timeutil holds the pure time-of-day and weekday primitives the
// scheduler is built on. Both the advisory client-side conflict checker and
// the authoritative server-side detector use these same functions, so the
// overlap rule is defined exactly once.
package timeutil

import (
	"fmt"
	"time"
)

// MinutesOfDay parses a "HH:MM" clock string into minutes since midnight.
// Times are always compared as integers, never as raw strings.
func MinutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidRange reports whether start and end are parseable and start < end.
func ValidRange(start, end string) bool {
	s, err := MinutesOfDay(start)
	if err != nil {
		return false
	}
	e, err := MinutesOfDay(end)
	if err != nil {
		return false
	}
	return s < e
}

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2) intersect.
// Ranges that touch at a boundary (e1 == s2) do not overlap, so back-to-back
// scheduling is legal. Inputs are "HH:MM"; unparseable input counts as no
// overlap since the caller validates ranges before committing anything.
func Overlaps(s1, e1, s2, e2 string) bool {
	a1, err := MinutesOfDay(s1)
	if err != nil {
		return false
	}
	b1, err := MinutesOfDay(e1)
	if err != nil {
		return false
	}
	a2, err := MinutesOfDay(s2)
	if err != nil {
		return false
	}
	b2, err := MinutesOfDay(e2)
	if err != nil {
		return false
	}
	return a1 < b2 && a2 < b1
}

// ISOWeekday converts a calendar date to the scheduling weekday convention:
// 1=Monday … 7=Sunday. Go's time.Weekday counts 0=Sunday … 6=Saturday, so
// Sunday maps to 7 and everything else passes through.
func ISOWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DateOnly truncates a timestamp to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
