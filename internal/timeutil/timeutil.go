// Package timeutil implements spec.md §4.A: strict HH:MM parsing/formatting,
// minute arithmetic, and local-date helpers. Everything here is wall-clock
// local; there is no timezone conversion (spec.md §1 Non-goals).
package timeutil

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/errtax"
)

// MinutesPerDay is the number of minutes in a day, exported for callers that
// need to reason about midnight wraparound without importing constants.
const MinutesPerDay = constants.MinutesPerDay

// ParseHHMM parses a strict 24-hour "HH:MM" string into minutes since local
// midnight (0..1439).
func ParseHHMM(s string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, errtax.Wrap(errtax.CodeBadTime, "time", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHHMM renders minutes since local midnight as a strict "HH:MM"
// string. Values are clamped into [0, 1439] the way the teacher's own
// formatTime helper does, so callers building blocks near midnight never
// produce out-of-range clock strings.
func FormatHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= MinutesPerDay {
		minutes = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseISODate parses a strict "YYYY-MM-DD" local date.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, errtax.Wrap(errtax.CodeBadDate, "date", err)
	}
	return t, nil
}

// FormatISODate renders a date as "YYYY-MM-DD".
func FormatISODate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// IsToday compares dateISO to ref's local calendar date.
func IsToday(dateISO string, ref time.Time) bool {
	return dateISO == FormatISODate(ref)
}

// AddMinutes adds delta minutes to a minutes-since-midnight value, wrapping
// modulo a day, so the result is always in [0, 1439].
func AddMinutes(base, delta int) int {
	m := (base + delta) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// DaysBetween returns the whole number of calendar days from a to b
// (b - a), both assumed to be local midnight-normalized dates.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
