// Package recurrence implements spec.md §4.B: deciding whether a template
// has an occurrence on a given local date, and validating a RecurrenceRule's
// shape (Validate; the scheduler itself does not call it). Grounded on the teacher's
// daily/weekly/n-days recurrence core (daylit-cli/internal/utils/
// recurrence.go) and extended with the monthly/yearly/weekdays variants its
// own test suite (scheduler_complex_recurrence_test.go) exercised.
package recurrence

import (
	"time"

	"github.com/julianstephens/dayplan/internal/errtax"
	"github.com/julianstephens/dayplan/internal/models"
)

// Occurs reports whether rule produces an occurrence on date. It is total
// (I10): every validly-shaped rule returns a definite answer, never panics,
// and is idempotent — calling it twice with the same inputs always agrees.
func Occurs(rule *models.RecurrenceRule, date time.Time) (bool, error) {
	date = normalize(date)

	if rule == nil {
		return true, nil
	}

	start, err := parseOptional(rule.StartDate)
	if err != nil {
		return false, errtax.Wrap(errtax.CodeBadDate, "startDate", err)
	}
	end, err := parseOptional(rule.EndDate)
	if err != nil {
		return false, errtax.Wrap(errtax.CodeBadDate, "endDate", err)
	}

	if start != nil && date.Before(*start) {
		return false, nil
	}
	if end != nil && date.After(*end) {
		return false, nil
	}

	switch rule.Frequency {
	case "", models.FrequencyNone:
		if start != nil {
			return date.Equal(*start), nil
		}
		return true, nil
	case models.FrequencyDaily:
		return occursDaily(rule, date, start), nil
	case models.FrequencyWeekly:
		return occursWeekly(rule, date, start), nil
	case models.FrequencyMonthly:
		return occursMonthly(rule, date, start), nil
	case models.FrequencyYearly:
		return occursYearly(rule, date, start), nil
	default:
		return false, errtax.Newf(errtax.CodeBadInput, "unknown recurrence frequency %q", rule.Frequency)
	}
}

func occursDaily(rule *models.RecurrenceRule, date time.Time, start *time.Time) bool {
	if rule.Weekdays {
		return isWeekday(date)
	}
	interval := rule.EffectiveInterval()
	if start == nil {
		return true
	}
	days := daysBetween(*start, date)
	return days%interval == 0
}

func occursWeekly(rule *models.RecurrenceRule, date time.Time, start *time.Time) bool {
	if rule.Weekdays {
		return isWeekday(date)
	}
	if len(rule.DaysOfWeek) == 0 {
		return false
	}
	if !weekdayIn(date, rule.DaysOfWeek) {
		return false
	}
	interval := rule.EffectiveInterval()
	if interval == 1 {
		return true
	}
	anchor := date
	if start != nil {
		anchor = *start
	}
	weeksSince := daysBetween(weekAnchor(anchor), weekAnchor(date)) / 7
	return weeksSince%interval == 0
}

func occursMonthly(rule *models.RecurrenceRule, date time.Time, start *time.Time) bool {
	anchor := date
	if start != nil {
		anchor = *start
	}
	interval := rule.EffectiveInterval()
	monthsElapsed := monthsBetween(anchor, date)
	if monthsElapsed%interval != 0 {
		return false
	}

	if rule.UsesExactDayOfMonth() {
		daysInMonth := daysIn(date.Year(), date.Month())
		if rule.DayOfMonth > daysInMonth {
			return false // skip the month rather than clamp
		}
		return date.Day() == rule.DayOfMonth
	}

	occ, ok := nthWeekdayOfMonth(date.Year(), date.Month(), time.Weekday(rule.DayOfWeekInMonth), rule.WeekOccurrence)
	if !ok {
		return false
	}
	return sameDate(occ, date)
}

func occursYearly(rule *models.RecurrenceRule, date time.Time, start *time.Time) bool {
	if rule.Month != 0 && int(date.Month()) != rule.Month {
		return false
	}
	anchor := date
	if start != nil {
		anchor = *start
	}
	interval := rule.EffectiveInterval()
	yearsElapsed := date.Year() - anchor.Year()
	if yearsElapsed%interval != 0 {
		return false
	}
	if rule.DayOfMonth == 0 {
		return true
	}
	if rule.DayOfMonth == 29 && rule.Month == 2 && !isLeap(date.Year()) {
		return false // Feb 29 on a non-leap year never occurs
	}
	return date.Day() == rule.DayOfMonth
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func parseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = normalize(t)
	return &t, nil
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Sunday && wd != time.Saturday
}

func weekdayIn(t time.Time, days []int) bool {
	for _, d := range days {
		if int(t.Weekday()) == d {
			return true
		}
	}
	return false
}

// weekAnchor returns the Sunday that starts t's week.
func weekAnchor(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func daysBetween(a, b time.Time) int {
	return int(normalize(b).Sub(normalize(a)).Hours() / 24)
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// nthWeekdayOfMonth returns the date of the occurrence-th weekday in
// year/month (1-indexed; -1 means "last"), and whether it exists.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, occurrence int) (time.Time, bool) {
	if occurrence == 0 {
		return time.Time{}, false
	}
	if occurrence > 0 {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		offset := (int(weekday) - int(first.Weekday()) + 7) % 7
		day := 1 + offset + (occurrence-1)*7
		if day > daysIn(year, month) {
			return time.Time{}, false
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}
	// last occurrence: walk back from the last day of the month.
	last := time.Date(year, month, daysIn(year, month), 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	day := last.Day() - offset
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}
