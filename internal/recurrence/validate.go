package recurrence

import (
	"time"

	"github.com/julianstephens/dayplan/internal/models"
)

// ValidationErrorCode names a specific structural problem with a RecurrenceRule.
type ValidationErrorCode string

const (
	ErrWeeklyRequiresDays      ValidationErrorCode = "WeeklyRequiresDays"
	ErrMonthlyRequiresAnchor   ValidationErrorCode = "MonthlyRequiresAnchor"
	ErrYearlyRequiresMonthDay  ValidationErrorCode = "YearlyRequiresMonthAndDay"
	ErrInvalidInterval         ValidationErrorCode = "InvalidInterval"
	ErrInvalidDateRange        ValidationErrorCode = "InvalidDateRange"
	ErrInvalidDayOfMonth       ValidationErrorCode = "InvalidDayOfMonth"
	ErrInvalidMonth            ValidationErrorCode = "InvalidMonth"
	ErrInvalidWeekOccurrence   ValidationErrorCode = "InvalidWeekOccurrence"
)

// ValidationError is a single structured problem found by Validate.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
}

// Validate checks a RecurrenceRule's shape against spec.md §3's invariants,
// returning every problem found rather than stopping at the first.
func Validate(rule models.RecurrenceRule) []ValidationError {
	var errs []ValidationError

	if rule.Interval < 0 {
		errs = append(errs, ValidationError{ErrInvalidInterval, "interval must be >= 1"})
	}

	switch rule.Frequency {
	case models.FrequencyWeekly:
		if !rule.Weekdays && len(rule.DaysOfWeek) == 0 {
			errs = append(errs, ValidationError{ErrWeeklyRequiresDays, "weekly recurrence requires at least one day of week"})
		}
		for _, d := range rule.DaysOfWeek {
			if d < 0 || d > 6 {
				errs = append(errs, ValidationError{ErrWeeklyRequiresDays, "day of week must be 0..6"})
				break
			}
		}
	case models.FrequencyMonthly:
		hasExact := rule.DayOfMonth != 0
		hasNth := rule.WeekOccurrence != 0
		if !hasExact && !hasNth {
			errs = append(errs, ValidationError{ErrMonthlyRequiresAnchor, "monthly recurrence requires a day of month or an Nth weekday"})
		}
		if hasExact && (rule.DayOfMonth < 1 || rule.DayOfMonth > 31) {
			errs = append(errs, ValidationError{ErrInvalidDayOfMonth, "day of month must be 1..31"})
		}
		if hasNth && (rule.WeekOccurrence < -1 || rule.WeekOccurrence == 0 || rule.WeekOccurrence > 4) {
			errs = append(errs, ValidationError{ErrInvalidWeekOccurrence, "week occurrence must be 1..4 or -1 for last"})
		}
	case models.FrequencyYearly:
		if rule.Month == 0 {
			errs = append(errs, ValidationError{ErrYearlyRequiresMonthDay, "yearly recurrence requires a month"})
		} else if rule.Month < 1 || rule.Month > 12 {
			errs = append(errs, ValidationError{ErrInvalidMonth, "month must be 1..12"})
		}
		if rule.DayOfMonth < 0 || rule.DayOfMonth > 31 {
			errs = append(errs, ValidationError{ErrInvalidDayOfMonth, "day of month must be 0..31"})
		}
	}

	if rule.StartDate != "" && rule.EndDate != "" {
		start, errStart := time.Parse("2006-01-02", rule.StartDate)
		end, errEnd := time.Parse("2006-01-02", rule.EndDate)
		if errStart == nil && errEnd == nil && start.After(end) {
			errs = append(errs, ValidationError{ErrInvalidDateRange, "startDate must not be after endDate"})
		}
	}

	return errs
}
