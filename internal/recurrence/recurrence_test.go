package recurrence

import (
	"testing"
	"time"

	"github.com/julianstephens/dayplan/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOccurs_NilRuleAlwaysEligible(t *testing.T) {
	ok, err := Occurs(nil, date("2025-03-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected nil rule to always occur")
	}
}

func TestOccurs_NoneFrequency(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyNone}
	ok, _ := Occurs(rule, date("2025-03-01"))
	if !ok {
		t.Error("expected none frequency with no startDate to always occur")
	}

	ruleWithStart := &models.RecurrenceRule{Frequency: models.FrequencyNone, StartDate: "2025-03-05"}
	if ok, _ := Occurs(ruleWithStart, date("2025-03-05")); !ok {
		t.Error("expected one-off to occur on its startDate")
	}
	if ok, _ := Occurs(ruleWithStart, date("2025-03-06")); ok {
		t.Error("expected one-off not to occur on a different date")
	}
}

func TestOccurs_Daily(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyDaily, Interval: 2, StartDate: "2025-03-01"}
	cases := map[string]bool{
		"2025-03-01": true,
		"2025-03-02": false,
		"2025-03-03": true,
		"2025-02-28": false, // before startDate
	}
	for d, want := range cases {
		got, err := Occurs(rule, date(d))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d, err)
		}
		if got != want {
			t.Errorf("Occurs(daily interval 2, %s) = %v, want %v", d, got, want)
		}
	}
}

func TestOccurs_DailyEndDateInclusive(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyDaily, StartDate: "2025-03-01", EndDate: "2025-03-03"}
	if ok, _ := Occurs(rule, date("2025-03-03")); !ok {
		t.Error("expected endDate to be inclusive")
	}
	if ok, _ := Occurs(rule, date("2025-03-04")); ok {
		t.Error("expected no occurrence after endDate")
	}
}

func TestOccurs_Weekly(t *testing.T) {
	// Mondays and Wednesdays, every week.
	rule := &models.RecurrenceRule{Frequency: models.FrequencyWeekly, DaysOfWeek: []int{1, 3}}
	if ok, _ := Occurs(rule, date("2025-03-03")); !ok { // Monday
		t.Error("expected Monday occurrence")
	}
	if ok, _ := Occurs(rule, date("2025-03-04")); ok { // Tuesday
		t.Error("expected no Tuesday occurrence")
	}
}

func TestOccurs_WeeklyRequiresDays(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyWeekly}
	ok, err := Occurs(rule, date("2025-03-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected weekly recurrence with no days to never occur")
	}
}

func TestOccurs_WeeklyEveryOtherWeek(t *testing.T) {
	rule := &models.RecurrenceRule{
		Frequency:  models.FrequencyWeekly,
		Interval:   2,
		DaysOfWeek: []int{1},
		StartDate:  "2025-03-03", // a Monday
	}
	if ok, _ := Occurs(rule, date("2025-03-03")); !ok {
		t.Error("expected occurrence on start week")
	}
	if ok, _ := Occurs(rule, date("2025-03-10")); ok {
		t.Error("expected no occurrence one week later")
	}
	if ok, _ := Occurs(rule, date("2025-03-17")); !ok {
		t.Error("expected occurrence two weeks later")
	}
}

func TestOccurs_MonthlyExactDay(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyMonthly, DayOfMonth: 15}
	if ok, _ := Occurs(rule, date("2026-01-15")); !ok {
		t.Error("expected occurrence on the 15th")
	}
	if ok, _ := Occurs(rule, date("2026-01-14")); ok {
		t.Error("expected no occurrence on the 14th")
	}
}

func TestOccurs_MonthlyExactDaySkipsShortMonths(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyMonthly, DayOfMonth: 31}
	if ok, _ := Occurs(rule, date("2026-02-28")); ok {
		t.Error("expected February with no 31st to be skipped, not clamped")
	}
	if ok, _ := Occurs(rule, date("2026-01-31")); !ok {
		t.Error("expected occurrence in a 31-day month")
	}
}

func TestOccurs_MonthlyLastFriday(t *testing.T) {
	rule := &models.RecurrenceRule{
		Frequency:        models.FrequencyMonthly,
		WeekOccurrence:   -1,
		DayOfWeekInMonth: int(time.Friday),
	}
	if ok, _ := Occurs(rule, date("2026-01-30")); !ok {
		t.Error("expected occurrence on the last Friday (Jan 30, 2026)")
	}
	if ok, _ := Occurs(rule, date("2026-01-23")); ok {
		t.Error("expected no occurrence on a non-last Friday")
	}
}

func TestOccurs_MonthlyFirstMonday(t *testing.T) {
	rule := &models.RecurrenceRule{
		Frequency:        models.FrequencyMonthly,
		WeekOccurrence:   1,
		DayOfWeekInMonth: int(time.Monday),
	}
	if ok, _ := Occurs(rule, date("2026-01-05")); !ok {
		t.Error("expected occurrence on the first Monday (Jan 5, 2026)")
	}
	if ok, _ := Occurs(rule, date("2026-01-12")); ok {
		t.Error("expected no occurrence on the second Monday")
	}
}

func TestOccurs_Yearly(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyYearly, Month: 1, DayOfMonth: 1}
	if ok, _ := Occurs(rule, date("2026-01-01")); !ok {
		t.Error("expected New Year's Day occurrence")
	}
	if ok, _ := Occurs(rule, date("2026-01-02")); ok {
		t.Error("expected no occurrence on January 2nd")
	}
	if ok, _ := Occurs(rule, date("2026-12-01")); ok {
		t.Error("expected no occurrence on December 1st")
	}
}

func TestOccurs_YearlyFeb29SkipsNonLeapYears(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyYearly, Month: 2, DayOfMonth: 29}
	if ok, _ := Occurs(rule, date("2025-02-28")); ok {
		t.Error("expected no Feb 29 occurrence substituted on a non-leap year")
	}
	if ok, _ := Occurs(rule, date("2024-02-29")); !ok {
		t.Error("expected Feb 29 occurrence on a leap year")
	}
}

func TestOccurs_WeekdaysShorthand(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyDaily, Weekdays: true}
	if ok, _ := Occurs(rule, date("2026-01-05")); !ok { // Monday
		t.Error("expected Monday to occur")
	}
	if ok, _ := Occurs(rule, date("2026-01-09")); !ok { // Friday
		t.Error("expected Friday to occur")
	}
	if ok, _ := Occurs(rule, date("2026-01-10")); ok { // Saturday
		t.Error("expected Saturday not to occur")
	}
	if ok, _ := Occurs(rule, date("2026-01-11")); ok { // Sunday
		t.Error("expected Sunday not to occur")
	}
}

func TestOccurs_IsIdempotentAndTotal(t *testing.T) {
	rule := &models.RecurrenceRule{Frequency: models.FrequencyMonthly, DayOfMonth: 15, Interval: 2, StartDate: "2025-01-01"}
	d := date("2025-03-15")
	first, err1 := Occurs(rule, d)
	second, err2 := Occurs(rule, d)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if first != second {
		t.Error("expected Occurs to be idempotent for identical inputs")
	}
}

func TestValidate_WeeklyRequiresDays(t *testing.T) {
	errs := Validate(models.RecurrenceRule{Frequency: models.FrequencyWeekly})
	if !hasCode(errs, ErrWeeklyRequiresDays) {
		t.Error("expected WeeklyRequiresDays validation error")
	}
}

func TestValidate_MonthlyRequiresAnchor(t *testing.T) {
	errs := Validate(models.RecurrenceRule{Frequency: models.FrequencyMonthly})
	if !hasCode(errs, ErrMonthlyRequiresAnchor) {
		t.Error("expected MonthlyRequiresAnchor validation error")
	}
}

func TestValidate_InvalidDateRange(t *testing.T) {
	errs := Validate(models.RecurrenceRule{
		Frequency: models.FrequencyDaily,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-01",
	})
	if !hasCode(errs, ErrInvalidDateRange) {
		t.Error("expected InvalidDateRange validation error")
	}
}

func TestValidate_ValidRulesProduceNoErrors(t *testing.T) {
	valid := []models.RecurrenceRule{
		{Frequency: models.FrequencyNone},
		{Frequency: models.FrequencyDaily, Interval: 1},
		{Frequency: models.FrequencyWeekly, DaysOfWeek: []int{1, 3, 5}},
		{Frequency: models.FrequencyMonthly, DayOfMonth: 15},
		{Frequency: models.FrequencyMonthly, WeekOccurrence: -1, DayOfWeekInMonth: int(time.Friday)},
		{Frequency: models.FrequencyYearly, Month: 12, DayOfMonth: 25},
	}
	for _, r := range valid {
		if errs := Validate(r); len(errs) != 0 {
			t.Errorf("Validate(%+v) = %v, want no errors", r, errs)
		}
	}
}

func hasCode(errs []ValidationError, code ValidationErrorCode) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}
