// Package models holds the plain value types shared across the scheduling
// and presentation pipeline: templates, recurrence rules, per-date instance
// overrides, settings, and the engine/view-model outputs derived from them.
package models

// SchedulingType discriminates a template's placement strategy.
type SchedulingType string

const (
	SchedulingFixed    SchedulingType = "fixed"
	SchedulingFlexible SchedulingType = "flexible"
)

// TimeWindow is one of the four buckets a flexible task may be confined to.
type TimeWindow string

const (
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
	WindowEvening   TimeWindow = "evening"
	WindowAnytime   TimeWindow = "anytime"
)

// Template is a reusable task definition.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	DurationMinutes int `json:"durationMinutes"`
	Priority        int `json:"priority"` // 1 (lowest) .. 5 (highest)
	Mandatory       bool `json:"mandatory"`

	SchedulingType SchedulingType `json:"schedulingType"`
	DefaultTime    string         `json:"defaultTime,omitempty"` // HH:MM, fixed only
	TimeWindow     TimeWindow     `json:"timeWindow,omitempty"`  // flexible only

	DependsOn *string `json:"dependsOn,omitempty"` // another template id

	// BufferMinutes overrides the view model's default anchor buffer for this
	// template. Visual only; the scheduler never consults it.
	BufferMinutes *int `json:"bufferMinutes,omitempty"`

	// MinDurationMinutes is the shortened duration the scheduler may fall
	// back to under crunch time (§4.D.9). Optional extension named in
	// spec.md §9's open questions; absence disables shortening for this
	// template.
	MinDurationMinutes *int `json:"minDurationMinutes,omitempty"`

	IsActive       bool            `json:"isActive"`
	RecurrenceRule *RecurrenceRule `json:"recurrenceRule,omitempty"`

	UpdatedAt int64 `json:"updatedAt,omitempty"` // epoch millis
}

// Clone returns a deep-enough copy so callers may mutate the result without
// the scheduler's inputs being affected (I5: the engine never mutates its
// inputs, but composers upstream of it may need to).
func (t Template) Clone() Template {
	clone := t
	if t.DependsOn != nil {
		id := *t.DependsOn
		clone.DependsOn = &id
	}
	if t.BufferMinutes != nil {
		v := *t.BufferMinutes
		clone.BufferMinutes = &v
	}
	if t.MinDurationMinutes != nil {
		v := *t.MinDurationMinutes
		clone.MinDurationMinutes = &v
	}
	if t.RecurrenceRule != nil {
		rule := *t.RecurrenceRule
		clone.RecurrenceRule = &rule
	}
	return clone
}

// IsFixed reports whether the template is placed by explicit clock time.
func (t Template) IsFixed() bool {
	return t.SchedulingType == SchedulingFixed
}

// IsFlexible reports whether the template is placed within a time window.
func (t Template) IsFlexible() bool {
	return t.SchedulingType == SchedulingFlexible
}
