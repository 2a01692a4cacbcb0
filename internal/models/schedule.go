package models

// AdvisoryKind enumerates the engine's soft-failure vocabulary (spec.md §7).
type AdvisoryKind string

const (
	AdvisoryHardConflict       AdvisoryKind = "HardConflict"
	AdvisorySoftOverlap        AdvisoryKind = "SoftOverlap"
	AdvisoryMandatoryUnplaced  AdvisoryKind = "MandatoryUnplaced"
	AdvisorySkippedForSpace    AdvisoryKind = "SkippedForSpace"
	AdvisoryShortened          AdvisoryKind = "Shortened"
	AdvisoryDependencyMissing  AdvisoryKind = "DependencyMissing"
	AdvisoryDependencyCycle    AdvisoryKind = "DependencyCycle"
	AdvisoryDependencyDisabled AdvisoryKind = "DependencyDisabled"
)

// Advisory is a structured, non-fatal problem surfaced alongside a result.
type Advisory struct {
	Kind       AdvisoryKind `json:"kind"`
	TemplateID string       `json:"templateId,omitempty"`
	Message    string       `json:"message"`

	// OriginalMinutes/UsedMinutes are populated for AdvisoryShortened.
	OriginalMinutes int `json:"originalMinutes,omitempty"`
	UsedMinutes     int `json:"usedMinutes,omitempty"`
}

// ScheduleBlock is a single placed occurrence in a day's schedule.
type ScheduleBlock struct {
	TemplateID      string `json:"templateId"`
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM
	OverrunMinutes  int    `json:"overrunMinutes,omitempty"`
	IsMandatory     bool   `json:"isMandatory"`
	IsFixed         bool   `json:"isFixed"`
	IsFlexible      bool   `json:"isFlexible"`
	WindowHint      TimeWindow `json:"windowHint,omitempty"`
	ShortenedToMin  int    `json:"shortenedToMinutes,omitempty"`
}

// SleepSchedule summarizes the night surrounding the planned day.
type SleepSchedule struct {
	WakeTime    string  `json:"wakeTime"`
	SleepTime   string  `json:"sleepTime"`
	DurationHrs float64 `json:"duration"`
}

// ScheduleResult is the scheduling engine's output (§3, §4.D).
type ScheduleResult struct {
	Success       bool            `json:"success"`
	Schedule      []ScheduleBlock `json:"schedule"`
	SleepSchedule SleepSchedule   `json:"sleepSchedule"`
	TotalTasks    int             `json:"totalTasks"`
	ScheduledTasks int            `json:"scheduledTasks"`
	Error         string          `json:"error,omitempty"`
	Advisories    []Advisory      `json:"advisories,omitempty"`
}
