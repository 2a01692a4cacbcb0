// Package constants collects the formats, defaults, and file-path
// conventions shared across the module, mirroring the teacher's own
// single-package constants layout.
package constants

const (
	AppName           = "dayplan"
	DefaultConfigPath = "~/.config/dayplan/dayplan.db"
	Version           = "v0.1.0"

	// DateFormat is the standard local date format (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// TimeFormat is the standard local wall-clock time format (HH:MM).
	TimeFormat = "15:04"

	// Defaults for Settings, applied by storage adapters on first init.
	DefaultDesiredSleepHours = 8.0
	DefaultWakeTime          = "06:30"
	DefaultSleepTime         = "23:00"

	// Defaults for ResponsiveParams (§6), matching the desktop profile.
	DefaultRowHeight                = 60.0 // pixels per hour
	DefaultLaneCap                  = 3
	DefaultGapMinMinutesDesktop     = 5
	DefaultGapMinMinutesMobile      = 10
	DefaultAnchorBufferMinutes      = 8

	// Time window boundaries (§ GLOSSARY), in minutes since midnight.
	MorningStartMin   = 6 * 60
	MorningEndMin     = 12 * 60
	AfternoonStartMin = 12 * 60
	AfternoonEndMin   = 18 * 60
	EveningStartMin   = 18 * 60
	EveningEndMin     = 23 * 60
	AnytimeStartMin   = 6 * 60
	AnytimeEndMin     = 23 * 60

	MinutesPerDay = 1440
)
