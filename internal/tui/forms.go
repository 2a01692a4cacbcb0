package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
)

// TemplateFormModel is the huh-backed scratch state for adding/editing a
// template, grounded on the teacher's TaskFormModel shape.
type TemplateFormModel struct {
	ID              string
	Name            string
	Duration        string
	Priority        string
	Mandatory       bool
	SchedulingType  models.SchedulingType
	DefaultTime     string
	TimeWindow      models.TimeWindow
	DependsOn       string
	IsActive        bool
}

func newTemplateFormModel(t models.Template) *TemplateFormModel {
	dependsOn := ""
	if t.DependsOn != nil {
		dependsOn = *t.DependsOn
	}
	schedulingType := t.SchedulingType
	if schedulingType == "" {
		schedulingType = models.SchedulingFlexible
	}
	return &TemplateFormModel{
		ID:             t.ID,
		Name:           t.Name,
		Duration:       strconv.Itoa(t.DurationMinutes),
		Priority:       strconv.Itoa(t.Priority),
		Mandatory:      t.Mandatory,
		SchedulingType: schedulingType,
		DefaultTime:    t.DefaultTime,
		TimeWindow:     t.TimeWindow,
		DependsOn:      dependsOn,
		IsActive:       t.IsActive,
	}
}

func (fm *TemplateFormModel) toTemplate() models.Template {
	duration, _ := strconv.Atoi(fm.Duration)
	priority, _ := strconv.Atoi(fm.Priority)

	t := models.Template{
		ID:              fm.ID,
		Name:            strings.TrimSpace(fm.Name),
		DurationMinutes: duration,
		Priority:        priority,
		Mandatory:       fm.Mandatory,
		SchedulingType:  fm.SchedulingType,
		IsActive:        fm.IsActive,
	}
	if fm.SchedulingType == models.SchedulingFixed {
		t.DefaultTime = fm.DefaultTime
	} else {
		t.TimeWindow = fm.TimeWindow
	}
	if dep := strings.TrimSpace(fm.DependsOn); dep != "" {
		t.DependsOn = &dep
	}
	return t
}

// newTemplateForm builds the add/edit template huh.Form, grounded on the
// teacher's handlers.NewEditForm.
func newTemplateForm(fm *TemplateFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("duration must be a positive number of minutes")
					}
					return nil
				}),
			huh.NewInput().
				Title("Priority (1-5)").
				Value(&fm.Priority).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 || i > 5 {
						return fmt.Errorf("priority must be 1-5")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Mandatory").
				Value(&fm.Mandatory),
			huh.NewConfirm().
				Title("Active").
				Value(&fm.IsActive),
			huh.NewSelect[models.SchedulingType]().
				Title("Scheduling type").
				Options(
					huh.NewOption("Flexible (time window)", models.SchedulingFlexible),
					huh.NewOption("Fixed (clock time)", models.SchedulingFixed),
				).
				Value(&fm.SchedulingType),
			huh.NewInput().
				Title("Default time (HH:MM)").
				Description("Fixed scheduling only").
				Value(&fm.DefaultTime).
				Validate(func(s string) error {
					if fm.SchedulingType != models.SchedulingFixed || strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := time.Parse(constants.TimeFormat, s)
					if err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewSelect[models.TimeWindow]().
				Title("Time window").
				Description("Flexible scheduling only").
				Options(
					huh.NewOption("Morning", models.WindowMorning),
					huh.NewOption("Afternoon", models.WindowAfternoon),
					huh.NewOption("Evening", models.WindowEvening),
					huh.NewOption("Anytime", models.WindowAnytime),
				).
				Value(&fm.TimeWindow),
			huh.NewInput().
				Title("Depends on (template id)").
				Description("Leave empty for no dependency").
				Value(&fm.DependsOn),
		),
	).WithTheme(huh.ThemeDracula())
}

// SettingsFormModel is the huh-backed scratch state for editing settings.
type SettingsFormModel struct {
	DesiredSleepDuration string
	DefaultWakeTime      string
	DefaultSleepTime     string
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		DesiredSleepDuration: strconv.FormatFloat(s.DesiredSleepDurationHours, 'f', 1, 64),
		DefaultWakeTime:      s.DefaultWakeTime,
		DefaultSleepTime:     s.DefaultSleepTime,
	}
}

func (fm *SettingsFormModel) toSettings() models.Settings {
	hours, _ := strconv.ParseFloat(fm.DesiredSleepDuration, 64)
	return models.Settings{
		DesiredSleepDurationHours: hours,
		DefaultWakeTime:           fm.DefaultWakeTime,
		DefaultSleepTime:          fm.DefaultSleepTime,
	}
}

func newSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Desired sleep duration (hours)").
				Value(&fm.DesiredSleepDuration).
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if h < 4 || h > 12 {
						return fmt.Errorf("must be between 4 and 12 hours")
					}
					return nil
				}),
			huh.NewInput().
				Title("Default wake time (HH:MM)").
				Value(&fm.DefaultWakeTime).
				Validate(func(s string) error {
					_, err := time.Parse(constants.TimeFormat, s)
					if err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Default sleep time (HH:MM)").
				Value(&fm.DefaultSleepTime).
				Validate(func(s string) error {
					_, err := time.Parse(constants.TimeFormat, s)
					if err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
