package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayplan/internal/constants"
)

// ScheduleCmd prints the generated schedule for a date, grounded on the
// teacher's PlanCmd date-argument handling.
type ScheduleCmd struct {
	Date string `arg:"" help:"Date to schedule (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	dateStr, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	result, err := ctx.Store.GenerateScheduleForDate(dateStr, nil)
	if err != nil {
		return fmt.Errorf("failed to generate schedule: %w", err)
	}

	if len(result.Schedule) == 0 {
		fmt.Printf("No scheduled tasks for %s.\n", dateStr)
	} else {
		fmt.Printf("Schedule for %s:\n", dateStr)
		for _, block := range result.Schedule {
			marker := " "
			if block.IsMandatory {
				marker = "*"
			}
			fmt.Printf("  %s %s–%s  %s\n", marker, block.StartTime, block.EndTime, block.TemplateID)
			if block.ShortenedToMin > 0 {
				fmt.Printf("      (shortened to %d min)\n", block.ShortenedToMin)
			}
		}
	}

	for _, adv := range result.Advisories {
		fmt.Printf("  ! %s: %s\n", adv.Kind, adv.Message)
	}

	if !result.Success {
		fmt.Printf("\n%d of %d tasks could not be placed.\n", result.TotalTasks-result.ScheduledTasks, result.TotalTasks)
	}

	return nil
}

func resolveDate(arg string) (string, error) {
	if arg == "today" {
		return time.Now().Format(constants.DateFormat), nil
	}
	parsed, err := time.Parse(constants.DateFormat, arg)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return parsed.Format(constants.DateFormat), nil
}
