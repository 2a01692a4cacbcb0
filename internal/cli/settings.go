package cli

import (
	"fmt"
	"strconv"
)

// SettingsShowCmd prints the current sleep/wake settings.
type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	s := ctx.Store.Settings()
	fmt.Printf("Desired sleep duration: %.1f hours\n", s.DesiredSleepDurationHours)
	fmt.Printf("Default wake time: %s\n", s.DefaultWakeTime)
	fmt.Printf("Default sleep time: %s\n", s.DefaultSleepTime)
	return nil
}

// SettingsSetCmd updates one sleep/wake setting at a time, grounded on the
// teacher's key/value settings CLI shape.
type SettingsSetCmd struct {
	Key   string `arg:"" help:"desiredSleepDuration|defaultWakeTime|defaultSleepTime"`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	s := ctx.Store.Settings()
	switch c.Key {
	case "desiredSleepDuration":
		hours, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return fmt.Errorf("invalid hours value %q: %w", c.Value, err)
		}
		s.DesiredSleepDurationHours = hours
	case "defaultWakeTime":
		s.DefaultWakeTime = c.Value
	case "defaultSleepTime":
		s.DefaultSleepTime = c.Value
	default:
		return fmt.Errorf("unknown setting key: %s", c.Key)
	}

	outcome := ctx.Store.SaveSettings(s)
	if !outcome.Success {
		return fmt.Errorf("failed to save settings: %w", outcome.Err)
	}
	fmt.Printf("Updated %s\n", c.Key)
	return nil
}
