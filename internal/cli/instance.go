package cli

import (
	"fmt"
	"time"
)

// InstanceMarkCmd marks a template's occurrence for a date as completed.
type InstanceMarkCmd struct {
	TemplateID string `arg:"" help:"Template id."`
	Date       string `arg:"" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *InstanceMarkCmd) Run(ctx *Context) error {
	dateStr, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	outcome := ctx.Store.MarkCompleted(c.TemplateID, dateStr, time.Now().UnixMilli())
	if !outcome.Success {
		return fmt.Errorf("failed to mark instance: %w", outcome.Err)
	}
	fmt.Printf("Marked %s complete for %s\n", c.TemplateID, dateStr)
	return nil
}

// InstanceUndoCmd reverts a template's occurrence for a date back to
// pending.
type InstanceUndoCmd struct {
	TemplateID string `arg:"" help:"Template id."`
	Date       string `arg:"" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *InstanceUndoCmd) Run(ctx *Context) error {
	dateStr, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	outcome := ctx.Store.MarkPending(c.TemplateID, dateStr)
	if !outcome.Success {
		return fmt.Errorf("failed to undo instance: %w", outcome.Err)
	}
	fmt.Printf("Reverted %s to pending for %s\n", c.TemplateID, dateStr)
	return nil
}
