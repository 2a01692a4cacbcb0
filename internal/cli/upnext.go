package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayplan/internal/models"
)

// UpNextCmd prints the single next-best task for the current moment,
// grounded on the teacher's NowCmd.
type UpNextCmd struct{}

func (c *UpNextCmd) Run(ctx *Context) error {
	now := time.Now()
	dateStr := now.Format("2006-01-02")
	nowMins := now.Hour()*60 + now.Minute()

	result, err := ctx.Store.UpNextForDate(dateStr, nowMins)
	if err != nil {
		return fmt.Errorf("failed to select up next: %w", err)
	}

	switch result.Kind {
	case models.UpNextNone:
		fmt.Printf("Now (%02d:%02d): Free time\n", now.Hour(), now.Minute())
	case models.UpNextAnchor:
		fmt.Printf("Now (%02d:%02d): You planned to be doing %s\n", now.Hour(), now.Minute(), result.TemplateID)
	case models.UpNextFlexible:
		fmt.Printf("Now (%02d:%02d): Up next is %s\n", now.Hour(), now.Minute(), result.TemplateID)
	}
	return nil
}
