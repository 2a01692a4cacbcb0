package cli

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/library"
	"github.com/julianstephens/dayplan/internal/models"
)

// TemplateAddCmd adds a new template, grounded on the teacher's TaskAddCmd.
type TemplateAddCmd struct {
	Name       string `arg:"" help:"Template name."`
	Duration   int    `help:"Duration in minutes." required:""`
	Priority   int    `help:"Priority 1 (lowest) to 5 (highest)." default:"3"`
	Mandatory  bool   `help:"Whether this task is mandatory."`
	Fixed      bool   `help:"Fixed-time scheduling instead of flexible." name:"fixed"`
	DefaultTime string `help:"HH:MM, required for --fixed." name:"default-time"`
	TimeWindow string `help:"morning|afternoon|evening|anytime, for flexible tasks." name:"time-window" default:"anytime"`
	DependsOn  string `help:"Template id this task depends on." name:"depends-on"`
}

func (c *TemplateAddCmd) Run(ctx *Context) error {
	t := models.Template{
		Name:            c.Name,
		DurationMinutes: c.Duration,
		Priority:        c.Priority,
		Mandatory:       c.Mandatory,
		IsActive:        true,
	}
	if c.Fixed {
		t.SchedulingType = models.SchedulingFixed
		t.DefaultTime = c.DefaultTime
	} else {
		t.SchedulingType = models.SchedulingFlexible
		t.TimeWindow = models.TimeWindow(c.TimeWindow)
	}
	if c.DependsOn != "" {
		t.DependsOn = &c.DependsOn
	}

	created, outcome := ctx.Store.CreateTemplate(t)
	if !outcome.Success {
		return fmt.Errorf("failed to save template: %w", outcome.Err)
	}
	fmt.Printf("Added template %q (id: %s)\n", created.Name, created.ID)
	return nil
}

// TemplateListCmd lists templates, grounded on the teacher's TaskListCmd.
type TemplateListCmd struct {
	ActiveOnly bool `help:"Show only active templates." name:"active-only"`
	ShowIDs    bool `help:"Show template IDs." name:"show-ids"`
}

func (c *TemplateListCmd) Run(ctx *Context) error {
	templates := ctx.Store.AllTemplates()
	if c.ActiveOnly {
		templates = library.Apply(templates, library.Filter{})
	}
	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	badges := library.DependencyBadges(ctx.Store.AllTemplates())

	fmt.Println("Templates:")
	for _, t := range templates {
		status := "active"
		if !t.IsActive {
			status = "inactive"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", t.ID)
		}
		fmt.Printf("  [%s] %s%s - %dm (priority %d)\n", status, t.Name, idStr, t.DurationMinutes, t.Priority)
		if t.IsFixed() {
			fmt.Printf("      Fixed: %s\n", t.DefaultTime)
		} else {
			fmt.Printf("      Window: %s\n", t.TimeWindow)
		}
		if badge, ok := badges[t.ID]; ok && badge != "ok" {
			fmt.Printf("      Dependency: %s\n", badge)
		}
	}
	return nil
}

// TemplateEditCmd patches an existing template's mutable fields.
type TemplateEditCmd struct {
	ID        string `arg:"" help:"Template id."`
	Name      string `help:"New name."`
	Duration  int    `help:"New duration in minutes."`
	Priority  int    `help:"New priority."`
}

func (c *TemplateEditCmd) Run(ctx *Context) error {
	var existing models.Template
	found := false
	for _, t := range ctx.Store.AllTemplates() {
		if t.ID == c.ID {
			existing = t
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("template with id %s not found", c.ID)
	}

	if c.Name != "" {
		existing.Name = c.Name
	}
	if c.Duration > 0 {
		existing.DurationMinutes = c.Duration
	}
	if c.Priority > 0 {
		existing.Priority = c.Priority
	}

	_, outcome := ctx.Store.UpdateTemplate(c.ID, existing)
	if !outcome.Success {
		return fmt.Errorf("failed to update template: %w", outcome.Err)
	}
	fmt.Printf("Updated template %s\n", c.ID)
	return nil
}

// TemplateDeleteCmd soft-deletes a template.
type TemplateDeleteCmd struct {
	ID string `arg:"" help:"Template id."`
}

func (c *TemplateDeleteCmd) Run(ctx *Context) error {
	outcome := ctx.Store.SoftDeleteTemplate(c.ID)
	if !outcome.Success {
		return fmt.Errorf("failed to delete template: %w", outcome.Err)
	}
	fmt.Printf("Deleted template %s\n", c.ID)
	return nil
}
