// Package ports declares the capability interfaces spec.md §6 names: the
// narrow boundary between the pure scheduling/presentation core and the
// external collaborators (storage, sync, the host UI) that implement them.
// Grounded on the shape of the teacher's internal/storage/interface.go
// Provider interface, narrowed to exactly what this core consumes — its
// habit/alert/OT surface belongs to features out of scope here.
package ports

import "github.com/julianstephens/dayplan/internal/models"

// InstanceStore persists per-date template overrides.
type InstanceStore interface {
	ListByDate(date string) ([]models.Instance, error)
	Upsert(instance models.Instance) error
	Remove(instanceID string) error
}

// TemplateStore persists the reusable task library.
type TemplateStore interface {
	List() ([]models.Template, error)
	Create(template models.Template) (models.Template, error)
	Update(id string, patch models.Template) (models.Template, error)
	SoftDelete(id string) error
	Duplicate(id string) (models.Template, error)
}

// SettingsStore persists the single user's sleep/wake configuration.
type SettingsStore interface {
	Get() (models.Settings, error)
	Save(settings models.Settings) (models.Settings, error)
}

// ScheduleCache is an optional memoization boundary for generated schedules.
type ScheduleCache interface {
	GetCached(date string) (models.ScheduleResult, bool)
	PutCached(date string, result models.ScheduleResult)
}

// Clock reports the host's local wall-clock moment.
type Clock interface {
	Now() (dateISO string, minutes int)
}

// ResponsiveParams is provided by the UI layer and consumed by the view
// model (spec.md §6).
type ResponsiveParams struct {
	RowHeight                  float64
	LaneCap                    int
	GapMinMinutes              int
	AnchorBufferDefaultMinutes int
	PrefersReducedMotion       bool
}
