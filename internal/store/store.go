// Package store implements spec.md §4.J: the in-memory composer that sits
// between the pure core (recurrence, dependency, scheduler, viewmodel,
// nowoverlay, upnext, library) and the external ports. It owns the
// authoritative in-process copy of templates, settings, and per-date
// instance overrides, and memoizes the otherwise-pure schedule computation
// per date. Grounded on the teacher's SQLiteStore façade
// (daylit-cli/internal/storage/sqlite_wrapper.go): a thin struct exposing
// named getter/setter methods over a mutable collection, extended here with
// a structural-hash memoization cache spec.md §4.J calls for.
package store

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/dayplan/internal/errtax"
	"github.com/julianstephens/dayplan/internal/library"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/nowoverlay"
	"github.com/julianstephens/dayplan/internal/ports"
	"github.com/julianstephens/dayplan/internal/scheduler"
	"github.com/julianstephens/dayplan/internal/upnext"
	"github.com/julianstephens/dayplan/internal/viewmodel"
)

// PersistOutcome models the async persistence boundary spec.md §5 describes
// without requiring the core to spawn goroutines: a mutator computes its new
// in-memory state synchronously, then reports whether the matching write to
// the configured port succeeded.
type PersistOutcome struct {
	Success bool
	Err     *errtax.Error
}

// scheduleCacheEntry pairs a memoized result with the structural hash of the
// inputs that produced it.
type scheduleCacheEntry struct {
	hash   uint64
	result models.ScheduleResult
}

// Store is the in-memory composer. It is not safe for concurrent use from
// multiple goroutines; the CLI and TUI adapters that embed it are expected
// to serialize access the way the teacher's own bubbletea update loop does.
type Store struct {
	instances ports.InstanceStore
	templates ports.TemplateStore
	settings  ports.SettingsStore

	vmParams ports.ResponsiveParams

	currentSettings models.Settings
	currentTemplate []models.Template
	instancesByDate map[string][]models.Instance

	filter  library.Filter
	sortKey library.SortKey

	scheduleCache map[string]scheduleCacheEntry
}

// New builds a Store seeded from the given ports. Callers typically call
// Load immediately afterward to hydrate it from persisted state.
func New(instances ports.InstanceStore, templates ports.TemplateStore, settings ports.SettingsStore, vmParams ports.ResponsiveParams) *Store {
	return &Store{
		instances:       instances,
		templates:       templates,
		settings:        settings,
		vmParams:        vmParams,
		instancesByDate: make(map[string][]models.Instance),
		scheduleCache:   make(map[string]scheduleCacheEntry),
		sortKey:         library.SortByName,
	}
}

// Load hydrates the composer's in-memory state from the settings and
// template ports. Per-date instances are loaded lazily by InstancesForDate.
func (s *Store) Load() error {
	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	s.currentSettings = settings

	templates, err := s.templates.List()
	if err != nil {
		return err
	}
	s.currentTemplate = templates
	return nil
}

// Settings returns the currently loaded settings.
func (s *Store) Settings() models.Settings {
	return s.currentSettings
}

// SaveSettings persists new settings, updating in-memory state only on
// success, and invalidates every memoized schedule since the awake window
// they were built against may have changed.
func (s *Store) SaveSettings(next models.Settings) PersistOutcome {
	saved, err := s.settings.Save(next)
	if err != nil {
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "settings", err)}
	}
	s.currentSettings = saved
	s.scheduleCache = make(map[string]scheduleCacheEntry)
	return PersistOutcome{Success: true}
}

// Templates returns the library view: the full template set with the
// current filter and sort applied. Callers that need the raw, unfiltered
// set for scheduling should use AllTemplates.
func (s *Store) Templates() []models.Template {
	filtered := library.Apply(s.currentTemplate, s.filter)
	return library.Sort(filtered, s.sortKey)
}

// AllTemplates returns every loaded template, unfiltered, in load order.
func (s *Store) AllTemplates() []models.Template {
	out := make([]models.Template, len(s.currentTemplate))
	copy(out, s.currentTemplate)
	return out
}

// SetFilter replaces the library view's filter state.
func (s *Store) SetFilter(f library.Filter) {
	s.filter = f
}

// SetSortKey replaces the library view's sort order.
func (s *Store) SetSortKey(key library.SortKey) {
	s.sortKey = key
}

// CreateTemplate assigns a fresh uuid-based id, persists the template, and
// adds it to the in-memory set on success.
func (s *Store) CreateTemplate(t models.Template) (models.Template, PersistOutcome) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	created, err := s.templates.Create(t)
	if err != nil {
		return models.Template{}, PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "template", err)}
	}
	s.currentTemplate = append(s.currentTemplate, created)
	s.invalidateAll()
	return created, PersistOutcome{Success: true}
}

// UpdateTemplate optimistically applies patch to the in-memory copy, then
// persists it; on failure the in-memory copy is reverted.
func (s *Store) UpdateTemplate(id string, patch models.Template) (models.Template, PersistOutcome) {
	idx := s.indexOfTemplate(id)
	if idx < 0 {
		return models.Template{}, PersistOutcome{Success: false, Err: errtax.New(errtax.CodeBadInput, "template not found: "+id)}
	}
	previous := s.currentTemplate[idx]
	s.currentTemplate[idx] = patch

	updated, err := s.templates.Update(id, patch)
	if err != nil {
		s.currentTemplate[idx] = previous
		return models.Template{}, PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "template", err)}
	}
	s.currentTemplate[idx] = updated
	s.invalidateAll()
	return updated, PersistOutcome{Success: true}
}

// SoftDeleteTemplate marks a template inactive optimistically, then
// persists the removal; it is never spliced out of the in-memory set so
// that past instances referencing it keep resolving.
func (s *Store) SoftDeleteTemplate(id string) PersistOutcome {
	idx := s.indexOfTemplate(id)
	if idx < 0 {
		return PersistOutcome{Success: false, Err: errtax.New(errtax.CodeBadInput, "template not found: "+id)}
	}
	previous := s.currentTemplate[idx]
	s.currentTemplate[idx].IsActive = false

	if err := s.templates.SoftDelete(id); err != nil {
		s.currentTemplate[idx] = previous
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "template", err)}
	}
	s.invalidateAll()
	return PersistOutcome{Success: true}
}

// DuplicateTemplate asks the port for a copy with a fresh id and appends it
// to the in-memory set on success.
func (s *Store) DuplicateTemplate(id string) (models.Template, PersistOutcome) {
	dup, err := s.templates.Duplicate(id)
	if err != nil {
		return models.Template{}, PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "template", err)}
	}
	s.currentTemplate = append(s.currentTemplate, dup)
	s.invalidateAll()
	return dup, PersistOutcome{Success: true}
}

func (s *Store) indexOfTemplate(id string) int {
	for i, t := range s.currentTemplate {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// InstancesForDate returns the stable, cached slice of overrides for date,
// loading it from the port on first access. The returned slice is owned by
// the store; callers must not mutate it.
func (s *Store) InstancesForDate(date string) ([]models.Instance, error) {
	if cached, ok := s.instancesByDate[date]; ok {
		return cached, nil
	}
	loaded, err := s.instances.ListByDate(date)
	if err != nil {
		return nil, err
	}
	s.instancesByDate[date] = loaded
	return loaded, nil
}

// UpsertInstance writes an override optimistically into the per-date cache,
// then persists it; on failure the cache entry is reverted to its prior
// value (or removed, if there was none).
func (s *Store) UpsertInstance(instance models.Instance) PersistOutcome {
	if instance.ID == "" {
		instance.ID = models.InstanceID(instance.Date, instance.TemplateID)
	}
	existing, _ := s.InstancesForDate(instance.Date)
	previous, hadPrevious := findInstance(existing, instance.TemplateID)

	next := upsertInSlice(existing, instance)
	s.instancesByDate[instance.Date] = next

	if err := s.instances.Upsert(instance); err != nil {
		if hadPrevious {
			s.instancesByDate[instance.Date] = upsertInSlice(next, previous)
		} else {
			s.instancesByDate[instance.Date] = removeInstance(next, instance.TemplateID)
		}
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "instance", err)}
	}
	delete(s.scheduleCache, instance.Date)
	return PersistOutcome{Success: true}
}

// ToggleCompletion flips a template's status for date between pending and
// completed. Applying it twice returns the instance to pending, matching
// the round-trip property spec.md §8 requires of status mutations.
func (s *Store) ToggleCompletion(templateID, date string, nowMillis int64) PersistOutcome {
	existing, err := s.InstancesForDate(date)
	if err != nil {
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "instance", err)}
	}
	current, ok := findInstance(existing, templateID)
	if !ok {
		current = models.Instance{
			ID:         models.InstanceID(date, templateID),
			TemplateID: templateID,
			Date:       date,
			Status:     models.StatusPending,
		}
	}
	if current.Status == models.StatusCompleted {
		current.Status = models.StatusPending
		current.CompletedAt = nil
	} else {
		current.Status = models.StatusCompleted
		completedAt := nowMillis
		current.CompletedAt = &completedAt
	}
	return s.UpsertInstance(current)
}

// MarkCompleted sets a template's status for date to completed,
// idempotently (re-marking an already-completed instance is a no-op write).
func (s *Store) MarkCompleted(templateID, date string, nowMillis int64) PersistOutcome {
	existing, err := s.InstancesForDate(date)
	if err != nil {
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "instance", err)}
	}
	current, ok := findInstance(existing, templateID)
	if !ok {
		current = models.Instance{ID: models.InstanceID(date, templateID), TemplateID: templateID, Date: date}
	}
	current.Status = models.StatusCompleted
	completedAt := nowMillis
	current.CompletedAt = &completedAt
	return s.UpsertInstance(current)
}

// MarkPending reverts a template's status for date back to pending,
// idempotently.
func (s *Store) MarkPending(templateID, date string) PersistOutcome {
	existing, err := s.InstancesForDate(date)
	if err != nil {
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "instance", err)}
	}
	current, ok := findInstance(existing, templateID)
	if !ok {
		current = models.Instance{ID: models.InstanceID(date, templateID), TemplateID: templateID, Date: date}
	}
	current.Status = models.StatusPending
	current.CompletedAt = nil
	return s.UpsertInstance(current)
}

// RemoveInstance deletes a date's override for templateID, reverting the
// in-memory cache on persistence failure.
func (s *Store) RemoveInstance(templateID, date string) PersistOutcome {
	existing, err := s.InstancesForDate(date)
	if err != nil {
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "instance", err)}
	}
	previous, hadPrevious := findInstance(existing, templateID)
	s.instancesByDate[date] = removeInstance(existing, templateID)

	if err := s.instances.Remove(models.InstanceID(date, templateID)); err != nil {
		if hadPrevious {
			s.instancesByDate[date] = upsertInSlice(s.instancesByDate[date], previous)
		}
		return PersistOutcome{Success: false, Err: errtax.Wrap(errtax.CodePersistFailed, "instance", err)}
	}
	delete(s.scheduleCache, date)
	return PersistOutcome{Success: true}
}

// GenerateScheduleForDate returns the memoized schedule for date, recomputing
// only when the structural hash of its pure inputs has changed since the
// last call.
func (s *Store) GenerateScheduleForDate(date string, currentTimeMinutes *int) (models.ScheduleResult, error) {
	instances, err := s.InstancesForDate(date)
	if err != nil {
		return models.ScheduleResult{}, err
	}

	hashInput := struct {
		Templates []models.Template
		Instances []models.Instance
		Settings  models.Settings
		Date      string
		Now       *int
	}{s.currentTemplate, instances, s.currentSettings, date, currentTimeMinutes}

	hash, err := hashstructure.Hash(hashInput, hashstructure.FormatV2, nil)
	if err != nil {
		return models.ScheduleResult{}, errtax.Wrap(errtax.CodeBadInput, "schedule", err)
	}

	if cached, ok := s.scheduleCache[date]; ok && cached.hash == hash {
		return cached.result, nil
	}

	result := scheduler.Generate(scheduler.Input{
		Settings:           s.currentSettings,
		Templates:          s.currentTemplate,
		Instances:          instances,
		Date:               date,
		CurrentTimeMinutes: currentTimeMinutes,
	})
	s.scheduleCache[date] = scheduleCacheEntry{hash: hash, result: result}
	return result, nil
}

// BuildTimelineForDate composes the memoized schedule into a static view
// model using the store's configured responsive params.
func (s *Store) BuildTimelineForDate(date string, currentTimeMinutes *int) (models.TimelineVM, error) {
	result, err := s.GenerateScheduleForDate(date, currentTimeMinutes)
	if err != nil {
		return models.TimelineVM{}, err
	}
	params := viewmodel.Params{
		RowHeight:                  s.vmParams.RowHeight,
		LaneCap:                    s.vmParams.LaneCap,
		GapMinMinutes:              s.vmParams.GapMinMinutes,
		AnchorBufferDefaultMinutes: s.vmParams.AnchorBufferDefaultMinutes,
	}
	return viewmodel.BuildStatic(result, s.currentTemplate, s.currentSettings, params), nil
}

// ApplyNowOverlay layers the current-moment overlay onto a previously built
// static view model for date.
func (s *Store) ApplyNowOverlay(date string, staticVM models.TimelineVM, isToday bool, nowMins int) (models.NowOverlay, error) {
	instances, err := s.InstancesForDate(date)
	if err != nil {
		return models.NowOverlay{}, err
	}
	completedOrSkipped := make(map[string]bool, len(instances))
	for _, inst := range instances {
		if inst.Status == models.StatusCompleted || inst.Status == models.StatusSkipped {
			completedOrSkipped[inst.TemplateID] = true
		}
	}
	return nowoverlay.Apply(staticVM, nowoverlay.Input{
		IsToday:            isToday,
		NowMins:            nowMins,
		RowHeight:          s.vmParams.RowHeight,
		CompletedOrSkipped: completedOrSkipped,
	}), nil
}

// UpNextForDate selects the next-best task for date at nowMins.
func (s *Store) UpNextForDate(date string, nowMins int) (models.UpNextResult, error) {
	schedule, err := s.GenerateScheduleForDate(date, &nowMins)
	if err != nil {
		return models.UpNextResult{}, err
	}
	instances, err := s.InstancesForDate(date)
	if err != nil {
		return models.UpNextResult{}, err
	}
	return upnext.Select(upnext.Input{
		Templates: s.currentTemplate,
		Instances: instances,
		Schedule:  schedule,
		Date:      date,
		NowMins:   nowMins,
	}), nil
}

func (s *Store) invalidateAll() {
	s.scheduleCache = make(map[string]scheduleCacheEntry)
}

func findInstance(instances []models.Instance, templateID string) (models.Instance, bool) {
	for _, inst := range instances {
		if inst.TemplateID == templateID {
			return inst, true
		}
	}
	return models.Instance{}, false
}

func upsertInSlice(instances []models.Instance, next models.Instance) []models.Instance {
	out := make([]models.Instance, 0, len(instances)+1)
	replaced := false
	for _, inst := range instances {
		if inst.TemplateID == next.TemplateID {
			out = append(out, next)
			replaced = true
			continue
		}
		out = append(out, inst)
	}
	if !replaced {
		out = append(out, next)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TemplateID < out[j].TemplateID })
	return out
}

func removeInstance(instances []models.Instance, templateID string) []models.Instance {
	out := make([]models.Instance, 0, len(instances))
	for _, inst := range instances {
		if inst.TemplateID != templateID {
			out = append(out, inst)
		}
	}
	return out
}
