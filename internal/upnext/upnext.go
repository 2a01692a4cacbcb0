// Package upnext implements spec.md §4.I: choosing a single next-best task
// for the current moment. Grounded on the teacher's
// internal/tui/components/now "find the slot containing now" search,
// extended with the ranked-candidate fallback spec.md §4.I describes for
// when no anchor is currently active.
package upnext

import (
	"sort"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/recurrence"
	"github.com/julianstephens/dayplan/internal/timeutil"
)

// Input bundles everything Select needs, per spec.md §4.I.
type Input struct {
	Templates []models.Template
	Instances []models.Instance
	Schedule  models.ScheduleResult
	Date      string
	NowMins   int
}

// Select returns the single next-best suggestion for the current moment.
func Select(in Input) models.UpNextResult {
	date, err := timeutil.ParseISODate(in.Date)
	if err != nil {
		return models.UpNextResult{Kind: models.UpNextNone}
	}

	blockByID := make(map[string]models.ScheduleBlock, len(in.Schedule.Schedule))
	for _, b := range in.Schedule.Schedule {
		blockByID[b.TemplateID] = b
	}

	// Step 1: an active anchor, fixed or manually overridden, containing now.
	for _, b := range in.Schedule.Schedule {
		if !b.IsFixed {
			continue
		}
		start, errS := timeutil.ParseHHMM(b.StartTime)
		end, errE := timeutil.ParseHHMM(b.EndTime)
		if errS != nil || errE != nil {
			continue
		}
		if start <= in.NowMins && in.NowMins < end {
			return models.UpNextResult{Kind: models.UpNextAnchor, TemplateID: b.TemplateID}
		}
	}

	instanceByTemplate := make(map[string]models.Instance, len(in.Instances))
	for _, inst := range in.Instances {
		if inst.Date == in.Date {
			instanceByTemplate[inst.TemplateID] = inst
		}
	}
	templateByID := make(map[string]models.Template, len(in.Templates))
	for _, t := range in.Templates {
		templateByID[t.ID] = t
	}

	windowRemaining := windowRemainingMinutes(in.NowMins)

	type candidate struct {
		t     models.Template
		start string // scheduled start, or a sentinel if unplaced
	}
	var candidates []candidate

	for _, t := range in.Templates {
		if !t.IsFlexible() || !t.IsActive {
			continue
		}
		occurs, occErr := recurrence.Occurs(t.RecurrenceRule, date)
		if occErr != nil || !occurs {
			continue
		}
		inst, hasInst := instanceByTemplate[t.ID]
		if hasInst && inst.IsTerminalForScheduling() {
			continue
		}
		if hasInst && inst.ModifiedStartTime != "" {
			if mins, errM := timeutil.ParseHHMM(inst.ModifiedStartTime); errM == nil && mins > in.NowMins {
				continue
			}
		}
		if !dependencyReady(t, templateByID, instanceByTemplate, blockByID, in.NowMins) {
			continue
		}
		start := "99:99"
		if b, ok := blockByID[t.ID]; ok {
			start = b.StartTime
		}
		candidates = append(candidates, candidate{t: t, start: start})
	}

	if len(candidates) == 0 {
		return models.UpNextResult{Kind: models.UpNextNone}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].t, candidates[j].t
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		aFits := a.DurationMinutes <= windowRemaining
		bFits := b.DurationMinutes <= windowRemaining
		if aFits != bFits {
			return aFits
		}
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes < b.DurationMinutes
		}
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return models.UpNextResult{Kind: models.UpNextFlexible, TemplateID: candidates[0].t.ID}
}

// dependencyReady reports whether t's prerequisite (if any) is satisfied:
// completed today, or its scheduled block already ended before now.
func dependencyReady(t models.Template, templateByID map[string]models.Template, instanceByTemplate map[string]models.Instance, blockByID map[string]models.ScheduleBlock, nowMins int) bool {
	if t.DependsOn == nil || *t.DependsOn == "" {
		return true
	}
	depID := *t.DependsOn
	if inst, ok := instanceByTemplate[depID]; ok && inst.Status == models.StatusCompleted {
		return true
	}
	if b, ok := blockByID[depID]; ok {
		if end, err := timeutil.ParseHHMM(b.EndTime); err == nil && end <= nowMins {
			return true
		}
	}
	return false
}

// windowRemainingMinutes returns the minutes left in now's time-of-day
// bucket (morning/afternoon/evening), or a day-scale value outside those
// buckets where duration never meaningfully constrains ranking.
func windowRemainingMinutes(nowMins int) int {
	switch {
	case nowMins >= constants.MorningStartMin && nowMins < constants.MorningEndMin:
		return constants.MorningEndMin - nowMins
	case nowMins >= constants.AfternoonStartMin && nowMins < constants.AfternoonEndMin:
		return constants.AfternoonEndMin - nowMins
	case nowMins >= constants.EveningStartMin && nowMins < constants.EveningEndMin:
		return constants.EveningEndMin - nowMins
	default:
		return constants.MinutesPerDay
	}
}
