// Package scheduler implements spec.md §4.D: the ten-step deterministic
// algorithm that turns templates, per-date instances, and settings into a
// ScheduleResult. Grounded on the teacher's root-level internal/scheduler's
// timeBlock/findFreeBlocks/placeTaskInBlock shape, generalized to
// awake-window placement, dependency ordering, and crunch-time shortening.
package scheduler

import (
	"sort"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/dependency"
	"github.com/julianstephens/dayplan/internal/gaps"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/recurrence"
	"github.com/julianstephens/dayplan/internal/timeutil"
)

// Input bundles everything Generate needs, per spec.md §4.D.
type Input struct {
	Settings  models.Settings
	Templates []models.Template
	Instances []models.Instance
	Date      string

	// CurrentTimeMinutes enables step 9's crunch-time shortening when set.
	CurrentTimeMinutes *int
}

// timeBlock is the engine's internal placed-or-pending unit. Start/End are
// in "extended minutes": minutes since the wake time's calendar day,
// possibly >= 1440 when the awake window crosses midnight, so that ordinary
// integer comparison gives the correct placement order.
type timeBlock struct {
	templateID     string
	start, end     int
	isMandatory    bool
	isFixed        bool
	isFlexible     bool
	windowHint     models.TimeWindow
	shortenedToMin int
}

// Generate runs the full scheduling algorithm and returns a ScheduleResult.
// It never mutates Input's slices.
func Generate(in Input) models.ScheduleResult {
	wake, err := timeutil.ParseHHMM(in.Settings.DefaultWakeTime)
	if err != nil {
		return badInput("invalid defaultWakeTime: " + err.Error())
	}
	sleep, err := timeutil.ParseHHMM(in.Settings.DefaultSleepTime)
	if err != nil {
		return badInput("invalid defaultSleepTime: " + err.Error())
	}
	sleepExt := sleep
	if sleepExt <= wake {
		sleepExt += constants.MinutesPerDay
	}
	window := gaps.Interval{Start: wake, End: sleepExt}

	date, err := timeutil.ParseISODate(in.Date)
	if err != nil {
		return badInput("invalid date: " + err.Error())
	}

	instanceByTemplate := make(map[string]models.Instance, len(in.Instances))
	for _, inst := range in.Instances {
		if inst.Date == in.Date {
			instanceByTemplate[inst.TemplateID] = inst
		}
	}

	// Step 2+3: filter to eligible occurrences, applying instance overrides.
	var eligible []models.Template
	for _, t := range in.Templates {
		if !t.IsActive {
			continue
		}
		occurs, occErr := recurrence.Occurs(t.RecurrenceRule, date)
		if occErr != nil {
			return badInput("recurrence rule for " + t.ID + ": " + occErr.Error())
		}
		if !occurs {
			continue
		}
		if inst, ok := instanceByTemplate[t.ID]; ok && inst.IsTerminalForScheduling() {
			continue
		}
		if inst, ok := instanceByTemplate[t.ID]; ok && inst.ModifiedStartTime != "" {
			clone := t.Clone()
			clone.SchedulingType = models.SchedulingFixed
			clone.DefaultTime = inst.ModifiedStartTime
			eligible = append(eligible, clone)
			continue
		}
		eligible = append(eligible, t)
	}

	// Step 4: split anchors vs flexibles.
	var anchorTemplates, flexTemplates []models.Template
	for _, t := range eligible {
		if t.IsFixed() {
			anchorTemplates = append(anchorTemplates, t)
		} else {
			flexTemplates = append(flexTemplates, t)
		}
	}

	var advisories []models.Advisory
	success := true

	// Step 5: place anchors sorted by start, resolving mandatory overlaps.
	anchors, anchorAdvisories := placeAnchors(anchorTemplates, wake)
	advisories = append(advisories, anchorAdvisories...)

	busy := make([]gaps.Interval, 0, len(anchors)+1)
	for _, a := range anchors {
		busy = append(busy, gaps.Interval{Start: a.start, End: a.end})
	}

	// When currentTime is known, elapsed time is unavailable for new
	// flexible placement: nothing gets scheduled into the past.
	var now int
	haveNow := in.CurrentTimeMinutes != nil
	if haveNow {
		now = *in.CurrentTimeMinutes
		if now < wake {
			now += constants.MinutesPerDay
		}
		if now > window.Start {
			busy = append(busy, gaps.Interval{Start: window.Start, End: now})
		}
	}

	// Step 7: dependency-ordered flexibles, with the tie-break already
	// folded into dependency.TopoOrder.
	order, depAdvisories := dependency.TopoOrder(flexTemplates)
	for _, a := range depAdvisories {
		advisories = append(advisories, models.Advisory{Kind: a.Kind, TemplateID: a.TemplateID, Message: a.Message})
	}

	// Step 8: place each flexible in its earliest fitting free interval.
	var placedFlex []timeBlock
	var unplacedMandatory []models.Template
	for _, t := range order {
		block, ok := tryPlace(t, t.DurationMinutes, window, busy, wake)
		if ok {
			placedFlex = append(placedFlex, block)
			busy = append(busy, gaps.Interval{Start: block.start, End: block.end})
			continue
		}
		if t.Mandatory {
			unplacedMandatory = append(unplacedMandatory, t)
			advisories = append(advisories, models.Advisory{
				Kind: models.AdvisoryMandatoryUnplaced, TemplateID: t.ID,
				Message: "no free interval fits this mandatory task",
			})
		} else {
			advisories = append(advisories, models.Advisory{
				Kind: models.AdvisorySkippedForSpace, TemplateID: t.ID,
				Message: "no free interval fits this task; skipped",
			})
		}
	}

	// Step 9: crunch-time shortening. currentTime indicates remaining time
	// is tight whenever step 8 already failed to fit a mandatory at full
	// duration with elapsed time excluded above; retry each at its
	// template's minDuration, in the same dependency order.
	if haveNow && len(unplacedMandatory) > 0 {
		stillUnplaced := make([]models.Template, 0, len(unplacedMandatory))
		for _, t := range unplacedMandatory {
			if t.MinDurationMinutes == nil || *t.MinDurationMinutes < 1 {
				stillUnplaced = append(stillUnplaced, t)
				continue
			}
			effective := *t.MinDurationMinutes
			block, ok := tryPlace(t, effective, window, busy, wake)
			if !ok {
				stillUnplaced = append(stillUnplaced, t)
				continue
			}
			block.shortenedToMin = effective
			placedFlex = append(placedFlex, block)
			busy = append(busy, gaps.Interval{Start: block.start, End: block.end})
			advisories = removeMandatoryUnplaced(advisories, t.ID)
			advisories = append(advisories, models.Advisory{
				Kind: models.AdvisoryShortened, TemplateID: t.ID,
				Message:         "shortened under crunch time",
				OriginalMinutes: t.DurationMinutes,
				UsedMinutes:     effective,
			})
		}
		unplacedMandatory = stillUnplaced
	}
	if len(unplacedMandatory) > 0 {
		success = false
	}
	for _, adv := range anchorAdvisories {
		if adv.Kind == models.AdvisoryHardConflict {
			success = false
		}
	}

	// Step 10: assemble and sort by start time.
	all := make([]timeBlock, 0, len(anchors)+len(placedFlex))
	all = append(all, anchors...)
	all = append(all, placedFlex...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].start < all[j].start })

	blocks := make([]models.ScheduleBlock, 0, len(all))
	for _, b := range all {
		blocks = append(blocks, models.ScheduleBlock{
			TemplateID:     b.templateID,
			StartTime:      timeutil.FormatHHMM(b.start % constants.MinutesPerDay),
			EndTime:        timeutil.FormatHHMM(b.end % constants.MinutesPerDay),
			IsMandatory:    b.isMandatory,
			IsFixed:        b.isFixed,
			IsFlexible:     b.isFlexible,
			WindowHint:     b.windowHint,
			ShortenedToMin: b.shortenedToMin,
		})
	}

	return models.ScheduleResult{
		Success: success,
		Schedule: blocks,
		SleepSchedule: models.SleepSchedule{
			WakeTime:    in.Settings.DefaultWakeTime,
			SleepTime:   in.Settings.DefaultSleepTime,
			DurationHrs: in.Settings.DesiredSleepDurationHours,
		},
		TotalTasks:     len(eligible),
		ScheduledTasks: len(all),
		Advisories:     advisories,
	}
}

// placeAnchors sorts anchor templates by normalized start time and resolves
// mandatory-vs-mandatory overlaps per spec.md §4.D step 5.
func placeAnchors(templates []models.Template, wake int) ([]timeBlock, []models.Advisory) {
	type candidate struct {
		t     models.Template
		block timeBlock
	}
	cands := make([]candidate, 0, len(templates))
	for _, t := range templates {
		start, err := timeutil.ParseHHMM(t.DefaultTime)
		if err != nil {
			continue
		}
		if start < wake {
			start += constants.MinutesPerDay
		}
		cands = append(cands, candidate{t: t, block: timeBlock{
			templateID:  t.ID,
			start:       start,
			end:         start + t.DurationMinutes,
			isMandatory: t.Mandatory,
			isFixed:     true,
		}})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].block.start != cands[j].block.start {
			return cands[i].block.start < cands[j].block.start
		}
		return cands[i].t.ID < cands[j].t.ID
	})

	var kept []timeBlock
	var advisories []models.Advisory
	for _, c := range cands {
		conflict := -1
		for i, k := range kept {
			if intervalsOverlap(k.start, k.end, c.block.start, c.block.end) {
				conflict = i
				break
			}
		}
		if conflict == -1 {
			kept = append(kept, c.block)
			continue
		}
		if kept[conflict].isMandatory && c.block.isMandatory {
			advisories = append(advisories, models.Advisory{
				Kind: models.AdvisoryHardConflict, TemplateID: c.block.templateID,
				Message: "overlaps an earlier mandatory anchor and was dropped",
			})
			continue
		}
		kept = append(kept, c.block)
		advisories = append(advisories, models.Advisory{
			Kind: models.AdvisorySoftOverlap, TemplateID: c.block.templateID,
			Message: "overlaps another anchor; both are kept",
		})
	}
	return kept, advisories
}

// tryPlace finds the earliest free interval, intersected with t's
// timeWindow, that fits duration minutes, and returns the resulting block.
func tryPlace(t models.Template, duration int, window gaps.Interval, busy []gaps.Interval, wake int) (timeBlock, bool) {
	free := gaps.Detect(window, busy, 1)
	wanted := windowInterval(t.TimeWindow, window, wake)

	for _, g := range free {
		clipped := intersect(g, wanted)
		if clipped.End-clipped.Start >= duration {
			return timeBlock{
				templateID:  t.ID,
				start:       clipped.Start,
				end:         clipped.Start + duration,
				isMandatory: t.Mandatory,
				isFlexible:  true,
				windowHint:  t.TimeWindow,
			}, true
		}
	}
	return timeBlock{}, false
}

// windowInterval resolves a TimeWindow bucket into the extended-minute
// coordinate space and clamps it to the awake window. Anytime is the whole
// awake window per spec.md §4.D step 8.
func windowInterval(tw models.TimeWindow, window gaps.Interval, wake int) gaps.Interval {
	if tw == models.WindowAnytime || tw == "" {
		return window
	}
	var start, end int
	switch tw {
	case models.WindowMorning:
		start, end = constants.MorningStartMin, constants.MorningEndMin
	case models.WindowAfternoon:
		start, end = constants.AfternoonStartMin, constants.AfternoonEndMin
	case models.WindowEvening:
		start, end = constants.EveningStartMin, constants.EveningEndMin
	default:
		return window
	}
	if end <= wake {
		start += constants.MinutesPerDay
		end += constants.MinutesPerDay
	}
	return intersect(gaps.Interval{Start: start, End: end}, window)
}

func intersect(a, b gaps.Interval) gaps.Interval {
	start := a.Start
	if b.Start > start {
		start = b.Start
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if end < start {
		end = start
	}
	return gaps.Interval{Start: start, End: end}
}

func intervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func removeMandatoryUnplaced(advisories []models.Advisory, templateID string) []models.Advisory {
	out := advisories[:0]
	for _, a := range advisories {
		if a.Kind == models.AdvisoryMandatoryUnplaced && a.TemplateID == templateID {
			continue
		}
		out = append(out, a)
	}
	return out
}

func badInput(message string) models.ScheduleResult {
	return models.ScheduleResult{Success: false, Error: message}
}
