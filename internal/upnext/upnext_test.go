package upnext

import (
	"testing"

	"github.com/julianstephens/dayplan/internal/models"
)

func flex(id string, priority, duration int, dependsOn *string) models.Template {
	return models.Template{
		ID: id, Name: id, Priority: priority, DurationMinutes: duration,
		SchedulingType: models.SchedulingFlexible, TimeWindow: models.WindowAnytime, IsActive: true,
		DependsOn: dependsOn,
	}
}

func strp(s string) *string { return &s }

func TestSelect_ActiveAnchorWins(t *testing.T) {
	schedule := models.ScheduleResult{Schedule: []models.ScheduleBlock{
		{TemplateID: "anchor", StartTime: "09:00", EndTime: "10:00", IsFixed: true},
	}}
	result := Select(Input{Templates: nil, Schedule: schedule, Date: "2025-03-01", NowMins: 9*60 + 30})
	if result.Kind != models.UpNextAnchor || result.TemplateID != "anchor" {
		t.Errorf("got %+v, want anchor:anchor", result)
	}
}

func TestSelect_NoActiveAnchorFallsBackToFlexible(t *testing.T) {
	templates := []models.Template{flex("a", 3, 30, nil)}
	result := Select(Input{Templates: templates, Date: "2025-03-01", NowMins: 9 * 60})
	if result.Kind != models.UpNextFlexible || result.TemplateID != "a" {
		t.Errorf("got %+v, want flexible:a", result)
	}
}

func TestSelect_RanksByPriorityDesc(t *testing.T) {
	templates := []models.Template{flex("low", 1, 30, nil), flex("high", 5, 30, nil)}
	result := Select(Input{Templates: templates, Date: "2025-03-01", NowMins: 9 * 60})
	if result.TemplateID != "high" {
		t.Errorf("got %s, want high", result.TemplateID)
	}
}

func TestSelect_TieBreakByNameThenID(t *testing.T) {
	templates := []models.Template{flex("b", 3, 30, nil), flex("a", 3, 30, nil)}
	result := Select(Input{Templates: templates, Date: "2025-03-01", NowMins: 9 * 60})
	if result.TemplateID != "a" {
		t.Errorf("got %s, want a (name asc)", result.TemplateID)
	}
}

// I8: Up Next never suggests a template in {completed, skipped, postponed}.
func TestSelect_I8_ExcludesTerminalStatuses(t *testing.T) {
	templates := []models.Template{flex("done", 5, 30, nil), flex("available", 1, 30, nil)}
	instances := []models.Instance{
		{TemplateID: "done", Date: "2025-03-01", Status: models.StatusCompleted},
	}
	result := Select(Input{Templates: templates, Instances: instances, Date: "2025-03-01", NowMins: 9 * 60})
	if result.TemplateID != "available" {
		t.Errorf("got %s, want available (done is completed)", result.TemplateID)
	}
}

func TestSelect_DependencyNotReadyExcluded(t *testing.T) {
	templates := []models.Template{
		flex("prereq", 3, 30, nil),
		flex("dependent", 5, 30, strp("prereq")),
	}
	// prereq hasn't been completed and has no scheduled block yet.
	result := Select(Input{Templates: templates, Date: "2025-03-01", NowMins: 9 * 60})
	if result.TemplateID != "prereq" {
		t.Errorf("got %s, want prereq (dependent isn't ready)", result.TemplateID)
	}
}

func TestSelect_DependencyReadyWhenPrereqCompleted(t *testing.T) {
	templates := []models.Template{
		flex("prereq", 1, 30, nil),
		flex("dependent", 5, 30, strp("prereq")),
	}
	instances := []models.Instance{
		{TemplateID: "prereq", Date: "2025-03-01", Status: models.StatusCompleted},
	}
	result := Select(Input{Templates: templates, Instances: instances, Date: "2025-03-01", NowMins: 9 * 60})
	if result.TemplateID != "dependent" {
		t.Errorf("got %s, want dependent now that prereq is completed", result.TemplateID)
	}
}

func TestSelect_NoneWhenNoCandidates(t *testing.T) {
	result := Select(Input{Date: "2025-03-01", NowMins: 9 * 60})
	if result.Kind != models.UpNextNone {
		t.Errorf("got %+v, want none", result)
	}
}

func TestSelect_PrefersShorterWhenWindowTight(t *testing.T) {
	// Same priority, now is 11:50 (10 minutes left in the morning bucket).
	templates := []models.Template{flex("long", 3, 60, nil), flex("short", 3, 10, nil)}
	result := Select(Input{Templates: templates, Date: "2025-03-01", NowMins: 11*60 + 50})
	if result.TemplateID != "short" {
		t.Errorf("got %s, want short when the remaining window can't fit long", result.TemplateID)
	}
}
