package viewmodel

import (
	"testing"

	"github.com/julianstephens/dayplan/internal/models"
)

func settings() models.Settings {
	return models.Settings{DesiredSleepDurationHours: 7.5, DefaultWakeTime: "06:30", DefaultSleepTime: "23:00"}
}

func block(id, start, end string, mandatory, fixed, flexible bool) models.ScheduleBlock {
	return models.ScheduleBlock{TemplateID: id, StartTime: start, EndTime: end, IsMandatory: mandatory, IsFixed: fixed, IsFlexible: flexible}
}

// S5: four overlapping flexible blocks 09:00-10:00, laneCap=2 -> 2 visible,
// 2 hidden, one badge with count=2 and range [09:00,10:00].
func TestBuildStatic_S5_LaneOverflowBadge(t *testing.T) {
	result := models.ScheduleResult{Schedule: []models.ScheduleBlock{
		block("a", "09:00", "10:00", false, false, true),
		block("b", "09:00", "10:00", false, false, true),
		block("c", "09:00", "10:00", false, false, true),
		block("d", "09:00", "10:00", false, false, true),
	}}
	vm := BuildStatic(result, nil, settings(), Params{RowHeight: 60, LaneCap: 2, GapMinMinutes: 5, AnchorBufferDefaultMinutes: 8})

	visible, hidden := 0, 0
	for _, b := range vm.Blocks {
		if b.Hidden {
			hidden++
			if b.LaneIndex < 2 {
				t.Errorf("%s: hidden block has lane %d, want >= 2", b.TemplateID, b.LaneIndex)
			}
		} else {
			visible++
			if b.LaneIndex < 0 || b.LaneIndex >= 2 {
				t.Errorf("%s: visible block has out-of-range lane %d", b.TemplateID, b.LaneIndex)
			}
		}
	}
	if visible != 2 || hidden != 2 {
		t.Fatalf("expected 2 visible/2 hidden, got %d/%d", visible, hidden)
	}
	if len(vm.Clusters) != 1 {
		t.Fatalf("expected exactly 1 cluster with a badge, got %d", len(vm.Clusters))
	}
	cluster := vm.Clusters[0]
	if cluster.Badge == nil || cluster.Badge.Count != 2 {
		t.Fatalf("expected badge count=2, got %+v", cluster.Badge)
	}
	if cluster.RangeStartMins != 9*60 || cluster.RangeEndMins != 10*60 {
		t.Errorf("expected badge range [540,600], got [%d,%d]", cluster.RangeStartMins, cluster.RangeEndMins)
	}
}

func TestBuildStatic_NoOverlapNoBadges(t *testing.T) {
	result := models.ScheduleResult{Schedule: []models.ScheduleBlock{
		block("a", "09:00", "09:30", false, false, true),
		block("b", "10:00", "10:30", false, false, true),
	}}
	vm := BuildStatic(result, nil, settings(), Params{RowHeight: 60, LaneCap: 3, GapMinMinutes: 5, AnchorBufferDefaultMinutes: 8})
	if len(vm.Clusters) != 0 {
		t.Errorf("expected no badges, got %+v", vm.Clusters)
	}
	for _, b := range vm.Blocks {
		if b.LaneIndex != 0 {
			t.Errorf("%s: expected lane 0 for non-overlapping block, got %d", b.TemplateID, b.LaneIndex)
		}
	}
}

func TestBuildStatic_Geometry(t *testing.T) {
	result := models.ScheduleResult{Schedule: []models.ScheduleBlock{
		block("a", "07:00", "08:00", false, false, true),
	}}
	vm := BuildStatic(result, nil, settings(), Params{RowHeight: 60, LaneCap: 3, GapMinMinutes: 5, AnchorBufferDefaultMinutes: 8})
	if len(vm.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(vm.Blocks))
	}
	b := vm.Blocks[0]
	if b.Top != 420 {
		t.Errorf("top = %v, want 420", b.Top)
	}
	if b.Height != 60 {
		t.Errorf("height = %v, want 60", b.Height)
	}
}

func TestBuildStatic_BuffersOnlyForFixedAnchors(t *testing.T) {
	result := models.ScheduleResult{Schedule: []models.ScheduleBlock{
		block("anchor", "08:00", "08:30", true, true, false),
		block("flex", "09:00", "09:30", false, false, true),
	}}
	vm := BuildStatic(result, nil, settings(), Params{RowHeight: 60, LaneCap: 3, GapMinMinutes: 5, AnchorBufferDefaultMinutes: 8})
	if len(vm.Buffers) != 2 {
		t.Fatalf("expected 2 buffer bands (before/after) for the one anchor, got %d", len(vm.Buffers))
	}
	for _, buf := range vm.Buffers {
		if buf.AnchorID != "anchor" {
			t.Errorf("unexpected buffer for %s", buf.AnchorID)
		}
	}
}

func TestBuildStatic_SleepSegmentsCrossMidnight(t *testing.T) {
	vm := BuildStatic(models.ScheduleResult{}, nil, settings(), Params{RowHeight: 60})
	if len(vm.SleepSegments) != 2 {
		t.Fatalf("expected 2 sleep segments for a sleep time after wake time, got %d", len(vm.SleepSegments))
	}
}

func TestBuildStatic_SleepSegmentsSameDay(t *testing.T) {
	s := models.Settings{DefaultWakeTime: "10:00", DefaultSleepTime: "02:00"}
	vm := BuildStatic(models.ScheduleResult{}, nil, s, Params{RowHeight: 60})
	if len(vm.SleepSegments) != 1 {
		t.Fatalf("expected 1 sleep segment when sleep doesn't cross midnight, got %d", len(vm.SleepSegments))
	}
}

func TestBuildStatic_GapsReportedAboveThreshold(t *testing.T) {
	result := models.ScheduleResult{Schedule: []models.ScheduleBlock{
		block("a", "07:00", "07:10", false, false, true),
	}}
	vm := BuildStatic(result, nil, settings(), Params{RowHeight: 60, GapMinMinutes: 30})
	if len(vm.Gaps) == 0 {
		t.Fatal("expected at least one reported gap")
	}
}
