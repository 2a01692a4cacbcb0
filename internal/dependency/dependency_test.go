package dependency

import (
	"testing"

	"github.com/julianstephens/dayplan/internal/models"
)

func strp(s string) *string { return &s }

func flexible(id, name string, priority, duration int, dependsOn *string, active bool) models.Template {
	return models.Template{
		ID:              id,
		Name:            name,
		Priority:        priority,
		DurationMinutes: duration,
		SchedulingType:  models.SchedulingFlexible,
		TimeWindow:      models.WindowMorning,
		DependsOn:       dependsOn,
		IsActive:        active,
	}
}

func TestClassify_OKWhenNoDependency(t *testing.T) {
	ts := []models.Template{flexible("a", "A", 3, 30, nil, true)}
	statuses := Classify(ts)
	if statuses["a"] != StatusOK {
		t.Errorf("got %v, want StatusOK", statuses["a"])
	}
}

func TestClassify_Missing(t *testing.T) {
	ts := []models.Template{flexible("a", "A", 3, 30, strp("ghost"), true)}
	statuses := Classify(ts)
	if statuses["a"] != StatusMissing {
		t.Errorf("got %v, want StatusMissing", statuses["a"])
	}
}

func TestClassify_Disabled(t *testing.T) {
	ts := []models.Template{
		flexible("a", "A", 3, 30, strp("b"), true),
		flexible("b", "B", 3, 30, nil, false),
	}
	statuses := Classify(ts)
	if statuses["a"] != StatusDisabled {
		t.Errorf("got %v, want StatusDisabled", statuses["a"])
	}
}

func TestClassify_Cycle(t *testing.T) {
	ts := []models.Template{
		flexible("a", "A", 3, 30, strp("b"), true),
		flexible("b", "B", 3, 30, strp("a"), true),
	}
	statuses := Classify(ts)
	if statuses["a"] != StatusCycle {
		t.Errorf("got %v, want StatusCycle", statuses["a"])
	}
	if statuses["b"] != StatusCycle {
		t.Errorf("got %v, want StatusCycle", statuses["b"])
	}
}

func TestClassify_SelfCycle(t *testing.T) {
	ts := []models.Template{flexible("a", "A", 3, 30, strp("a"), true)}
	statuses := Classify(ts)
	if statuses["a"] != StatusCycle {
		t.Errorf("got %v, want StatusCycle", statuses["a"])
	}
}

func TestTopoOrder_ChainOrdering(t *testing.T) {
	// S1 scenario shape: A <- B <- C, equal priority/duration.
	ts := []models.Template{
		flexible("c", "C", 3, 30, strp("b"), true),
		flexible("a", "A", 3, 30, nil, true),
		flexible("b", "B", 3, 30, strp("a"), true),
	}
	order, advisories := TopoOrder(ts)
	if len(advisories) != 0 {
		t.Fatalf("unexpected advisories: %+v", advisories)
	}
	ids := make([]string, len(order))
	for i, o := range order {
		ids[i] = o.ID
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestTopoOrder_TieBreakByPriorityThenDurationThenName(t *testing.T) {
	ts := []models.Template{
		flexible("x", "Xray", 2, 10, nil, true),
		flexible("y", "Yankee", 5, 60, nil, true),
		flexible("z", "Zulu", 5, 30, nil, true),
	}
	order, _ := TopoOrder(ts)
	ids := make([]string, len(order))
	for i, o := range order {
		ids[i] = o.ID
	}
	// z and y tie on priority 5 but z has shorter duration -> z first; x last (lower priority).
	want := []string{"z", "y", "x"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestTopoOrder_OmitsMissingAndCycles(t *testing.T) {
	ts := []models.Template{
		flexible("ok", "OK", 3, 30, nil, true),
		flexible("missing", "Missing", 3, 30, strp("ghost"), true),
		flexible("cyc1", "Cyc1", 3, 30, strp("cyc2"), true),
		flexible("cyc2", "Cyc2", 3, 30, strp("cyc1"), true),
	}
	order, advisories := TopoOrder(ts)
	if len(order) != 1 || order[0].ID != "ok" {
		t.Fatalf("order = %+v, want only ok", order)
	}
	kinds := map[models.AdvisoryKind]int{}
	for _, a := range advisories {
		kinds[a.Kind]++
	}
	if kinds[models.AdvisoryDependencyMissing] != 1 {
		t.Errorf("expected 1 DependencyMissing advisory, got %d", kinds[models.AdvisoryDependencyMissing])
	}
	if kinds[models.AdvisoryDependencyCycle] != 2 {
		t.Errorf("expected 2 DependencyCycle advisories, got %d", kinds[models.AdvisoryDependencyCycle])
	}
}
