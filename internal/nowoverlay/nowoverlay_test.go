package nowoverlay

import (
	"testing"

	"github.com/julianstephens/dayplan/internal/models"
)

func staticVMWith(id string, startMins, endMins int, mandatory bool, rowHeight float64) models.TimelineVM {
	top := float64(startMins) / 60.0 * rowHeight
	height := float64(endMins-startMins) / 60.0 * rowHeight
	return models.TimelineVM{
		Blocks: []models.VMBlock{
			models.NewVMBlock(id, top, height, 0, 1, false, mandatory, mandatory, !mandatory, "", startMins, endMins),
		},
	}
}

// S6: mandatory block 09:00-10:00, isToday=true, nowMins=630 (10:30).
// nowLine.top = (630/60)*rowHeight; overdueKind=mandatory;
// transformY=(630-540)/60*rowHeight = 1.5*rowHeight.
func TestApply_S6_NowOverlay(t *testing.T) {
	rowHeight := 60.0
	staticVM := staticVMWith("m", 9*60, 10*60, true, rowHeight)

	overlay := Apply(staticVM, Input{IsToday: true, NowMins: 630, RowHeight: rowHeight})

	if overlay.NowLine == nil {
		t.Fatal("expected a now line when isToday")
	}
	wantTop := 630.0 / 60.0 * rowHeight
	if overlay.NowLine.Top != wantTop {
		t.Errorf("nowLine.top = %v, want %v", overlay.NowLine.Top, wantTop)
	}

	if len(overlay.BlockAdjustments) != 1 {
		t.Fatalf("expected 1 block adjustment, got %d", len(overlay.BlockAdjustments))
	}
	adj := overlay.BlockAdjustments[0]
	if adj.OverdueKind != models.OverdueMandatory {
		t.Errorf("overdueKind = %v, want mandatory", adj.OverdueKind)
	}
	wantTransform := 1.5 * rowHeight
	if adj.TransformY != wantTransform {
		t.Errorf("transformY = %v, want %v", adj.TransformY, wantTransform)
	}
}

func TestApply_NotTodayNoNowLine(t *testing.T) {
	staticVM := staticVMWith("m", 9*60, 10*60, true, 60)
	overlay := Apply(staticVM, Input{IsToday: false, NowMins: 630, RowHeight: 60})
	if overlay.NowLine != nil {
		t.Error("expected no now line when not viewing today")
	}
}

func TestApply_NonMandatoryOverdueIsSkippable(t *testing.T) {
	staticVM := staticVMWith("f", 9*60, 10*60, false, 60)
	overlay := Apply(staticVM, Input{IsToday: true, NowMins: 630, RowHeight: 60})
	adj := overlay.BlockAdjustments[0]
	if adj.OverdueKind != models.OverdueSkippable {
		t.Errorf("overdueKind = %v, want skippable", adj.OverdueKind)
	}
	if adj.TransformY != 0 {
		t.Errorf("transformY = %v, want 0 for skippable", adj.TransformY)
	}
}

func TestApply_FutureBlockIsNone(t *testing.T) {
	staticVM := staticVMWith("m", 11*60, 12*60, true, 60)
	overlay := Apply(staticVM, Input{IsToday: true, NowMins: 630, RowHeight: 60})
	adj := overlay.BlockAdjustments[0]
	if adj.OverdueKind != models.OverdueNone {
		t.Errorf("overdueKind = %v, want none for a future block", adj.OverdueKind)
	}
}

func TestApply_CompletedMandatoryIsNotOverdue(t *testing.T) {
	staticVM := staticVMWith("m", 9*60, 10*60, true, 60)
	overlay := Apply(staticVM, Input{
		IsToday: true, NowMins: 630, RowHeight: 60,
		CompletedOrSkipped: map[string]bool{"m": true},
	})
	adj := overlay.BlockAdjustments[0]
	if adj.OverdueKind != models.OverdueNone {
		t.Errorf("overdueKind = %v, want none for a completed mandatory block", adj.OverdueKind)
	}
}

// I7: applyNowOverlay leaves staticVM unchanged.
func TestApply_I7_DoesNotMutateStaticVM(t *testing.T) {
	staticVM := staticVMWith("m", 9*60, 10*60, true, 60)
	before := staticVM.Blocks[0]

	_ = Apply(staticVM, Input{IsToday: true, NowMins: 630, RowHeight: 60})

	if staticVM.Blocks[0] != before {
		t.Error("Apply mutated the static VM's block")
	}
}
