// Package nowoverlay implements spec.md §4.H: a pure, time-variant overlay
// computed from a static TimelineVM plus the current moment. Grounded on the
// teacher's internal/tui/components/now "find the slot containing now"
// search, reshaped into a pure function that never mutates its static input
// (I7).
package nowoverlay

import "github.com/julianstephens/dayplan/internal/models"

// Input is the time-variant context the overlay needs alongside a static VM.
type Input struct {
	IsToday   bool
	NowMins   int
	RowHeight float64 // must match the RowHeight the static VM was built with

	// CompletedOrSkipped reports whether the instance backing templateID is
	// in {completed, skipped} for the date being viewed (step 4.H excludes
	// those from "overdue").
	CompletedOrSkipped map[string]bool
}

// Apply computes the NowOverlay for staticVM without mutating it.
func Apply(staticVM models.TimelineVM, in Input) models.NowOverlay {
	overlay := models.NowOverlay{NowMins: in.NowMins, IsToday: in.IsToday}

	if in.IsToday {
		overlay.NowLine = &models.NowLine{Top: float64(in.NowMins) / 60.0 * in.RowHeight}
	}

	overlay.BlockAdjustments = make([]models.BlockAdjustment, 0, len(staticVM.Blocks))
	for _, b := range staticVM.Blocks {
		overlay.BlockAdjustments = append(overlay.BlockAdjustments, adjustmentFor(b, in))
	}
	return overlay
}

func adjustmentFor(b models.VMBlock, in Input) models.BlockAdjustment {
	if !in.IsToday || b.StartMins() >= in.NowMins {
		return models.BlockAdjustment{TemplateID: b.TemplateID, OverdueKind: models.OverdueNone}
	}
	if in.CompletedOrSkipped[b.TemplateID] {
		return models.BlockAdjustment{TemplateID: b.TemplateID, OverdueKind: models.OverdueNone}
	}
	if b.IsMandatory {
		transformY := float64(in.NowMins-b.StartMins()) / 60.0 * in.RowHeight
		return models.BlockAdjustment{TemplateID: b.TemplateID, OverdueKind: models.OverdueMandatory, TransformY: transformY}
	}
	return models.BlockAdjustment{TemplateID: b.TemplateID, OverdueKind: models.OverdueSkippable}
}
