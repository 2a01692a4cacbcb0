// Package viewmodel implements spec.md §4.G: composing a ScheduleResult plus
// view parameters into a pure, renderer-agnostic TimelineVM. Grounded on the
// geometry/rendering conventions of the teacher's
// internal/tui/components/plan package, generalized from a single scrolling
// text view into structured block/cluster/buffer/sleep/gap geometry.
package viewmodel

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/gaps"
	"github.com/julianstephens/dayplan/internal/lanes"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/timeutil"
)

// Params mirrors spec.md §6's ResponsiveParams subset the view model needs.
type Params struct {
	RowHeight                  float64
	LaneCap                    int
	GapMinMinutes              int
	AnchorBufferDefaultMinutes int
}

type parsedBlock struct {
	block     models.ScheduleBlock
	startMins int
	endMins   int
}

// BuildStatic composes the static TimelineVM per spec.md §4.G. It is pure:
// it never mutates result, templates, or settings.
func BuildStatic(result models.ScheduleResult, templates []models.Template, settings models.Settings, params Params) models.TimelineVM {
	templateByID := make(map[string]models.Template, len(templates))
	for _, t := range templates {
		templateByID[t.ID] = t
	}

	parsedBlocks := make([]parsedBlock, 0, len(result.Schedule))
	for _, b := range result.Schedule {
		start, err := timeutil.ParseHHMM(b.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseHHMM(b.EndTime)
		if err != nil {
			continue
		}
		parsedBlocks = append(parsedBlocks, parsedBlock{block: b, startMins: start, endMins: end})
	}

	positioned := make([]lanes.Positioned, 0, len(parsedBlocks))
	for _, p := range parsedBlocks {
		positioned = append(positioned, lanes.Positioned{ID: p.block.TemplateID, StartMins: p.startMins, EndMins: p.endMins})
	}

	laneCap := params.LaneCap
	if laneCap < 1 {
		laneCap = constants.DefaultLaneCap
	}

	laneByID := make(map[string]lanes.Assignment, len(positioned))
	clusterOf := make(map[string]int, len(positioned))
	rawClusters := lanes.Clusters(positioned)
	for ci, cluster := range rawClusters {
		for _, assignment := range lanes.AssignLanes(cluster, laneCap) {
			laneByID[assignment.ID] = assignment
			clusterOf[assignment.ID] = ci
		}
	}

	vmBlocks := make([]models.VMBlock, 0, len(parsedBlocks))
	for _, p := range parsedBlocks {
		assignment := laneByID[p.block.TemplateID]
		vmBlocks = append(vmBlocks, models.NewVMBlock(
			p.block.TemplateID,
			geometryTop(p.startMins, params.RowHeight),
			geometryHeight(p.startMins, p.endMins, params.RowHeight),
			assignment.LaneIndex,
			laneCount(rawClusters[clusterOf[p.block.TemplateID]], laneByID),
			assignment.Hidden,
			p.block.IsMandatory,
			p.block.IsFixed,
			p.block.IsFlexible,
			p.block.WindowHint,
			p.startMins,
			p.endMins,
		))
	}

	clusters := buildClusters(rawClusters, laneByID, params)
	buffers := buildBuffers(parsedBlocks, templateByID, params)

	wakeMins, wakeErr := timeutil.ParseHHMM(settings.DefaultWakeTime)
	sleepMins, sleepErr := timeutil.ParseHHMM(settings.DefaultSleepTime)
	var sleepSegments []models.SleepSegment
	var gapList []models.Gap
	if wakeErr == nil && sleepErr == nil {
		sleepSegments = buildSleepSegments(wakeMins, sleepMins, params)
		gapList = buildGaps(wakeMins, sleepMins, parsedBlocksToIntervals(parsedBlocks), params)
	}

	return models.TimelineVM{
		Blocks:        vmBlocks,
		Clusters:      clusters,
		Buffers:       buffers,
		SleepSegments: sleepSegments,
		Gaps:          gapList,
	}
}

func geometryTop(startMins int, rowHeight float64) float64 {
	return float64(startMins) / 60.0 * rowHeight
}

func geometryHeight(startMins, endMins int, rowHeight float64) float64 {
	return float64(endMins-startMins) / 60.0 * rowHeight
}

// laneCount is the number of visible lanes a cluster occupies, capped by
// laneCap even when more blocks overlap and get hidden.
func laneCount(cluster []lanes.Positioned, laneByID map[string]lanes.Assignment) int {
	count := 0
	for _, b := range cluster {
		if a := laneByID[b.ID]; !a.Hidden && a.LaneIndex+1 > count {
			count = a.LaneIndex + 1
		}
	}
	return count
}

func buildClusters(rawClusters [][]lanes.Positioned, laneByID map[string]lanes.Assignment, params Params) []models.Cluster {
	var out []models.Cluster
	for _, cluster := range rawClusters {
		var hiddenIDs []string
		rangeStart, rangeEnd := -1, -1
		for _, b := range cluster {
			if !laneByID[b.ID].Hidden {
				continue
			}
			hiddenIDs = append(hiddenIDs, b.ID)
			if rangeStart == -1 || b.StartMins < rangeStart {
				rangeStart = b.StartMins
			}
			if b.EndMins > rangeEnd {
				rangeEnd = b.EndMins
			}
		}
		if len(hiddenIDs) == 0 {
			continue
		}
		out = append(out, models.Cluster{
			RangeStartMins: rangeStart,
			RangeEndMins:   rangeEnd,
			HiddenIDs:      hiddenIDs,
			Badge: &models.ClusterBadge{
				Top:   geometryTop(rangeStart, params.RowHeight),
				Count: len(hiddenIDs),
				Label: fmt.Sprintf("+%d more", len(hiddenIDs)),
			},
		})
	}
	return out
}

func buildBuffers(parsedBlocks []parsedBlock, templateByID map[string]models.Template, params Params) []models.Buffer {
	var out []models.Buffer
	for _, p := range parsedBlocks {
		if !p.block.IsFixed {
			continue
		}
		bufferMinutes := params.AnchorBufferDefaultMinutes
		if bufferMinutes <= 0 {
			bufferMinutes = constants.DefaultAnchorBufferMinutes
		}
		if t, ok := templateByID[p.block.TemplateID]; ok && t.BufferMinutes != nil {
			bufferMinutes = *t.BufferMinutes
		}
		if bufferMinutes <= 0 {
			continue
		}
		before := models.Buffer{
			AnchorID: p.block.TemplateID,
			Top:      geometryTop(p.startMins-bufferMinutes, params.RowHeight),
			Height:   geometryHeight(p.startMins-bufferMinutes, p.startMins, params.RowHeight),
		}
		after := models.Buffer{
			AnchorID: p.block.TemplateID,
			Top:      geometryTop(p.endMins, params.RowHeight),
			Height:   geometryHeight(p.endMins, p.endMins+bufferMinutes, params.RowHeight),
		}
		out = append(out, before, after)
	}
	return out
}

func buildSleepSegments(wakeMins, sleepMins int, params Params) []models.SleepSegment {
	if sleepMins > wakeMins {
		return []models.SleepSegment{
			{Top: geometryTop(0, params.RowHeight), Height: geometryHeight(0, wakeMins, params.RowHeight)},
			{Top: geometryTop(sleepMins, params.RowHeight), Height: geometryHeight(sleepMins, constants.MinutesPerDay, params.RowHeight)},
		}
	}
	return []models.SleepSegment{
		{Top: geometryTop(sleepMins, params.RowHeight), Height: geometryHeight(sleepMins, wakeMins, params.RowHeight)},
	}
}

func parsedBlocksToIntervals(parsedBlocks []parsedBlock) []gaps.Interval {
	out := make([]gaps.Interval, 0, len(parsedBlocks))
	for _, p := range parsedBlocks {
		out = append(out, gaps.Interval{Start: p.startMins, End: p.endMins})
	}
	return out
}

func buildGaps(wakeMins, sleepMins int, busy []gaps.Interval, params Params) []models.Gap {
	threshold := params.GapMinMinutes
	if threshold <= 0 {
		threshold = constants.DefaultGapMinMinutesDesktop
	}
	if sleepMins <= wakeMins {
		sleepMins += constants.MinutesPerDay
	}
	window := gaps.Interval{Start: wakeMins, End: sleepMins}

	normalizedBusy := make([]gaps.Interval, len(busy))
	for i, b := range busy {
		start, end := b.Start, b.End
		if start < wakeMins {
			start += constants.MinutesPerDay
			end += constants.MinutesPerDay
		}
		normalizedBusy[i] = gaps.Interval{Start: start, End: end}
	}

	found := gaps.Detect(window, normalizedBusy, threshold)
	out := make([]models.Gap, 0, len(found))
	for _, g := range found {
		out = append(out, models.Gap{
			StartMins: g.Start,
			EndMins:   g.End,
			Top:       geometryTop(g.Start, params.RowHeight),
			Height:    geometryHeight(g.Start, g.End, params.RowHeight),
		})
	}
	return out
}
