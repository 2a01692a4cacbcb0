// Package lanes implements spec.md §4.E: assigning overlap lanes to a set of
// blocks with a cap, and grouping blocks into maximal overlapping clusters.
package lanes

import "sort"

// Positioned is the minimal shape lanes needs: a time interval, a duration
// (for the tie-break), and a stable identity.
type Positioned struct {
	ID        string
	StartMins int
	EndMins   int
}

func (p Positioned) duration() int { return p.EndMins - p.StartMins }

// Assignment is the lane/hidden decision for one input block, aligned to the
// order Positioned blocks were passed in.
type Assignment struct {
	ID        string
	LaneIndex int
	Hidden    bool
}

// AssignLanes implements spec.md §4.E's greedy lane packer: sort by
// (start asc, duration desc, id), then place each block in the
// lowest-numbered lane whose current occupant already ended. Blocks that
// would need a lane index >= maxLanes are marked hidden instead.
func AssignLanes(blocks []Positioned, maxLanes int) []Assignment {
	order := make([]Positioned, len(blocks))
	copy(order, blocks)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.StartMins != b.StartMins {
			return a.StartMins < b.StartMins
		}
		if a.duration() != b.duration() {
			return a.duration() > b.duration()
		}
		return a.ID < b.ID
	})

	laneEnds := []int{} // laneEnds[i] = end time of the block currently in lane i
	byID := make(map[string]Assignment, len(order))

	for _, b := range order {
		lane := -1
		for i, end := range laneEnds {
			if end <= b.StartMins {
				lane = i
				break
			}
		}
		if lane == -1 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, 0)
		}
		laneEnds[lane] = b.EndMins

		hidden := lane >= maxLanes
		byID[b.ID] = Assignment{ID: b.ID, LaneIndex: lane, Hidden: hidden}
	}

	result := make([]Assignment, len(blocks))
	for i, b := range blocks {
		result[i] = byID[b.ID]
	}
	return result
}

// Clusters groups blocks into maximal connected components under the
// "intervals overlap" relation.
func Clusters(blocks []Positioned) [][]Positioned {
	order := make([]Positioned, len(blocks))
	copy(order, blocks)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].StartMins < order[j].StartMins
	})

	var clusters [][]Positioned
	var current []Positioned
	currentEnd := -1

	for _, b := range order {
		if len(current) == 0 || b.StartMins < currentEnd {
			current = append(current, b)
			if b.EndMins > currentEnd {
				currentEnd = b.EndMins
			}
			continue
		}
		clusters = append(clusters, current)
		current = []Positioned{b}
		currentEnd = b.EndMins
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}
