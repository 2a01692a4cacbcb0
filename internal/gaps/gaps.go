// Package gaps implements spec.md §4.F: finding free intervals within an
// awake window once busy intervals are subtracted out. Grounded on the
// teacher's findFreeBlocks from its root scheduler.go, generalized from
// whole-day free-block search to an arbitrary window/threshold pair.
package gaps

import "sort"

// Interval is a half-open [Start, End) span in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) duration() int { return iv.End - iv.Start }

// Detect returns the free intervals within window once busy is merged and
// clamped to window, keeping only gaps at least thresholdMinutes long.
func Detect(window Interval, busy []Interval, thresholdMinutes int) []Interval {
	merged := merge(clamp(busy, window))

	var free []Interval
	cursor := window.Start
	for _, b := range merged {
		if b.Start > cursor {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < window.End {
		free = append(free, Interval{Start: cursor, End: window.End})
	}

	var result []Interval
	for _, g := range free {
		if g.duration() >= thresholdMinutes {
			result = append(result, g)
		}
	}
	return result
}

// clamp drops intervals entirely outside window and trims partial overlaps
// to window's bounds.
func clamp(intervals []Interval, window Interval) []Interval {
	var out []Interval
	for _, iv := range intervals {
		start, end := iv.Start, iv.End
		if end <= window.Start || start >= window.End {
			continue
		}
		if start < window.Start {
			start = window.Start
		}
		if end > window.End {
			end = window.End
		}
		if end > start {
			out = append(out, Interval{Start: start, End: end})
		}
	}
	return out
}

// merge sorts and coalesces overlapping or touching intervals.
func merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
