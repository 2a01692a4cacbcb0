// Package library implements spec.md §4.L: search/sort/dependency-badge
// helpers for a template library view. Grounded on the teacher's removed
// internal/cli command filtering conventions and its own plain
// strings-based search (no fuzzy-matching library in the teacher's stack).
package library

import (
	"sort"
	"strings"

	"github.com/julianstephens/dayplan/internal/dependency"
	"github.com/julianstephens/dayplan/internal/models"
)

// Filter narrows a template set by the UI/filter state spec.md §3 names.
type Filter struct {
	Search           string
	MandatoryOnly    bool
	TimeWindow       models.TimeWindow // empty means no filter
	IncludeInactive  bool
}

// Apply returns the subset of templates matching f, preserving input order.
func Apply(templates []models.Template, f Filter) []models.Template {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Template, 0, len(templates))
	for _, t := range templates {
		if !f.IncludeInactive && !t.IsActive {
			continue
		}
		if f.MandatoryOnly && !t.Mandatory {
			continue
		}
		if f.TimeWindow != "" && t.TimeWindow != f.TimeWindow {
			continue
		}
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t models.Template, needle string) bool {
	if strings.Contains(strings.ToLower(t.Name), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), needle)
}

// SortKey names a stable sort order for the library view.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPriority SortKey = "priority"
	SortByDuration SortKey = "duration"
	SortByUpdated  SortKey = "updated"
)

// Sort returns a new, sorted copy of templates; it never mutates the input.
func Sort(templates []models.Template, key SortKey) []models.Template {
	out := make([]models.Template, len(templates))
	copy(out, templates)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortByPriority:
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
		case SortByDuration:
			if a.DurationMinutes != b.DurationMinutes {
				return a.DurationMinutes < b.DurationMinutes
			}
		case SortByUpdated:
			if a.UpdatedAt != b.UpdatedAt {
				return a.UpdatedAt > b.UpdatedAt
			}
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}

// DependencyBadges maps each template id to its dependency status, for the
// library view to render as a badge next to dependsOn templates.
func DependencyBadges(templates []models.Template) map[string]dependency.Status {
	return dependency.Classify(templates)
}
