// Package dependency implements spec.md §4.C: classifying each flexible
// template's dependsOn status and producing a schedulable topological order
// with deterministic tie-breaks.
package dependency

import (
	"sort"

	"github.com/julianstephens/dayplan/internal/models"
)

// Status is the classification of a single template's dependsOn edge.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDisabled Status = "disabled"
	StatusMissing  Status = "missing"
	StatusCycle    Status = "cycle"
)

// Classify computes Status(t) for every template in the set, per spec.md §4.C.
func Classify(templates []models.Template) map[string]Status {
	byID := make(map[string]models.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	result := make(map[string]Status, len(templates))
	for _, t := range templates {
		result[t.ID] = classifyOne(t, byID)
	}
	return result
}

func classifyOne(t models.Template, byID map[string]models.Template) Status {
	if t.DependsOn == nil || *t.DependsOn == "" {
		return StatusOK
	}
	if onCycle(t.ID, byID) {
		return StatusCycle
	}
	prereq, ok := byID[*t.DependsOn]
	if !ok {
		return StatusMissing
	}
	if !prereq.IsActive {
		return StatusDisabled
	}
	return StatusOK
}

// onCycle reports whether starting from id and following dependsOn edges
// reaches id again (a cycle of any length, including self-dependency).
func onCycle(id string, byID map[string]models.Template) bool {
	visited := map[string]bool{}
	cur := id
	for {
		t, ok := byID[cur]
		if !ok || t.DependsOn == nil || *t.DependsOn == "" {
			return false
		}
		next := *t.DependsOn
		if next == id {
			return true
		}
		if visited[next] {
			return false // cycle exists but doesn't loop back to id
		}
		visited[next] = true
		cur = next
	}
}

// Advisory mirrors the subset of models.AdvisoryKind relevant to dependency
// resolution, kept separate so this package has no import of the scheduler.
type Advisory struct {
	Kind       models.AdvisoryKind
	TemplateID string
	Message    string
}

// TopoOrder returns the schedulable flexible templates in dependency order,
// with ties broken by (priority desc, duration asc, name asc, id). Templates
// whose Status is not StatusOK are omitted and reported as advisories.
func TopoOrder(templates []models.Template) ([]models.Template, []Advisory) {
	statuses := Classify(templates)
	byID := make(map[string]models.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	var eligible []models.Template
	var advisories []Advisory
	for _, t := range templates {
		switch statuses[t.ID] {
		case StatusOK:
			eligible = append(eligible, t)
		case StatusMissing:
			advisories = append(advisories, Advisory{models.AdvisoryDependencyMissing, t.ID, "prerequisite template not found: " + deref(t.DependsOn)})
		case StatusDisabled:
			advisories = append(advisories, Advisory{models.AdvisoryDependencyDisabled, t.ID, "prerequisite template is inactive: " + deref(t.DependsOn)})
		case StatusCycle:
			advisories = append(advisories, Advisory{models.AdvisoryDependencyCycle, t.ID, "dependency cycle detected"})
		}
	}

	eligibleSet := make(map[string]bool, len(eligible))
	for _, t := range eligible {
		eligibleSet[t.ID] = true
	}

	// Kahn's algorithm over the eligible subgraph, with a deterministic
	// tie-break applied to the ready set at every step.
	indegree := make(map[string]int, len(eligible))
	dependents := make(map[string][]string, len(eligible))
	for _, t := range eligible {
		if t.DependsOn != nil && eligibleSet[*t.DependsOn] {
			indegree[t.ID]++
			dependents[*t.DependsOn] = append(dependents[*t.DependsOn], t.ID)
		}
	}

	ready := make([]models.Template, 0, len(eligible))
	for _, t := range eligible {
		if indegree[t.ID] == 0 {
			ready = append(ready, t)
		}
	}

	var order []models.Template
	for len(ready) > 0 {
		sortByTieBreak(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, depID := range dependents[next.ID] {
			indegree[depID]--
			if indegree[depID] == 0 {
				ready = append(ready, byID[depID])
			}
		}
	}

	return order, advisories
}

func sortByTieBreak(ts []models.Template) {
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority // desc
		}
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes < b.DurationMinutes // asc
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
