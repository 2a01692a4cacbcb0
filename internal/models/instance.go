package models

import "fmt"

// InstanceStatus is the per-date lifecycle state of a template occurrence.
type InstanceStatus string

const (
	StatusPending   InstanceStatus = "pending"
	StatusCompleted InstanceStatus = "completed"
	StatusSkipped   InstanceStatus = "skipped"
	StatusPostponed InstanceStatus = "postponed"
)

// Instance is a per-date override for a template: a status change, a manual
// start-time override, or both.
type Instance struct {
	ID         string         `json:"id"` // inst-YYYY-MM-DD-{templateId}
	TemplateID string         `json:"templateId"`
	Date       string         `json:"date"` // YYYY-MM-DD
	Status     InstanceStatus `json:"status"`

	ModifiedStartTime string  `json:"modifiedStartTime,omitempty"` // HH:MM
	Note              string  `json:"note,omitempty"`
	CompletedAt       *int64  `json:"completedAt,omitempty"` // epoch millis
}

// InstanceID builds the bit-exact deterministic instance id (§6).
func InstanceID(date, templateID string) string {
	return fmt.Sprintf("inst-%s-%s", date, templateID)
}

// IsTerminalForScheduling reports whether the instance's status means the
// scheduler should drop the occurrence entirely (§4.D step 3).
func (i Instance) IsTerminalForScheduling() bool {
	switch i.Status {
	case StatusSkipped, StatusPostponed, StatusCompleted:
		return true
	default:
		return false
	}
}
