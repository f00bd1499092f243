// Package alerting synthesizes the emergency alert record handed to the
// external dispatch collaborator. Actual notification delivery is out of
// scope; this package only produces the record.
package alerting

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/strokesense/orchestrator/internal/triage"
)

// EmergencyType tags every alert produced by this service.
const EmergencyType = "STROKE_ALERT"

// DefaultRecipients is the static dispatch list for stroke alerts.
var DefaultRecipients = []string{"911 Dispatch", "Local EMS", "Stroke Center"}

// Location is the optional caller-supplied patient location, passed through to
// the dispatch record unmodified.
type Location struct {
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DispatchInfo is the payload handed to the dispatch collaborator.
type DispatchInfo struct {
	Recipients    []string  `json:"recipients"`
	EmergencyType string    `json:"emergency_type"`
	UrgencyLevel  string    `json:"urgency_level"`
	Message       string    `json:"alert_message"`
	Location      *Location `json:"location,omitempty"`
}

// Alert is the emergency alert record. Its absence (a nil pointer upstream) is
// itself meaningful: no alert was warranted.
type Alert struct {
	AlertID               string       `json:"alert_id"`
	AlertSent             bool         `json:"alert_sent"`
	EstimatedResponseTime string       `json:"estimated_response_time"`
	DispatchInfo          DispatchInfo `json:"dispatch_info"`
}

// Build synthesizes an alert for a triage assessment that crossed the
// emergency gate. Each call mints a fresh alert id; everything else is a pure
// function of its inputs, so repeated calls differ only in the id.
func Build(assessment triage.Assessment, patientID string, loc *Location) Alert {
	return Alert{
		AlertID:   fmt.Sprintf("ALERT-%s", uuid.NewString()),
		AlertSent: true,
		// Tighter bucket than the triage estimate: dispatch-stage refinement.
		EstimatedResponseTime: "4-6 minutes",
		DispatchInfo: DispatchInfo{
			Recipients:    DefaultRecipients,
			EmergencyType: EmergencyType,
			UrgencyLevel:  string(assessment.Level),
			Message: fmt.Sprintf("Stroke alert for patient %s - %s priority",
				patientID, assessment.Level),
			Location: loc,
		},
	}
}
