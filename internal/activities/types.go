package activities

import (
	"github.com/strokesense/orchestrator/internal/alerting"
	"github.com/strokesense/orchestrator/internal/care"
	"github.com/strokesense/orchestrator/internal/symptoms"
	"github.com/strokesense/orchestrator/internal/triage"
)

// Activity names as registered on the worker. Workflow code executes by name
// so tests can substitute mocks without importing the live implementations.
const (
	AnalyzeSymptomsActivity = "AnalyzeSymptoms"
	PerformTriageActivity   = "PerformTriage"
	DispatchAlertActivity   = "DispatchAlert"
	ProvideCareActivity     = "ProvideCare"
	RecordEventActivity     = "RecordEvent"
)

// AnalyzeSymptomsInput carries the raw patient input.
type AnalyzeSymptomsInput struct {
	Text      string `json:"text"`
	InputType string `json:"input_type"`
}

type AnalyzeSymptomsResult struct {
	Analysis symptoms.Analysis `json:"analysis"`
}

type PerformTriageInput struct {
	Analysis symptoms.Analysis `json:"analysis"`
}

type PerformTriageResult struct {
	Assessment triage.Assessment `json:"assessment"`
}

type DispatchAlertInput struct {
	Assessment triage.Assessment  `json:"assessment"`
	PatientID  string             `json:"patient_id"`
	Location   *alerting.Location `json:"location,omitempty"`
}

type DispatchAlertResult struct {
	Alert alerting.Alert `json:"alert"`
}

type ProvideCareInput struct {
	Analysis     symptoms.Analysis `json:"analysis"`
	Assessment   triage.Assessment `json:"assessment"`
	AlertPresent bool              `json:"alert_present"`
}

type ProvideCareResult struct {
	Instructions care.Instructions `json:"instructions"`
}

// RecordEventInput is the payload for the log-sink collaborator.
type RecordEventInput struct {
	WorkflowID string                 `json:"workflow_id"`
	Summary    map[string]interface{} `json:"summary"`
}

type RecordEventResult struct {
	EventID         string `json:"event_id"`
	StorageLocation string `json:"storage_location"`
}
