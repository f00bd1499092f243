package workflows

import (
	"time"

	"github.com/strokesense/orchestrator/internal/alerting"
	"github.com/strokesense/orchestrator/internal/care"
	"github.com/strokesense/orchestrator/internal/symptoms"
	"github.com/strokesense/orchestrator/internal/triage"
)

// Input provenance tags. They do not change scoring; voice additionally gets
// punctuation normalization before matching.
const (
	InputTypeText  = "text"
	InputTypeVoice = "voice"
	InputTypeVideo = "video"
)

// Workflow terminal statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// AssessmentInput is one assessment request.
type AssessmentInput struct {
	PatientID string             `json:"patient_id"`
	InputType string             `json:"input_type"`
	Text      string             `json:"text"`
	Location  *alerting.Location `json:"location,omitempty"`
}

// Summary is the quick-consumption digest built at workflow completion.
type Summary struct {
	StrokeSymptomsDetected bool              `json:"stroke_symptoms_detected"`
	FASTScore              int               `json:"fast_score"`
	SymptomSeverity        symptoms.Severity `json:"symptom_severity"`
	UrgencyScore           int               `json:"urgency_score"`
	TriageLevel            triage.Level      `json:"triage_level,omitempty"`
	RequiresEmergency      bool              `json:"requires_emergency"`
	ActionsTaken           []string          `json:"actions_taken"`
}

// EventLogRef points at the record the log-sink collaborator stored.
type EventLogRef struct {
	EventID         string `json:"event_id"`
	StorageLocation string `json:"storage_location"`
}

// AssessmentResult is the terminal artifact of one workflow run. It is never
// mutated after the workflow returns it.
type AssessmentResult struct {
	WorkflowID           string             `json:"workflow_id"`
	PatientID            string             `json:"patient_id"`
	InputType            string             `json:"input_type"`
	Status               string             `json:"status"`
	AgentsExecuted       []string           `json:"agents_executed"`
	StartTime            time.Time          `json:"start_time"`
	EndTime              time.Time          `json:"end_time"`
	TotalDurationSeconds float64            `json:"total_duration_seconds"`
	SymptomAnalysis      *symptoms.Analysis `json:"symptom_analysis,omitempty"`
	TriageAssessment     *triage.Assessment `json:"triage_assessment,omitempty"`
	EmergencyAlert       *alerting.Alert    `json:"emergency_alert,omitempty"`
	CareInstructions     *care.Instructions `json:"care_instructions,omitempty"`
	EventLog             *EventLogRef       `json:"event_log,omitempty"`
	Summary              Summary            `json:"summary"`
	Error                string             `json:"error,omitempty"`
	Warning              string             `json:"warning,omitempty"`
}
