// Package workflows contains the assessment orchestration: a fixed-order,
// conditionally-gated pipeline over the stage activities.
package workflows

import (
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/strokesense/orchestrator/internal/activities"
	"github.com/strokesense/orchestrator/internal/stages"
)

// ErrEmptyInputType tags the rejection for missing raw text. The pipeline
// never starts for such requests.
const ErrEmptyInputType = "InputError"

// StrokeAssessmentWorkflow runs one assessment end to end:
//
//	extract -> (triage -> [alert] -> care -> record) -> summary
//
// Triage and everything after it are skipped when no symptoms match. Care
// instructions are produced for every triaged case, alerted or not. A failed
// stage finalizes the result with status=error and the stages executed so far
// preserved; a failed log-sink write surfaces as a non-fatal warning.
func StrokeAssessmentWorkflow(ctx workflow.Context, input AssessmentInput) (AssessmentResult, error) {
	logger := workflow.GetLogger(ctx)
	info := workflow.GetInfo(ctx)
	start := workflow.Now(ctx)

	if strings.TrimSpace(input.Text) == "" {
		return AssessmentResult{}, temporal.NewNonRetryableApplicationError(
			"raw input text is required", ErrEmptyInputType, nil)
	}
	if input.InputType == "" {
		input.InputType = InputTypeText
	}

	logger.Info("Starting stroke assessment",
		"patient_id", input.PatientID,
		"input_type", input.InputType,
	)

	result := AssessmentResult{
		WorkflowID: info.WorkflowExecution.ID,
		PatientID:  input.PatientID,
		InputType:  input.InputType,
		Status:     StatusInProgress,
		StartTime:  start,
	}

	// Stage logic is pure and local; retries stay with the caller per the
	// collaborator contract, so every activity runs at most once.
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	// Stage 1: symptom extraction, unconditional.
	var symptomRes activities.AnalyzeSymptomsResult
	err := workflow.ExecuteActivity(ctx, activities.AnalyzeSymptomsActivity, activities.AnalyzeSymptomsInput{
		Text:      input.Text,
		InputType: input.InputType,
	}).Get(ctx, &symptomRes)
	if err != nil {
		return finalizeError(ctx, result, err), nil
	}
	result.AgentsExecuted = append(result.AgentsExecuted, stages.Symptom.Name())
	result.SymptomAnalysis = &symptomRes.Analysis

	// No symptoms: terminal summary-only completion, no further stages.
	if !symptomRes.Analysis.RequiresTriage {
		logger.Info("No stroke symptoms detected, skipping triage")
		return finalize(ctx, result), nil
	}

	// Stage 2: triage scoring.
	var triageRes activities.PerformTriageResult
	err = workflow.ExecuteActivity(ctx, activities.PerformTriageActivity, activities.PerformTriageInput{
		Analysis: symptomRes.Analysis,
	}).Get(ctx, &triageRes)
	if err != nil {
		return finalizeError(ctx, result, err), nil
	}
	result.AgentsExecuted = append(result.AgentsExecuted, stages.Triage.Name())
	result.TriageAssessment = &triageRes.Assessment

	// Stage 3: emergency alert, only past the gate. Never invoked twice
	// within one run.
	if triageRes.Assessment.RequiresImmediateAttention {
		var alertRes activities.DispatchAlertResult
		err = workflow.ExecuteActivity(ctx, activities.DispatchAlertActivity, activities.DispatchAlertInput{
			Assessment: triageRes.Assessment,
			PatientID:  input.PatientID,
			Location:   input.Location,
		}).Get(ctx, &alertRes)
		if err != nil {
			return finalizeError(ctx, result, err), nil
		}
		result.AgentsExecuted = append(result.AgentsExecuted, stages.Alert.Name())
		result.EmergencyAlert = &alertRes.Alert
	}

	// Stage 4: care instructions for every triaged case.
	var careRes activities.ProvideCareResult
	err = workflow.ExecuteActivity(ctx, activities.ProvideCareActivity, activities.ProvideCareInput{
		Analysis:     symptomRes.Analysis,
		Assessment:   triageRes.Assessment,
		AlertPresent: result.EmergencyAlert != nil,
	}).Get(ctx, &careRes)
	if err != nil {
		return finalizeError(ctx, result, err), nil
	}
	result.AgentsExecuted = append(result.AgentsExecuted, stages.Care.Name())
	result.CareInstructions = &careRes.Instructions

	// Stage 5: event logging. A collaborator failure must not discard the
	// medical content already computed.
	var recordRes activities.RecordEventResult
	err = workflow.ExecuteActivity(ctx, activities.RecordEventActivity, activities.RecordEventInput{
		WorkflowID: result.WorkflowID,
		Summary:    summaryPayload(result),
	}).Get(ctx, &recordRes)
	if err != nil {
		logger.Warn("Event log write failed, continuing", "error", err)
		result.Warning = "event log unavailable: " + err.Error()
	} else {
		result.AgentsExecuted = append(result.AgentsExecuted, stages.Followup.Name())
		result.EventLog = &EventLogRef{
			EventID:         recordRes.EventID,
			StorageLocation: recordRes.StorageLocation,
		}
	}

	logger.Info("Stroke assessment completed",
		"fast_score", symptomRes.Analysis.FASTScore,
		"urgency_score", triageRes.Assessment.UrgencyScore,
		"alerted", result.EmergencyAlert != nil,
	)
	return finalize(ctx, result), nil
}

func finalize(ctx workflow.Context, result AssessmentResult) AssessmentResult {
	end := workflow.Now(ctx)
	result.EndTime = end
	result.TotalDurationSeconds = end.Sub(result.StartTime).Seconds()
	result.Status = StatusCompleted
	result.Summary = buildSummary(result)
	return result
}

func finalizeError(ctx workflow.Context, result AssessmentResult, err error) AssessmentResult {
	end := workflow.Now(ctx)
	result.EndTime = end
	result.TotalDurationSeconds = end.Sub(result.StartTime).Seconds()
	result.Status = StatusError
	result.Error = err.Error()
	result.Summary = buildSummary(result)
	return result
}

// buildSummary derives the quick-consumption digest from whatever stages
// completed. Urgency defaults to zero when triage was skipped.
func buildSummary(result AssessmentResult) Summary {
	s := Summary{
		RequiresEmergency: result.EmergencyAlert != nil,
	}
	if result.SymptomAnalysis != nil {
		s.StrokeSymptomsDetected = result.SymptomAnalysis.RequiresTriage
		s.FASTScore = result.SymptomAnalysis.FASTScore
		s.SymptomSeverity = result.SymptomAnalysis.Severity
	}
	if result.TriageAssessment != nil {
		s.UrgencyScore = result.TriageAssessment.UrgencyScore
		s.TriageLevel = result.TriageAssessment.Level
	}
	for _, name := range result.AgentsExecuted {
		s.ActionsTaken = append(s.ActionsTaken, stages.Action(name))
	}
	return s
}

// summaryPayload is the event-log rendering of the summary, built before the
// followup stage is appended so it reflects the medical outcome only.
func summaryPayload(result AssessmentResult) map[string]interface{} {
	summary := buildSummary(result)
	payload := map[string]interface{}{
		"patient_id":               result.PatientID,
		"stroke_symptoms_detected": summary.StrokeSymptomsDetected,
		"fast_score":               summary.FASTScore,
		"symptom_severity":         string(summary.SymptomSeverity),
		"urgency_score":            summary.UrgencyScore,
		"requires_emergency":       summary.RequiresEmergency,
		"agents_executed":          append([]string(nil), result.AgentsExecuted...),
	}
	if result.EmergencyAlert != nil {
		payload["alert_id"] = result.EmergencyAlert.AlertID
	}
	return payload
}
