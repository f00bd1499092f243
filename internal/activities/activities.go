// Package activities implements the side-effecting stage wrappers executed by
// the assessment workflow. Identifier minting, wall-clock timestamps, and sink
// writes all live here so workflow code stays deterministic.
package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.uber.org/zap"

	"github.com/strokesense/orchestrator/internal/alerting"
	"github.com/strokesense/orchestrator/internal/care"
	"github.com/strokesense/orchestrator/internal/eventlog"
	"github.com/strokesense/orchestrator/internal/metrics"
	"github.com/strokesense/orchestrator/internal/stages"
	"github.com/strokesense/orchestrator/internal/symptoms"
	"github.com/strokesense/orchestrator/internal/triage"
)

// Activities bundles the dependencies shared by all stage activities.
type Activities struct {
	extractor *symptoms.Extractor
	sink      eventlog.Sink
	logger    *zap.Logger
}

func New(extractor *symptoms.Extractor, sink eventlog.Sink, logger *zap.Logger) *Activities {
	if sink == nil {
		sink = eventlog.NopSink{}
	}
	return &Activities{extractor: extractor, sink: sink, logger: logger}
}

// AnalyzeSymptoms runs the symptom extractor over the raw input. Voice input
// is normalized before matching.
func (a *Activities) AnalyzeSymptoms(ctx context.Context, input AnalyzeSymptomsInput) (AnalyzeSymptomsResult, error) {
	activity.GetLogger(ctx).Info("Analyzing symptoms", "input_type", input.InputType)

	text := input.Text
	if input.InputType == "voice" {
		text = symptoms.NormalizeVoice(text)
	}
	analysis := a.extractor.Extract(text)

	metrics.StageExecutions.WithLabelValues(stages.Symptom.Name()).Inc()
	metrics.FASTScores.Observe(float64(analysis.FASTScore))
	metrics.SeverityDetections.WithLabelValues(string(analysis.Severity)).Inc()

	a.logger.Info("Symptom analysis complete",
		zap.Int("fast_score", analysis.FASTScore),
		zap.String("severity", string(analysis.Severity)),
		zap.Bool("requires_triage", analysis.RequiresTriage),
	)
	return AnalyzeSymptomsResult{Analysis: analysis}, nil
}

// PerformTriage scores the analysis and decides the emergency gate.
func (a *Activities) PerformTriage(ctx context.Context, input PerformTriageInput) (PerformTriageResult, error) {
	activity.GetLogger(ctx).Info("Performing triage")

	assessment := triage.Score(input.Analysis)
	metrics.StageExecutions.WithLabelValues(stages.Triage.Name()).Inc()

	a.logger.Info("Triage complete",
		zap.Int("urgency_score", assessment.UrgencyScore),
		zap.String("triage_level", string(assessment.Level)),
		zap.Bool("requires_immediate_attention", assessment.RequiresImmediateAttention),
	)
	return PerformTriageResult{Assessment: assessment}, nil
}

// DispatchAlert synthesizes the emergency alert record for the dispatch
// collaborator.
func (a *Activities) DispatchAlert(ctx context.Context, input DispatchAlertInput) (DispatchAlertResult, error) {
	activity.GetLogger(ctx).Info("Dispatching emergency alert", "patient_id", input.PatientID)

	alert := alerting.Build(input.Assessment, input.PatientID, input.Location)
	metrics.StageExecutions.WithLabelValues(stages.Alert.Name()).Inc()
	metrics.AlertsTriggered.Inc()

	a.logger.Warn("Emergency alert synthesized",
		zap.String("alert_id", alert.AlertID),
		zap.String("urgency_level", alert.DispatchInfo.UrgencyLevel),
	)
	return DispatchAlertResult{Alert: alert}, nil
}

// ProvideCare composes the care-instruction bundle.
func (a *Activities) ProvideCare(ctx context.Context, input ProvideCareInput) (ProvideCareResult, error) {
	activity.GetLogger(ctx).Info("Composing care instructions", "alert_present", input.AlertPresent)

	instructions := care.Compose(input.Analysis, input.Assessment, input.AlertPresent)
	metrics.StageExecutions.WithLabelValues(stages.Care.Name()).Inc()

	return ProvideCareResult{Instructions: instructions}, nil
}

// RecordEvent hands the assessment summary to the log-sink collaborator.
// Failures surface to the workflow, which treats them as non-fatal.
func (a *Activities) RecordEvent(ctx context.Context, input RecordEventInput) (RecordEventResult, error) {
	activity.GetLogger(ctx).Info("Recording assessment event", "workflow_id", input.WorkflowID)

	event := eventlog.Event{
		EventID:    fmt.Sprintf("EVENT-%s", uuid.NewString()),
		WorkflowID: input.WorkflowID,
		Summary:    input.Summary,
		Timestamp:  time.Now().UTC(),
	}
	location, err := a.sink.Record(ctx, event)
	if err != nil {
		metrics.EventLogFailures.WithLabelValues(a.sink.Name()).Inc()
		a.logger.Error("Event log write failed",
			zap.String("sink", a.sink.Name()),
			zap.String("workflow_id", input.WorkflowID),
			zap.Error(err),
		)
		return RecordEventResult{}, err
	}

	metrics.StageExecutions.WithLabelValues(stages.Followup.Name()).Inc()
	return RecordEventResult{
		EventID:         event.EventID,
		StorageLocation: location,
	}, nil
}
