package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Assessment metrics
	AssessmentsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strokesense_assessments_started_total",
			Help: "Total number of assessment workflows started",
		},
		[]string{"input_type"},
	)

	AssessmentsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strokesense_assessments_completed_total",
			Help: "Total number of assessment workflows completed",
		},
		[]string{"status"},
	)

	AssessmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strokesense_assessment_duration_seconds",
			Help:    "End-to-end assessment duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Stage metrics
	StageExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strokesense_stage_executions_total",
			Help: "Total number of stage executions",
		},
		[]string{"stage"},
	)

	// Clinical outcome metrics
	FASTScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strokesense_fast_score",
			Help:    "Distribution of FAST scores across assessments",
			Buckets: []float64{0, 33, 34, 60, 66, 67, 100},
		},
	)

	AlertsTriggered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strokesense_alerts_triggered_total",
			Help: "Total number of emergency alerts triggered",
		},
	)

	SeverityDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strokesense_severity_detections_total",
			Help: "Assessments by detected severity tier",
		},
		[]string{"severity"},
	)

	// Collaborator metrics
	EventLogFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strokesense_event_log_failures_total",
			Help: "Failed writes to the event-log sink",
		},
		[]string{"sink"},
	)
)
