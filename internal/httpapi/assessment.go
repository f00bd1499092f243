// Package httpapi exposes the inbound assessment and status endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/strokesense/orchestrator/internal/alerting"
	"github.com/strokesense/orchestrator/internal/metrics"
	"github.com/strokesense/orchestrator/internal/workflows"
)

// AssessmentRunner executes one assessment workflow. The live implementation
// wraps the temporal client; tests substitute a fake.
type AssessmentRunner interface {
	Run(ctx context.Context, input workflows.AssessmentInput) (workflows.AssessmentResult, error)
}

// AssessmentHandler serves POST /api/v1/assessments and the batch variant.
type AssessmentHandler struct {
	runner  AssessmentRunner
	stats   *StatsTracker
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewAssessmentHandler(runner AssessmentRunner, stats *StatsTracker, limiter *rate.Limiter, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{runner: runner, stats: stats, limiter: limiter, logger: logger}
}

func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/assessments", h.handleAssessment)
	mux.HandleFunc("/api/v1/assessments/batch", h.handleBatch)
}

// AssessmentRequest is the inbound request body.
type AssessmentRequest struct {
	PatientID string             `json:"patient_id"`
	InputType string             `json:"input_type"`
	Text      string             `json:"text"`
	Location  *alerting.Location `json:"location,omitempty"`
}

func (r AssessmentRequest) validate() error {
	if r.Text == "" {
		return errors.New("raw input text is required")
	}
	switch r.InputType {
	case "", workflows.InputTypeText, workflows.InputTypeVoice, workflows.InputTypeVideo:
		return nil
	default:
		return fmt.Errorf("unknown input_type %q", r.InputType)
	}
}

func (h *AssessmentHandler) handleAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.limiter != nil && !h.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Input errors reject immediately; the pipeline never starts.
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.run(r.Context(), req)
	if err != nil {
		var appErr *temporal.ApplicationError
		if errors.As(err, &appErr) && appErr.Type() == workflows.ErrEmptyInputType {
			writeError(w, http.StatusBadRequest, appErr.Error())
			return
		}
		h.logger.Error("Assessment run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "assessment failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AssessmentHandler) run(ctx context.Context, req AssessmentRequest) (workflows.AssessmentResult, error) {
	inputType := req.InputType
	if inputType == "" {
		inputType = workflows.InputTypeText
	}
	metrics.AssessmentsStarted.WithLabelValues(inputType).Inc()

	result, err := h.runner.Run(ctx, workflows.AssessmentInput{
		PatientID: req.PatientID,
		InputType: inputType,
		Text:      req.Text,
		Location:  req.Location,
	})
	if err != nil {
		metrics.AssessmentsCompleted.WithLabelValues(workflows.StatusError).Inc()
		return workflows.AssessmentResult{}, err
	}

	metrics.AssessmentsCompleted.WithLabelValues(result.Status).Inc()
	metrics.AssessmentDuration.Observe(result.TotalDurationSeconds)
	h.stats.Record(result)
	return result, nil
}

// BatchRequest runs several independent assessments and returns a priority
// queue ordered by urgency.
type BatchRequest struct {
	Assessments []AssessmentRequest `json:"assessments"`
}

type BatchEntry struct {
	PriorityRank               int     `json:"priority_rank"`
	PatientID                  string  `json:"patient_id"`
	WorkflowID                 string  `json:"workflow_id"`
	Status                     string  `json:"status"`
	UrgencyScore               int     `json:"urgency_score"`
	RequiresImmediateAttention bool    `json:"requires_immediate_attention"`
}

type BatchResponse struct {
	BatchID       string                       `json:"batch_id"`
	TotalPatients int                          `json:"total_patients"`
	Results       []workflows.AssessmentResult `json:"results"`
	PriorityQueue []BatchEntry                 `json:"priority_queue"`
}

func (h *AssessmentHandler) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.limiter != nil && !h.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 4<<20)
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Assessments) == 0 {
		writeError(w, http.StatusBadRequest, "assessments list is empty")
		return
	}
	for i, a := range req.Assessments {
		if err := a.validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("assessment %d: %s", i, err))
			return
		}
	}

	resp := BatchResponse{
		BatchID:       "BATCH-" + uuid.NewString(),
		TotalPatients: len(req.Assessments),
	}
	// Workflows are independent; run them in order and rank afterwards.
	for _, a := range req.Assessments {
		result, err := h.run(r.Context(), a)
		if err != nil {
			h.logger.Error("Batch assessment failed",
				zap.String("patient_id", a.PatientID),
				zap.Error(err),
			)
			result = workflows.AssessmentResult{
				PatientID: a.PatientID,
				Status:    workflows.StatusError,
				Error:     err.Error(),
			}
		}
		resp.Results = append(resp.Results, result)

		entry := BatchEntry{
			PatientID:  result.PatientID,
			WorkflowID: result.WorkflowID,
			Status:     result.Status,
		}
		if result.TriageAssessment != nil {
			entry.UrgencyScore = result.TriageAssessment.UrgencyScore
			entry.RequiresImmediateAttention = result.TriageAssessment.RequiresImmediateAttention
		}
		resp.PriorityQueue = append(resp.PriorityQueue, entry)
	}

	sort.SliceStable(resp.PriorityQueue, func(i, j int) bool {
		return resp.PriorityQueue[i].UrgencyScore > resp.PriorityQueue[j].UrgencyScore
	})
	for i := range resp.PriorityQueue {
		resp.PriorityQueue[i].PriorityRank = i + 1
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
