package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"

	"github.com/strokesense/orchestrator/internal/triage"
	"github.com/strokesense/orchestrator/internal/workflows"
)

// fakeRunner scores requests with a canned urgency per patient id.
type fakeRunner struct {
	urgency map[string]int
	err     error
	calls   []workflows.AssessmentInput
}

func (f *fakeRunner) Run(_ context.Context, input workflows.AssessmentInput) (workflows.AssessmentResult, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return workflows.AssessmentResult{}, f.err
	}
	urgency := f.urgency[input.PatientID]
	result := workflows.AssessmentResult{
		WorkflowID:     "stroke-" + input.PatientID,
		PatientID:      input.PatientID,
		InputType:      input.InputType,
		Status:         workflows.StatusCompleted,
		AgentsExecuted: []string{"symptom_agent", "triage_agent", "care_agent", "followup_agent"},
		TriageAssessment: &triage.Assessment{
			UrgencyScore:               urgency,
			RequiresImmediateAttention: urgency >= 70,
		},
	}
	return result, nil
}

func newTestHandler(t *testing.T, runner AssessmentRunner, limiter *rate.Limiter) (*http.ServeMux, *StatsTracker) {
	stats := NewStatsTracker()
	mux := http.NewServeMux()
	NewAssessmentHandler(runner, stats, limiter, zaptest.NewLogger(t)).RegisterRoutes(mux)
	NewStatusHandler(stats, zaptest.NewLogger(t)).RegisterRoutes(mux)
	return mux, stats
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAssessmentEndpoint(t *testing.T) {
	runner := &fakeRunner{urgency: map[string]int{"p-1": 90}}
	mux, _ := newTestHandler(t, runner, nil)

	rec := postJSON(t, mux, "/api/v1/assessments", AssessmentRequest{
		PatientID: "p-1",
		InputType: "text",
		Text:      "face drooping",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result workflows.AssessmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "p-1", result.PatientID)
	assert.Equal(t, workflows.StatusCompleted, result.Status)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "text", runner.calls[0].InputType)
}

func TestAssessmentEmptyTextRejected(t *testing.T) {
	runner := &fakeRunner{}
	mux, _ := newTestHandler(t, runner, nil)

	rec := postJSON(t, mux, "/api/v1/assessments", AssessmentRequest{PatientID: "p-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "raw input text is required")
	// The pipeline never starts.
	assert.Empty(t, runner.calls)
}

func TestAssessmentUnknownInputTypeRejected(t *testing.T) {
	mux, _ := newTestHandler(t, &fakeRunner{}, nil)

	rec := postJSON(t, mux, "/api/v1/assessments", AssessmentRequest{
		PatientID: "p-1",
		InputType: "telepathy",
		Text:      "arm weakness",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessmentDefaultsInputTypeToText(t *testing.T) {
	runner := &fakeRunner{}
	mux, _ := newTestHandler(t, runner, nil)

	rec := postJSON(t, mux, "/api/v1/assessments", AssessmentRequest{
		PatientID: "p-1",
		Text:      "arm weakness",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, workflows.InputTypeText, runner.calls[0].InputType)
}

func TestAssessmentRunnerFailure(t *testing.T) {
	mux, _ := newTestHandler(t, &fakeRunner{err: errors.New("temporal down")}, nil)

	rec := postJSON(t, mux, "/api/v1/assessments", AssessmentRequest{
		PatientID: "p-1",
		Text:      "arm weakness",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAssessmentRateLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	mux, _ := newTestHandler(t, &fakeRunner{}, limiter)

	body := AssessmentRequest{PatientID: "p-1", Text: "arm weakness"}
	first := postJSON(t, mux, "/api/v1/assessments", body)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, mux, "/api/v1/assessments", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestBatchPriorityQueue(t *testing.T) {
	runner := &fakeRunner{urgency: map[string]int{"low": 30, "high": 90, "mid": 60}}
	mux, _ := newTestHandler(t, runner, nil)

	rec := postJSON(t, mux, "/api/v1/assessments/batch", BatchRequest{
		Assessments: []AssessmentRequest{
			{PatientID: "low", Text: "arm weakness"},
			{PatientID: "high", Text: "face drooping, arm weakness and slurred speech"},
			{PatientID: "mid", Text: "arm weakness and slurred speech"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalPatients)
	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.PriorityQueue, 3)

	assert.Equal(t, "high", resp.PriorityQueue[0].PatientID)
	assert.Equal(t, 1, resp.PriorityQueue[0].PriorityRank)
	assert.True(t, resp.PriorityQueue[0].RequiresImmediateAttention)
	assert.Equal(t, "mid", resp.PriorityQueue[1].PatientID)
	assert.Equal(t, "low", resp.PriorityQueue[2].PatientID)
	assert.Equal(t, 3, resp.PriorityQueue[2].PriorityRank)
}

func TestBatchRejectsInvalidEntry(t *testing.T) {
	runner := &fakeRunner{}
	mux, _ := newTestHandler(t, runner, nil)

	rec := postJSON(t, mux, "/api/v1/assessments/batch", BatchRequest{
		Assessments: []AssessmentRequest{
			{PatientID: "ok", Text: "arm weakness"},
			{PatientID: "bad", Text: ""},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, runner.calls)
}

func TestStatusEndpoint(t *testing.T) {
	runner := &fakeRunner{urgency: map[string]int{"p-1": 90}}
	mux, _ := newTestHandler(t, runner, nil)

	rec := postJSON(t, mux, "/api/v1/assessments", AssessmentRequest{
		PatientID: "p-1",
		Text:      "face drooping",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	statusRec := httptest.NewRecorder()
	mux.ServeHTTP(statusRec, req)
	require.Equal(t, http.StatusOK, statusRec.Code)

	var status struct {
		SystemStatus string `json:"system_status"`
		Agents       map[string]struct {
			Status     string `json:"status"`
			LastUpdate string `json:"last_update"`
		} `json:"agents"`
		PerformanceMetrics struct {
			TotalAssessments int64  `json:"total_assessments"`
			SuccessRate      string `json:"success_rate"`
		} `json:"performance_metrics"`
	}
	require.NoError(t, json.Unmarshal(statusRec.Body.Bytes(), &status))

	assert.Equal(t, "operational", status.SystemStatus)
	assert.Len(t, status.Agents, 5)
	for name, agent := range status.Agents {
		assert.Equal(t, "active", agent.Status, name)
		assert.NotEmpty(t, agent.LastUpdate, name)
	}
	assert.Equal(t, int64(1), status.PerformanceMetrics.TotalAssessments)
	assert.Equal(t, "100.0%", status.PerformanceMetrics.SuccessRate)
}
