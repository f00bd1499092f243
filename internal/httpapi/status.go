package httpapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/strokesense/orchestrator/internal/stages"
	"github.com/strokesense/orchestrator/internal/workflows"
)

// StatsTracker accumulates in-process run statistics for the status endpoint.
// It is not a metrics system; prometheus covers that. This feeds the dashboard
// payload only.
type StatsTracker struct {
	mu            sync.Mutex
	started       time.Time
	total         int64
	errored       int64
	totalDuration float64
	lastStageRun  map[string]time.Time
}

func NewStatsTracker() *StatsTracker {
	return &StatsTracker{
		started:      time.Now(),
		lastStageRun: make(map[string]time.Time),
	}
}

// Record folds one finished assessment into the running stats.
func (s *StatsTracker) Record(result workflows.AssessmentResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	if result.Status == workflows.StatusError {
		s.errored++
	}
	s.totalDuration += result.TotalDurationSeconds
	now := time.Now()
	for _, name := range result.AgentsExecuted {
		s.lastStageRun[name] = now
	}
}

type snapshot struct {
	total        int64
	errored      int64
	avgDuration  float64
	lastStageRun map[string]time.Time
	started      time.Time
}

func (s *StatsTracker) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		total:        s.total,
		errored:      s.errored,
		started:      s.started,
		lastStageRun: make(map[string]time.Time, len(s.lastStageRun)),
	}
	if s.total > 0 {
		snap.avgDuration = s.totalDuration / float64(s.total)
	}
	for k, v := range s.lastStageRun {
		snap.lastStageRun[k] = v
	}
	return snap
}

// StatusHandler serves GET /api/v1/status for dashboards.
type StatusHandler struct {
	stats  *StatsTracker
	logger *zap.Logger
}

func NewStatusHandler(stats *StatsTracker, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{stats: stats, logger: logger}
}

func (h *StatusHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/status", h.handleStatus)
}

type agentStatus struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	LastUpdate  string `json:"last_update"`
}

type performanceMetrics struct {
	TotalAssessments       int64   `json:"total_assessments"`
	AverageDurationSeconds float64 `json:"average_duration_seconds"`
	SuccessRate            string  `json:"success_rate"`
}

type statusResponse struct {
	SystemStatus       string                 `json:"system_status"`
	Agents             map[string]agentStatus `json:"agents"`
	PerformanceMetrics performanceMetrics     `json:"performance_metrics"`
	Timestamp          string                 `json:"timestamp"`
}

func (h *StatusHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := h.stats.snapshot()
	agents := make(map[string]agentStatus, len(stages.All()))
	for _, stage := range stages.All() {
		last := snap.lastStageRun[stage.Name()]
		if last.IsZero() {
			last = snap.started
		}
		agents[stage.Name()] = agentStatus{
			Status:      "active",
			Description: stage.Description(),
			Icon:        stage.Icon(),
			LastUpdate:  last.UTC().Format(time.RFC3339),
		}
	}

	successRate := "100.0%"
	if snap.total > 0 {
		rate := float64(snap.total-snap.errored) / float64(snap.total) * 100
		successRate = fmt.Sprintf("%.1f%%", rate)
	}

	writeJSON(w, http.StatusOK, statusResponse{
		SystemStatus: "operational",
		Agents:       agents,
		PerformanceMetrics: performanceMetrics{
			TotalAssessments:       snap.total,
			AverageDurationSeconds: snap.avgDuration,
			SuccessRate:            successRate,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
