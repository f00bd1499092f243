// Package health provides liveness and readiness checks for the service's
// collaborators.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CheckStatus represents the result of a health check.
type CheckStatus int

const (
	StatusHealthy CheckStatus = iota
	StatusDegraded
	StatusUnhealthy
)

func (s CheckStatus) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Component string        `json:"component"`
	Status    CheckStatus   `json:"-"`
	StatusStr string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
	Critical  bool          `json:"critical"`
}

// Checker is a single component health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
	// IsCritical marks checks whose failure makes the whole service unready.
	IsCritical() bool
}

// Manager runs registered checks on demand.
type Manager struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	logger   *zap.Logger
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		checkers: make(map[string]Checker),
		logger:   logger,
	}
}

func (m *Manager) RegisterChecker(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[c.Name()] = c
}

// OverallHealth is the aggregate status plus per-component detail.
type OverallHealth struct {
	Status     string                 `json:"status"`
	Components map[string]CheckResult `json:"components"`
	Timestamp  time.Time              `json:"timestamp"`
}

// Check runs all registered checks with a bounded per-check timeout.
func (m *Manager) Check(ctx context.Context) OverallHealth {
	m.mu.RLock()
	checkers := make([]Checker, 0, len(m.checkers))
	for _, c := range m.checkers {
		checkers = append(checkers, c)
	}
	m.mu.RUnlock()

	overall := StatusHealthy
	components := make(map[string]CheckResult, len(checkers))
	for _, c := range checkers {
		cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		result := c.Check(cctx)
		cancel()
		result.StatusStr = result.Status.String()
		components[c.Name()] = result

		if result.Status == StatusUnhealthy {
			if c.IsCritical() {
				overall = StatusUnhealthy
			} else if overall == StatusHealthy {
				overall = StatusDegraded
			}
			m.logger.Warn("Health check failed",
				zap.String("component", c.Name()),
				zap.String("error", result.Error),
			)
		}
	}

	return OverallHealth{
		Status:     overall.String(),
		Components: components,
		Timestamp:  time.Now(),
	}
}

// IsReady reports whether every critical check passes.
func (m *Manager) IsReady(ctx context.Context) bool {
	return m.Check(ctx).Status != StatusUnhealthy.String()
}
