package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/strokesense/orchestrator/internal/db"
)

// PostgresSink persists events to the stroke_events table.
type PostgresSink struct {
	client *db.Client
	logger *zap.Logger
}

func NewPostgresSink(client *db.Client, logger *zap.Logger) *PostgresSink {
	return &PostgresSink{client: client, logger: logger}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Record(ctx context.Context, e Event) (string, error) {
	summary, err := json.Marshal(e.Summary)
	if err != nil {
		return "", fmt.Errorf("marshal event summary: %w", err)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = s.client.DB().ExecContext(ctx, `
        INSERT INTO stroke_events (event_id, workflow_id, summary, recorded_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (event_id) DO NOTHING
    `, e.EventID, e.WorkflowID, summary, ts)
	if err != nil {
		return "", fmt.Errorf("insert stroke event: %w", err)
	}

	s.logger.Debug("Event recorded",
		zap.String("sink", s.Name()),
		zap.String("event_id", e.EventID),
		zap.String("workflow_id", e.WorkflowID),
	)
	return "postgres://stroke_events/" + e.EventID, nil
}
