package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	eventKeyPrefix   = "stroke:events:"
	workflowKeyPrefix = "stroke:workflow:"
	defaultEventTTL  = 30 * 24 * time.Hour
)

// RedisSink records events as hashes keyed by event id, with a per-workflow
// list for lookup by workflow id.
type RedisSink struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSink(client *redis.Client, logger *zap.Logger) *RedisSink {
	return &RedisSink{client: client, ttl: defaultEventTTL, logger: logger}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Record(ctx context.Context, e Event) (string, error) {
	summary, err := json.Marshal(e.Summary)
	if err != nil {
		return "", fmt.Errorf("marshal event summary: %w", err)
	}

	key := eventKeyPrefix + e.EventID
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"event_id":    e.EventID,
		"workflow_id": e.WorkflowID,
		"summary":     summary,
		"timestamp":   e.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, s.ttl)
	pipe.RPush(ctx, workflowKeyPrefix+e.WorkflowID, e.EventID)
	pipe.Expire(ctx, workflowKeyPrefix+e.WorkflowID, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("record event in redis: %w", err)
	}

	s.logger.Debug("Event recorded",
		zap.String("sink", s.Name()),
		zap.String("event_id", e.EventID),
		zap.String("workflow_id", e.WorkflowID),
	)
	return "redis://" + key, nil
}
