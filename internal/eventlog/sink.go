// Package eventlog is the boundary to the external log collaborator. The core
// hands it one event per completed assessment and gets back a storage locator;
// everything else (retention, querying, retries) is the collaborator's concern.
package eventlog

import (
	"context"
	"time"
)

// Event is the record handed to the sink.
type Event struct {
	EventID    string                 `json:"event_id"`
	WorkflowID string                 `json:"workflow_id"`
	Summary    map[string]interface{} `json:"summary"`
	Timestamp  time.Time              `json:"timestamp"`
}

// Sink records events and returns a storage locator. Implementations own
// their concurrency discipline; callers treat failures as non-fatal.
type Sink interface {
	Record(ctx context.Context, e Event) (storageLocation string, err error)
	Name() string
}

// NopSink is used when no log collaborator is configured.
type NopSink struct{}

func (NopSink) Record(_ context.Context, e Event) (string, error) {
	return "memory://" + e.EventID, nil
}

func (NopSink) Name() string { return "nop" }
