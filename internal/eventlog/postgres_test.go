package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/strokesense/orchestrator/internal/db"
)

func newPostgresSink(t *testing.T) (*PostgresSink, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	client := db.NewClientFromDB(sqlx.NewDb(mockDB, "postgres"), zaptest.NewLogger(t))
	return NewPostgresSink(client, zaptest.NewLogger(t)), mock
}

func TestPostgresSinkRecord(t *testing.T) {
	sink, mock := newPostgresSink(t)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO stroke_events").
		WithArgs("EVENT-abc", "wf-123", sqlmock.AnyArg(), ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	location, err := sink.Record(context.Background(), Event{
		EventID:    "EVENT-abc",
		WorkflowID: "wf-123",
		Summary:    map[string]interface{}{"urgency_score": 90},
		Timestamp:  ts,
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres://stroke_events/EVENT-abc", location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkInsertFailure(t *testing.T) {
	sink, mock := newPostgresSink(t)

	mock.ExpectExec("INSERT INTO stroke_events").
		WillReturnError(errors.New("connection reset"))

	_, err := sink.Record(context.Background(), Event{
		EventID:    "EVENT-x",
		WorkflowID: "wf-x",
		Timestamp:  time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
