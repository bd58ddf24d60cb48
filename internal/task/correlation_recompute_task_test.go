package task

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubInsightService records recompute calls and returns a configured error.
type stubInsightService struct {
	calls []uuid.UUID
	err   error
}

func (s *stubInsightService) RecomputeCorrelations(ctx context.Context, userID uuid.UUID) error {
	s.calls = append(s.calls, userID)
	return s.err
}

func TestNewCorrelationRecomputeTask_Validation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		userID  uuid.UUID
		svc     InsightService
		logger  *slog.Logger
		wantErr error
	}{
		{"nil service", userID, nil, testLogger(), ErrNilInsightService},
		{"nil logger", userID, &stubInsightService{}, nil, ErrNilLogger},
		{"empty user", uuid.Nil, &stubInsightService{}, testLogger(), ErrEmptyUserID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewCorrelationRecomputeTask(tt.userID, tt.svc, tt.logger)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCorrelationRecomputeTask_Execute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("successful execution", func(t *testing.T) {
		t.Parallel()

		svc := &stubInsightService{}
		task, err := NewCorrelationRecomputeTask(userID, svc, testLogger())
		require.NoError(t, err)
		assert.Equal(t, TaskStatusPending, task.Status())
		assert.Equal(t, TaskTypeCorrelationRecompute, task.Type())

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusCompleted, task.Status())
		assert.Equal(t, []uuid.UUID{userID}, svc.calls)
	})

	t.Run("service failure marks the task failed", func(t *testing.T) {
		t.Parallel()

		svc := &stubInsightService{err: errors.New("store unavailable")}
		task, err := NewCorrelationRecomputeTask(userID, svc, testLogger())
		require.NoError(t, err)

		require.Error(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("cancelled context aborts before the service call", func(t *testing.T) {
		t.Parallel()

		svc := &stubInsightService{}
		task, err := NewCorrelationRecomputeTask(userID, svc, testLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.Error(t, task.Execute(ctx))
		assert.Equal(t, TaskStatusFailed, task.Status())
		assert.Empty(t, svc.calls)
	})
}

func TestCorrelationRecomputeTask_Payload(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	task, err := NewCorrelationRecomputeTask(userID, &stubInsightService{}, testLogger())
	require.NoError(t, err)

	var payload struct {
		UserID uuid.UUID `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, userID, payload.UserID)
}

func TestCorrelationRecomputeTaskFactory(t *testing.T) {
	t.Parallel()

	factory := NewCorrelationRecomputeTaskFactory(&stubInsightService{}, testLogger())

	task, err := factory.CreateTask(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, TaskTypeCorrelationRecompute, task.Type())

	task, err = factory.CreateTask(uuid.Nil)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, ErrEmptyUserID)
}
