package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilInsightService = errors.New("insight service cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
)

// InsightService defines the interface for correlation recomputation.
// Defined here so the task package does not depend on the service package.
type InsightService interface {
	// RecomputeCorrelations rebuilds the user's stored correlations
	// from their full lifestyle log and score history.
	RecomputeCorrelations(ctx context.Context, userID uuid.UUID) error
}

// correlationRecomputePayload represents the serialized data stored in the task
type correlationRecomputePayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// CorrelationRecomputeTask implements the Task interface for rebuilding
// a user's lifestyle correlations in the background.
type CorrelationRecomputeTask struct {
	id             uuid.UUID
	userID         uuid.UUID
	insightService InsightService
	logger         *slog.Logger
	status         TaskStatus
}

// NewCorrelationRecomputeTask creates a new correlation recompute task
func NewCorrelationRecomputeTask(
	userID uuid.UUID,
	insightService InsightService,
	logger *slog.Logger,
) (*CorrelationRecomputeTask, error) {
	if insightService == nil {
		return nil, ErrNilInsightService
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	return &CorrelationRecomputeTask{
		id:             uuid.New(),
		userID:         userID,
		insightService: insightService,
		logger:         logger.With("task_type", TaskTypeCorrelationRecompute, "user_id", userID),
		status:         TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *CorrelationRecomputeTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *CorrelationRecomputeTask) Type() string {
	return TaskTypeCorrelationRecompute
}

// Payload returns the task data as a byte slice
func (t *CorrelationRecomputeTask) Payload() []byte {
	payload := correlationRecomputePayload{
		UserID: t.userID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *CorrelationRecomputeTask) Status() TaskStatus {
	return t.status
}

// Execute rebuilds the user's stored correlations.
func (t *CorrelationRecomputeTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting correlation recompute task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	if err := t.insightService.RecomputeCorrelations(ctx, t.userID); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to recompute correlations", "error", err)
		return fmt.Errorf("failed to recompute correlations: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("correlation recompute task completed successfully")
	return nil
}
