package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/events"
)

// taskFactory creates tasks for a user. Satisfied by
// *CorrelationRecomputeTaskFactory.
type taskFactory interface {
	CreateTask(userID uuid.UUID) (Task, error)
}

// taskSubmitter accepts tasks for execution. Satisfied by *TaskRunner.
type taskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler implements the events.EventHandler interface
// to handle task creation events and delegate them to the task factory.
type TaskFactoryEventHandler struct {
	factory   taskFactory
	submitter taskSubmitter
	logger    *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the
// given task factory to create tasks and submits them to the provided
// task runner.
func NewTaskFactoryEventHandler(
	factory taskFactory,
	submitter taskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		factory:   factory,
		submitter: submitter,
		logger:    logger.With("component", "task_factory_event_handler"),
	}
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// HandleEvent processes events by creating and submitting tasks.
// Events with an unsupported type are ignored.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != TaskTypeCorrelationRecompute {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload struct {
		UserID string `json:"user_id"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		h.logger.Error("invalid user ID",
			"error", err,
			"user_id", payload.UserID,
			"event_id", event.ID)
		return fmt.Errorf("invalid user ID: %w", err)
	}

	t, err := h.factory.CreateTask(userID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"user_id", userID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.submitter.Submit(ctx, t); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", t.ID(),
			"user_id", userID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted successfully",
		"task_id", t.ID(),
		"user_id", userID,
		"event_id", event.ID)
	return nil
}
