package task

import (
	"log/slog"

	"github.com/google/uuid"
)

// CorrelationRecomputeTaskFactory creates CorrelationRecomputeTask instances
type CorrelationRecomputeTaskFactory struct {
	insightService InsightService
	logger         *slog.Logger
}

// NewCorrelationRecomputeTaskFactory creates a new factory for
// CorrelationRecomputeTasks
func NewCorrelationRecomputeTaskFactory(
	insightService InsightService,
	logger *slog.Logger,
) *CorrelationRecomputeTaskFactory {
	return &CorrelationRecomputeTaskFactory{
		insightService: insightService,
		logger:         logger.With("component", "correlation_recompute_task_factory"),
	}
}

// CreateTask builds a new task for the given user.
func (f *CorrelationRecomputeTaskFactory) CreateTask(userID uuid.UUID) (Task, error) {
	return NewCorrelationRecomputeTask(userID, f.insightService, f.logger)
}
