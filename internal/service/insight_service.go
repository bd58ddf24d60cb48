package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/insight"
	"github.com/auradaily/aura-api/internal/observability"
	"github.com/auradaily/aura-api/internal/store"
)

// InsightService maintains and serves per-user lifestyle correlations.
type InsightService interface {
	// RecomputeCorrelations rebuilds the user's stored correlations
	// from their full log and score history. The stored set is replaced
	// atomically; factors below the minimum matched sample size drop out.
	RecomputeCorrelations(ctx context.Context, userID uuid.UUID) error

	// GetCorrelations returns the user's stored correlations, one per
	// factor that has reached the minimum sample size.
	GetCorrelations(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error)
}

// insightServiceImpl implements the InsightService interface
type insightServiceImpl struct {
	lifestyleStore   store.LifestyleStore
	scoreStore       store.ScoreStore
	correlationStore store.CorrelationStore
	db               *sql.DB
	logger           *slog.Logger
	timeFunc         func() time.Time // Injectable for testing
}

// NewInsightService creates a new InsightService
func NewInsightService(
	lifestyleStore store.LifestyleStore,
	scoreStore store.ScoreStore,
	correlationStore store.CorrelationStore,
	db *sql.DB,
	logger *slog.Logger,
) InsightService {
	if logger == nil {
		logger = slog.Default()
	}

	return &insightServiceImpl{
		lifestyleStore:   lifestyleStore,
		scoreStore:       scoreStore,
		correlationStore: correlationStore,
		db:               db,
		logger:           logger.With("component", "insight_service"),
		timeFunc:         time.Now,
	}
}

// RecomputeCorrelations implements InsightService.RecomputeCorrelations
func (s *insightServiceImpl) RecomputeCorrelations(ctx context.Context, userID uuid.UUID) error {
	scoreHistory, err := s.scoreStore.GetHistory(ctx, userID)
	if err != nil {
		return &ServiceError{Operation: "recompute_correlations", Message: "failed to load score history", Err: err}
	}

	logs := make(map[domain.LogCategory][]domain.LogEntry, len(domain.AllLogCategories))
	for _, category := range domain.AllLogCategories {
		entries, err := s.lifestyleStore.GetEntries(ctx, userID, category, store.DayRange{})
		if err != nil {
			return &ServiceError{Operation: "recompute_correlations", Message: "failed to load log entries", Err: err}
		}
		if len(entries) > 0 {
			logs[category] = entries
		}
	}

	correlations := insight.AnalyzeCorrelations(userID, scoreHistory, logs, s.timeFunc().UTC())

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.correlationStore.WithTx(tx).ReplaceAll(ctx, userID, correlations)
	})
	if err != nil {
		observability.RecordCorrelationRecompute("error")
		return &ServiceError{Operation: "recompute_correlations", Message: "failed to store correlations", Err: err}
	}

	observability.RecordCorrelationRecompute("success")
	s.logger.Info("correlations recomputed",
		"user_id", userID,
		"correlation_count", len(correlations),
		"score_points", len(scoreHistory))
	return nil
}

// GetCorrelations implements InsightService.GetCorrelations
func (s *insightServiceImpl) GetCorrelations(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error) {
	correlations, err := s.correlationStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "get_correlations", Message: "failed to load correlations", Err: err}
	}
	return correlations, nil
}
