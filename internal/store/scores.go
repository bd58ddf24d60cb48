package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
)

// ScoreStore defines the interface for persisting computed energy
// scores. The score history is the dependent series for correlation
// analysis, so every computed reading's scores are recorded by day key.
type ScoreStore interface {
	// RecordScore upserts the scores for one (user, day) pair.
	// Recomputing a reading for the same day replaces the previous
	// record rather than duplicating it.
	RecordScore(ctx context.Context, userID uuid.UUID, day string, baseScore, adjustedScore int) error

	// GetHistory retrieves the user's full score history, oldest
	// first, as (day, adjusted score) points. An empty result is not
	// an error.
	GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error)

	// WithTx returns a new ScoreStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ScoreStore
}

// CorrelationStore defines the interface for the derived correlation
// cache. Stored correlations are recomputed from the full log history
// and safe to discard and regenerate.
type CorrelationStore interface {
	// ReplaceAll atomically replaces the user's stored correlations
	// with the given set.
	ReplaceAll(ctx context.Context, userID uuid.UUID, correlations []domain.Correlation) error

	// GetByUser retrieves the user's stored correlations, one per
	// factor. An empty result is not an error: it means no factor has
	// reached the minimum sample size yet.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error)

	// WithTx returns a new CorrelationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CorrelationStore
}
