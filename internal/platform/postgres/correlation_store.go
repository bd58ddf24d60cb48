package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/platform/logger"
	"github.com/auradaily/aura-api/internal/store"
)

// PostgresCorrelationStore implements the store.CorrelationStore
// interface using a PostgreSQL database as the storage backend. The
// stored rows are a derived cache: they are wiped and rewritten on each
// recompute, never updated in place.
type PostgresCorrelationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCorrelationStore creates a new PostgreSQL implementation
// of the CorrelationStore interface.
func NewPostgresCorrelationStore(db store.DBTX, logger *slog.Logger) *PostgresCorrelationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCorrelationStore{
		db:     db,
		logger: logger.With(slog.String("component", "correlation_store")),
	}
}

// Ensure PostgresCorrelationStore implements store.CorrelationStore interface
var _ store.CorrelationStore = (*PostgresCorrelationStore)(nil)

// ReplaceAll implements store.CorrelationStore.ReplaceAll
// Callers that need atomicity should run this inside a transaction via
// WithTx; the delete and inserts are separate statements.
func (s *PostgresCorrelationStore) ReplaceAll(ctx context.Context, userID uuid.UUID, correlations []domain.Correlation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for i := range correlations {
		if err := correlations[i].Validate(); err != nil {
			log.Warn("correlation validation failed during replace",
				slog.String("error", err.Error()),
				slog.String("factor", string(correlations[i].Factor)))
			return err
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM correlations WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear stored correlations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	query := `
		INSERT INTO correlations (user_id, factor, strength, impact, sample_size, confidence, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, c := range correlations {
		_, err := s.db.ExecContext(
			ctx,
			query,
			c.UserID,
			c.Factor,
			c.Strength,
			c.Impact,
			c.SampleSize,
			c.Confidence,
			c.ComputedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				log.Warn("correlation references missing user",
					slog.String("user_id", c.UserID.String()))
				return store.ErrUserNotFound
			}

			log.Error("failed to insert correlation",
				slog.String("error", err.Error()),
				slog.String("factor", string(c.Factor)))
			return err
		}
	}

	log.Info("stored correlations replaced",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(correlations)))
	return nil
}

// GetByUser implements store.CorrelationStore.GetByUser
func (s *PostgresCorrelationStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, factor, strength, impact, sample_size, confidence, computed_at
		FROM correlations
		WHERE user_id = $1
		ORDER BY factor ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query correlations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var correlations []domain.Correlation
	for rows.Next() {
		var c domain.Correlation
		if err := rows.Scan(
			&c.UserID,
			&c.Factor,
			&c.Strength,
			&c.Impact,
			&c.SampleSize,
			&c.Confidence,
			&c.ComputedAt,
		); err != nil {
			return nil, err
		}
		correlations = append(correlations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return correlations, nil
}

// WithTx implements store.CorrelationStore.WithTx
func (s *PostgresCorrelationStore) WithTx(tx *sql.Tx) store.CorrelationStore {
	return &PostgresCorrelationStore{
		db:     tx,
		logger: s.logger,
	}
}
