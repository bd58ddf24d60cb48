package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/platform/logger"
	"github.com/auradaily/aura-api/internal/store"
)

// PostgresScoreStore implements the store.ScoreStore interface
// using a PostgreSQL database as the storage backend.
type PostgresScoreStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScoreStore creates a new PostgreSQL implementation of the
// ScoreStore interface.
func NewPostgresScoreStore(db store.DBTX, logger *slog.Logger) *PostgresScoreStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScoreStore{
		db:     db,
		logger: logger.With(slog.String("component", "score_store")),
	}
}

// Ensure PostgresScoreStore implements store.ScoreStore interface
var _ store.ScoreStore = (*PostgresScoreStore)(nil)

// RecordScore implements store.ScoreStore.RecordScore
func (s *PostgresScoreStore) RecordScore(ctx context.Context, userID uuid.UUID, day string, baseScore, adjustedScore int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO score_history (user_id, day, base_score, adjusted_score, computed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day)
		DO UPDATE SET base_score = EXCLUDED.base_score,
			adjusted_score = EXCLUDED.adjusted_score,
			computed_at = EXCLUDED.computed_at
	`

	_, err := s.db.ExecContext(ctx, query, userID, day, baseScore, adjustedScore, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("score references missing user",
				slog.String("user_id", userID.String()))
			return store.ErrUserNotFound
		}

		log.Error("failed to record score",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("day", day))
		return err
	}

	log.Debug("score recorded",
		slog.String("user_id", userID.String()),
		slog.String("day", day),
		slog.Int("adjusted_score", adjustedScore))
	return nil
}

// GetHistory implements store.ScoreStore.GetHistory
func (s *PostgresScoreStore) GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT day, adjusted_score
		FROM score_history
		WHERE user_id = $1
		ORDER BY day ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query score history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var points []domain.ScorePoint
	for rows.Next() {
		var p domain.ScorePoint
		if err := rows.Scan(&p.Day, &p.Score); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// WithTx implements store.ScoreStore.WithTx
func (s *PostgresScoreStore) WithTx(tx *sql.Tx) store.ScoreStore {
	return &PostgresScoreStore{
		db:     tx,
		logger: s.logger,
	}
}
