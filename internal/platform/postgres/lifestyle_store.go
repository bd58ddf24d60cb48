package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/platform/logger"
	"github.com/auradaily/aura-api/internal/store"
)

// PostgresLifestyleStore implements the store.LifestyleStore interface
// using a PostgreSQL database as the storage backend. Payloads are
// stored as JSONB keyed by category.
type PostgresLifestyleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLifestyleStore creates a new PostgreSQL implementation of
// the LifestyleStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
func NewPostgresLifestyleStore(db store.DBTX, logger *slog.Logger) *PostgresLifestyleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLifestyleStore{
		db:     db,
		logger: logger.With(slog.String("component", "lifestyle_store")),
	}
}

// Ensure PostgresLifestyleStore implements store.LifestyleStore interface
var _ store.LifestyleStore = (*PostgresLifestyleStore)(nil)

// marshalPayload serializes the entry's category payload to JSON for
// JSONB storage.
func marshalPayload(entry *domain.LogEntry) ([]byte, error) {
	var payload any
	switch entry.Category {
	case domain.CategorySleep:
		payload = entry.Sleep
	case domain.CategoryExercise:
		payload = entry.Exercise
	case domain.CategoryMeditation:
		payload = entry.Meditation
	case domain.CategoryNutrition:
		payload = entry.Nutrition
	case domain.CategorySocial:
		payload = entry.Social
	case domain.CategoryWeather:
		payload = entry.Weather
	case domain.CategoryBiometric:
		payload = entry.Biometric
	default:
		return nil, domain.ErrInvalidLogCategory
	}
	return json.Marshal(payload)
}

// unmarshalPayload deserializes a JSONB payload into the matching field
// of the entry, based on its category.
func unmarshalPayload(entry *domain.LogEntry, raw []byte) error {
	var dst any
	switch entry.Category {
	case domain.CategorySleep:
		entry.Sleep = &domain.SleepLog{}
		dst = entry.Sleep
	case domain.CategoryExercise:
		entry.Exercise = &domain.ExerciseLog{}
		dst = entry.Exercise
	case domain.CategoryMeditation:
		entry.Meditation = &domain.MeditationLog{}
		dst = entry.Meditation
	case domain.CategoryNutrition:
		entry.Nutrition = &domain.NutritionLog{}
		dst = entry.Nutrition
	case domain.CategorySocial:
		entry.Social = &domain.SocialLog{}
		dst = entry.Social
	case domain.CategoryWeather:
		entry.Weather = &domain.WeatherLog{}
		dst = entry.Weather
	case domain.CategoryBiometric:
		entry.Biometric = &domain.BiometricLog{}
		dst = entry.Biometric
	default:
		return domain.ErrInvalidLogCategory
	}
	return json.Unmarshal(raw, dst)
}

// SaveEntry implements store.LifestyleStore.SaveEntry
// Single-per-day categories (sleep, weather, biometric) upsert on the
// (user_id, category, day) partial unique index; the rest append.
func (s *PostgresLifestyleStore) SaveEntry(ctx context.Context, entry *domain.LogEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("log entry validation failed during save",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	payload, err := marshalPayload(entry)
	if err != nil {
		log.Error("failed to marshal log payload",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return fmt.Errorf("failed to marshal log payload: %w", err)
	}

	query := `
		INSERT INTO lifestyle_logs (id, user_id, category, day, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if !entry.Category.AllowsMultiplePerDay() {
		query += `
		ON CONFLICT (user_id, category, day) WHERE category IN ('sleep', 'weather', 'biometric')
		DO UPDATE SET payload = EXCLUDED.payload, created_at = EXCLUDED.created_at
		`
	}

	_, err = s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Category,
		entry.Day,
		payload,
		entry.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("log entry references missing user",
				slog.String("user_id", entry.UserID.String()))
			return store.ErrUserNotFound
		}

		log.Error("failed to save log entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	log.Debug("log entry saved",
		slog.String("entry_id", entry.ID.String()),
		slog.String("category", string(entry.Category)),
		slog.String("day", entry.Day))
	return nil
}

// GetEntries implements store.LifestyleStore.GetEntries
func (s *PostgresLifestyleStore) GetEntries(ctx context.Context, userID uuid.UUID, category domain.LogCategory, dayRange store.DayRange) ([]domain.LogEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, category, day, payload, created_at
		FROM lifestyle_logs
		WHERE user_id = $1 AND category = $2
	`
	args := []any{userID, category}

	if dayRange.From != "" {
		args = append(args, dayRange.From)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if dayRange.To != "" {
		args = append(args, dayRange.To)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " ORDER BY day ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query log entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanLogEntries(rows)
}

// GetEntriesForDay implements store.LifestyleStore.GetEntriesForDay
func (s *PostgresLifestyleStore) GetEntriesForDay(ctx context.Context, userID uuid.UUID, day string) ([]domain.LogEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, category, day, payload, created_at
		FROM lifestyle_logs
		WHERE user_id = $1 AND day = $2
		ORDER BY category ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, day)
	if err != nil {
		log.Error("failed to query log entries for day",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("day", day))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanLogEntries(rows)
}

// scanLogEntries reads all rows into domain log entries, decoding each
// JSONB payload into the field matching its category.
func scanLogEntries(rows *sql.Rows) ([]domain.LogEntry, error) {
	var entries []domain.LogEntry
	for rows.Next() {
		var entry domain.LogEntry
		var payload []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Category,
			&entry.Day,
			&payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		if err := unmarshalPayload(&entry, payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log payload: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// WithTx implements store.LifestyleStore.WithTx
func (s *PostgresLifestyleStore) WithTx(tx *sql.Tx) store.LifestyleStore {
	return &PostgresLifestyleStore{
		db:     tx,
		logger: s.logger,
	}
}
