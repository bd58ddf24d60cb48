package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/daykey"
	"github.com/auradaily/aura-api/internal/events"
	"github.com/auradaily/aura-api/internal/observability"
	"github.com/auradaily/aura-api/internal/store"
)

// LifestyleService records and retrieves lifestyle log entries.
type LifestyleService interface {
	// RecordEntry normalizes the date, validates the payload against
	// its category, and persists the entry. Recording also requests a
	// background correlation recompute for the user.
	//
	// Returns ErrInvalidDate if the date cannot be parsed and domain
	// validation errors for bad payloads.
	RecordEntry(ctx context.Context, userID uuid.UUID, category domain.LogCategory, date string, payload any) (*domain.LogEntry, error)

	// GetEntries returns the user's entries for one category, oldest
	// first, optionally bounded to a normalized day range.
	GetEntries(ctx context.Context, userID uuid.UUID, category domain.LogCategory, from, to string) ([]domain.LogEntry, error)

	// GetDay returns all of the user's entries for one calendar day.
	GetDay(ctx context.Context, userID uuid.UUID, date string) ([]domain.LogEntry, error)
}

// lifestyleServiceImpl implements the LifestyleService interface
type lifestyleServiceImpl struct {
	lifestyleStore store.LifestyleStore
	eventEmitter   events.EventEmitter
	db             *sql.DB
	logger         *slog.Logger
}

// NewLifestyleService creates a new LifestyleService. The event emitter
// is optional; nil disables recompute requests.
func NewLifestyleService(
	lifestyleStore store.LifestyleStore,
	eventEmitter events.EventEmitter,
	db *sql.DB,
	logger *slog.Logger,
) LifestyleService {
	if logger == nil {
		logger = slog.Default()
	}

	return &lifestyleServiceImpl{
		lifestyleStore: lifestyleStore,
		eventEmitter:   eventEmitter,
		db:             db,
		logger:         logger.With("component", "lifestyle_service"),
	}
}

// RecordEntry implements LifestyleService.RecordEntry
func (s *lifestyleServiceImpl) RecordEntry(
	ctx context.Context,
	userID uuid.UUID,
	category domain.LogCategory,
	date string,
	payload any,
) (*domain.LogEntry, error) {
	day, err := daykey.Normalize(date)
	if err != nil {
		s.logger.Debug("unparsable log date", "date", date, "user_id", userID)
		return nil, ErrInvalidDate
	}

	entry, err := domain.NewLogEntry(userID, category, day, payload)
	if err != nil {
		s.logger.Warn("failed to create log entry",
			"error", err,
			"user_id", userID,
			"category", category)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.lifestyleStore.WithTx(tx).SaveEntry(ctx, entry)
	})
	if err != nil {
		return nil, &ServiceError{Operation: "record_entry", Message: "failed to save log entry", Err: err}
	}

	s.logger.Info("log entry recorded",
		"entry_id", entry.ID,
		"user_id", userID,
		"category", category,
		"day", day)
	observability.RecordLogEntry(string(category))

	s.requestCorrelationRecompute(ctx, userID)

	return entry, nil
}

// GetEntries implements LifestyleService.GetEntries
func (s *lifestyleServiceImpl) GetEntries(
	ctx context.Context,
	userID uuid.UUID,
	category domain.LogCategory,
	from, to string,
) ([]domain.LogEntry, error) {
	if !category.IsValid() {
		return nil, domain.ErrInvalidLogCategory
	}

	var dayRange store.DayRange
	var err error
	if from != "" {
		if dayRange.From, err = daykey.Normalize(from); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if to != "" {
		if dayRange.To, err = daykey.Normalize(to); err != nil {
			return nil, ErrInvalidDate
		}
	}

	entries, err := s.lifestyleStore.GetEntries(ctx, userID, category, dayRange)
	if err != nil {
		return nil, &ServiceError{Operation: "get_entries", Message: "failed to load log entries", Err: err}
	}
	return entries, nil
}

// GetDay implements LifestyleService.GetDay
func (s *lifestyleServiceImpl) GetDay(ctx context.Context, userID uuid.UUID, date string) ([]domain.LogEntry, error) {
	day, err := daykey.Normalize(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	entries, err := s.lifestyleStore.GetEntriesForDay(ctx, userID, day)
	if err != nil {
		return nil, &ServiceError{Operation: "get_day", Message: "failed to load log entries", Err: err}
	}
	return entries, nil
}

// requestCorrelationRecompute emits a background recompute request so
// the new entry feeds into the user's stored correlations.
func (s *lifestyleServiceImpl) requestCorrelationRecompute(ctx context.Context, userID uuid.UUID) {
	if s.eventEmitter == nil {
		return
	}

	payload := struct {
		UserID uuid.UUID `json:"user_id"`
	}{UserID: userID}

	event, err := events.NewTaskRequestEvent(events.EventTypeCorrelationRecompute, payload)
	if err != nil {
		s.logger.Error("failed to create correlation recompute event",
			"error", err,
			"user_id", userID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit correlation recompute event",
			"error", err,
			"user_id", userID,
			"event_id", event.ID)
	}
}
