package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/daykey"
	"github.com/auradaily/aura-api/internal/domain/energy"
	"github.com/auradaily/aura-api/internal/domain/insight"
	"github.com/auradaily/aura-api/internal/events"
	"github.com/auradaily/aura-api/internal/narrative"
	"github.com/auradaily/aura-api/internal/observability"
	"github.com/auradaily/aura-api/internal/store"
)

// ReadingResult is the full output of a reading computation: the
// reading itself, its interpretation, and an optional prose narrative.
type ReadingResult struct {
	Reading   domain.DailyEnergyReading `json:"reading"`
	Insight   insight.Insight           `json:"insight"`
	Narrative string                    `json:"narrative,omitempty"`
}

// ReadingService computes personalized daily energy readings.
type ReadingService interface {
	// ComputeReading runs the full pipeline for one user and date:
	// subsystem scoring, personalization from the day's lifestyle logs,
	// interpretation, and narration. The date accepts either a
	// YYYY-MM-DD day key or an RFC 3339 timestamp; it is normalized to
	// a UTC calendar day. The computed scores are recorded in the
	// user's history.
	//
	// Returns ErrBirthDataMissing if the user has no birth data and
	// ErrInvalidDate if the date cannot be parsed.
	ComputeReading(ctx context.Context, userID uuid.UUID, date string) (*ReadingResult, error)

	// GetHistory returns the user's recorded score history, oldest first.
	GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error)
}

// readingServiceImpl implements the ReadingService interface
type readingServiceImpl struct {
	userStore        store.UserStore
	lifestyleStore   store.LifestyleStore
	scoreStore       store.ScoreStore
	correlationStore store.CorrelationStore
	energyService    energy.Service
	narrator         narrative.Generator
	publisher        events.ReadingPublisher
	eventEmitter     events.EventEmitter
	db               *sql.DB
	logger           *slog.Logger
}

// NewReadingService creates a new ReadingService. The narrator and
// publisher are optional; nil disables narration and event publishing.
func NewReadingService(
	userStore store.UserStore,
	lifestyleStore store.LifestyleStore,
	scoreStore store.ScoreStore,
	correlationStore store.CorrelationStore,
	energyService energy.Service,
	narrator narrative.Generator,
	publisher events.ReadingPublisher,
	eventEmitter events.EventEmitter,
	db *sql.DB,
	logger *slog.Logger,
) (ReadingService, error) {
	if userStore == nil || lifestyleStore == nil || scoreStore == nil || correlationStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "stores cannot be nil"}
	}
	if energyService == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "energyService cannot be nil"}
	}
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &readingServiceImpl{
		userStore:        userStore,
		lifestyleStore:   lifestyleStore,
		scoreStore:       scoreStore,
		correlationStore: correlationStore,
		energyService:    energyService,
		narrator:         narrator,
		publisher:        publisher,
		eventEmitter:     eventEmitter,
		db:               db,
		logger:           logger.With("component", "reading_service"),
	}, nil
}

// ComputeReading implements ReadingService.ComputeReading
func (s *readingServiceImpl) ComputeReading(ctx context.Context, userID uuid.UUID, date string) (*ReadingResult, error) {
	started := time.Now()

	day, err := daykey.Normalize(date)
	if err != nil {
		s.logger.Debug("unparsable reading date", "date", date, "user_id", userID)
		return nil, ErrInvalidDate
	}
	targetDate, err := daykey.Parse(day)
	if err != nil {
		return nil, ErrInvalidDate
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, &ServiceError{Operation: "compute_reading", Message: "failed to retrieve user", Err: err}
	}

	profile, err := user.Profile()
	if err != nil {
		if errors.Is(err, domain.ErrProfileMissing) {
			return nil, ErrBirthDataMissing
		}
		return nil, &ServiceError{Operation: "compute_reading", Message: "failed to build profile", Err: err}
	}

	composite, err := s.energyService.ComputeComposite(profile, targetDate)
	if err != nil {
		return nil, &ServiceError{Operation: "compute_reading", Message: "failed to compute composite score", Err: err}
	}

	entries, err := s.lifestyleStore.GetEntriesForDay(ctx, userID, day)
	if err != nil {
		return nil, &ServiceError{Operation: "compute_reading", Message: "failed to load lifestyle logs", Err: err}
	}

	correlations, err := s.correlationStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "compute_reading", Message: "failed to load correlations", Err: err}
	}

	adjustments := insight.ComputeAdjustments(entries, correlations)

	reading := domain.DailyEnergyReading{
		UserID:      userID,
		Day:         day,
		BaseScore:   composite.BaseScore,
		EnergyType:  composite.EnergyType,
		Description: composite.Description,
		Facts:       composite.Facts,
		Adjustments: adjustments,
		Diagnostics: composite.Failures,
		ComputedAt:  time.Now().UTC(),
	}
	reading.AdjustedScore = domain.ClampScore(reading.BaseScore + reading.TotalAdjustment())

	ins := insight.Interpret(reading.AdjustedScore, reading.Facts, adjustments, composite.Numerology.LifePath)
	reading.Prediction = ins.Prediction

	if err := reading.Validate(); err != nil {
		return nil, &ServiceError{Operation: "compute_reading", Message: "computed reading failed validation", Err: err}
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.scoreStore.WithTx(tx).RecordScore(ctx, userID, day, reading.BaseScore, reading.AdjustedScore)
	})
	if err != nil {
		return nil, &ServiceError{Operation: "compute_reading", Message: "failed to record score", Err: err}
	}

	s.logger.Info("reading computed",
		"user_id", userID,
		"day", day,
		"base_score", reading.BaseScore,
		"adjusted_score", reading.AdjustedScore,
		"energy_type", reading.EnergyType)
	observability.RecordReadingComputed(string(reading.EnergyType), time.Since(started))

	s.publishReading(ctx, &reading)
	s.requestCorrelationRecompute(ctx, userID)

	result := &ReadingResult{Reading: reading, Insight: ins}

	if s.narrator != nil {
		text, err := s.narrator.Narrate(ctx, &reading, ins)
		if err != nil {
			// Narration is presentation only; the reading stands without it.
			s.logger.Warn("narrative generation failed",
				"error", err,
				"user_id", userID,
				"day", day)
		} else {
			result.Narrative = text
		}
	}

	return result, nil
}

// GetHistory implements ReadingService.GetHistory
func (s *readingServiceImpl) GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error) {
	history, err := s.scoreStore.GetHistory(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "get_history", Message: "failed to load score history", Err: err}
	}
	return history, nil
}

// publishReading delivers the reading to the external stream,
// best-effort.
func (s *readingServiceImpl) publishReading(ctx context.Context, reading *domain.DailyEnergyReading) {
	if s.publisher == nil {
		return
	}

	event := events.ReadingComputedEvent{
		UserID:        reading.UserID,
		Day:           reading.Day,
		BaseScore:     reading.BaseScore,
		AdjustedScore: reading.AdjustedScore,
		EnergyType:    reading.EnergyType,
		ComputedAt:    reading.ComputedAt,
	}
	if err := s.publisher.PublishReading(ctx, event); err != nil {
		s.logger.Warn("failed to publish reading event",
			"error", err,
			"user_id", reading.UserID,
			"day", reading.Day)
	}
}

// requestCorrelationRecompute emits a background recompute request so
// the new score point feeds into the user's stored correlations.
func (s *readingServiceImpl) requestCorrelationRecompute(ctx context.Context, userID uuid.UUID) {
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
