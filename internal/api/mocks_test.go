package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/api/shared"
	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUserID injects an authenticated user ID the way the auth
// middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// Function-hook service stubs. Unset hooks panic, which surfaces an
// unexpected call as a test failure.

type stubUserService struct {
	RegisterFn        func(ctx context.Context, email, password string) (*domain.User, error)
	AuthenticateFn    func(ctx context.Context, email, password string) (*domain.User, error)
	GetUserFn         func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateBirthDataFn func(ctx context.Context, userID uuid.UUID, name string, birthDate time.Time, place *domain.GeoPoint) (*domain.User, error)
}

var _ service.UserService = (*stubUserService)(nil)

func (s *stubUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.RegisterFn(ctx, email, password)
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.AuthenticateFn(ctx, email, password)
}

func (s *stubUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.GetUserFn(ctx, userID)
}

func (s *stubUserService) UpdateBirthData(ctx context.Context, userID uuid.UUID, name string, birthDate time.Time, place *domain.GeoPoint) (*domain.User, error) {
	return s.UpdateBirthDataFn(ctx, userID, name, birthDate, place)
}

type stubReadingService struct {
	ComputeReadingFn func(ctx context.Context, userID uuid.UUID, date string) (*service.ReadingResult, error)
	GetHistoryFn     func(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error)
}

var _ service.ReadingService = (*stubReadingService)(nil)

func (s *stubReadingService) ComputeReading(ctx context.Context, userID uuid.UUID, date string) (*service.ReadingResult, error) {
	return s.ComputeReadingFn(ctx, userID, date)
}

func (s *stubReadingService) GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error) {
	return s.GetHistoryFn(ctx, userID)
}

type stubLifestyleService struct {
	RecordEntryFn func(ctx context.Context, userID uuid.UUID, category domain.LogCategory, date string, payload any) (*domain.LogEntry, error)
	GetEntriesFn  func(ctx context.Context, userID uuid.UUID, category domain.LogCategory, from, to string) ([]domain.LogEntry, error)
	GetDayFn      func(ctx context.Context, userID uuid.UUID, date string) ([]domain.LogEntry, error)
}

var _ service.LifestyleService = (*stubLifestyleService)(nil)

func (s *stubLifestyleService) RecordEntry(ctx context.Context, userID uuid.UUID, category domain.LogCategory, date string, payload any) (*domain.LogEntry, error) {
	return s.RecordEntryFn(ctx, userID, category, date, payload)
}

func (s *stubLifestyleService) GetEntries(ctx context.Context, userID uuid.UUID, category domain.LogCategory, from, to string) ([]domain.LogEntry, error) {
	return s.GetEntriesFn(ctx, userID, category, from, to)
}

func (s *stubLifestyleService) GetDay(ctx context.Context, userID uuid.UUID, date string) ([]domain.LogEntry, error) {
	return s.GetDayFn(ctx, userID, date)
}

type stubInsightService struct {
	RecomputeCorrelationsFn func(ctx context.Context, userID uuid.UUID) error
	GetCorrelationsFn       func(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error)
}

var _ service.InsightService = (*stubInsightService)(nil)

func (s *stubInsightService) RecomputeCorrelations(ctx context.Context, userID uuid.UUID) error {
	return s.RecomputeCorrelationsFn(ctx, userID)
}

func (s *stubInsightService) GetCorrelations(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error) {
	return s.GetCorrelationsFn(ctx, userID)
}
