package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/insight"
	"github.com/auradaily/aura-api/internal/events"
	"github.com/auradaily/aura-api/internal/narrative"
	"github.com/auradaily/aura-api/internal/store"
)

// In-memory store fakes. They ignore the *sql.Tx handed to WithTx; the
// services under test drive transactions against mocks.NewFakeDB(),
// whose Begin/Commit/Rollback are no-ops.

type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User

	createErr error
	getErr    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdateBirthData(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	*stored = *user
	return nil
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return f }

type fakeLifestyleStore struct {
	mu      sync.Mutex
	entries []domain.LogEntry

	saveErr error
	getErr  error
}

var _ store.LifestyleStore = (*fakeLifestyleStore)(nil)

func (f *fakeLifestyleStore) SaveEntry(ctx context.Context, entry *domain.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if !entry.Category.AllowsMultiplePerDay() {
		for i, e := range f.entries {
			if e.UserID == entry.UserID && e.Category == entry.Category && e.Day == entry.Day {
				f.entries[i] = *entry
				return nil
			}
		}
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLifestyleStore) GetEntries(ctx context.Context, userID uuid.UUID, category domain.LogCategory, dayRange store.DayRange) ([]domain.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []domain.LogEntry
	for _, e := range f.entries {
		if e.UserID != userID || e.Category != category {
			continue
		}
		if dayRange.From != "" && e.Day < dayRange.From {
			continue
		}
		if dayRange.To != "" && e.Day > dayRange.To {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeLifestyleStore) GetEntriesForDay(ctx context.Context, userID uuid.UUID, day string) ([]domain.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []domain.LogEntry
	for _, e := range f.entries {
		if e.UserID == userID && e.Day == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLifestyleStore) WithTx(tx *sql.Tx) store.LifestyleStore { return f }

type scoreRecord struct {
	day           string
	baseScore     int
	adjustedScore int
}

type fakeScoreStore struct {
	mu      sync.Mutex
	records map[uuid.UUID][]scoreRecord

	recordErr  error
	historyErr error
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{records: make(map[uuid.UUID][]scoreRecord)}
}

var _ store.ScoreStore = (*fakeScoreStore)(nil)

func (f *fakeScoreStore) RecordScore(ctx context.Context, userID uuid.UUID, day string, baseScore, adjustedScore int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	for i, r := range f.records[userID] {
		if r.day == day {
			f.records[userID][i] = scoreRecord{day, baseScore, adjustedScore}
			return nil
		}
	}
	f.records[userID] = append(f.records[userID], scoreRecord{day, baseScore, adjustedScore})
	return nil
}

func (f *fakeScoreStore) GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.ScorePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	var points []domain.ScorePoint
	for _, r := range f.records[userID] {
		points = append(points, domain.ScorePoint{Day: r.day, Score: float64(r.adjustedScore)})
	}
	return points, nil
}

func (f *fakeScoreStore) WithTx(tx *sql.Tx) store.ScoreStore { return f }

type fakeCorrelationStore struct {
	mu     sync.Mutex
	byUser map[uuid.UUID][]domain.Correlation

	replaceErr error
	getErr     error
}

func newFakeCorrelationStore() *fakeCorrelationStore {
	return &fakeCorrelationStore{byUser: make(map[uuid.UUID][]domain.Correlation)}
}

var _ store.CorrelationStore = (*fakeCorrelationStore)(nil)

func (f *fakeCorrelationStore) ReplaceAll(ctx context.Context, userID uuid.UUID, correlations []domain.Correlation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.byUser[userID] = correlations
	return nil
}

func (f *fakeCorrelationStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Correlation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byUser[userID], nil
}

func (f *fakeCorrelationStore) WithTx(tx *sql.Tx) store.CorrelationStore { return f }

// fakeEmitter records emitted task request events.
type fakeEmitter struct {
	mu      sync.Mutex
	emitted []*events.TaskRequestEvent
	err     error
}

var _ events.EventEmitter = (*fakeEmitter)(nil)

func (f *fakeEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.emitted = append(f.emitted, event)
	return nil
}

func (f *fakeEmitter) events() []*events.TaskRequestEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*events.TaskRequestEvent(nil), f.emitted...)
}

// fakePublisher records published reading events.
type fakePublisher struct {
	mu        sync.Mutex
	published []events.ReadingComputedEvent
	err       error
}

var _ events.ReadingPublisher = (*fakePublisher)(nil)

func (f *fakePublisher) PublishReading(ctx context.Context, event events.ReadingComputedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

// fakeNarrator returns a fixed narrative, or an error when set.
type fakeNarrator struct {
	text string
	err  error
}

var _ narrative.Generator = (*fakeNarrator)(nil)

func (f *fakeNarrator) Narrate(ctx context.Context, reading *domain.DailyEnergyReading, ins insight.Insight) (string, error) {
	return f.text, f.err
}
