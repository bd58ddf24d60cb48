package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/energy"
	"github.com/auradaily/aura-api/internal/events"
	"github.com/auradaily/aura-api/internal/mocks"
)

type readingFixture struct {
	svc            ReadingService
	userStore      *fakeUserStore
	lifestyleStore *fakeLifestyleStore
	scoreStore     *fakeScoreStore
	corrStore      *fakeCorrelationStore
	narrator       *fakeNarrator
	publisher      *fakePublisher
	emitter        *fakeEmitter
	userID         uuid.UUID
}

func newReadingFixture(t *testing.T) *readingFixture {
	t.Helper()

	f := &readingFixture{
		userStore:      newFakeUserStore(),
		lifestyleStore: &fakeLifestyleStore{},
		scoreStore:     newFakeScoreStore(),
		corrStore:      newFakeCorrelationStore(),
		narrator:       &fakeNarrator{text: "A bright day lies ahead."},
		publisher:      &fakePublisher{},
		emitter:        &fakeEmitter{},
	}

	user, err := domain.NewUser("user@example.com", "securepassword1234")
	require.NoError(t, err)
	require.NoError(t, user.SetBirthData(time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC), nil))
	require.NoError(t, f.userStore.Create(context.Background(), user))
	f.userID = user.ID

	svc, err := NewReadingService(
		f.userStore, f.lifestyleStore, f.scoreStore, f.corrStore,
		energy.NewDefaultService(), f.narrator, f.publisher, f.emitter,
		mocks.NewFakeDB(), discardLogger())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewReadingService_Validation(t *testing.T) {
	t.Parallel()

	svc, err := NewReadingService(nil, &fakeLifestyleStore{}, newFakeScoreStore(),
		newFakeCorrelationStore(), energy.NewDefaultService(), nil, nil, nil,
		mocks.NewFakeDB(), discardLogger())
	assert.Nil(t, svc)
	require.Error(t, err)

	svc, err = NewReadingService(newFakeUserStore(), &fakeLifestyleStore{}, newFakeScoreStore(),
		newFakeCorrelationStore(), nil, nil, nil, nil, mocks.NewFakeDB(), discardLogger())
	assert.Nil(t, svc)
	require.Error(t, err)
}

func TestReadingService_ComputeReading(t *testing.T) {
	t.Parallel()

	t.Run("full pipeline", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		result, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		require.NoError(t, err)

		reading := result.Reading
		assert.Equal(t, f.userID, reading.UserID)
		assert.Equal(t, "2024-03-10", reading.Day)
		assert.GreaterOrEqual(t, reading.BaseScore, 0)
		assert.LessOrEqual(t, reading.BaseScore, 100)
		assert.Equal(t, domain.ClampScore(reading.BaseScore+reading.TotalAdjustment()), reading.AdjustedScore)
		assert.NotEmpty(t, reading.Facts)
		assert.NoError(t, reading.Validate())

		assert.NotEmpty(t, result.Insight.Summary)
		assert.Equal(t, "A bright day lies ahead.", result.Narrative)

		// The score lands in the history.
		history, err := f.scoreStore.GetHistory(context.Background(), f.userID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "2024-03-10", history[0].Day)
		assert.Equal(t, float64(reading.AdjustedScore), history[0].Score)

		// The reading is published and a recompute is requested.
		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, f.userID, f.publisher.published[0].UserID)
		emitted := f.emitter.events()
		require.Len(t, emitted, 1)
		assert.Equal(t, events.EventTypeCorrelationRecompute, emitted[0].Type)
	})

	t.Run("timestamp input is normalized to a day key", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		result, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10T23:30:00-05:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-11", result.Reading.Day)
	})

	t.Run("lifestyle logs adjust the base score", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		entry, err := domain.NewLogEntry(f.userID, domain.CategorySleep, "2024-03-10",
			&domain.SleepLog{Hours: 8.5, Quality: domain.SleepQualityExcellent})
		require.NoError(t, err)
		require.NoError(t, f.lifestyleStore.SaveEntry(context.Background(), entry))

		result, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		require.NoError(t, err)

		reading := result.Reading
		require.Len(t, reading.Adjustments, 1)
		assert.Equal(t, 15, reading.Adjustments[0].Adjustment)
		assert.Equal(t, domain.ClampScore(reading.BaseScore+15), reading.AdjustedScore)
	})

	t.Run("recomputing a day replaces the score record", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		_, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		require.NoError(t, err)
		_, err = f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		require.NoError(t, err)

		history, err := f.scoreStore.GetHistory(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("unparsable date", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		result, err := f.svc.ComputeReading(context.Background(), f.userID, "next tuesday")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		result, err := f.svc.ComputeReading(context.Background(), uuid.New(), "2024-03-10")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing birth data", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)

		bare, err := domain.NewUser("bare@example.com", "securepassword1234")
		require.NoError(t, err)
		require.NoError(t, f.userStore.Create(context.Background(), bare))

		result, err := f.svc.ComputeReading(context.Background(), bare.ID, "2024-03-10")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrBirthDataMissing)
	})

	t.Run("narration failure does not fail the reading", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)
		f.narrator.err = errors.New("model unavailable")

		result, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		require.NoError(t, err)
		assert.Empty(t, result.Narrative)
	})

	t.Run("publish failure does not fail the reading", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)
		f.publisher.err = errors.New("broker down")

		_, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		require.NoError(t, err)
	})

	t.Run("score record failure fails the reading", func(t *testing.T) {
		t.Parallel()

		f := newReadingFixture(t)
		f.scoreStore.recordErr = errors.New("disk full")

		result, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
		assert.Nil(t, result)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "compute_reading", svcErr.Operation)
	})
}

func TestReadingService_GetHistory(t *testing.T) {
	t.Parallel()

	f := newReadingFixture(t)

	_, err := f.svc.ComputeReading(context.Background(), f.userID, "2024-03-10")
	require.NoError(t, err)
	_, err = f.svc.ComputeReading(context.Background(), f.userID, "2024-03-11")
	require.NoError(t, err)

	history, err := f.svc.GetHistory(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-03-10", history[0].Day)
	assert.Equal(t, "2024-03-11", history[1].Day)
}
