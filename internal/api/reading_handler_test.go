package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/service"
)

// getWithParam runs the handler through a chi route so chi.URLParam
// resolves path parameters.
func getWithParam(pattern, path string, userID uuid.UUID, handler http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get(pattern, handler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != uuid.Nil {
		req = withUserID(req, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReadingHandler_GetReading(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns reading result", func(t *testing.T) {
		t.Parallel()

		readingService := &stubReadingService{
			ComputeReadingFn: func(ctx context.Context, id uuid.UUID, date string) (*service.ReadingResult, error) {
				require.Equal(t, userID, id)
				require.Equal(t, "2024-03-10", date)
				return &service.ReadingResult{
					Reading: domain.DailyEnergyReading{
						UserID:        id,
						Day:           "2024-03-10",
						BaseScore:     72,
						AdjustedScore: 80,
					},
					Narrative: "Dynamic energy today.",
				}, nil
			},
		}
		h := NewReadingHandler(readingService, testLogger())

		w := getWithParam("/readings/{date}", "/readings/2024-03-10", userID, h.GetReading)

		require.Equal(t, http.StatusOK, w.Code)

		var resp service.ReadingResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2024-03-10", resp.Reading.Day)
		assert.Equal(t, 80, resp.Reading.AdjustedScore)
		assert.Equal(t, "Dynamic energy today.", resp.Narrative)
	})

	t.Run("birth data missing", func(t *testing.T) {
		t.Parallel()

		readingService := &stubReadingService{
			ComputeReadingFn: func(ctx context.Context, id uuid.UUID, date string) (*service.ReadingResult, error) {
				return nil, service.ErrBirthDataMissing
			},
		}
		h := NewReadingHandler(readingService, testLogger())

		w := getWithParam("/readings/{date}", "/readings/2024-03-10", userID, h.GetReading)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Birth data required: record a name and birth date first",
			decodeError(t, w).Error)
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()

		readingService := &stubReadingService{
			ComputeReadingFn: func(ctx context.Context, id uuid.UUID, date string) (*service.ReadingResult, error) {
				return nil, service.ErrInvalidDate
			},
		}
		h := NewReadingHandler(readingService, testLogger())

		w := getWithParam("/readings/{date}", "/readings/not-a-date", userID, h.GetReading)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing user ID", func(t *testing.T) {
		t.Parallel()

		h := NewReadingHandler(&stubReadingService{}, testLogger())

		w := getWithParam("/readings/{date}", "/readings/2024-03-10", uuid.Nil, h.GetReading)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestReadingHandler_GetHistory(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns history oldest first", func(t *testing.T) {
		t.Parallel()

		readingService := &stubReadingService{
			GetHistoryFn: func(ctx context.Context, id uuid.UUID) ([]domain.ScorePoint, error) {
				require.Equal(t, userID, id)
				return []domain.ScorePoint{
					{Day: "2024-03-09", Score: 64},
					{Day: "2024-03-10", Score: 80},
				}, nil
			},
		}
		h := NewReadingHandler(readingService, testLogger())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/readings/history", nil), userID)
		w := httptest.NewRecorder()
		h.GetHistory(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp ScoreHistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		require.Len(t, resp.Points, 2)
		assert.Equal(t, "2024-03-09", resp.Points[0].Day)
		assert.Equal(t, 80.0, resp.Points[1].Score)
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		readingService := &stubReadingService{
			GetHistoryFn: func(ctx context.Context, id uuid.UUID) ([]domain.ScorePoint, error) {
				return nil, nil
			},
		}
		h := NewReadingHandler(readingService, testLogger())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/readings/history", nil), userID)
		w := httptest.NewRecorder()
		h.GetHistory(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp ScoreHistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Points)
	})

	t.Run("missing user ID", func(t *testing.T) {
		t.Parallel()

		h := NewReadingHandler(&stubReadingService{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/readings/history", nil)
		w := httptest.NewRecorder()
		h.GetHistory(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
