package api

import (
	"log/slog"
	"net/http"

	"github.com/auradaily/aura-api/internal/api/shared"
	"github.com/auradaily/aura-api/internal/service"
)

// ReadingHandler serves daily energy readings and score history.
type ReadingHandler struct {
	readingService service.ReadingService
	logger         *slog.Logger
}

// NewReadingHandler creates a new ReadingHandler with the given dependencies.
func NewReadingHandler(readingService service.ReadingService, logger *slog.Logger) *ReadingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingHandler{
		readingService: readingService,
		logger:         logger.With(slog.String("component", "reading_handler")),
	}
}

// GetReading handles GET /readings/{date}. The date accepts a
// YYYY-MM-DD day key or an RFC 3339 timestamp, which is normalized to
// a UTC calendar day.
func (h *ReadingHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := pathParam(r, "date")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.readingService.ComputeReading(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetHistory handles GET /readings/history, returning the user's
// recorded adjusted scores oldest first.
func (h *ReadingHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	points, err := h.readingService.GetHistory(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ScoreHistoryResponse{
		UserID: userID,
		Points: points,
	})
}
