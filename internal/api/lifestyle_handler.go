package api

import (
	"log/slog"
	"net/http"

	"github.com/auradaily/aura-api/internal/api/shared"
	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/service"
)

// LogEntryRequest defines the payload for recording a lifestyle log
// entry. Exactly one category object must be set, and it must match the
// category in the URL path.
type LogEntryRequest struct {
	Date string `json:"date" validate:"required"`

	Sleep      *domain.SleepLog      `json:"sleep,omitempty"`
	Exercise   *domain.ExerciseLog   `json:"exercise,omitempty"`
	Meditation *domain.MeditationLog `json:"meditation,omitempty"`
	Nutrition  *domain.NutritionLog  `json:"nutrition,omitempty"`
	Social     *domain.SocialLog     `json:"social,omitempty"`
	Weather    *domain.WeatherLog    `json:"weather,omitempty"`
	Biometric  *domain.BiometricLog  `json:"biometric,omitempty"`
}

// payloadFor returns the category object matching the requested
// category, or nil when it was not provided.
func (req *LogEntryRequest) payloadFor(category domain.LogCategory) any {
	switch category {
	case domain.CategorySleep:
		if req.Sleep != nil {
			return req.Sleep
		}
	case domain.CategoryExercise:
		if req.Exercise != nil {
			return req.Exercise
		}
	case domain.CategoryMeditation:
		if req.Meditation != nil {
			return req.Meditation
		}
	case domain.CategoryNutrition:
		if req.Nutrition != nil {
			return req.Nutrition
		}
	case domain.CategorySocial:
		if req.Social != nil {
			return req.Social
		}
	case domain.CategoryWeather:
		if req.Weather != nil {
			return req.Weather
		}
	case domain.CategoryBiometric:
		if req.Biometric != nil {
			return req.Biometric
		}
	}
	return nil
}

// LifestyleEntriesResponse defines a list of log entries returned by the API.
type LifestyleEntriesResponse struct {
	Entries []domain.LogEntry `json:"entries"`
}

// LifestyleHandler records and serves lifestyle log entries.
type LifestyleHandler struct {
	lifestyleService service.LifestyleService
	logger           *slog.Logger
}

// NewLifestyleHandler creates a new LifestyleHandler with the given dependencies.
func NewLifestyleHandler(lifestyleService service.LifestyleService, logger *slog.Logger) *LifestyleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LifestyleHandler{
		lifestyleService: lifestyleService,
		logger:           logger.With(slog.String("component", "lifestyle_handler")),
	}
}

// RecordEntry handles POST /lifestyle/{category}.
func (h *LifestyleHandler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	category, ok := h.categoryParam(w, r)
	if !ok {
		return
	}

	var req LogEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	payload := req.payloadFor(category)
	if payload == nil {
		HandleAPIError(w, r, domain.ErrLogPayloadMissing, "")
		return
	}

	entry, err := h.lifestyleService.RecordEntry(r.Context(), userID, category, req.Date, payload)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// GetEntries handles GET /lifestyle/{category}. Optional from and to
// query parameters bound the result to a day range (inclusive).
func (h *LifestyleHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	category, ok := h.categoryParam(w, r)
	if !ok {
		return
	}

	entries, err := h.lifestyleService.GetEntries(
		r.Context(),
		userID,
		category,
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"),
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LifestyleEntriesResponse{Entries: entries})
}

// GetDay handles GET /lifestyle/day/{date}, returning all of the user's
// entries across categories for one calendar day.
func (h *LifestyleHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := pathParam(r, "date")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.lifestyleService.GetDay(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LifestyleEntriesResponse{Entries: entries})
}

// categoryParam extracts and validates the category path parameter.
// Returns false if an error response was already written.
func (h *LifestyleHandler) categoryParam(w http.ResponseWriter, r *http.Request) (domain.LogCategory, bool) {
	raw, err := pathParam(r, "category")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", false
	}

	category := domain.LogCategory(raw)
	if !category.IsValid() {
		HandleAPIError(w, r, domain.ErrInvalidLogCategory, "")
		return "", false
	}
	return category, true
}
