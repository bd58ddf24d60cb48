package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/auradaily/aura-api/internal/api/shared"
	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/service"
)

// UserHandler serves the authenticated user's profile and birth data.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// UpdateBirthData handles PUT /users/me/birth-data. Birth data is the
// input to every scoring subsystem; readings are unavailable until it
// is recorded.
func (h *UserHandler) UpdateBirthData(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req BirthDataRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Latitude and longitude must be provided together")
		return
	}

	birthDate, err := time.ParseInLocation("2006-01-02", req.BirthDate, time.UTC)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date: use YYYY-MM-DD")
		return
	}

	var place *domain.GeoPoint
	if req.Latitude != nil {
		place = &domain.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	user, err := h.userService.UpdateBirthData(r.Context(), userID, req.Name, birthDate, place)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.logger.Debug("birth data updated", "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
