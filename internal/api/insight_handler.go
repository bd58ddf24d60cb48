package api

import (
	"log/slog"
	"net/http"

	"github.com/auradaily/aura-api/internal/api/shared"
	"github.com/auradaily/aura-api/internal/service"
)

// InsightHandler serves lifestyle correlation insights.
type InsightHandler struct {
	insightService service.InsightService
	logger         *slog.Logger
}

// NewInsightHandler creates a new InsightHandler with the given dependencies.
func NewInsightHandler(insightService service.InsightService, logger *slog.Logger) *InsightHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightHandler{
		insightService: insightService,
		logger:         logger.With(slog.String("component", "insight_handler")),
	}
}

// GetCorrelations handles GET /insights/correlations, returning the
// user's most recently computed lifestyle correlations. Correlations
// are recomputed in the background as logs and readings accumulate, so
// the result may trail the latest data slightly.
func (h *InsightHandler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	correlations, err := h.insightService.GetCorrelations(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CorrelationsResponse{
		UserID:       userID,
		Correlations: correlations,
	})
}
