package destinations

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type InsightsHandler struct {
	insightsService InsightsService
	logger          *slog.Logger
}

func NewInsightsHandler(insightsService InsightsService, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
		logger:          logger,
	}
}

// GetInsights handles POST /api/destinations/insights.
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetInsights"))

	var req types.DestinationInsightsRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, err.Error())
		return
	}
	if fields := api.ValidateStruct(&req); fields != nil {
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid request data", fields)
		return
	}

	insights, err := h.insightsService.GetInsights(ctx, req.Destination)
	if err != nil {
		if errors.Is(err, types.ErrAIConfig) {
			api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeAIConfigError, "AI service is not configured")
			return
		}
		l.ErrorContext(ctx, "Failed to get destination insights",
			slog.String("destination", req.Destination), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeAIGenerationError, "Failed to generate destination insights")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, insights)
}
