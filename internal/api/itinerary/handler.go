package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type ItineraryHandler struct {
	itineraryService ItineraryService
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService ItineraryService, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// Generate handles POST /api/itinerary/generate. Authentication is optional:
// anonymous callers get the itinerary, authenticated callers additionally get
// it saved as a private trip.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/itinerary/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, err.Error())
		return
	}
	if fields := api.ValidateStruct(&req); fields != nil {
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid request data", fields)
		return
	}
	span.SetAttributes(attribute.String("app.destination", req.Destination))

	var userID *uuid.UUID
	if userIDStr, ok := auth.GetUserIDFromContext(ctx); ok && userIDStr != "" {
		if id, err := uuid.Parse(userIDStr); err == nil {
			userID = &id
			span.SetAttributes(semconv.EnduserIDKey.String(id.String()))
		}
	}

	it, err := h.itineraryService.Generate(ctx, req.Destination, req.Preferences, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")

		var genErr *GenerationError
		switch {
		case errors.Is(err, types.ErrAIConfig):
			l.ErrorContext(ctx, "AI client not configured", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeAIConfigError, "AI service is not configured")
		case errors.As(err, &genErr):
			l.ErrorContext(ctx, "All models exhausted",
				slog.Int("attempts", genErr.Attempts), slog.Any("error", genErr.LastErr))
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, api.CodeAIGenerationError,
				"Failed to generate itinerary", genErr.LastErr.Error())
		default:
			l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to generate itinerary")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}
