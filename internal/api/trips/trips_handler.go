package trips

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
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

type TripsHandler struct {
	tripsService TripsService
	logger       *slog.Logger
}

func NewTripsHandler(tripsService TripsService, logger *slog.Logger) *TripsHandler {
	return &TripsHandler{
		tripsService: tripsService,
		logger:       logger,
	}
}

// requireUserID resolves the authenticated caller or writes a 401.
func (h *TripsHandler) requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userIDStr == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Invalid user ID in context", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeInvalidToken, "Invalid token subject")
		return uuid.Nil, false
	}
	return userID, true
}

// ListTrips handles GET /api/trips.
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "ListTrips"))

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	trips, err := h.tripsService.GetTripsByUser(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list trips", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to fetch trips")
		return
	}
	if trips == nil {
		trips = []*types.Trip{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.TripListResponse{Trips: trips})
}

// CreateTrip handles POST /api/trips. The trip is always persisted private.
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripsHandler").Start(r.Context(), "CreateTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/trips"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateTrip"))

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID.String()))

	var req types.CreateTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, err.Error())
		return
	}
	if fields := api.ValidateStruct(&req); fields != nil {
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid request data", fields)
		return
	}

	trip, err := h.tripsService.CreateTrip(ctx, userID, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service error")
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to save trip")
		return
	}

	l.InfoContext(ctx, "Trip created", slog.String("trip_id", trip.ID.String()))
	api.WriteJSONResponse(w, r, http.StatusCreated, types.TripResponse{Trip: trip})
}

// GetTrip handles GET /api/trips/{id}. Works with or without authentication;
// private trips answer 403 to everyone but the owner.
func (h *TripsHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetTrip"))

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid trip ID format")
		return
	}

	var callerID *uuid.UUID
	if userIDStr, ok := auth.GetUserIDFromContext(ctx); ok && userIDStr != "" {
		if id, err := uuid.Parse(userIDStr); err == nil {
			callerID = &id
		}
	}

	trip, isOwner, err := h.tripsService.GetTrip(ctx, tripID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, api.CodeNotFound, "Trip not found")
		case errors.Is(err, types.ErrForbidden):
			api.ErrorResponse(w, r, http.StatusForbidden, api.CodeForbidden, "This trip is private")
		default:
			l.ErrorContext(ctx, "Failed to get trip", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to fetch trip")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.TripDetailResponse{Trip: trip, IsOwner: isOwner})
}

// UpdateSharing handles PUT /api/trips/{id}/share.
func (h *TripsHandler) UpdateSharing(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripsHandler").Start(r.Context(), "UpdateSharing", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/trips/{id}/share"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateSharing"))

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid trip ID format")
		return
	}
	span.SetAttributes(attribute.String("app.trip.id", tripID.String()))

	// A pointer field distinguishes false from absent: non-boolean or missing
	// is_public is rejected rather than defaulted.
	var req types.UpdateTripSharingRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, err.Error())
		return
	}
	if fields := api.ValidateStruct(&req); fields != nil {
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, api.CodeValidationError, "is_public must be a boolean", fields)
		return
	}

	trip, err := h.tripsService.UpdateSharing(ctx, tripID, userID, *req.IsPublic)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, api.CodeNotFound, "Trip not found")
		case errors.Is(err, types.ErrForbidden):
			api.ErrorResponse(w, r, http.StatusForbidden, api.CodeForbidden, "Only the owner can change sharing")
		default:
			l.ErrorContext(ctx, "Failed to update sharing", slog.Any("error", err))
			span.RecordError(err)
			api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to update trip")
		}
		return
	}

	l.InfoContext(ctx, "Trip sharing updated",
		slog.String("trip_id", trip.ID.String()), slog.Bool("is_public", trip.IsPublic))
	api.WriteJSONResponse(w, r, http.StatusOK, types.TripResponse{Trip: trip})
}

// DeleteTrip handles DELETE /api/trips with the id in the body. Deleting a
// trip that exists but belongs to someone else still answers success.
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteTrip"))

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req types.DeleteTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, err.Error())
		return
	}
	if fields := api.ValidateStruct(&req); fields != nil {
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid request data", fields)
		return
	}
	tripID, err := uuid.Parse(req.ID)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, "Invalid trip ID format")
		return
	}

	if err := h.tripsService.DeleteTrip(ctx, tripID, userID); err != nil {
		l.ErrorContext(ctx, "Failed to delete trip", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to delete trip")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]bool{"success": true})
}
