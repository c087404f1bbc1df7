package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type ProfileHandler struct {
	repo   Repository
	logger *slog.Logger
}

func NewProfileHandler(repo Repository, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		repo:   repo,
		logger: logger,
	}
}

// GetProfile handles GET /api/profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetProfile"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
		return
	}

	resp, err := h.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Valid token for a user that no longer exists.
			api.ErrorResponse(w, r, http.StatusNotFound, api.CodeNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to load profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, "Failed to load profile")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
