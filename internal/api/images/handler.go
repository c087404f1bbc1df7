package images

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type ImagesHandler struct {
	imageService ImageService
	logger       *slog.Logger
}

func NewImagesHandler(imageService ImageService, logger *slog.Logger) *ImagesHandler {
	return &ImagesHandler{
		imageService: imageService,
		logger:       logger,
	}
}

// GetUnsplashImage handles GET /api/images/unsplash?query=...
// Any upstream failure collapses into 404: the client treats a missing image
// as "use the placeholder", never as an error.
func (h *ImagesHandler) GetUnsplashImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUnsplashImage"))

	query := r.URL.Query().Get("query")
	if query == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidationError, "query parameter is required")
		return
	}

	imageURL, err := h.imageService.GetImageURL(ctx, query)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Image lookup failed", slog.String("query", query), slog.Any("error", err))
		}
		api.ErrorResponse(w, r, http.StatusNotFound, api.CodeNotFound, "No image found")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"url": imageURL})
}
