package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appMiddleware "github.com/FACorreiaa/go-trip-planner/app/middleware"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-trip-planner/internal/api/destinations"
	"github.com/FACorreiaa/go-trip-planner/internal/api/images"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/profile"
	"github.com/FACorreiaa/go-trip-planner/internal/api/trips"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *auth.AuthHandler
	Itinerary    *itinerary.ItineraryHandler
	Trips        *trips.TripsHandler
	Profile      *profile.ProfileHandler
	Destinations *destinations.InsightsHandler
	Images       *images.ImagesHandler
}

// SetupRouter wires all routes with their middleware chains. The general
// limiter covers everything under /api; the AI and auth groups stack their
// stricter limits on top of it.
func SetupRouter(h Handlers, cfg config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authenticate := auth.Authenticate(logger, cfg.JWT)
	optionalAuth := auth.OptionalAuthenticate(logger, cfg.JWT)

	// Built once so the itinerary and insights routes draw from the same
	// per-IP AI budget.
	aiLimiter := appMiddleware.AILimiter(cfg.RateLimit.AI)

	r.Route("/api", func(r chi.Router) {
		r.Use(appMiddleware.GeneralLimiter(cfg.RateLimit.General))

		r.Route("/auth", func(r chi.Router) {
			r.Use(appMiddleware.AuthLimiter(cfg.RateLimit.Auth))
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
		})

		r.Route("/itinerary", func(r chi.Router) {
			r.Use(aiLimiter)
			r.With(optionalAuth).Post("/generate", h.Itinerary.Generate)
		})

		r.Route("/trips", func(r chi.Router) {
			r.With(optionalAuth).Get("/{id}", h.Trips.GetTrip)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/", h.Trips.ListTrips)
				r.Post("/", h.Trips.CreateTrip)
				r.Delete("/", h.Trips.DeleteTrip)
				r.Put("/{id}/share", h.Trips.UpdateSharing)
			})
		})

		r.With(authenticate).Get("/profile", h.Profile.GetProfile)

		r.Route("/destinations", func(r chi.Router) {
			r.Use(aiLimiter)
			r.Post("/insights", h.Destinations.GetInsights)
		})

		r.Get("/images/unsplash", h.Images.GetUnsplashImage)
	})

	return r
}
