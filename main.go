package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	appLogger "github.com/FACorreiaa/go-trip-planner/app/logger"
	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/app/observability/tracer"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-trip-planner/internal/api/destinations"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/images"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/profile"
	"github.com/FACorreiaa/go-trip-planner/internal/api/trips"
	"github.com/FACorreiaa/go-trip-planner/internal/router"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracer.InitTracingAndMetrics(cfg.Server.MetricsPort)
	metrics.InitAppMetrics()

	// --- Database setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- AI client ---
	// A missing API key is not fatal: trips, profile and auth keep working and
	// the AI endpoints answer AI_CONFIG_ERROR per request.
	var aiClient itinerary.Generator
	client, err := generativeAI.NewAIClient(ctx)
	switch {
	case err == nil:
		aiClient = client
	case errors.Is(err, types.ErrAIConfig):
		logger.Warn("GEMINI_API_KEY not set, AI endpoints will answer AI_CONFIG_ERROR")
		aiClient = generativeAI.Unconfigured{}
	default:
		logger.Error("Failed to create AI client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency injection ---
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewServiceImpl(authRepo, cfg.JWT, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	tripsRepo := trips.NewPostgresTripsRepo(pool, logger)
	tripsService := trips.NewServiceImpl(tripsRepo, logger)
	tripsHandler := trips.NewTripsHandler(tripsService, logger)

	itineraryService := itinerary.NewServiceImpl(
		aiClient, cfg.AI.Models, cfg.AI.Temperature,
		itinerary.NewResultCache(cfg.AI.CacheTTL), tripsRepo, logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, logger)

	profileRepo := profile.NewPostgresProfileRepo(pool, logger)
	profileHandler := profile.NewProfileHandler(profileRepo, logger)

	insightsService := destinations.NewServiceImpl(aiClient, cfg.AI.InsightsModel, cfg.AI.CacheTTL, logger)
	insightsHandler := destinations.NewInsightsHandler(insightsService, logger)

	imagesService := images.NewUnsplashService(cfg.Images.CacheTTL, logger)
	imagesHandler := images.NewImagesHandler(imagesService, logger)

	apiRouter := router.SetupRouter(router.Handlers{
		Auth:         authHandler,
		Itinerary:    itineraryHandler,
		Trips:        tripsHandler,
		Profile:      profileHandler,
		Destinations: insightsHandler,
		Images:       imagesHandler,
	}, cfg, logger)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger(mode string) *slog.Logger {
	if mode == "" {
		mode = os.Getenv("APP_ENV")
	}

	var logger *slog.Logger
	if mode == "development" || mode == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
