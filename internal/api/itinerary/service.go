package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/trips"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Generator is the slice of the AI client the fallback chain needs.
type Generator interface {
	GenerateContent(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ Generator = (*generativeAI.AIClient)(nil)

// GenerationError reports that every model in the fallback chain failed.
// LastErr keeps the most recent cause for the response hint.
type GenerationError struct {
	Attempts int
	LastErr  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("all %d models failed to generate an itinerary: %v", e.Attempts, e.LastErr)
}

func (e *GenerationError) Unwrap() error { return e.LastErr }

var _ ItineraryService = (*ServiceImpl)(nil)

type ItineraryService interface {
	// Generate produces an itinerary for the destination, walking the model
	// priority list until one answers with parseable output. userID is nil for
	// anonymous callers; authenticated results are saved as a private trip on
	// a best-effort basis.
	Generate(ctx context.Context, destination, preferences string, userID *uuid.UUID) (*types.Itinerary, error)
}

type ServiceImpl struct {
	logger      *slog.Logger
	ai          Generator
	models      []string
	temperature float32
	memo        ResultCache
	tripsRepo   trips.Repository
}

func NewServiceImpl(ai Generator, models []string, temperature float32, memo ResultCache, tripsRepo trips.Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		ai:          ai,
		models:      models,
		temperature: temperature,
		memo:        memo,
		tripsRepo:   tripsRepo,
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, destination, preferences string, userID *uuid.UUID) (*types.Itinerary, error) {
	l := s.logger.With(slog.String("destination", destination))
	startTime := time.Now()
	defer func() {
		metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(startTime).Seconds())
	}()

	key := memoKey(destination, preferences)
	if it, found := s.memo.Get(key); found {
		l.InfoContext(ctx, "Itinerary served from cache")
		metrics.Get().GenerationRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", "cache_hit")))
		// The memo only short-circuits the model call. The caller still gets
		// their trip saved, even when someone else warmed the entry.
		if userID != nil {
			s.saveTrip(ctx, l, *userID, destination, it)
		}
		return it, nil
	}

	prompt := GetItineraryPrompt(destination, preferences)
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](s.temperature),
	}

	it, err := s.invokeWithFallback(ctx, l, prompt, config)
	if err != nil {
		metrics.Get().GenerationRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", "failure")))
		return nil, err
	}
	metrics.Get().GenerationRequestsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", "success")))

	s.memo.Set(key, it)

	if userID != nil {
		s.saveTrip(ctx, l, *userID, destination, it)
	}
	return it, nil
}

// invokeWithFallback walks the model list in priority order and returns the
// first parseable itinerary. A model that answers garbage counts as a failure
// and the chain moves on; once a model succeeds no further model is invoked.
func (s *ServiceImpl) invokeWithFallback(ctx context.Context, l *slog.Logger, prompt string, config *genai.GenerateContentConfig) (*types.Itinerary, error) {
	var lastErr error
	attempts := 0

	for _, model := range s.models {
		attempts++
		metrics.Get().ModelAttemptsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("model", model)))

		raw, err := s.ai.GenerateContent(ctx, model, prompt, config)
		if err == nil {
			var it *types.Itinerary
			it, err = parseItinerary(raw)
			if err == nil {
				l.InfoContext(ctx, "Itinerary generated",
					slog.String("model", model), slog.Int("attempts", attempts))
				return it, nil
			}
		}

		if errors.Is(err, types.ErrAIConfig) {
			// Configuration problems won't be fixed by trying another model.
			return nil, types.ErrAIConfig
		}

		lastErr = err
		metrics.Get().ModelFailuresTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("model", model)))
		l.WarnContext(ctx, "Model attempt failed",
			slog.String("model", model), slog.Any("error", err))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return nil, &GenerationError{Attempts: attempts, LastErr: lastErr}
}

// saveTrip persists the generated itinerary as a private trip. Failures are
// logged and swallowed: the caller already has their itinerary and a storage
// hiccup must not turn that success into an error.
func (s *ServiceImpl) saveTrip(ctx context.Context, l *slog.Logger, userID uuid.UUID, destination string, it *types.Itinerary) {
	title := it.TripTitle
	if title == "" {
		title = "Trip to " + destination
	}
	_, err := s.tripsRepo.CreateTrip(ctx, userID, types.CreateTripRequest{
		Destination: destination,
		Title:       title,
		Itinerary:   *it,
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to auto-save generated trip",
			slog.String("user_id", userID.String()), slog.Any("error", err))
		return
	}
	l.InfoContext(ctx, "Generated trip auto-saved", slog.String("user_id", userID.String()))
}
