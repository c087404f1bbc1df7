package destinations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ InsightsService = (*ServiceImpl)(nil)

type InsightsService interface {
	// GetInsights returns the travel toolkit for a destination. Insights are
	// near-static facts, so a single model serves them; there is no fallback
	// chain here.
	GetInsights(ctx context.Context, destination string) (*types.DestinationInsights, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	ai     itinerary.Generator
	model  string
	memo   *cache.Cache
}

func NewServiceImpl(ai itinerary.Generator, model string, cacheTTL time.Duration, logger *slog.Logger) *ServiceImpl {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	return &ServiceImpl{
		logger: logger,
		ai:     ai,
		model:  model,
		memo:   cache.New(cacheTTL, 10*time.Minute),
	}
}

func getInsightsPrompt(destination string) string {
	return fmt.Sprintf(`
Provide practical travel information for %s.

Return ONLY a JSON object with this exact structure:
{
    "apps": [
        {"name": "App name", "category": "transport|food|maps|payment|language", "description": "Why it's useful there"}
    ],
    "visa": {
        "summary": "Short visa summary for a typical tourist",
        "warning": "Optional caveat, empty string if none"
    },
    "emergency": {
        "police": "Local police number",
        "ambulance": "Local ambulance number"
    }
}
`, destination)
}

func (s *ServiceImpl) GetInsights(ctx context.Context, destination string) (*types.DestinationInsights, error) {
	key := strings.ToLower(strings.TrimSpace(destination))
	if v, found := s.memo.Get(key); found {
		if insights, ok := v.(*types.DestinationInsights); ok {
			s.logger.InfoContext(ctx, "Insights served from cache", slog.String("destination", destination))
			return insights, nil
		}
		s.memo.Delete(key)
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	raw, err := s.ai.GenerateContent(ctx, s.model, getInsightsPrompt(destination), config)
	if err != nil {
		return nil, fmt.Errorf("insights generation failed: %w", err)
	}

	var insights types.DestinationInsights
	if err := json.Unmarshal([]byte(stripFences(raw)), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse insights JSON: %w", err)
	}

	s.memo.SetDefault(key, &insights)
	return &insights, nil
}

// stripFences mirrors the itinerary parser's fence handling for the odd case
// where the model ignores the JSON response mime type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
