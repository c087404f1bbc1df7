package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// AIClient wraps the genai client. The model name is chosen per call so the
// fallback chain can walk its priority list over a single client.
type AIClient struct {
	client *genai.Client
}

// NewAIClient builds the client from GEMINI_API_KEY. A missing key is
// reported as types.ErrAIConfig so the AI endpoints can answer AI_CONFIG_ERROR
// while the rest of the service keeps running.
func NewAIClient(ctx context.Context) (*AIClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, types.ErrAIConfig
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{client: client}, nil
}

// Unconfigured stands in for the AI client when GEMINI_API_KEY is absent.
// Every call fails with types.ErrAIConfig, so the AI endpoints answer
// AI_CONFIG_ERROR while everything else stays up.
type Unconfigured struct{}

func (Unconfigured) GenerateContent(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	return "", types.ErrAIConfig
}

// GenerateContent sends a single prompt to the named model and returns the
// raw response text.
func (ai *AIClient) GenerateContent(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	txt := result.Text()
	if txt == "" {
		return "", fmt.Errorf("model %s: empty response", model)
	}
	return txt, nil
}
