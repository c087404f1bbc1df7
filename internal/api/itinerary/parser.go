package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// stripCodeFences removes leading/trailing markdown fence markers that models
// wrap around JSON payloads despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseItinerary turns raw model output into an Itinerary. The contract with
// the model is best-effort JSON: this checks syntax and shape only. Field
// values (lat/lng ranges, dayNumber ordering) stay untrusted.
func parseItinerary(raw string) (*types.Itinerary, error) {
	jsonStr := stripCodeFences(raw)
	var it types.Itinerary
	if err := json.Unmarshal([]byte(jsonStr), &it); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	return &it, nil
}
