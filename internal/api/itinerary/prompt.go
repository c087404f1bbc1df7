package itinerary

import "fmt"

// GetItineraryPrompt embeds the destination and preferences verbatim along
// with the target JSON schema. Length limits are enforced by the validation
// layer before this is ever called; no further escaping happens here.
func GetItineraryPrompt(destination, preferences string) string {
	if preferences == "" {
		preferences = "No specific preferences"
	}
	return fmt.Sprintf(`
Create a detailed travel itinerary for %s.
Preferences: %s.

Return ONLY a JSON object with this exact structure:
{
    "tripTitle": "Title of the trip",
    "destination": "%s",
    "days": [
        {
            "dayNumber": 1,
            "theme": "Day theme",
            "activities": [
                {
                    "time": "09:00",
                    "activity": "Description",
                    "location": "Place",
                    "lat": 0.0,
                    "lng": 0.0,
                    "image_prompt": "short scene description for an image search"
                }
            ]
        }
    ],
    "tips": ["Tip 1"],
    "smart_features": {
        "budget_estimator": {
            "total_estimated": 0,
            "currency": "USD",
            "breakdown": {"flights": 0, "accommodation": 0, "activities": 0, "food": 0},
            "budget_tips": ["Tip"]
        },
        "packing_list": {
            "weather_forecast": "Expected weather during the trip",
            "essentials": ["Item"]
        },
        "local_vibe": {
            "etiquette_tips": ["Tip"],
            "survival_phrases": [
                {"original": "phrase", "pronunciation": "how to say it", "meaning": "what it means"}
            ]
        }
    }
}

VERY IMPORTANT: For each activity, specify the approximate "lat" (latitude) and
"lng" (longitude) for its location so it can be shown on a map.
`, destination, preferences, destination)
}
