package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validItineraryJSON = `{
    "tripTitle": "Three Days in Lisbon",
    "destination": "Lisbon",
    "days": [
        {
            "dayNumber": 1,
            "theme": "Alfama and the old town",
            "activities": [
                {"time": "09:00", "activity": "Castle visit", "location": "Castelo de S. Jorge", "lat": 38.7139, "lng": -9.1335, "image_prompt": "castle overlooking lisbon"}
            ]
        }
    ],
    "tips": ["Wear comfortable shoes"],
    "smart_features": {
        "budget_estimator": {
            "total_estimated": 850,
            "currency": "EUR",
            "breakdown": {"flights": 300, "accommodation": 250, "activities": 150, "food": 150},
            "budget_tips": ["Lunch menus are cheaper than dinner"]
        },
        "packing_list": {
            "weather_forecast": "Sunny, around 24C",
            "essentials": ["Sunscreen"]
        },
        "local_vibe": {
            "etiquette_tips": ["Greet shopkeepers"],
            "survival_phrases": [
                {"original": "Obrigado", "pronunciation": "oh-bree-GAH-doo", "meaning": "Thank you"}
            ]
        }
    }
}`

func TestParseItinerary(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		it, err := parseItinerary(validItineraryJSON)
		require.NoError(t, err)
		assert.Equal(t, "Three Days in Lisbon", it.TripTitle)
		assert.Equal(t, "Lisbon", it.Destination)
		require.Len(t, it.Days, 1)
		require.Len(t, it.Days[0].Activities, 1)
		assert.InDelta(t, 38.7139, it.Days[0].Activities[0].Lat, 0.0001)
		require.NotNil(t, it.SmartFeatures)
		assert.Equal(t, "EUR", it.SmartFeatures.BudgetEstimator.Currency)
	})

	t.Run("FencedJSON", func(t *testing.T) {
		it, err := parseItinerary("```json\n" + validItineraryJSON + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", it.Destination)
	})

	t.Run("FencedWithoutLanguageTag", func(t *testing.T) {
		it, err := parseItinerary("```\n" + validItineraryJSON + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", it.Destination)
	})

	t.Run("SurroundingWhitespace", func(t *testing.T) {
		it, err := parseItinerary("\n\n  " + validItineraryJSON + "  \n")
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", it.Destination)
	})

	t.Run("TruncatedJSON", func(t *testing.T) {
		_, err := parseItinerary(validItineraryJSON[:len(validItineraryJSON)/2])
		assert.Error(t, err)
	})

	t.Run("NotJSONAtAll", func(t *testing.T) {
		_, err := parseItinerary("I'm sorry, I can't help with that.")
		assert.Error(t, err)
	})

	// Shape is checked, values are not: days arriving out of order or with
	// duplicate dayNumbers still parse and keep their payload order.
	t.Run("OutOfOrderAndDuplicateDayNumbers", func(t *testing.T) {
		raw := `{
            "tripTitle": "Odd days",
            "destination": "Porto",
            "days": [
                {"dayNumber": 3, "theme": "c", "activities": []},
                {"dayNumber": 1, "theme": "a", "activities": []},
                {"dayNumber": 1, "theme": "b", "activities": []}
            ],
            "tips": []
        }`
		it, err := parseItinerary(raw)
		require.NoError(t, err)
		require.Len(t, it.Days, 3)
		assert.Equal(t, 3, it.Days[0].DayNumber)
		assert.Equal(t, 1, it.Days[1].DayNumber)
		assert.Equal(t, 1, it.Days[2].DayNumber)
	})

	t.Run("MissingSmartFeatures", func(t *testing.T) {
		raw := `{"tripTitle": "Bare", "destination": "Faro", "days": [], "tips": []}`
		it, err := parseItinerary(raw)
		require.NoError(t, err)
		assert.Nil(t, it.SmartFeatures)
	})
}

func TestMemoKey(t *testing.T) {
	t.Run("CaseAndSpaceInsensitiveDestination", func(t *testing.T) {
		assert.Equal(t, memoKey("Lisbon", ""), memoKey("  lisbon ", ""))
	})

	t.Run("DateInPreferencesChangesKey", func(t *testing.T) {
		base := memoKey("Lisbon", "museums and food")
		dated := memoKey("Lisbon", "arriving 2026-09-12, museums")
		assert.NotEqual(t, base, dated)
		assert.Equal(t, "lisbon|2026-09-12", dated)
	})

	t.Run("NoDateUsesSentinel", func(t *testing.T) {
		assert.Equal(t, "lisbon|any", memoKey("Lisbon", "museums"))
	})
}
