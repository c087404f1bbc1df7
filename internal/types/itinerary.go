package types

// Itinerary is the structured day-by-day travel plan produced by the model.
// All of it is untrusted output: the parser only guarantees syntactic JSON, so
// numeric fields may be zero and dayNumber values may be out of order or
// duplicated. Consumers must not assume contiguity.
type Itinerary struct {
	TripTitle     string         `json:"tripTitle"`
	Destination   string         `json:"destination"`
	Days          []Day          `json:"days"`
	Tips          []string       `json:"tips,omitempty"`
	SmartFeatures *SmartFeatures `json:"smart_features,omitempty"`
}

type Day struct {
	DayNumber  int        `json:"dayNumber"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string  `json:"time"` // free-form, best-effort "HH:MM"
	Activity    string  `json:"activity"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	ImagePrompt string  `json:"image_prompt,omitempty"`
}

// SmartFeatures are the optional enrichment blocks the prompt asks for.
// Shapes mirror the client widgets (budget card, packing list, vibe check).
type SmartFeatures struct {
	BudgetEstimator *BudgetEstimator `json:"budget_estimator,omitempty"`
	PackingList     *PackingList     `json:"packing_list,omitempty"`
	LocalVibe       *LocalVibe       `json:"local_vibe,omitempty"`
}

type BudgetEstimator struct {
	TotalEstimated float64         `json:"total_estimated"`
	Currency       string          `json:"currency"`
	Breakdown      BudgetBreakdown `json:"breakdown"`
	BudgetTips     []string        `json:"budget_tips,omitempty"`
}

type BudgetBreakdown struct {
	Flights       float64 `json:"flights"`
	Accommodation float64 `json:"accommodation"`
	Activities    float64 `json:"activities"`
	Food          float64 `json:"food"`
}

type PackingList struct {
	WeatherForecast string   `json:"weather_forecast"`
	Essentials      []string `json:"essentials"`
}

type LocalVibe struct {
	EtiquetteTips   []string         `json:"etiquette_tips"`
	SurvivalPhrases []SurvivalPhrase `json:"survival_phrases"`
}

type SurvivalPhrase struct {
	Original      string `json:"original"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

// GenerateItineraryRequest is the body of POST /api/itinerary/generate.
type GenerateItineraryRequest struct {
	Destination string `json:"destination" validate:"required,max=200"`
	Preferences string `json:"preferences,omitempty" validate:"max=1000"`
}
