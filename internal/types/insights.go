package types

// DestinationInsights is the "travel toolkit" block for a destination:
// essential local apps, visa rules and emergency numbers.
type DestinationInsights struct {
	Apps      []AppRecommendation `json:"apps"`
	Visa      VisaInfo            `json:"visa"`
	Emergency EmergencyNumbers    `json:"emergency"`
}

type AppRecommendation struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type VisaInfo struct {
	Summary string `json:"summary"`
	Warning string `json:"warning,omitempty"`
}

type EmergencyNumbers struct {
	Police    string `json:"police"`
	Ambulance string `json:"ambulance"`
}

type DestinationInsightsRequest struct {
	Destination string `json:"destination" validate:"required,min=2,max=200"`
}
