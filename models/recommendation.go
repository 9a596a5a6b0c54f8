package models

// Recommendation is the suggestion list derived from a single profile.
type Recommendation struct {
	ProfileID       string   `json:"profileId"`
	Name            string   `json:"name"`
	Recommendations []string `json:"recommendations"`
}

// EventInfo describes the venue shown on the dashboard.
type EventInfo struct {
	Venue string `json:"venue"`
	Date  string `json:"date"`
	Doors string `json:"doors"`
}

// Suggestions is the static dashboard catalogue.
type Suggestions struct {
	Event      EventInfo `json:"event"`
	Drinks     []string  `json:"drinks"`
	Foods      []string  `json:"foods"`
	Activities []string  `json:"activities"`
}
