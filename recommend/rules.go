package recommend

import (
	"regexp"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
)

var (
	indieElectro = regexp.MustCompile(`(?i)indie|synth|electro|pop`)
	chill        = regexp.MustCompile(`(?i)chill|relax`)
	mellowMood   = regexp.MustCompile(`(?i)romant|dream|nostalg`)
)

// Rules derives the rule-based suggestions for a profile, in display order.
func Rules(p *models.Profile) []string {
	recs := []string{}

	if indieElectro.MatchString(p.MusicPalette) {
		recs = append(recs, "Try the Sunset Stage for indie/electro vibes")
	}
	if chill.MatchString(p.VibesWanted) {
		recs = append(recs, "Bring a picnic blanket - Chill Zone is recommended")
	}
	if p.Intensity != nil && *p.Intensity >= 7 {
		recs = append(recs, "High intensity - front of main stage for best energy")
	}
	// unset crowd level is not a low-crowd preference
	if p.CrowdLevel != nil && *p.CrowdLevel <= 3 {
		recs = append(recs, "Low crowd pref - visit quiet lounge and VIP garden")
	}
	if mellowMood.MatchString(p.Mood) {
		recs = append(recs, "Look for acoustic sets and mellow DJs in Zone B")
	}

	if p.SuggestedShows != "" {
		recs = append(recs, "You listed shows: "+p.SuggestedShows)
	}
	if p.SuggestedDrinks != "" {
		recs = append(recs, "Try: "+p.SuggestedDrinks)
	}
	if p.SuggestedFoods != "" {
		recs = append(recs, "Food idea: "+p.SuggestedFoods)
	}
	return recs
}

// Dashboard returns the static event catalogue for the given day.
func Dashboard(day time.Time) models.Suggestions {
	return models.Suggestions{
		Event: models.EventInfo{
			Venue: "The Grand Hall",
			Date:  day.Format("2006-01-02"),
			Doors: "7:00 PM",
		},
		Drinks:     []string{"Classic Mojito", "Local IPA", "Non-alcoholic Spritz", "Red Wine - Malbec", "Whiskey Sour"},
		Foods:      []string{"Gourmet Sliders", "Vegan Tacos", "Charcuterie Board", "Loaded Fries", "Grilled Halloumi"},
		Activities: []string{"Dance Floor Maps", "Meet & Greet", "Open Mic Signup", "Merch Booth", "Photo Wall"},
	}
}
