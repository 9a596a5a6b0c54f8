package recommend

import (
	"testing"
	"time"

	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRules(t *testing.T) {
	tests := []struct {
		name    string
		profile models.Profile
		want    []string
	}{
		{
			name:    "empty profile",
			profile: models.Profile{Name: "Nobody"},
			want:    []string{},
		},
		{
			name: "every rule fires in order",
			profile: models.Profile{
				MusicPalette:    "Synthwave",
				VibesWanted:     "Relaxed",
				Intensity:       intPtr(7),
				CrowdLevel:      intPtr(3),
				Mood:            "Nostalgic",
				SuggestedShows:  "Daft Punk",
				SuggestedDrinks: "Mojito",
				SuggestedFoods:  "Tacos",
			},
			want: []string{
				"Try the Sunset Stage for indie/electro vibes",
				"Bring a picnic blanket - Chill Zone is recommended",
				"High intensity - front of main stage for best energy",
				"Low crowd pref - visit quiet lounge and VIP garden",
				"Look for acoustic sets and mellow DJs in Zone B",
				"You listed shows: Daft Punk",
				"Try: Mojito",
				"Food idea: Tacos",
			},
		},
		{
			name:    "thresholds are inclusive only at the boundary",
			profile: models.Profile{Intensity: intPtr(6), CrowdLevel: intPtr(4)},
			want:    []string{},
		},
		{
			name:    "case insensitive palette",
			profile: models.Profile{MusicPalette: "INDIE rock"},
			want:    []string{"Try the Sunset Stage for indie/electro vibes"},
		},
		{
			name:    "romantic mood",
			profile: models.Profile{Mood: "romantic"},
			want:    []string{"Look for acoustic sets and mellow DJs in Zone B"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Rules(&tc.profile))
		})
	}
}

func TestDashboard(t *testing.T) {
	s := Dashboard(time.Date(2024, 8, 15, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "The Grand Hall", s.Event.Venue)
	assert.Equal(t, "2024-08-15", s.Event.Date)
	assert.Equal(t, "7:00 PM", s.Event.Doors)
	assert.Len(t, s.Drinks, 5)
	assert.Len(t, s.Foods, 5)
	assert.Len(t, s.Activities, 5)
}
