package recommend

import (
	"testing"

	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/stretchr/testify/assert"
)

func TestParseSuggestions(t *testing.T) {
	text := "1. Arrive early for the headliner\n\n- Stay hydrated\n* Pack earplugs\n• Share a locker\n"
	assert.Equal(t, []string{
		"Arrive early for the headliner",
		"Stay hydrated",
		"Pack earplugs",
	}, parseSuggestions(text))

	assert.Empty(t, parseSuggestions("  \n\n"))
}

func TestBuildPrompt(t *testing.T) {
	p := &models.Profile{EventName: "Summer Fest", MusicPalette: "House", Intensity: intPtr(8)}
	prompt := buildPrompt(p)
	assert.Contains(t, prompt, "Event: Summer Fest")
	assert.Contains(t, prompt, "Music: House")
	assert.Contains(t, prompt, "Intensity: 8/10")
	assert.Contains(t, prompt, "Crowd tolerance: unknown")
}
