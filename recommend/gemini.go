package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/raushankrgupta/music-profile-api/models"
	"google.golang.org/api/option"
)

// maxSuggestions caps the AI lines appended after the rules.
const maxSuggestions = 3

// Suggester produces extra free-form suggestions for a profile.
type Suggester interface {
	Suggest(ctx context.Context, p *models.Profile) ([]string, error)
}

// GeminiSuggester asks a Gemini model for short festival tips.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSuggester(ctx context.Context, apiKey, modelName string) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	return &GeminiSuggester{client: client, model: model}, nil
}

func (g *GeminiSuggester) Suggest(ctx context.Context, p *models.Profile) ([]string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(p)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
			text.WriteString("\n")
		}
	}
	return parseSuggestions(text.String()), nil
}

func (g *GeminiSuggester) Close() error {
	return g.client.Close()
}

func buildPrompt(p *models.Profile) string {
	intensity, crowd := "unknown", "unknown"
	if p.Intensity != nil {
		intensity = fmt.Sprintf("%d/10", *p.Intensity)
	}
	if p.CrowdLevel != nil {
		crowd = fmt.Sprintf("%d/10", *p.CrowdLevel)
	}

	return fmt.Sprintf(`
Suggest up to %d short, practical tips for a festival-goer with this profile.
Answer with one tip per line and nothing else.

Event: %s
Music: %s
Vibes wanted: %s
Mood: %s
Intensity: %s
Crowd tolerance: %s
`, maxSuggestions, p.EventName, p.MusicPalette, p.VibesWanted, p.Mood, intensity, crowd)
}

// parseSuggestions keeps the first non-empty lines, stripped of list markers.
func parseSuggestions(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789.) ")
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
