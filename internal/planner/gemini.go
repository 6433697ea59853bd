// README: Gemini planner; generates the itinerary JSON directly when no
// planning webhook is deployed.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wayfarer/internal/modules/response"
)

// GeminiPlanner implements Planner on Google's Gemini models.
type GeminiPlanner struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiPlanner(ctx context.Context, apiKey string) (*GeminiPlanner, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash keeps latency and cost down; JSON mode for structured replies.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)

	return &GeminiPlanner{client: client, model: model}, nil
}

func (p *GeminiPlanner) Close() {
	p.client.Close()
}

func (p *GeminiPlanner) Plan(ctx context.Context, payload Payload) (any, error) {
	prompt := buildPlanPrompt(payload)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return map[string]any{"error": "gemini generation error: " + err.Error()}, nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return map[string]any{"error": "no response candidates from Gemini"}, nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	// The reply should already be bare JSON, but strip fences defensively and
	// degrade to the parse-error marker rather than failing the round.
	clean := cleanJSONString(text.String())
	var v any
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return map[string]any{
			response.ParseErrorField: err.Error(),
			response.RawTextField:    clean,
		}, nil
	}
	return v, nil
}

func buildPlanPrompt(payload Payload) string {
	prefs, _ := json.Marshal(payload.Preferences)

	scope := "a single day out near the user"
	if payload.Mode == ModeTripPlanner {
		scope = "a multi-day trip"
	}

	return fmt.Sprintf(`Role: You are a travel-planning assistant producing %s.
Context:
- User Location: lat %.5f, lng %.5f
- Preferences: %s

Reply with ONE JSON object and nothing else. Use these fields where relevant:
- "days": [{"label", "date", "summary", "activities": [{"time_of_day", "place", "reason", "estimated_cost", "lat", "lng"}]}]
- "itinerary": [{"step", "place", "reason", "estimated_cost", "lat", "lng"}] for single-day plans
- "flights", "hotels", "transport": card lists with prices and booking_url when known
- "budget": {"total", "breakdown": {category: cost}}
- "weather": {"summary", "daily": [{"date", "condition", "temp_min", "temp_max", "suggested_activities"}]}
- "locations": [{"lat", "lng", "title", "description"}] for every place you mention

Always include numeric lat/lng for places you are confident about; omit them otherwise.

User request: %s`,
		scope, payload.UserLocation.Lat, payload.UserLocation.Lng, prefs, payload.UserPrompt)
}

func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
