// README: Webhook planner; POSTs the payload to the per-mode planning URL.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wayfarer/internal/modules/response"
)

// WebhookPlanner calls a remote planning workflow over HTTP. One URL per
// assistant mode.
type WebhookPlanner struct {
	urls   map[string]string
	client *http.Client
}

func NewWebhookPlanner(dayOutURL, tripPlannerURL string) *WebhookPlanner {
	return &WebhookPlanner{
		urls: map[string]string{
			ModeDayOut:      dayOutURL,
			ModeTripPlanner: tripPlannerURL,
		},
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (w *WebhookPlanner) Plan(ctx context.Context, payload Payload) (any, error) {
	url := w.urls[payload.Mode]
	if url == "" {
		url = w.urls[ModeDayOut]
	}
	if url == "" {
		return nil, fmt.Errorf("no planning webhook configured for mode %q", payload.Mode)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := w.client.Do(req)
	if err != nil {
		// Cancellation propagates; other transport failures become an error
		// reply so the round surfaces the message instead of aborting opaquely.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return map[string]any{"error": "planning service unreachable: " + err.Error()}, nil
	}
	defer res.Body.Close()

	return DecodeReply(res)
}

// DecodeReply reads a planning reply tolerantly. JSON bodies decode to their
// value; a JSON content type with an unparseable body yields a parse-error
// marker carrying the raw text; anything else is returned as plain text.
// Empty bodies become an empty object.
func DecodeReply(res *http.Response) (any, error) {
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading planning reply: %w", err)
	}
	text := string(raw)
	if text == "" {
		return map[string]any{}, nil
	}

	ct := res.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return map[string]any{
				response.ParseErrorField: err.Error(),
				response.RawTextField:    text,
			}, nil
		}
		return v, nil
	}
	return text, nil
}
