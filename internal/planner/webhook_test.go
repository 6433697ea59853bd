// README: Tests for webhook planning calls and tolerant reply decoding.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wayfarer/internal/modules/response"
)

func replyFrom(t *testing.T, contentType, body string) *http.Response {
	t.Helper()
	res := &http.Response{
		Header: http.Header{},
		Body:   io.NopCloser(strings.NewReader(body)),
	}
	if contentType != "" {
		res.Header.Set("Content-Type", contentType)
	}
	return res
}

func TestDecodeReply_JSONObject(t *testing.T) {
	v, err := DecodeReply(replyFrom(t, "application/json", `{"itinerary":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	if _, ok := obj["itinerary"]; !ok {
		t.Error("itinerary field lost")
	}
}

func TestDecodeReply_EmptyBody(t *testing.T) {
	v, err := DecodeReply(replyFrom(t, "application/json", ""))
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := v.(map[string]any)
	if !ok || len(obj) != 0 {
		t.Errorf("expected empty object, got %#v", v)
	}
}

func TestDecodeReply_BrokenJSONGetsMarker(t *testing.T) {
	v, err := DecodeReply(replyFrom(t, "application/json; charset=utf-8", "{oops"))
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected marker object, got %T", v)
	}
	if _, ok := obj[response.ParseErrorField]; !ok {
		t.Error("parse-error marker missing")
	}
	if obj[response.RawTextField] != "{oops" {
		t.Errorf("raw text = %v", obj[response.RawTextField])
	}
}

func TestDecodeReply_PlainText(t *testing.T) {
	v, err := DecodeReply(replyFrom(t, "text/plain", "walk around the lake"))
	if err != nil {
		t.Fatal(err)
	}
	if v != "walk around the lake" {
		t.Errorf("got %#v", v)
	}
}

func TestWebhookPlanner_PostsPayloadPerMode(t *testing.T) {
	var gotBody Payload
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"days":[]}`))
	}))
	defer server.Close()

	p := NewWebhookPlanner(server.URL+"/dayout", server.URL+"/trip")
	payload := Payload{Mode: ModeTripPlanner, UserPrompt: "a week in Naples"}

	v, err := p.Plan(context.Background(), payload)
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/trip" {
		t.Errorf("wrong webhook for mode: %q", gotPath)
	}
	if gotBody.UserPrompt != "a week in Naples" {
		t.Errorf("payload lost: %+v", gotBody)
	}
	if _, ok := v.(map[string]any); !ok {
		t.Errorf("expected decoded object, got %T", v)
	}
}

func TestWebhookPlanner_UnknownModeFallsBackToDayOut(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	p := NewWebhookPlanner(server.URL+"/dayout", server.URL+"/trip")
	if _, err := p.Plan(context.Background(), Payload{Mode: "mystery"}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/dayout" {
		t.Errorf("expected day-out fallback, got %q", gotPath)
	}
}

func TestWebhookPlanner_TransportFailureBecomesErrorReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	p := NewWebhookPlanner(server.URL, server.URL)
	v, err := p.Plan(context.Background(), Payload{Mode: ModeDayOut})
	if err != nil {
		t.Fatalf("transport failure should not be a Go error, got %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected error reply, got %T", v)
	}
	msg, _ := obj["error"].(string)
	if !strings.Contains(msg, "planning service unreachable") {
		t.Errorf("error message = %q", msg)
	}
}

func TestWebhookPlanner_CancellationStaysAnError(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	p := NewWebhookPlanner(server.URL, server.URL)
	if _, err := p.Plan(ctx, Payload{Mode: ModeDayOut}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWebhookPlanner_NoURLConfigured(t *testing.T) {
	p := NewWebhookPlanner("", "")
	if _, err := p.Plan(context.Background(), Payload{Mode: ModeDayOut}); err == nil {
		t.Error("expected an error with no webhook configured")
	}
}

func TestPayloadRefine(t *testing.T) {
	p := Payload{UserPrompt: "original"}
	next := p.Refine("make it vegetarian")

	if p.UserPrompt != "original" {
		t.Error("original payload mutated")
	}
	if !strings.Contains(next.UserPrompt, "original") ||
		!strings.Contains(next.UserPrompt, "make it vegetarian") {
		t.Errorf("refined prompt = %q", next.UserPrompt)
	}
}

func TestShuffledOptions(t *testing.T) {
	got := ShuffledOptions(AreaTypeOptions)
	if len(got) != len(AreaTypeOptions) {
		t.Fatalf("length changed: %d", len(got))
	}
	seen := make(map[string]bool, len(got))
	for _, v := range got {
		seen[v] = true
	}
	for _, v := range AreaTypeOptions {
		if !seen[v] {
			t.Errorf("option %q lost in shuffle", v)
		}
	}
}
