// README: Tests for best-effort geocoding with bias and fallback.
package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"wayfarer/internal/types"
)

// fakeNominatim serves canned results keyed by query and counts calls.
type fakeNominatim struct {
	server *httptest.Server
	calls  atomic.Int64
	// answerBiased controls whether requests carrying a viewbox get a hit.
	answerBiased bool
	// answerGlobal controls whether viewbox-free requests get a hit.
	answerGlobal bool
}

func newFakeNominatim(t *testing.T, answerBiased, answerGlobal bool) *fakeNominatim {
	t.Helper()
	f := &fakeNominatim{answerBiased: answerBiased, answerGlobal: answerGlobal}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		biased := r.URL.Query().Get("viewbox") != ""
		if (biased && f.answerBiased) || (!biased && f.answerGlobal) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"28.6562","lon":"77.2410"}]`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newTestGeocoder(f *fakeNominatim) *Geocoder {
	return NewGeocoder(NewNominatimProvider(f.server.URL, ""))
}

func TestResolve_BiasedHitStopsThere(t *testing.T) {
	f := newFakeNominatim(t, true, true)
	g := newTestGeocoder(f)
	bias := &types.Point{Lat: 28.6, Lng: 77.2}

	pt := g.Resolve(context.Background(), "Red Fort", bias)
	if pt == nil {
		t.Fatal("expected a point")
	}
	if pt.Lat != 28.6562 || pt.Lng != 77.2410 {
		t.Errorf("wrong point: %+v", pt)
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
}

func TestResolve_FallsBackToGlobal(t *testing.T) {
	f := newFakeNominatim(t, false, true)
	g := newTestGeocoder(f)
	bias := &types.Point{Lat: 28.6, Lng: 77.2}

	pt := g.Resolve(context.Background(), "Red Fort", bias)
	if pt == nil {
		t.Fatal("expected a point from the global attempt")
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestResolve_BothAttemptsEmpty(t *testing.T) {
	f := newFakeNominatim(t, false, false)
	g := newTestGeocoder(f)
	bias := &types.Point{Lat: 28.6, Lng: 77.2}

	if pt := g.Resolve(context.Background(), "Nowhere Specific", bias); pt != nil {
		t.Errorf("expected nil, got %+v", pt)
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestResolve_NoBiasSkipsBiasedAttempt(t *testing.T) {
	f := newFakeNominatim(t, true, true)
	g := newTestGeocoder(f)

	if pt := g.Resolve(context.Background(), "Red Fort", nil); pt == nil {
		t.Fatal("expected a point")
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("expected a single unbiased request, got %d", got)
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	f := newFakeNominatim(t, true, true)
	g := newTestGeocoder(f)

	if pt := g.Resolve(context.Background(), "", nil); pt != nil {
		t.Errorf("expected nil for empty query, got %+v", pt)
	}
	if got := f.calls.Load(); got != 0 {
		t.Errorf("expected no requests, got %d", got)
	}
}

func TestResolve_CachesResults(t *testing.T) {
	f := newFakeNominatim(t, true, true)
	g := newTestGeocoder(f)

	g.Resolve(context.Background(), "Red Fort", nil)
	g.Resolve(context.Background(), "Red Fort", nil)
	if got := f.calls.Load(); got != 1 {
		t.Errorf("second lookup should hit the cache, got %d requests", got)
	}
}

func TestNominatim_SendsViewboxAndHeaders(t *testing.T) {
	var gotViewbox, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotViewbox = r.URL.Query().Get("viewbox")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	p := NewNominatimProvider(server.URL, "in")
	bias := &types.Point{Lat: 28.6, Lng: 77.2}
	if _, err := p.Geocode(context.Background(), "Red Fort", bias); err != nil {
		t.Fatal(err)
	}

	if gotViewbox != "76.95,28.85,77.45,28.35" {
		t.Errorf("viewbox = %q", gotViewbox)
	}
	if gotUA == "" {
		t.Error("missing User-Agent header")
	}
}
