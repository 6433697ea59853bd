// README: Location extraction from FinalData; sync strategies, then geocoding.
package geo

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"wayfarer/internal/modules/response"
	"wayfarer/internal/types"
)

// geocodeDelay spaces consecutive lookups to respect the upstream rate limit.
const geocodeDelay = 300 * time.Millisecond

var boldSpan = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Extractor turns FinalData into an ordered list of mappable points. Direct
// coordinates are taken synchronously; place names fall back to sequential,
// rate-limited geocoding.
type Extractor struct {
	geocoder *Geocoder
	delay    time.Duration
}

func NewExtractor(geocoder *Geocoder) *Extractor {
	return &Extractor{geocoder: geocoder, delay: geocodeDelay}
}

// syncStrategies are tried in order; the first non-empty result wins.
var syncStrategies = []func(response.FinalData) []GeoPoint{
	extractDirectLocations,
	extractFromDays,
	extractFromItinerarySteps,
}

// ExtractSync pulls points directly embedded in the data. No network. Points
// with missing or non-finite coordinates are silently dropped.
func (e *Extractor) ExtractSync(data response.FinalData) []GeoPoint {
	for _, strategy := range syncStrategies {
		if pts := strategy(data); len(pts) > 0 {
			return pts
		}
	}
	return nil
}

// ExtractAsync geocodes place names when nothing was embedded: per itinerary
// step for structured data, per bold span for plain text. Calls are strictly
// sequential with a fixed delay; result order follows input order. The only
// error returned is context cancellation.
func (e *Extractor) ExtractAsync(ctx context.Context, data response.FinalData, bias *types.Point) ([]GeoPoint, error) {
	if steps, ok := data.Seq("itinerary"); ok {
		return e.geocodeItinerary(ctx, steps, bias)
	}
	if data.IsText() {
		return e.geocodeTextSpans(ctx, data.Text, bias)
	}
	return nil, nil
}

func (e *Extractor) geocodeItinerary(ctx context.Context, steps []any, bias *types.Point) ([]GeoPoint, error) {
	var out []GeoPoint
	for i, s := range steps {
		step, ok := s.(map[string]any)
		if !ok {
			continue
		}
		label := firstString(step, "place", "title", "name")
		if label == "" {
			continue
		}
		if pt := e.geocoder.Resolve(ctx, label, bias); pt != nil {
			out = append(out, GeoPoint{
				Lat:         pt.Lat,
				Lng:         pt.Lng,
				Title:       label,
				Description: firstString(step, "reason", "description"),
			})
		}
		if err := e.pause(ctx, i == len(steps)-1); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (e *Extractor) geocodeTextSpans(ctx context.Context, text string, bias *types.Point) ([]GeoPoint, error) {
	names := scanBoldSpans(text)
	var out []GeoPoint
	for i, name := range names {
		if pt := e.geocoder.Resolve(ctx, name, bias); pt != nil {
			out = append(out, GeoPoint{Lat: pt.Lat, Lng: pt.Lng, Title: name})
		}
		if err := e.pause(ctx, i == len(names)-1); err != nil {
			return out, err
		}
	}
	return out, nil
}

// pause waits the rate-limit delay between lookups, honouring cancellation so
// a new round can stop an in-flight extraction.
func (e *Extractor) pause(ctx context.Context, last bool) error {
	if last {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.delay):
		return nil
	}
}

// scanBoldSpans collects **emphasized** spans, deduplicated by exact text in
// first-seen order.
func scanBoldSpans(text string) []string {
	var names []string
	for _, m := range boldSpan.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			names = append(names, name)
		}
	}
	return lo.Uniq(names)
}

func extractDirectLocations(data response.FinalData) []GeoPoint {
	locs, ok := data.Seq("locations")
	if !ok {
		return nil
	}
	var out []GeoPoint
	for _, l := range locs {
		m, ok := l.(map[string]any)
		if !ok {
			continue
		}
		lat, okLat := numField(m, "lat")
		lng, okLng := numField(m, "lng")
		if !okLat || !okLng {
			continue
		}
		pt := GeoPoint{
			Lat:         lat,
			Lng:         lng,
			Title:       firstString(m, "title", "name", "place"),
			Description: firstString(m, "description", "reason"),
		}
		if pt.Point().Valid() {
			out = append(out, pt)
		}
	}
	return out
}

func extractFromDays(data response.FinalData) []GeoPoint {
	days, ok := data.Seq("days")
	if !ok {
		return nil
	}
	var out []GeoPoint
	for _, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			continue
		}
		acts, _ := day["activities"].([]any)
		for _, a := range acts {
			step, ok := a.(map[string]any)
			if !ok {
				continue
			}
			if pt, ok := stepPoint(step); ok {
				out = append(out, pt)
			}
		}
	}
	return out
}

func extractFromItinerarySteps(data response.FinalData) []GeoPoint {
	steps, ok := data.Seq("itinerary")
	if !ok {
		return nil
	}
	var out []GeoPoint
	for _, s := range steps {
		step, ok := s.(map[string]any)
		if !ok {
			continue
		}
		if pt, ok := stepPoint(step); ok {
			out = append(out, pt)
		}
	}
	return out
}

// stepPoint reads coordinates from a step: direct numeric lat/lng fields, or a
// two-element [lat, lng] pair.
func stepPoint(step map[string]any) (GeoPoint, bool) {
	lat, okLat := numField(step, "lat")
	lng, okLng := numField(step, "lng")

	if !okLat || !okLng {
		pair, ok := step["coordinates"].([]any)
		if !ok || len(pair) != 2 {
			return GeoPoint{}, false
		}
		if lat, okLat = pair[0].(float64); !okLat {
			return GeoPoint{}, false
		}
		if lng, okLng = pair[1].(float64); !okLng {
			return GeoPoint{}, false
		}
	}

	pt := GeoPoint{
		Lat:         lat,
		Lng:         lng,
		Title:       firstString(step, "place", "title"),
		Description: firstString(step, "reason", "description"),
	}
	if !pt.Point().Valid() {
		return GeoPoint{}, false
	}
	return pt, true
}

func numField(m map[string]any, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
