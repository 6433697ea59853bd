// README: Best-effort place-name resolution with bias, fallback, and caching.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"wayfarer/internal/types"
)

// biasBoxDegrees is the half-size of the bounding box drawn around the bias
// point for the first search attempt.
const biasBoxDegrees = 0.25

// Provider performs a single geocoding attempt. A nil bias means global search.
type Provider interface {
	Geocode(ctx context.Context, query string, bias *types.Point) (*types.Point, error)
}

// Geocoder resolves free-text place names to coordinates. Resolution is
// best-effort: a failed or empty lookup yields nil, never an error, so callers
// simply skip the point.
type Geocoder struct {
	provider Provider
	cache    *gocache.Cache
}

func NewGeocoder(provider Provider) *Geocoder {
	return &Geocoder{
		provider: provider,
		cache:    gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// Resolve tries a biased search first (when a bias is given), then an unbiased
// global search. Both attempts failing means "no point for this name".
func (g *Geocoder) Resolve(ctx context.Context, query string, bias *types.Point) *types.Point {
	if query == "" {
		return nil
	}

	key := cacheKey(query, bias)
	if cached, ok := g.cache.Get(key); ok {
		return cached.(*types.Point)
	}

	if bias != nil && bias.Valid() {
		if pt, err := g.provider.Geocode(ctx, query, bias); err != nil {
			log.Printf("geocode (biased) failed for %q: %v", query, err)
		} else if pt != nil {
			g.cache.SetDefault(key, pt)
			return pt
		}
	}

	pt, err := g.provider.Geocode(ctx, query, nil)
	if err != nil {
		log.Printf("geocode (global) failed for %q: %v", query, err)
		return nil
	}
	if pt != nil {
		g.cache.SetDefault(key, pt)
	}
	return pt
}

func cacheKey(query string, bias *types.Point) string {
	if bias == nil {
		return query
	}
	return fmt.Sprintf("%s@%.2f,%.2f", query, bias.Lat, bias.Lng)
}

// NominatimProvider queries an OpenStreetMap Nominatim endpoint. Candidates
// arrive as an array with string lat/lon fields; we request a single best
// match and honour the service's User-Agent requirement.
type NominatimProvider struct {
	BaseURL     string
	CountryHint string
	Client      *http.Client
	UserAgent   string
}

func NewNominatimProvider(baseURL, countryHint string) *NominatimProvider {
	return &NominatimProvider{
		BaseURL:     baseURL,
		CountryHint: countryHint,
		Client:      &http.Client{Timeout: 10 * time.Second},
		UserAgent:   "wayfarer/1.0",
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (p *NominatimProvider) Geocode(ctx context.Context, query string, bias *types.Point) (*types.Point, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "0")
	params.Set("limit", "1")
	if p.CountryHint != "" {
		params.Set("countrycodes", p.CountryHint)
	}
	if bias != nil {
		params.Set("viewbox", fmt.Sprintf("%g,%g,%g,%g",
			bias.Lng-biasBoxDegrees, bias.Lat+biasBoxDegrees,
			bias.Lng+biasBoxDegrees, bias.Lat-biasBoxDegrees))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.UserAgent)

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %s", res.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("nominatim returned malformed coordinates for %q", query)
	}
	pt := types.Point{Lat: lat, Lng: lng}
	if !pt.Valid() {
		return nil, nil
	}
	return &pt, nil
}
