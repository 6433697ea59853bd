// README: Google Maps geocoding provider, used when an API key is configured.
package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"wayfarer/internal/types"
)

// GoogleProvider resolves place names through the Google Geocoding API.
// Bias is expressed as a bounds rectangle around the bias point, matching the
// viewbox the Nominatim provider uses.
type GoogleProvider struct {
	client *maps.Client
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

func (p *GoogleProvider) Geocode(ctx context.Context, query string, bias *types.Point) (*types.Point, error) {
	req := &maps.GeocodingRequest{Address: query}
	if bias != nil {
		req.Bounds = &maps.LatLngBounds{
			NorthEast: maps.LatLng{Lat: bias.Lat + biasBoxDegrees, Lng: bias.Lng + biasBoxDegrees},
			SouthWest: maps.LatLng{Lat: bias.Lat - biasBoxDegrees, Lng: bias.Lng - biasBoxDegrees},
		}
	}

	results, err := p.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	loc := results[0].Geometry.Location
	pt := types.Point{Lat: loc.Lat, Lng: loc.Lng}
	if !pt.Valid() {
		return nil, nil
	}
	return &pt, nil
}
