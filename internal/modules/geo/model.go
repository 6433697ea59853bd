// README: Geographic point extracted from a plan, ready for the map surface.
package geo

import "wayfarer/internal/types"

type GeoPoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

func (p GeoPoint) Point() types.Point {
	return types.Point{Lat: p.Lat, Lng: p.Lng}
}
