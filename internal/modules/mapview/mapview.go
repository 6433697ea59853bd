// README: Pure builder of map-surface commands from extracted points.
package mapview

import (
	"wayfarer/internal/modules/geo"
	"wayfarer/internal/modules/render"
	"wayfarer/internal/types"
)

const defaultZoom = 13

type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
	Popup string  `json:"popup"`
}

// State is the clear-and-redraw command set the map surface applies: view
// center, user marker, point markers with popup markup, an optional polyline,
// and the fit-to-bounds rectangle including the user.
type State struct {
	Center  types.Point  `json:"center"`
	Zoom    int          `json:"zoom"`
	User    *types.Point `json:"user,omitempty"`
	Markers []Marker     `json:"markers"`
	Path    [][2]float64 `json:"path,omitempty"`
	Bounds  [][2]float64 `json:"bounds"`
}

// Build produces the map state for a round. Returns nil when there is nothing
// to draw.
func Build(points []geo.GeoPoint, user *types.Point) *State {
	if len(points) == 0 {
		return nil
	}

	// The view starts on the user; fit-to-bounds takes over once applied.
	center := points[0].Point()
	if user != nil && user.Valid() {
		center = *user
	}
	st := &State{
		Center: center,
		Zoom:   defaultZoom,
		User:   user,
	}

	for _, p := range points {
		title := p.Title
		if title == "" {
			title = "Location"
		}
		st.Markers = append(st.Markers, Marker{
			Lat:   p.Lat,
			Lng:   p.Lng,
			Title: title,
			Popup: "<strong>" + render.EscapeHTML(title) + "</strong><br>" + render.EscapeHTML(p.Description),
		})
		st.Bounds = append(st.Bounds, [2]float64{p.Lat, p.Lng})
	}

	// Polyline only makes sense for a circuit of two or more stops.
	if len(points) >= 2 {
		for _, p := range points {
			st.Path = append(st.Path, [2]float64{p.Lat, p.Lng})
		}
	}

	if user != nil && user.Valid() {
		st.Bounds = append(st.Bounds, [2]float64{user.Lat, user.Lng})
	}

	return st
}
