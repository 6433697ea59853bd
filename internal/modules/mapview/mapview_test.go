// README: Tests for map state building.
package mapview

import (
	"math"
	"strings"
	"testing"

	"wayfarer/internal/modules/geo"
	"wayfarer/internal/types"
)

func TestBuild_Empty(t *testing.T) {
	if st := Build(nil, &types.Point{Lat: 1, Lng: 2}); st != nil {
		t.Errorf("expected nil state, got %+v", st)
	}
}

func TestBuild_SinglePoint(t *testing.T) {
	pts := []geo.GeoPoint{{Lat: 48.85, Lng: 2.35, Title: "Louvre", Description: "art & more"}}
	user := &types.Point{Lat: 48.80, Lng: 2.30}

	st := Build(pts, user)
	if st == nil {
		t.Fatal("expected a state")
	}
	if st.Center != *user || st.Zoom != defaultZoom {
		t.Errorf("view should center on the user: %+v", st)
	}
	if len(st.Markers) != 1 {
		t.Fatalf("markers = %+v", st.Markers)
	}
	if !strings.Contains(st.Markers[0].Popup, "<strong>Louvre</strong>") ||
		!strings.Contains(st.Markers[0].Popup, "art &amp; more") {
		t.Errorf("popup = %q", st.Markers[0].Popup)
	}
	if st.Path != nil {
		t.Error("single stop should have no path")
	}
	if len(st.Bounds) != 2 {
		t.Errorf("bounds should include the user, got %+v", st.Bounds)
	}
}

func TestBuild_PathAndUntitledMarker(t *testing.T) {
	pts := []geo.GeoPoint{
		{Lat: 1, Lng: 2},
		{Lat: 3, Lng: 4, Title: "Stop"},
	}

	st := Build(pts, nil)
	if st == nil {
		t.Fatal("expected a state")
	}
	if st.Center != pts[0].Point() {
		t.Errorf("without a user the first stop centers the view: %+v", st.Center)
	}
	if st.Markers[0].Title != "Location" {
		t.Errorf("untitled marker = %+v", st.Markers[0])
	}
	if len(st.Path) != 2 || st.Path[1] != [2]float64{3, 4} {
		t.Errorf("path = %+v", st.Path)
	}
	if len(st.Bounds) != 2 {
		t.Errorf("bounds = %+v", st.Bounds)
	}
}

func TestBuild_InvalidUserExcludedFromBounds(t *testing.T) {
	pts := []geo.GeoPoint{{Lat: 1, Lng: 2}}
	user := &types.Point{Lat: math.NaN(), Lng: 2}

	st := Build(pts, user)
	if len(st.Bounds) != 1 {
		t.Errorf("non-finite user should not extend bounds: %+v", st.Bounds)
	}
}
