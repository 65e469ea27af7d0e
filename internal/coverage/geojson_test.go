// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestFeatureForSite_CircularCamera(t *testing.T) {
	t.Parallel()

	site := Site{
		ID:        7,
		Name:      "Loading Dock",
		Latitude:  floatPtr(40.0),
		Longitude: floatPtr(-74.0),
		RadiusM:   100,
	}

	f := FeatureForSite(site)
	if f == nil {
		t.Fatal("expected a feature, got nil")
	}

	if f.Type != "Feature" {
		t.Errorf("feature type = %q, want %q", f.Type, "Feature")
	}
	if f.Geometry.Type != "Polygon" {
		t.Errorf("geometry type = %q, want %q", f.Geometry.Type, "Polygon")
	}
	if f.Properties.CameraID != 7 || f.Properties.CameraName != "Loading Dock" {
		t.Errorf("properties do not carry the camera identity: %+v", f.Properties)
	}
	if f.Properties.AreaType != AreaTypeCircular {
		t.Errorf("area type = %q, want circular", f.Properties.AreaType)
	}
	if f.Properties.FieldOfView != DefaultFieldOfViewDeg {
		t.Errorf("field of view = %v, want default %v", f.Properties.FieldOfView, DefaultFieldOfViewDeg)
	}

	if len(f.Geometry.Coordinates) != 1 {
		t.Fatalf("expected a single ring, got %d", len(f.Geometry.Coordinates))
	}
	ring := f.Geometry.Coordinates[0]
	if len(ring) != 37 {
		t.Errorf("ring length = %d, want 37", len(ring))
	}

	// Ring vertices are [lat, lon] pairs for the map frontend.
	for i, pair := range ring {
		if len(pair) != 2 {
			t.Fatalf("vertex %d has %d components, want 2", i, len(pair))
		}
		if pair[0] < 39 || pair[0] > 41 {
			t.Errorf("vertex %d first component %v is not a latitude near 40", i, pair[0])
		}
		if pair[1] > -73 || pair[1] < -75 {
			t.Errorf("vertex %d second component %v is not a longitude near -74", i, pair[1])
		}
	}
}

func TestFeatureForSite_DirectionalCamera(t *testing.T) {
	t.Parallel()

	site := Site{
		ID:             3,
		Name:           "East Corridor",
		Latitude:       floatPtr(40.0),
		Longitude:      floatPtr(-74.0),
		RadiusM:        60,
		FieldOfViewDeg: 90,
		DirectionDeg:   90,
	}

	f := FeatureForSite(site)
	if f == nil {
		t.Fatal("expected a feature, got nil")
	}
	if f.Properties.AreaType != AreaTypeDirectional {
		t.Errorf("area type = %q, want directional", f.Properties.AreaType)
	}
	if f.Properties.Direction != 90 {
		t.Errorf("direction = %v, want 90", f.Properties.Direction)
	}
	if got := len(f.Geometry.Coordinates[0]); got != 93 {
		t.Errorf("sector ring length = %d, want 93", got)
	}
}

func TestFeatureForSite_SkipsBadCameras(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		site Site
	}{
		{"unpositioned", Site{ID: 1, Name: "Spare", RadiusM: 100}},
		{
			"invalid direction",
			Site{
				ID: 2, Name: "Misconfigured",
				Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0),
				RadiusM: 100, FieldOfViewDeg: 90, DirectionDeg: 400,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f := FeatureForSite(tt.site); f != nil {
				t.Errorf("expected nil feature, got %+v", f)
			}
		})
	}
}

func TestCollectionForSites(t *testing.T) {
	t.Parallel()

	sites := []Site{
		{ID: 1, Name: "Gate", Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 100},
		{ID: 2, Name: "Spare"}, // unpositioned, skipped
		{ID: 3, Name: "Yard", Latitude: floatPtr(40.001), Longitude: floatPtr(-74.001), RadiusM: 50, FieldOfViewDeg: 120, DirectionDeg: 180},
	}

	fc := CollectionForSites(sites)
	if fc.Type != "FeatureCollection" {
		t.Errorf("collection type = %q, want %q", fc.Type, "FeatureCollection")
	}
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	if fc.Features[0].Properties.CameraID != 1 || fc.Features[1].Properties.CameraID != 3 {
		t.Errorf("unexpected feature order or membership: %+v", fc.Features)
	}
}

func TestCollectionForSites_EmptyMarshalsWithFeaturesArray(t *testing.T) {
	t.Parallel()

	fc := CollectionForSites(nil)

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"type":"FeatureCollection","features":[]}`
	if string(data) != want {
		t.Errorf("empty collection JSON = %s, want %s", data, want)
	}
}
