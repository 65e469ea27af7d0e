// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import (
	"math"
	"testing"
)

func TestDistanceM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantM                  float64
		toleranceM             float64
	}{
		{"same point", 40.0, -74.0, 40.0, -74.0, 0, 1e-6},
		// 0.0018° of longitude at 40°N is roughly 150m.
		{"short east-west hop", 40.0, -74.0, 40.0, -74.0018, 153.6, 5},
		// One degree of latitude is ~111km on the WGS84 sphere.
		{"one degree of latitude", 40.0, -74.0, 41.0, -74.0, 111319, 500},
		{"antimeridian neighbors", 0.0, 179.999, 0.0, -179.999, 40000, 25000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceM(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantM) > tt.toleranceM {
				t.Errorf("DistanceM() = %.3f, want %.3f ±%.3f", got, tt.wantM, tt.toleranceM)
			}
		})
	}
}

func TestFindOverlaps_NeighboringCameras(t *testing.T) {
	t.Parallel()

	sites := []Site{
		{ID: 1, Name: "Front Gate", Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 100},
		{ID: 2, Name: "Parking Lot", Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0018), RadiusM: 100},
		{ID: 3, Name: "North Fence", Latitude: floatPtr(41.0), Longitude: floatPtr(-74.0), RadiusM: 50},
	}

	overlaps := FindOverlaps(sites)
	if len(overlaps) != 1 {
		t.Fatalf("expected exactly 1 overlapping pair, got %d: %+v", len(overlaps), overlaps)
	}

	o := overlaps[0]
	if o.Camera1ID != 1 || o.Camera2ID != 2 {
		t.Errorf("expected pair (1,2), got (%d,%d)", o.Camera1ID, o.Camera2ID)
	}
	if math.Abs(o.DistanceM-153.6) > 5 {
		t.Errorf("distance = %.3f, want ~153.6m", o.DistanceM)
	}

	wantOverlapDist := 200 - o.DistanceM
	if math.Abs(o.OverlapDistanceM-wantOverlapDist) > 1e-9 {
		t.Errorf("overlap distance = %.3f, want %.3f", o.OverlapDistanceM, wantOverlapDist)
	}

	wantPct := wantOverlapDist / 200 * 100
	if math.Abs(o.OverlapPercentage-wantPct) > 1e-9 {
		t.Errorf("overlap percentage = %.3f, want %.3f", o.OverlapPercentage, wantPct)
	}
}

func TestFindOverlaps_Symmetry(t *testing.T) {
	t.Parallel()

	a := Site{ID: 10, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 120}
	b := Site{ID: 20, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.001), RadiusM: 80}

	forward := FindOverlaps([]Site{a, b})
	reverse := FindOverlaps([]Site{b, a})

	if len(forward) != 1 || len(reverse) != 1 {
		t.Fatalf("expected 1 overlap each way, got %d and %d", len(forward), len(reverse))
	}

	f, r := forward[0], reverse[0]
	if f.Camera1ID != r.Camera2ID || f.Camera2ID != r.Camera1ID {
		t.Errorf("IDs not swapped: forward=(%d,%d) reverse=(%d,%d)",
			f.Camera1ID, f.Camera2ID, r.Camera1ID, r.Camera2ID)
	}
	if f.DistanceM != r.DistanceM || f.OverlapDistanceM != r.OverlapDistanceM || f.OverlapPercentage != r.OverlapPercentage {
		t.Errorf("metrics differ by input order: forward=%+v reverse=%+v", f, r)
	}
}

func TestFindOverlaps_TangentCirclesExcluded(t *testing.T) {
	t.Parallel()

	a := Site{ID: 1, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0)}
	b := Site{ID: 2, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.002)}

	// Split the exact pair distance across the two radii so that
	// r1+r2 == distance bit-for-bit. Tangency is not overlap.
	d := DistanceM(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
	a.RadiusM = d / 2
	b.RadiusM = d / 2

	if got := FindOverlaps([]Site{a, b}); len(got) != 0 {
		t.Errorf("tangent circles must not overlap, got %+v", got)
	}

	// Any closer and they do.
	a.RadiusM = d/2 + 0.001
	if got := FindOverlaps([]Site{a, b}); len(got) != 1 {
		t.Errorf("expected overlap once radii sum exceeds distance, got %+v", got)
	}
}

func TestFindOverlaps_SkipsUnpositionedCameras(t *testing.T) {
	t.Parallel()

	sites := []Site{
		{ID: 1, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 100},
		{ID: 2, RadiusM: 100},                        // never placed on the map
		{ID: 3, Latitude: floatPtr(40.0), RadiusM: 100}, // half-positioned
	}

	if got := FindOverlaps(sites); len(got) != 0 {
		t.Errorf("unpositioned cameras must be skipped, got %+v", got)
	}
}

func TestFindOverlaps_DefaultRadiusApplied(t *testing.T) {
	t.Parallel()

	// 0.0005° of longitude at the equator is ~55m; with the 50m default
	// radius on both cameras the circles intersect.
	sites := []Site{
		{ID: 1, Latitude: floatPtr(0.0), Longitude: floatPtr(0.0)},
		{ID: 2, Latitude: floatPtr(0.0), Longitude: floatPtr(0.0005)},
	}

	got := FindOverlaps(sites)
	if len(got) != 1 {
		t.Fatalf("expected overlap with default radii, got %+v", got)
	}
	if got[0].OverlapPercentage <= 0 || got[0].OverlapPercentage > 100 {
		t.Errorf("overlap percentage out of range: %v", got[0].OverlapPercentage)
	}
}

func TestFindOverlaps_CoincidentCamerasCapAtHundredPercent(t *testing.T) {
	t.Parallel()

	sites := []Site{
		{ID: 1, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 100},
		{ID: 2, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 30},
	}

	got := FindOverlaps(sites)
	if len(got) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(got))
	}
	if got[0].OverlapPercentage != 100 {
		t.Errorf("fully contained circle should cap at 100%%, got %v", got[0].OverlapPercentage)
	}
	if got[0].DistanceM != 0 {
		t.Errorf("coincident centers should be 0m apart, got %v", got[0].DistanceM)
	}
}

func TestFindOverlaps_EmptyAndSingle(t *testing.T) {
	t.Parallel()

	if got := FindOverlaps(nil); len(got) != 0 {
		t.Errorf("empty input must yield no overlaps, got %+v", got)
	}

	one := []Site{{ID: 1, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 100}}
	if got := FindOverlaps(one); len(got) != 0 {
		t.Errorf("single camera must yield no overlaps, got %+v", got)
	}
}

func TestFindOverlaps_GrowingRadiusPreservesOverlap(t *testing.T) {
	t.Parallel()

	base := []Site{
		{ID: 1, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0), RadiusM: 100},
		{ID: 2, Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0018), RadiusM: 100},
	}

	before := FindOverlaps(base)
	if len(before) != 1 {
		t.Fatalf("precondition failed: expected 1 overlap, got %d", len(before))
	}

	grown := []Site{base[0], base[1]}
	grown[1].RadiusM = 250

	after := FindOverlaps(grown)
	if len(after) != 1 {
		t.Fatalf("growing a radius must not remove an overlap, got %d", len(after))
	}
	if after[0].OverlapDistanceM <= before[0].OverlapDistanceM {
		t.Errorf("overlap distance should grow with the radius: before=%.3f after=%.3f",
			before[0].OverlapDistanceM, after[0].OverlapDistanceM)
	}
}
