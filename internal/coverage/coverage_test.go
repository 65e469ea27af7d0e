// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

// ===================================================================================================
// Circular Coverage Tests
// ===================================================================================================

func TestCircularCoverage_VertexCountAndClosure(t *testing.T) {
	t.Parallel()

	points, err := CircularCoverage(40.0, -74.0, 100.0, 36)
	if err != nil {
		t.Fatalf("CircularCoverage() returned unexpected error: %v", err)
	}

	if len(points) != 37 {
		t.Errorf("expected 37 vertices for precision=36, got %d", len(points))
	}

	first, last := points[0], points[len(points)-1]
	if math.Abs(first.Lat-last.Lat) > 1e-9 || math.Abs(first.Lon-last.Lon) > 1e-9 {
		t.Errorf("ring is not closed: first=%v last=%v", first, last)
	}
}

func TestCircularCoverage_AllPointsOnRadius(t *testing.T) {
	t.Parallel()

	const (
		lat     = 40.0
		lon     = -74.0
		radiusM = 100.0
	)

	points, err := CircularCoverage(lat, lon, radiusM, 36)
	if err != nil {
		t.Fatalf("CircularCoverage() returned unexpected error: %v", err)
	}

	// The flat-earth parameterization keeps every vertex within ~1% of
	// the requested radius at mid-latitudes.
	for i, p := range points {
		d := DistanceM(lat, lon, p.Lat, p.Lon)
		if math.Abs(d-radiusM) > radiusM*0.01 {
			t.Errorf("vertex %d is %.3fm from center, want %.0fm ±1%%", i, d, radiusM)
		}
	}
}

func TestCircularCoverage_PrecisionControlsSampling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		precision int
		wantLen   int
	}{
		{"default precision", 36, 37},
		{"coarse ring", 12, 13},
		{"fine ring", 72, 73},
		{"zero falls back to default", 0, 37},
		{"negative falls back to default", -5, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := CircularCoverage(10.0, 20.0, 50.0, tt.precision)
			if err != nil {
				t.Fatalf("CircularCoverage() returned unexpected error: %v", err)
			}
			if len(points) != tt.wantLen {
				t.Errorf("expected %d vertices, got %d", tt.wantLen, len(points))
			}
		})
	}
}

func TestCircularCoverage_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lat     float64
		lon     float64
		radiusM float64
		wantErr error
	}{
		{"latitude above range", 91, 0, 50, ErrInvalidCoordinate},
		{"latitude below range", -91, 0, 50, ErrInvalidCoordinate},
		{"longitude above range", 0, 181, 50, ErrInvalidCoordinate},
		{"longitude below range", 0, -181, 50, ErrInvalidCoordinate},
		{"negative radius", 0, 0, -5, ErrInvalidRadius},
		{"zero radius", 0, 0, 0, ErrInvalidRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CircularCoverage(tt.lat, tt.lon, tt.radiusM, 36)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCircularCoverage_BoundaryCoordinatesAccepted(t *testing.T) {
	t.Parallel()

	// Range bounds are inclusive.
	corners := []Point{
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
		{Lat: 0, Lon: 0},
	}
	for _, c := range corners {
		if _, err := CircularCoverage(c.Lat, c.Lon, 25, 36); err != nil {
			t.Errorf("CircularCoverage(%v, %v) rejected valid boundary coordinates: %v", c.Lat, c.Lon, err)
		}
	}
}

// ===================================================================================================
// Directional Coverage Tests
// ===================================================================================================

func TestDirectionalCoverage_VertexCountAndClosure(t *testing.T) {
	t.Parallel()

	const (
		lat = 40.0
		lon = -74.0
	)

	points, err := DirectionalCoverage(lat, lon, 100.0, 45.0, 90.0, 1.0)
	if err != nil {
		t.Fatalf("DirectionalCoverage() returned unexpected error: %v", err)
	}

	// 90° arc at 1° steps: 90 segments, 91 arc points, plus the center
	// at both ends of the slice.
	if len(points) != 93 {
		t.Errorf("expected 93 vertices for fov=90 precision=1, got %d", len(points))
	}

	center := Point{Lat: lat, Lon: lon}
	if points[0] != center {
		t.Errorf("sector must start at the camera center, got %v", points[0])
	}
	if points[len(points)-1] != center {
		t.Errorf("sector must end at the camera center, got %v", points[len(points)-1])
	}
}

func TestDirectionalCoverage_ArcSegmentTruncation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		fovDeg       float64
		precisionDeg float64
		wantLen      int
	}{
		// total = int(fov/precision) + 3 (arc points + two centers),
		// with the segment count floored at 1.
		{"90 degrees at 1 degree steps", 90, 1, 93},
		{"fractional fov truncates", 45.5, 1, 48},
		{"coarse precision", 90, 10, 12},
		{"fov below one step floors to one segment", 0.5, 1, 4},
		{"full 360 sector", 360, 1, 363},
		{"non-default precision falls back when zero", 60, 0, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := DirectionalCoverage(40.0, -74.0, 100.0, 0.0, tt.fovDeg, tt.precisionDeg)
			if err != nil {
				t.Fatalf("DirectionalCoverage() returned unexpected error: %v", err)
			}
			if len(points) != tt.wantLen {
				t.Errorf("expected %d vertices, got %d", tt.wantLen, len(points))
			}
		})
	}
}

func TestDirectionalCoverage_ArcPointsOnRadius(t *testing.T) {
	t.Parallel()

	const (
		lat     = 40.0
		lon     = -74.0
		radiusM = 100.0
	)

	points, err := DirectionalCoverage(lat, lon, radiusM, 180.0, 120.0, 1.0)
	if err != nil {
		t.Fatalf("DirectionalCoverage() returned unexpected error: %v", err)
	}

	// Skip the center vertices at both ends; every arc point sits on
	// the coverage radius.
	for i, p := range points[1 : len(points)-1] {
		d := DistanceM(lat, lon, p.Lat, p.Lon)
		if math.Abs(d-radiusM) > radiusM*0.01 {
			t.Errorf("arc vertex %d is %.3fm from center, want %.0fm ±1%%", i, d, radiusM)
		}
	}
}

func TestDirectionalCoverage_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		lat, lon     float64
		radiusM      float64
		directionDeg float64
		fovDeg       float64
		wantErr      error
	}{
		{"invalid latitude", 91, 0, 50, 0, 90, ErrInvalidCoordinate},
		{"invalid longitude", 0, -200, 50, 0, 90, ErrInvalidCoordinate},
		{"zero radius", 0, 0, 0, 0, 90, ErrInvalidRadius},
		{"zero field of view", 0, 0, 50, 0, 0, ErrInvalidFieldOfView},
		{"field of view above 360", 0, 0, 50, 0, 361, ErrInvalidFieldOfView},
		{"negative direction", 0, 0, 50, -1, 90, ErrInvalidDirection},
		{"direction of exactly 360", 0, 0, 50, 360, 90, ErrInvalidDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DirectionalCoverage(tt.lat, tt.lon, tt.radiusM, tt.directionDeg, tt.fovDeg, 1.0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDirectionalCoverage_FullFieldOfViewAccepted(t *testing.T) {
	t.Parallel()

	// The generator itself accepts exactly 360; dispatching full-circle
	// cameras to CircularCoverage is the adapter's policy.
	if _, err := DirectionalCoverage(0, 0, 50, 0, 360, 1.0); err != nil {
		t.Errorf("fov=360 should be accepted by the sector generator, got %v", err)
	}
}

// ===================================================================================================
// Area Estimate Tests
// ===================================================================================================

func TestAreaSize_DegeneratePolygons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vertices []Point
	}{
		{"empty", nil},
		{"single vertex", []Point{{Lat: 0, Lon: 0}}},
		{"two vertices", []Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AreaSize(tt.vertices); got != 0.0 {
				t.Errorf("expected 0.0 for degenerate polygon, got %v", got)
			}
		})
	}
}

func TestAreaSize_CircleApproximatesPiRSquared(t *testing.T) {
	t.Parallel()

	const radiusM = 100.0
	points, err := CircularCoverage(40.0, -74.0, radiusM, 72)
	if err != nil {
		t.Fatalf("CircularCoverage() returned unexpected error: %v", err)
	}

	got := AreaSize(points)
	want := math.Pi * radiusM * radiusM
	if math.Abs(got-want) > want*0.05 {
		t.Errorf("circle area %.1f m² differs from πr²=%.1f m² by more than 5%%", got, want)
	}
}

func TestAreaSize_SectorIsFractionOfCircle(t *testing.T) {
	t.Parallel()

	const radiusM = 80.0
	sector, err := DirectionalCoverage(40.0, -74.0, radiusM, 90.0, 90.0, 1.0)
	if err != nil {
		t.Fatalf("DirectionalCoverage() returned unexpected error: %v", err)
	}

	got := AreaSize(sector)
	want := math.Pi * radiusM * radiusM / 4 // quarter circle
	if math.Abs(got-want) > want*0.05 {
		t.Errorf("90° sector area %.1f m² differs from πr²/4=%.1f m² by more than 5%%", got, want)
	}
}

// ===================================================================================================
// Site / Area Tests
// ===================================================================================================

func TestSite_Defaults(t *testing.T) {
	t.Parallel()

	var site Site
	if got := site.Radius(); got != DefaultRadiusM {
		t.Errorf("Radius() default = %v, want %v", got, DefaultRadiusM)
	}
	if got := site.FieldOfView(); got != DefaultFieldOfViewDeg {
		t.Errorf("FieldOfView() default = %v, want %v", got, DefaultFieldOfViewDeg)
	}
	if site.Positioned() {
		t.Error("zero-value site must not report as positioned")
	}

	site.RadiusM = 120
	site.FieldOfViewDeg = 90
	if got := site.Radius(); got != 120 {
		t.Errorf("Radius() = %v, want 120", got)
	}
	if got := site.FieldOfView(); got != 90 {
		t.Errorf("FieldOfView() = %v, want 90", got)
	}
}

func TestAreaForSite_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		site         Site
		wantNil      bool
		wantType     string
		wantVertices int
	}{
		{
			name:    "unpositioned camera",
			site:    Site{ID: 1, RadiusM: 100},
			wantNil: true,
		},
		{
			name: "omnidirectional camera",
			site: Site{
				ID:       2,
				Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0),
				RadiusM: 100, FieldOfViewDeg: 360,
			},
			wantType:     AreaTypeCircular,
			wantVertices: 37,
		},
		{
			name: "field of view defaults to full circle",
			site: Site{
				ID:       3,
				Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0),
			},
			wantType:     AreaTypeCircular,
			wantVertices: 37,
		},
		{
			name: "directional camera",
			site: Site{
				ID:       4,
				Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0),
				RadiusM: 100, FieldOfViewDeg: 90, DirectionDeg: 45,
			},
			wantType:     AreaTypeDirectional,
			wantVertices: 93,
		},
		{
			name: "invalid direction degrades to nil",
			site: Site{
				ID:       5,
				Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0),
				RadiusM: 100, FieldOfViewDeg: 90, DirectionDeg: 400,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area := AreaForSite(tt.site)
			if tt.wantNil {
				if area != nil {
					t.Fatalf("expected nil area, got %+v", area)
				}
				return
			}
			if area == nil {
				t.Fatal("expected an area, got nil")
			}
			if area.AreaType != tt.wantType {
				t.Errorf("area type = %q, want %q", area.AreaType, tt.wantType)
			}
			if len(area.Vertices) != tt.wantVertices {
				t.Errorf("vertex count = %d, want %d", len(area.Vertices), tt.wantVertices)
			}
			if area.CameraID != tt.site.ID {
				t.Errorf("camera id = %d, want %d", area.CameraID, tt.site.ID)
			}
		})
	}
}
