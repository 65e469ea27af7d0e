// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import (
	"fmt"
	"math"
)

// EarthRadiusM is the WGS84 equatorial radius in meters, used for all
// radius-to-degrees conversion and Haversine distances in this package.
const EarthRadiusM = 6378137.0

// Defaults applied by Site accessors and the GeoJSON adapter when a
// camera record omits a coverage parameter. Resolving defaults here, in
// one place, keeps call sites from silently filling them in.
const (
	DefaultRadiusM        = 50.0
	DefaultFieldOfViewDeg = 360.0
	DefaultDirectionDeg   = 0.0

	// DefaultCircularPrecision is the number of sample points around a
	// circular coverage ring (one point every 10 degrees).
	DefaultCircularPrecision = 36

	// DefaultSectorPrecisionDeg is the arc sampling step for
	// directional coverage, in degrees.
	DefaultSectorPrecisionDeg = 1.0
)

// Point is a geographic vertex in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Site is the camera-shaped input the engine operates on. Latitude and
// Longitude are nullable because cameras may not be positioned yet; a
// zero RadiusM or FieldOfViewDeg means "unset" and resolves to the
// package default.
type Site struct {
	ID             int64
	Name           string
	Latitude       *float64
	Longitude      *float64
	RadiusM        float64
	FieldOfViewDeg float64
	DirectionDeg   float64
}

// Positioned reports whether the site has both coordinates.
func (s Site) Positioned() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Radius returns the coverage radius with the default applied.
func (s Site) Radius() float64 {
	if s.RadiusM <= 0 {
		return DefaultRadiusM
	}
	return s.RadiusM
}

// FieldOfView returns the field of view with the default applied.
func (s Site) FieldOfView() float64 {
	if s.FieldOfViewDeg <= 0 {
		return DefaultFieldOfViewDeg
	}
	return s.FieldOfViewDeg
}

// Area type discriminator values. Derived solely from the field of
// view: >= 360 degrees is circular, anything else is directional.
const (
	AreaTypeCircular    = "circular"
	AreaTypeDirectional = "directional"
)

// Area is a computed coverage polygon together with the parameters it
// was derived from. Constructed fresh per call and never mutated.
type Area struct {
	CameraID       int64   `json:"camera_id"`
	CenterLat      float64 `json:"center_lat"`
	CenterLon      float64 `json:"center_lon"`
	RadiusM        float64 `json:"radius_m"`
	FieldOfViewDeg float64 `json:"field_of_view_deg"`
	DirectionDeg   float64 `json:"direction_deg"`
	Vertices       []Point `json:"vertices"`
	AreaType       string  `json:"area_type"`
}

// validCoordinate reports whether lat/lon are inside WGS84 bounds.
func validCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// radiusDegrees converts a radius in meters to an angular radius in
// degrees on the spherical Earth.
func radiusDegrees(radiusM float64) float64 {
	return radiusM / EarthRadiusM * (180 / math.Pi)
}

// ringPoint computes a polygon vertex at the given bearing angle
// (radians, cos maps to the latitude offset, sin to the longitude
// offset). The /cos(lat) term compensates for longitude compression at
// non-equatorial latitudes.
func ringPoint(lat, lon, radiusDeg, angle float64) Point {
	return Point{
		Lat: lat + radiusDeg*math.Cos(angle),
		Lon: lon + radiusDeg*math.Sin(angle)/math.Cos(lat*math.Pi/180),
	}
}

// CircularCoverage computes the coverage ring of an omnidirectional
// camera as precision+1 vertices; the final vertex repeats the first
// angle so the ring closes exactly. A precision below 1 falls back to
// DefaultCircularPrecision.
//
// Fails with ErrInvalidCoordinate or ErrInvalidRadius; never clamps.
func CircularCoverage(lat, lon, radiusM float64, precision int) ([]Point, error) {
	if !validCoordinate(lat, lon) {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinate, lat, lon)
	}
	if radiusM <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidRadius, radiusM)
	}
	if precision < 1 {
		precision = DefaultCircularPrecision
	}

	radiusDeg := radiusDegrees(radiusM)
	angleStep := 360.0 / float64(precision)

	points := make([]Point, 0, precision+1)
	for i := 0; i <= precision; i++ {
		angle := float64(i) * angleStep * math.Pi / 180
		points = append(points, ringPoint(lat, lon, radiusDeg, angle))
	}
	return points, nil
}

// DirectionalCoverage computes the pie-slice coverage polygon of a
// directional camera: the camera center, the sampled arc from
// direction-fov/2 to direction+fov/2, and the center again to close
// the slice. directionDeg is a compass heading (0 = North, clockwise).
//
// The arc point count truncates fovDeg/precisionDeg (minimum 1
// segment); a precisionDeg <= 0 falls back to
// DefaultSectorPrecisionDeg. Fails with ErrInvalidCoordinate,
// ErrInvalidRadius, ErrInvalidFieldOfView or ErrInvalidDirection.
// A field of view of exactly 360 is accepted here; choosing
// CircularCoverage for full-circle cameras is the adapter's job, this
// function does not auto-dispatch.
func DirectionalCoverage(lat, lon, radiusM, directionDeg, fovDeg, precisionDeg float64) ([]Point, error) {
	if !validCoordinate(lat, lon) {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinate, lat, lon)
	}
	if radiusM <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidRadius, radiusM)
	}
	if fovDeg <= 0 || fovDeg > 360 {
		return nil, fmt.Errorf("%w: angle must be in (0, 360], got %v", ErrInvalidFieldOfView, fovDeg)
	}
	if directionDeg < 0 || directionDeg >= 360 {
		return nil, fmt.Errorf("%w: direction must be in [0, 360), got %v", ErrInvalidDirection, directionDeg)
	}
	if precisionDeg <= 0 {
		precisionDeg = DefaultSectorPrecisionDeg
	}

	radiusDeg := radiusDegrees(radiusM)
	directionRad := directionDeg * math.Pi / 180
	halfAngleRad := fovDeg / 2 * math.Pi / 180

	startAngle := directionRad - halfAngleRad
	endAngle := directionRad + halfAngleRad

	// Truncation, not rounding: the arc segment count must match the
	// reference output vertex-for-vertex.
	numPoints := int(fovDeg / precisionDeg)
	if numPoints < 1 {
		numPoints = 1
	}
	angleStep := (endAngle - startAngle) / float64(numPoints)

	points := make([]Point, 0, numPoints+3)
	points = append(points, Point{Lat: lat, Lon: lon})
	for i := 0; i <= numPoints; i++ {
		angle := startAngle + float64(i)*angleStep
		points = append(points, ringPoint(lat, lon, radiusDeg, angle))
	}
	points = append(points, Point{Lat: lat, Lon: lon})
	return points, nil
}

// AreaForSite computes the coverage polygon for a camera site,
// dispatching to circular or directional mode on the field of view.
// Returns nil when the site is not positioned or its parameters are
// invalid; use the polygon generators directly when errors matter.
func AreaForSite(site Site) *Area {
	if !site.Positioned() {
		return nil
	}

	lat, lon := *site.Latitude, *site.Longitude
	radius := site.Radius()
	fov := site.FieldOfView()

	var (
		vertices []Point
		areaType string
		err      error
	)
	if fov >= 360.0 {
		vertices, err = CircularCoverage(lat, lon, radius, DefaultCircularPrecision)
		areaType = AreaTypeCircular
	} else {
		vertices, err = DirectionalCoverage(lat, lon, radius, site.DirectionDeg, fov, DefaultSectorPrecisionDeg)
		areaType = AreaTypeDirectional
	}
	if err != nil {
		return nil
	}

	return &Area{
		CameraID:       site.ID,
		CenterLat:      lat,
		CenterLon:      lon,
		RadiusM:        radius,
		FieldOfViewDeg: fov,
		DirectionDeg:   site.DirectionDeg,
		Vertices:       vertices,
		AreaType:       areaType,
	}
}
