// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import (
	"github.com/coff33ninja/cam-control/internal/logging"
)

// Geometry is a GeoJSON Polygon geometry with a single ring.
// Ring coordinates are [lat, lon] pairs — the Leaflet convention the
// map frontend draws with, not the axis order of RFC 7946.
type Geometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// FeatureProperties carries the camera parameters a map layer needs to
// style and label the coverage polygon.
type FeatureProperties struct {
	CameraID       int64   `json:"camera_id"`
	CameraName     string  `json:"camera_name"`
	CoverageRadius float64 `json:"coverage_radius"`
	FieldOfView    float64 `json:"field_of_view"`
	Direction      float64 `json:"direction"`
	AreaType       string  `json:"area_type"`
}

// Feature is a GeoJSON Feature wrapping one camera's coverage polygon.
type Feature struct {
	Type       string            `json:"type"`
	Properties FeatureProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

// FeatureCollection groups coverage Features for layer-based renderers.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// FeatureForSite builds the GeoJSON Feature for one camera.
//
// Returns nil when the camera is not positioned, or when its coverage
// parameters are invalid — in the latter case the engine error is
// logged as a warning instead of propagating, because this adapter is
// called per camera inside the map rendering loop and one malformed
// camera must not abort the whole map.
func FeatureForSite(site Site) *Feature {
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
		logging.Warn().
			Err(err).
			Int64("camera_id", site.ID).
			Str("camera_name", site.Name).
			Msg("skipping coverage area for camera with invalid parameters")
		return nil
	}

	ring := make([][]float64, len(vertices))
	for i, v := range vertices {
		ring[i] = []float64{v.Lat, v.Lon}
	}

	return &Feature{
		Type: "Feature",
		Properties: FeatureProperties{
			CameraID:       site.ID,
			CameraName:     site.Name,
			CoverageRadius: radius,
			FieldOfView:    fov,
			Direction:      site.DirectionDeg,
			AreaType:       areaType,
		},
		Geometry: Geometry{
			Type:        "Polygon",
			Coordinates: [][][]float64{ring},
		},
	}
}

// CollectionForSites builds a FeatureCollection over every positioned
// camera, skipping the ones FeatureForSite rejects.
func CollectionForSites(sites []Site) FeatureCollection {
	features := make([]Feature, 0, len(sites))
	for _, site := range sites {
		if f := FeatureForSite(site); f != nil {
			features = append(features, *f)
		}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
