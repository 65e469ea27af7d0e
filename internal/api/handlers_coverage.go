// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/coff33ninja/cam-control/internal/coverage"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/metrics"
	"github.com/coff33ninja/cam-control/internal/models"
)

// siteFromCamera maps a camera record onto the geometry engine's
// input. Zero radius and field of view resolve to engine defaults.
func siteFromCamera(c *models.Camera) coverage.Site {
	return coverage.Site{
		ID:             c.ID,
		Name:           c.Name,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		RadiusM:        c.CoverageRadius,
		FieldOfViewDeg: c.FieldOfView,
		DirectionDeg:   c.Direction,
	}
}

func sitesFromCameras(cameras []models.Camera) []coverage.Site {
	sites := make([]coverage.Site, len(cameras))
	for i := range cameras {
		sites[i] = siteFromCamera(&cameras[i])
	}
	return sites
}

// handleGetCameraCoverage computes the coverage polygon for one
// camera, including its estimated ground area.
func (s *Server) handleGetCameraCoverage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	camera, err := s.db.GetCamera(r.Context(), id)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	area := coverage.AreaForSite(siteFromCamera(camera))
	if area == nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"camera has no position or invalid coverage parameters",
			map[string]interface{}{"camera_id": id})
		return
	}
	metrics.RecordCoverageComputation(area.AreaType)

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"area":      area,
		"area_sq_m": coverage.AreaSize(area.Vertices),
	}, start)
}

// handleGetCameraCoverageGeoJSON renders one camera's coverage polygon
// as a bare GeoJSON Feature, for adding a single layer without
// refetching the whole collection.
func (s *Server) handleGetCameraCoverageGeoJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	camera, err := s.db.GetCamera(r.Context(), id)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	feature := coverage.FeatureForSite(siteFromCamera(camera))
	if feature == nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"camera has no position or invalid coverage parameters",
			map[string]interface{}{"camera_id": id})
		return
	}
	metrics.RecordCoverageComputation(feature.Properties.AreaType)

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(feature); err != nil {
		logging.Err(err).Int64("camera_id", id).Msg("failed to encode coverage feature")
	}
}

// handleCoverageGeoJSON renders every positioned camera's coverage
// polygon as a plain GeoJSON FeatureCollection. No response envelope:
// map renderers consume this directly as a layer source.
func (s *Server) handleCoverageGeoJSON(w http.ResponseWriter, r *http.Request) {
	cameras, err := s.db.ListCameras(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	collection := coverage.CollectionForSites(sitesFromCameras(cameras))
	for _, f := range collection.Features {
		metrics.RecordCoverageComputation(f.Properties.AreaType)
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(collection); err != nil {
		logging.Err(err).Msg("failed to encode coverage geojson")
	}
}

// handleCoverageOverlaps runs the pairwise overlap sweep across all
// positioned cameras.
func (s *Server) handleCoverageOverlaps(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cameras, err := s.db.ListCameras(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	scanStart := time.Now()
	overlaps := coverage.FindOverlaps(sitesFromCameras(cameras))
	metrics.RecordOverlapScan(time.Since(scanStart), len(overlaps))

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"overlaps": overlaps,
		"count":    len(overlaps),
	}, start)
}
