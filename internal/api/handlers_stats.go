// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net/http"
	"time"

	"github.com/coff33ninja/cam-control/internal/coverage"
	"github.com/coff33ninja/cam-control/internal/metrics"
)

// handleStats builds the dashboard summary: entity counts from the
// database plus overlap and coverage figures computed live by the
// geometry engine. Coverage is the sum of per-camera polygon areas, so
// overlapping regions count once per camera.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := s.db.GetDashboardStats(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	cameras, err := s.db.ListCameras(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	sites := sitesFromCameras(cameras)

	scanStart := time.Now()
	overlaps := coverage.FindOverlaps(sites)
	metrics.RecordOverlapScan(time.Since(scanStart), len(overlaps))
	stats.OverlappingPairs = len(overlaps)

	for _, site := range sites {
		if area := coverage.AreaForSite(site); area != nil {
			stats.TotalCoverageSqM += coverage.AreaSize(area.Vertices)
		}
	}

	respondSuccess(w, http.StatusOK, stats, start)
}
