// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/coff33ninja/cam-control/internal/logging"
)

// handleGeocode forward-geocodes a street address for camera
// placement. Upstream failures (including an open circuit breaker)
// surface as 502; the dashboard falls back to manual placement.
func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"missing required query parameter q", nil)
		return
	}

	result, err := s.geocoder.Forward(r.Context(), query)
	if err != nil {
		logging.Err(err).Str("query", query).Msg("forward geocode failed")
		respondError(w, http.StatusBadGateway, "SERVICE_ERROR", "geocoding lookup failed", nil)
		return
	}

	respondSuccess(w, http.StatusOK, result, start)
}

// handleGeocodeIP locates an IP address, used to suggest an initial
// map center from the server's public address.
func (s *Server) handleGeocodeIP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ip := chi.URLParam(r, "ip")
	if net.ParseIP(ip) == nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"invalid ip address", map[string]interface{}{"ip": ip})
		return
	}

	result, err := s.geocoder.LocateIP(r.Context(), ip)
	if err != nil {
		logging.Err(err).Str("ip", ip).Msg("ip locate failed")
		respondError(w, http.StatusBadGateway, "SERVICE_ERROR", "ip location lookup failed", nil)
		return
	}

	respondSuccess(w, http.StatusOK, result, start)
}
