// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net/http"
	"time"

	"github.com/coff33ninja/cam-control/internal/logging"
)

// handleLive answers liveness probes. Returns 200 whenever the process
// can serve requests at all; readiness is the deeper check.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// handleReady answers readiness probes by pinging the database.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := s.db.Ping(r.Context()); err != nil {
		logging.Err(err).Msg("readiness check failed")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "database not reachable", nil)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, start)
}
