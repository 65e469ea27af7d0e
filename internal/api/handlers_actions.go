// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/coff33ninja/cam-control/internal/models"
)

// handleListActions returns the audit trail, newest first. Optional
// entity_type + entity_id query parameters narrow it to one entity's
// history; limit and offset paginate.
func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := intQuery(r, "limit", s.cfg.API.DefaultPageSize, s.cfg.API.MaxPageSize)
	offset := intQuery(r, "offset", 0, 0)

	entityType := r.URL.Query().Get("entity_type")

	var (
		entries []models.ActionLogEntry
		err     error
	)
	if entityType != "" {
		entityID, parseErr := strconv.ParseInt(r.URL.Query().Get("entity_id"), 10, 64)
		if parseErr != nil || entityID < 1 {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
				"entity_type filter requires a valid entity_id", nil)
			return
		}
		entries, err = s.db.ListActionsForEntity(r.Context(), entityType, entityID, limit, offset)
	} else {
		entries, err = s.db.ListActions(r.Context(), limit, offset)
	}
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"actions": entries,
		"count":   len(entries),
		"limit":   limit,
		"offset":  offset,
	}, start)
}
