// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net/http"
	"time"

	"github.com/coff33ninja/cam-control/internal/models"
)

func (s *Server) handleListMapConfigurations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	configs, err := s.db.ListMapConfigurations(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"configurations": configs,
		"count":          len(configs),
	}, start)
}

// handleSaveMapConfiguration upserts a saved map view by name.
func (s *Server) handleSaveMapConfiguration(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SaveMapConfigurationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	saved, err := s.db.SaveMapConfiguration(r.Context(), &req)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityMap, saved.ID, models.ActionUpdated, saved.Name,
		map[string]interface{}{"name": saved.Name, "is_default": saved.IsDefault})

	respondSuccess(w, http.StatusOK, saved, start)
}

func (s *Server) handleGetDefaultMapConfiguration(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cfg, err := s.db.GetDefaultMapConfiguration(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, cfg, start)
}

func (s *Server) handleDeleteMapConfiguration(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteMapConfiguration(r.Context(), id); err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityMap, id, models.ActionDeleted, "", nil)

	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "deleted": true}, start)
}
