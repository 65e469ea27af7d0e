// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/models"
)

// recordAction writes the audit trail row and fans the mutation out to
// live dashboard clients. The audit write is synchronous; a failure is
// logged but never fails the request, because the mutation itself has
// already committed.
func (s *Server) recordAction(ctx context.Context, entityType string, entityID int64, action, name string, details interface{}) {
	detailJSON := ""
	if details != nil {
		if data, err := json.Marshal(details); err == nil {
			detailJSON = string(data)
		}
	}

	if err := s.db.InsertAction(ctx, entityType, entityID, action, detailJSON); err != nil {
		logging.Err(err).
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Str("action", action).
			Msg("failed to record action")
	}

	if s.sink != nil {
		s.sink.EntityChanged(entityType, entityID, action, name, detailJSON)
	}
}

func (s *Server) handleListCameras(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cameras, err := s.db.ListCameras(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"cameras": cameras,
		"count":   len(cameras),
	}, start)
}

func (s *Server) handleCreateCamera(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateCameraRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	camera, err := s.db.CreateCamera(r.Context(), &req)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityCamera, camera.ID, models.ActionCreated, camera.Name,
		map[string]interface{}{"name": camera.Name})

	respondSuccess(w, http.StatusCreated, camera, start)
}

func (s *Server) handleGetCamera(w http.ResponseWriter, r *http.Request) {
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

	respondSuccess(w, http.StatusOK, camera, start)
}

func (s *Server) handleUpdateCamera(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateCameraRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	camera, err := s.db.UpdateCamera(r.Context(), id, &req)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityCamera, camera.ID, models.ActionUpdated, camera.Name,
		map[string]interface{}{"name": camera.Name})

	respondSuccess(w, http.StatusOK, camera, start)
}

func (s *Server) handleDeleteCamera(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	// Fetch first so the audit trail and broadcast carry the name.
	camera, err := s.db.GetCamera(r.Context(), id)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	if err := s.db.DeleteCamera(r.Context(), id); err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityCamera, id, models.ActionDeleted, camera.Name,
		map[string]interface{}{"name": camera.Name})

	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "deleted": true}, start)
}

func (s *Server) handleUpdateCameraPosition(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.PositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	camera, err := s.db.UpdateCameraPosition(r.Context(), id, req.Latitude, req.Longitude)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityCamera, camera.ID, models.ActionMoved, camera.Name,
		map[string]interface{}{"latitude": req.Latitude, "longitude": req.Longitude})

	respondSuccess(w, http.StatusOK, camera, start)
}

func (s *Server) handleUpdateCameraCoverage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.CoverageParamsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	camera, err := s.db.UpdateCameraCoverage(r.Context(), id, &req)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityCamera, camera.ID, models.ActionUpdated, camera.Name,
		map[string]interface{}{
			"coverage_radius": req.CoverageRadius,
			"field_of_view":   req.FieldOfView,
			"direction":       req.Direction,
		})

	respondSuccess(w, http.StatusOK, camera, start)
}
