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

func (s *Server) handleListDVRs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dvrs, err := s.db.ListDVRs(r.Context())
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"dvrs":  dvrs,
		"count": len(dvrs),
	}, start)
}

func (s *Server) handleCreateDVR(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateDVRRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	dvr, err := s.db.CreateDVR(r.Context(), &req)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityDVR, dvr.ID, models.ActionCreated, dvr.Name,
		map[string]interface{}{"name": dvr.Name})

	respondSuccess(w, http.StatusCreated, dvr, start)
}

func (s *Server) handleGetDVR(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	dvr, err := s.db.GetDVR(r.Context(), id)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, dvr, start)
}

func (s *Server) handleUpdateDVR(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateDVRRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	dvr, err := s.db.UpdateDVR(r.Context(), id, &req)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityDVR, dvr.ID, models.ActionUpdated, dvr.Name,
		map[string]interface{}{"name": dvr.Name})

	respondSuccess(w, http.StatusOK, dvr, start)
}

func (s *Server) handleDeleteDVR(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	dvr, err := s.db.GetDVR(r.Context(), id)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	// Assigned cameras survive the delete; the storage layer unlinks
	// them before removing the recorder.
	if err := s.db.DeleteDVR(r.Context(), id); err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityDVR, id, models.ActionDeleted, dvr.Name,
		map[string]interface{}{"name": dvr.Name, "unassigned_cameras": dvr.CameraCount})

	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "deleted": true}, start)
}

func (s *Server) handleUpdateDVRPosition(w http.ResponseWriter, r *http.Request) {
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

	dvr, err := s.db.UpdateDVRPosition(r.Context(), id, req.Latitude, req.Longitude)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	s.recordAction(r.Context(), models.EntityDVR, dvr.ID, models.ActionMoved, dvr.Name,
		map[string]interface{}{"latitude": req.Latitude, "longitude": req.Longitude})

	respondSuccess(w, http.StatusOK, dvr, start)
}

func (s *Server) handleListDVRCameras(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	// Confirm the recorder exists so an unknown id is a 404, not an
	// empty list.
	if _, err := s.db.GetDVR(r.Context(), id); err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	cameras, err := s.db.ListCamerasByDVR(r.Context(), id)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"cameras": cameras,
		"count":   len(cameras),
	}, start)
}
