// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/coff33ninja/cam-control/internal/database"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/models"
	"github.com/coff33ninja/cam-control/internal/validation"
)

// maxRequestBody caps request bodies well above the largest legitimate
// payload (a map configuration with notes).
const maxRequestBody = 1 << 20 // 1 MiB

// respondJSON writes the standard response envelope. Encode failures
// after the header is committed can only be logged.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// respondSuccess wraps data in a success envelope. start stamps the
// query time metadata; pass the handler entry time.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError writes an error envelope with the given code.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondDatabaseError maps storage failures onto the error envelope:
// missing rows are the caller's problem (404), everything else is ours
// (500, logged).
func respondDatabaseError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
		return
	}
	logging.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("database operation failed")
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "database operation failed", nil)
}

// decodeJSON decodes the request body into v. On failure it writes a
// 400 and returns false; the handler should return immediately.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON request body",
			map[string]interface{}{"error": err.Error()})
		return false
	}
	return true
}

// validateRequest runs struct validation on v. On failure it writes a
// 422 carrying the per-field details and returns false.
func validateRequest(w http.ResponseWriter, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	respondError(w, http.StatusUnprocessableEntity, apiErr.Code, apiErr.Message, apiErr.Details)
	return false
}

// idParam parses the {id} route parameter. On failure it writes a 422
// and returns false.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid id parameter",
			map[string]interface{}{"id": raw})
		return 0, false
	}
	return id, true
}

// intQuery parses an integer query parameter with a default and an
// upper bound. Unparseable or out-of-range values fall back to the
// default rather than erroring; pagination is best-effort.
func intQuery(r *http.Request, key string, def, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
