// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package api

import (
	"net/http"
	"time"

	"github.com/coff33ninja/cam-control/internal/auth"
	"github.com/coff33ninja/cam-control/internal/models"
)

// handleLogin exchanges admin credentials for a signed JWT. Failed
// attempts log the client IP through the security logger; the response
// never distinguishes a bad username from a bad password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.jwt == nil || s.creds == nil {
		respondError(w, http.StatusBadRequest, "AUTHENTICATION_ERROR",
			"authentication is disabled on this server", nil)
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !s.creds.Verify(req.Username, req.Password) {
		s.secLog.LogLoginFailure(req.Username, r.RemoteAddr, r.UserAgent(), "invalid credentials")
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid credentials", nil)
		return
	}

	token, expiresAt, err := s.jwt.GenerateToken(req.Username, auth.RoleAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "SERVICE_ERROR", "failed to issue token", nil)
		return
	}

	s.secLog.LogLoginSuccess(req.Username, r.RemoteAddr, r.UserAgent())

	respondSuccess(w, http.StatusOK, &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  req.Username,
		Role:      auth.RoleAdmin,
	}, start)
}
