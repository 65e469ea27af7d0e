// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/models"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Middleware enforces authentication on protected routes.
//
// With auth mode "none" every request passes through with implicit
// admin claims; small deployments on a trusted LAN run this way.
// With auth mode "jwt" requests must carry a valid Bearer token.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
	secLog     *logging.SecurityLogger
}

// NewMiddleware creates the authentication middleware.
// jwtManager may be nil when authMode is "none".
func NewMiddleware(jwtManager *JWTManager, authMode string) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		authMode:   authMode,
		secLog:     logging.NewSecurityLogger(),
	}
}

// Authenticate validates the request's credentials and injects the
// resulting claims into the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == "none" {
			claims := &Claims{Username: "anonymous", Role: RoleAdmin}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
			return
		}

		token, err := extractBearerToken(r)
		if err != nil {
			m.secLog.LogTokenRejected(r.RemoteAddr, r.URL.Path, err.Error())
			writeAuthError(w, "missing or malformed authorization header")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.secLog.LogTokenRejected(r.RemoteAddr, r.URL.Path, logging.SanitizeError(err.Error()))
			writeAuthError(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// extractBearerToken pulls the JWT out of the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("authorization header missing")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", fmt.Errorf("authorization header is not a bearer token")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", fmt.Errorf("bearer token is empty")
	}
	return token, nil
}

// writeAuthError sends a 401 in the standard response envelope.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: message,
		},
	})
}

// ContextWithClaims stores validated claims in the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the claims set by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
