// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package api implements the HTTP surface of the dashboard: camera and
// DVR CRUD, coverage geometry endpoints, map configuration, the action
// log, geocoding, auth, and the WebSocket upgrade. All endpoints speak
// the models.APIResponse envelope except /coverage.geojson (plain
// GeoJSON for map renderers) and /metrics (Prometheus exposition).
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coff33ninja/cam-control/internal/auth"
	"github.com/coff33ninja/cam-control/internal/config"
	"github.com/coff33ninja/cam-control/internal/database"
	"github.com/coff33ninja/cam-control/internal/geocode"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/middleware"
	"github.com/coff33ninja/cam-control/internal/websocket"
)

// Rate limits for the unauthenticated route groups. Health checks get
// room for aggressive orchestrator probing; login gets almost none.
const (
	healthRateLimit = 120
	loginRateLimit  = 10
)

// ChangeSink receives entity mutations for live dashboard fan-out.
// Wired to either the WebSocket hub directly or the JetStream
// publisher, depending on configuration.
type ChangeSink interface {
	EntityChanged(entityType string, entityID int64, action, name, details string)
}

// Deps carries the collaborators the HTTP layer needs.
type Deps struct {
	Config      *config.Config
	DB          *database.DB
	Hub         *websocket.Hub
	Geocoder    *geocode.Service
	Auth        *auth.Middleware
	JWT         *auth.JWTManager
	Credentials *auth.CredentialStore
	Sink        ChangeSink
}

// Server holds the handler state. Construct with NewServer, mount with
// Routes.
type Server struct {
	cfg      *config.Config
	db       *database.DB
	hub      *websocket.Hub
	geocoder *geocode.Service
	auth     *auth.Middleware
	jwt      *auth.JWTManager
	creds    *auth.CredentialStore
	sink     ChangeSink
	secLog   *logging.SecurityLogger
}

// NewServer creates the HTTP server state.
func NewServer(deps Deps) *Server {
	return &Server{
		cfg:      deps.Config,
		db:       deps.DB,
		hub:      deps.Hub,
		geocoder: deps.Geocoder,
		auth:     deps.Auth,
		jwt:      deps.JWT,
		creds:    deps.Credentials,
		sink:     deps.Sink,
		secLog:   logging.NewSecurityLogger(),
	}
}

// Routes builds the chi router with the full middleware stack and all
// route groups.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	// Global middleware. RealIP must run before anything that keys on
	// the client address (rate limiting, security logging).
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	// Health endpoints are unauthenticated so orchestrators can probe
	// them, with a permissive per-IP limit.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(healthRateLimit, time.Minute))
		r.Get("/", s.handleReady)
		r.Get("/live", s.handleLive)
		r.Get("/ready", s.handleReady)
	})

	// Login is throttled hard regardless of the global rate limit
	// setting; credential stuffing does not get a config escape hatch.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(httprate.LimitByIP(loginRateLimit, time.Minute)).Post("/login", s.handleLogin)
	})

	// The WebSocket upgrade sits outside the authenticated group:
	// browsers cannot attach an Authorization header to the upgrade
	// request. Access control is same-origin plus the reverse proxy.
	r.With(httprate.LimitByIP(healthRateLimit, time.Minute)).Get("/api/v1/ws", s.handleWebSocket)

	// Authenticated API core.
	r.Route("/api/v1", func(r chi.Router) {
		if !s.cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(s.cfg.Security.RateLimitReqs, s.cfg.Security.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Use(s.auth.Authenticate)

		r.Route("/cameras", func(r chi.Router) {
			r.Get("/", s.handleListCameras)
			r.Post("/", s.handleCreateCamera)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCamera)
				r.Put("/", s.handleUpdateCamera)
				r.Delete("/", s.handleDeleteCamera)
				// Position and coverage accept POST as well; the map
				// frontend's drag-drop save posts.
				r.Put("/position", s.handleUpdateCameraPosition)
				r.Post("/position", s.handleUpdateCameraPosition)
				r.Get("/coverage", s.handleGetCameraCoverage)
				r.Put("/coverage", s.handleUpdateCameraCoverage)
				r.Post("/coverage", s.handleUpdateCameraCoverage)
				r.Get("/coverage.geojson", s.handleGetCameraCoverageGeoJSON)
			})
		})

		r.Route("/dvrs", func(r chi.Router) {
			r.Get("/", s.handleListDVRs)
			r.Post("/", s.handleCreateDVR)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDVR)
				r.Put("/", s.handleUpdateDVR)
				r.Delete("/", s.handleDeleteDVR)
				r.Put("/position", s.handleUpdateDVRPosition)
				r.Get("/cameras", s.handleListDVRCameras)
			})
		})

		r.Get("/coverage", s.handleCoverageGeoJSON)
		r.Get("/coverage.geojson", s.handleCoverageGeoJSON)
		r.Get("/coverage/overlaps", s.handleCoverageOverlaps)

		r.Route("/map-config", func(r chi.Router) {
			r.Get("/", s.handleListMapConfigurations)
			r.Put("/", s.handleSaveMapConfiguration)
			r.Get("/default", s.handleGetDefaultMapConfiguration)
			r.Delete("/{id}", s.handleDeleteMapConfiguration)
		})

		r.Get("/stats", s.handleStats)
		r.Get("/actions", s.handleListActions)

		r.Get("/geocode", s.handleGeocode)
		r.Get("/geocode/ip/{ip}", s.handleGeocodeIP)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
