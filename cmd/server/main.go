// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Command server runs the CamControl dashboard: HTTP API, WebSocket
// hub, reachability monitor, and optionally the embedded NATS event
// pipeline, all under one supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coff33ninja/cam-control/internal/api"
	"github.com/coff33ninja/cam-control/internal/auth"
	"github.com/coff33ninja/cam-control/internal/config"
	"github.com/coff33ninja/cam-control/internal/database"
	"github.com/coff33ninja/cam-control/internal/events"
	"github.com/coff33ninja/cam-control/internal/geocode"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/monitor"
	"github.com/coff33ninja/cam-control/internal/supervisor"
	"github.com/coff33ninja/cam-control/internal/websocket"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting CamControl")

	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized")

	// Authentication.
	var (
		jwtManager *auth.JWTManager
		creds      *auth.CredentialStore
	)
	if cfg.Security.AuthMode == "jwt" {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		creds, err = auth.NewCredentialStore(cfg.Security.AdminUsername, cfg.Security.AdminPassword)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize credential store")
		}
		logging.Info().Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("Use this mode only for development or behind an authenticating proxy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()

	// Event pipeline. When NATS is enabled mutations flow through
	// JetStream and the processor performs the WebSocket fan-out;
	// otherwise mutations broadcast straight to the hub.
	var (
		sink      api.ChangeSink = events.NewHubSink(hub)
		processor *events.Processor
		publisher *events.Publisher
	)
	if cfg.NATS.Enabled {
		natsURL := cfg.NATS.URL
		if cfg.NATS.EmbeddedServer {
			embedded, err := events.NewEmbeddedServer(&cfg.NATS)
			if err != nil {
				logging.Fatal().Err(err).Msg("Failed to start embedded NATS server")
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := embedded.Shutdown(shutdownCtx); err != nil {
					logging.Error().Err(err).Msg("Error stopping embedded NATS server")
				}
			}()
			natsURL = embedded.ClientURL()
			logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")
		}

		if err := events.EnsureStream(ctx, natsURL, &cfg.NATS); err != nil {
			logging.Fatal().Err(err).Msg("Failed to provision event stream")
		}

		wmLogger := events.NewWatermillLogger()
		publisher, err = events.NewPublisher(natsURL, wmLogger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create event publisher")
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event publisher")
			}
		}()

		sink = events.NewPublisherSink(publisher)
		processor = events.NewProcessor(&cfg.NATS, natsURL, hub, wmLogger)
		logging.Info().Msg("NATS event pipeline enabled")
	}

	geocoder := geocode.NewService(&cfg.Geocode)

	server := api.NewServer(api.Deps{
		Config:      cfg,
		DB:          db,
		Hub:         hub,
		Geocoder:    geocoder,
		Auth:        auth.NewMiddleware(jwtManager, cfg.Security.AuthMode),
		JWT:         jwtManager,
		Credentials: creds,
		Sink:        sink,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	// Supervision tree. The slog logger bridges supervisor events to
	// zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddMessagingService(supervisor.NewHubService(hub))
	if processor != nil {
		tree.AddMessagingService(processor)
	}
	if cfg.Monitor.Enabled {
		tree.AddMessagingService(monitor.New(&cfg.Monitor, db, hub))
		logging.Info().
			Dur("interval", cfg.Monitor.Interval).
			Msg("Reachability monitor enabled")
	}
	tree.AddAPIService(supervisor.NewHTTPServerService(httpServer, supervisor.DefaultTreeConfig().ShutdownTimeout))

	logging.Info().
		Str("addr", httpServer.Addr).
		Msg("CamControl listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree exited with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", fmt.Sprint(svc.Service)).Msg("Service did not stop cleanly")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
