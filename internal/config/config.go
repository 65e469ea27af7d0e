// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package config provides centralized configuration for all CamControl
// components, loaded through Koanf v2 with layered sources.
package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: DuckDB configuration (path, memory)
//     - Server: HTTP server configuration (port, host, timeout)
//     - NATS: Event pipeline with Watermill/NATS JetStream (optional)
//
//  2. Domain:
//     - Geocode: Address lookup and IP-based locator services
//     - Monitor: Camera/DVR reachability probing
//     - Coverage: Coverage polygon sampling precision
//
//  3. API & Security:
//     - API: Pagination and response limits
//     - Security: Authentication, rate limiting, CORS
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("failed to load config")
//	}
//
// Thread Safety:
// Config is immutable after loading and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Geocode  GeocodeConfig  `koanf:"geocode"`
	Monitor  MonitorConfig  `koanf:"monitor"`
	NATS     NATSConfig     `koanf:"nats"`
	Coverage CoverageConfig `koanf:"coverage"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production"; production refuses
//     to start with an unset JWT secret
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/camcontrol.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: Worker threads, 0 = runtime.NumCPU() (default: 0)
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// APIConfig holds pagination and response limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and request throttling settings.
//
// AuthMode values:
//   - "jwt": Bearer-token authentication against the configured admin
//     account (the default)
//   - "none": No authentication; intended for development and for
//     deployments behind an authenticating reverse proxy
//
// Environment Variables:
//   - AUTH_MODE, JWT_SECRET, SESSION_TIMEOUT
//   - ADMIN_USERNAME, ADMIN_PASSWORD (bcrypt-hashed at startup)
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//   - CORS_ORIGINS, TRUSTED_PROXIES (comma-separated)
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// GeocodeConfig holds the external geocoding services used to place
// cameras by street address and to suggest a map center from the
// server's public IP. Both calls go through a circuit breaker; when a
// service is down the dashboard degrades to manual placement.
//
// Environment Variables:
//   - GEOCODE_ENABLED: Master toggle (default: true)
//   - GEOCODE_NOMINATIM_URL: Forward geocoding endpoint
//   - GEOCODE_IPAPI_URL: IP locator endpoint
//   - GEOCODE_TIMEOUT: Per-request timeout (default: 10s)
//   - GEOCODE_USER_AGENT: User-Agent header (Nominatim requires one)
type GeocodeConfig struct {
	Enabled      bool          `koanf:"enabled"`
	NominatimURL string        `koanf:"nominatim_url"`
	IPAPIURL     string        `koanf:"ipapi_url"`
	Timeout      time.Duration `koanf:"timeout"`
	UserAgent    string        `koanf:"user_agent"`
}

// MonitorConfig holds camera/DVR reachability probe settings.
// The monitor TCP-dials each unit with a known address on every cycle
// and records status transitions in the action log.
//
// Environment Variables:
//   - MONITOR_ENABLED: Master toggle (default: true)
//   - MONITOR_INTERVAL: Probe cycle interval (default: 60s)
//   - MONITOR_TIMEOUT: Per-dial timeout (default: 5s)
//   - MONITOR_MAX_CONCURRENT: Parallel probes per cycle (default: 16)
//   - MONITOR_RATE_PER_SECOND: Dial rate cap across a cycle (default: 50)
type MonitorConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Interval      time.Duration `koanf:"interval"`
	Timeout       time.Duration `koanf:"timeout"`
	MaxConcurrent int           `koanf:"max_concurrent"`
	RatePerSecond float64       `koanf:"rate_per_second"`
}

// NATSConfig holds the event pipeline settings. When enabled, every
// camera/DVR mutation and status transition is published through
// Watermill to NATS JetStream; subscribers fan the events out to the
// WebSocket hub and the action log.
//
// Environment Variables:
//   - NATS_ENABLED: Master toggle (default: false)
//   - NATS_URL: Server URL (default: nats://127.0.0.1:4222)
//   - NATS_EMBEDDED: Run an embedded nats-server (default: true)
//   - NATS_STORE_DIR: JetStream storage directory
//   - NATS_MAX_MEMORY, NATS_MAX_STORE: JetStream resource limits
//   - NATS_RETENTION_DAYS: Stream retention (default: 7)
//   - NATS_DURABLE_NAME, NATS_QUEUE_GROUP: Consumer identity
type NATSConfig struct {
	Enabled             bool          `koanf:"enabled"`
	URL                 string        `koanf:"url"`
	EmbeddedServer      bool          `koanf:"embedded_server"`
	StoreDir            string        `koanf:"store_dir"`
	MaxMemory           int64         `koanf:"max_memory"`
	MaxStore            int64         `koanf:"max_store"`
	StreamRetentionDays int           `koanf:"stream_retention_days"`
	DurableName         string        `koanf:"durable_name"`
	QueueGroup          string        `koanf:"queue_group"`
	CloseTimeout        time.Duration `koanf:"close_timeout"`
}

// CoverageConfig holds polygon sampling precision overrides.
// Zero values fall back to the coverage package defaults (36 segments
// for circles, 1 degree arc steps for sectors).
type CoverageConfig struct {
	CircularPrecision  int     `koanf:"circular_precision"`
	SectorPrecisionDeg float64 `koanf:"sector_precision_deg"`
}
