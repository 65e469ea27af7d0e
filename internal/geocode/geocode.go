// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package geocode resolves street addresses to coordinates via
// Nominatim and suggests a camera position from its IP address via
// ip-api.com. Both upstream calls run behind circuit breakers so a
// slow or rate-limited geocoding service never stalls the dashboard.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/coff33ninja/cam-control/internal/config"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/metrics"
)

// Result is a resolved location.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Service performs forward geocoding and IP-based location lookups.
type Service struct {
	cfg        *config.GeocodeConfig
	httpClient *http.Client

	nominatimCB *gobreaker.CircuitBreaker[*Result]
	ipapiCB     *gobreaker.CircuitBreaker[*Result]
}

// NewService creates the geocoding service with its circuit breakers.
func NewService(cfg *config.GeocodeConfig) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		nominatimCB: newBreaker("nominatim"),
		ipapiCB:     newBreaker("ipapi"),
	}
}

// newBreaker builds a circuit breaker wired to the Prometheus gauges.
// Trips at a 60% failure rate once 5 requests have been observed;
// free geocoding services rate-limit aggressively, so recovery waits
// a full minute.
func newBreaker(name string) *gobreaker.CircuitBreaker[*Result] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("geocode circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

// Forward resolves a free-form address query to coordinates using
// Nominatim. Returns an error when the address is unknown.
func (s *Service) Forward(ctx context.Context, query string) (*Result, error) {
	if !s.cfg.Enabled {
		return nil, fmt.Errorf("geocoding is disabled")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty address query")
	}

	start := time.Now()
	result, err := s.nominatimCB.Execute(func() (*Result, error) {
		return s.queryNominatim(ctx, query)
	})
	metrics.RecordGeocodeLookup("nominatim", breakerResult(err), time.Since(start))
	recordBreakerRequest("nominatim", err)
	return result, err
}

// LocateIP estimates a location for an IP address using ip-api.com.
// Useful as a starting position for cameras reachable over the WAN;
// accuracy is city-level at best.
func (s *Service) LocateIP(ctx context.Context, ip string) (*Result, error) {
	if !s.cfg.Enabled {
		return nil, fmt.Errorf("geocoding is disabled")
	}
	if strings.TrimSpace(ip) == "" {
		return nil, fmt.Errorf("empty ip address")
	}

	start := time.Now()
	result, err := s.ipapiCB.Execute(func() (*Result, error) {
		return s.queryIPAPI(ctx, ip)
	})
	metrics.RecordGeocodeLookup("ipapi", breakerResult(err), time.Since(start))
	recordBreakerRequest("ipapi", err)
	return result, err
}

// nominatimResult matches the fields we use from the Nominatim search
// response. Coordinates arrive as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (s *Service) queryNominatim(ctx context.Context, query string) (*Result, error) {
	reqURL := fmt.Sprintf("%s?q=%s&format=json&limit=1",
		s.cfg.NominatimURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nominatim request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for address %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in nominatim response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in nominatim response: %w", err)
	}

	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}

// ipapiResult matches the fields we use from the ip-api.com response.
type ipapiResult struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

func (s *Service) queryIPAPI(ctx context.Context, ip string) (*Result, error) {
	reqURL := fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.IPAPIURL, "/"), url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ip-api request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip-api request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ip-api returned status %d", resp.StatusCode)
	}

	var result ipapiResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode ip-api response: %w", err)
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("ip-api lookup failed: %s", result.Message)
	}

	displayName := result.City
	if result.Country != "" {
		if displayName != "" {
			displayName += ", "
		}
		displayName += result.Country
	}

	return &Result{
		Latitude:    result.Lat,
		Longitude:   result.Lon,
		DisplayName: displayName,
	}, nil
}

// breakerResult classifies an error for the lookup counter.
func breakerResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case isBreakerRejection(err):
		return "rejected"
	default:
		return "failure"
	}
}

func recordBreakerRequest(name string, err error) {
	metrics.CircuitBreakerRequests.WithLabelValues(name, breakerResult(err)).Inc()
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
