// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package monitor periodically probes cameras and DVRs over TCP and
// records online/offline transitions. It runs as a supervised service
// and pushes every transition to the action log and the notifier so
// the dashboard map updates live.
package monitor

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/coff33ninja/cam-control/internal/config"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/metrics"
	"github.com/coff33ninja/cam-control/internal/models"
)

// defaultProbePort is used when a camera or DVR has no port configured.
// 554 is the standard RTSP port, which nearly every IP camera exposes.
const defaultProbePort = 554

// Notifier receives status transitions for fan-out (WebSocket, NATS).
type Notifier interface {
	NotifyStatusChange(entityType string, entityID int64, name, from, to string)
}

// Store is the slice of the database layer the monitor needs.
type Store interface {
	ListCameras(ctx context.Context) ([]models.Camera, error)
	ListDVRs(ctx context.Context) ([]models.DVR, error)
	UpdateCameraStatus(ctx context.Context, id int64, status string) error
	UpdateDVRStatus(ctx context.Context, id int64, status string) error
	InsertAction(ctx context.Context, entityType string, entityID int64, action, details string) error
}

// Monitor probes reachable entities on a fixed interval.
type Monitor struct {
	cfg      *config.MonitorConfig
	store    Store
	notifier Notifier
	limiter  *rate.Limiter
	dialer   *net.Dialer
}

// New creates a reachability monitor.
// notifier may be nil when no live fan-out is wired.
func New(cfg *config.MonitorConfig, store Store, notifier Notifier) *Monitor {
	return &Monitor{
		cfg:      cfg,
		store:    store,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.MaxConcurrent),
		dialer:   &net.Dialer{Timeout: cfg.Timeout},
	}
}

// Serve implements suture.Service. It sweeps immediately on start and
// then on every interval tick until the context is canceled.
func (m *Monitor) Serve(ctx context.Context) error {
	logging.Info().
		Dur("interval", m.cfg.Interval).
		Int("max_concurrent", m.cfg.MaxConcurrent).
		Msg("reachability monitor started")

	m.Sweep(ctx)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("reachability monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (m *Monitor) String() string {
	return "reachability-monitor"
}

// target is one probe unit, normalized from a camera or DVR row.
type target struct {
	entityType string
	id         int64
	name       string
	address    string
	status     string
}

// Sweep probes every camera and DVR with a configured address once.
// Probes run concurrently, bounded by MaxConcurrent and the rate
// limiter so a large install does not burst-scan its own network.
func (m *Monitor) Sweep(ctx context.Context) {
	targets := m.collectTargets(ctx)
	if len(targets) == 0 {
		return
	}

	sem := make(chan struct{}, m.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for _, t := range targets {
		if err := m.limiter.Wait(ctx); err != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(t target) {
			defer wg.Done()
			defer func() { <-sem }()
			m.probe(ctx, t)
		}(t)
	}

	wg.Wait()
}

func (m *Monitor) collectTargets(ctx context.Context) []target {
	targets := make([]target, 0)

	cameras, err := m.store.ListCameras(ctx)
	if err != nil {
		logging.Err(err).Msg("monitor failed to list cameras")
	} else {
		for _, c := range cameras {
			if c.IPAddress == "" {
				continue
			}
			targets = append(targets, target{
				entityType: models.EntityCamera,
				id:         c.ID,
				name:       c.Name,
				address:    probeAddress(c.IPAddress, c.Port),
				status:     c.Status,
			})
		}
	}

	dvrs, err := m.store.ListDVRs(ctx)
	if err != nil {
		logging.Err(err).Msg("monitor failed to list dvrs")
	} else {
		for _, d := range dvrs {
			if d.IPAddress == "" {
				continue
			}
			targets = append(targets, target{
				entityType: models.EntityDVR,
				id:         d.ID,
				name:       d.Name,
				address:    probeAddress(d.IPAddress, d.Port),
				status:     d.Status,
			})
		}
	}

	return targets
}

// probe dials the target once and records a transition if the observed
// state differs from the stored one.
func (m *Monitor) probe(ctx context.Context, t target) {
	start := time.Now()
	online := m.dial(ctx, t.address)
	metrics.RecordProbe(t.entityType, online, time.Since(start))

	newStatus := models.CameraStatusOffline
	if online {
		newStatus = models.CameraStatusOnline
	}
	if newStatus == t.status {
		return
	}

	m.recordTransition(ctx, t, newStatus)
}

func (m *Monitor) dial(ctx context.Context, address string) bool {
	conn, err := m.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (m *Monitor) recordTransition(ctx context.Context, t target, newStatus string) {
	var err error
	switch t.entityType {
	case models.EntityCamera:
		err = m.store.UpdateCameraStatus(ctx, t.id, newStatus)
	case models.EntityDVR:
		err = m.store.UpdateDVRStatus(ctx, t.id, newStatus)
	default:
		err = fmt.Errorf("unknown entity type %q", t.entityType)
	}
	if err != nil {
		logging.Err(err).
			Str("entity_type", t.entityType).
			Int64("entity_id", t.id).
			Msg("failed to persist status transition")
		return
	}

	metrics.RecordStatusTransition(t.entityType, newStatus)
	logging.Info().
		Str("entity_type", t.entityType).
		Int64("entity_id", t.id).
		Str("name", t.name).
		Str("from", t.status).
		Str("to", newStatus).
		Msg("status transition")

	details, _ := json.Marshal(map[string]string{
		"from": t.status,
		"to":   newStatus,
	})
	if err := m.store.InsertAction(ctx, t.entityType, t.id, models.ActionStatusChanged, string(details)); err != nil {
		logging.Err(err).Msg("failed to log status transition")
	}

	if m.notifier != nil {
		m.notifier.NotifyStatusChange(t.entityType, t.id, t.name, t.status, newStatus)
	}
}

func probeAddress(ip string, port int) string {
	if port == 0 {
		port = defaultProbePort
	}
	return net.JoinHostPort(ip, strconv.Itoa(port))
}
