// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/coff33ninja/cam-control/internal/config"
)

// EnsureStream creates or updates the event stream before publishers
// and subscribers attach. Idempotent; safe to run on every startup.
//
// The stream name cannot carry the subject wildcard, so AutoProvision
// is disabled everywhere else and this is the single place the stream
// is defined.
func EnsureStream(ctx context.Context, url string, cfg *config.NATSConfig) error {
	nc, err := natsgo.Connect(url,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(5),
		natsgo.ReconnectWait(time.Second),
	)
	if err != nil {
		return fmt.Errorf("connect for stream init: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create jetstream context: %w", err)
	}

	streamCfg := jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectAll},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      time.Duration(cfg.StreamRetentionDays) * 24 * time.Hour,
		MaxBytes:    cfg.MaxStore,
		Duplicates:  2 * time.Minute,
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
		AllowDirect: true,
	}

	_, err = js.Stream(ctx, StreamName)
	if err == nil {
		if _, err := js.UpdateStream(ctx, streamCfg); err != nil {
			return fmt.Errorf("update stream %s: %w", StreamName, err)
		}
		return nil
	}
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		if _, err := js.CreateStream(ctx, streamCfg); err != nil {
			return fmt.Errorf("create stream %s: %w", StreamName, err)
		}
		return nil
	}
	return fmt.Errorf("lookup stream %s: %w", StreamName, err)
}
