// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/coff33ninja/cam-control/internal/config"
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/metrics"
	"github.com/coff33ninja/cam-control/internal/models"
	"github.com/coff33ninja/cam-control/internal/websocket"
)

// Processor consumes the event stream through a durable queue-group
// consumer and fans events out to WebSocket clients. Runs as a
// supervised service; the durable consumer resumes where it left off
// after a restart.
type Processor struct {
	cfg    *config.NATSConfig
	url    string
	hub    *websocket.Hub
	logger watermill.LoggerAdapter
}

// NewProcessor creates the event processor.
func NewProcessor(cfg *config.NATSConfig, url string, hub *websocket.Hub, logger watermill.LoggerAdapter) *Processor {
	return &Processor{
		cfg:    cfg,
		url:    url,
		hub:    hub,
		logger: logger,
	}
}

// Serve implements suture.Service.
func (p *Processor) Serve(ctx context.Context) error {
	subscriber, err := p.newSubscriber()
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	defer func() { _ = subscriber.Close() }()

	messages, err := subscriber.Subscribe(ctx, SubjectAll)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectAll, err)
	}

	logging.Info().Str("subject", SubjectAll).Msg("event processor started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("event processor stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("subscription channel closed")
			}
			p.handle(msg)
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (p *Processor) String() string {
	return "event-processor"
}

func (p *Processor) newSubscriber() (message.Subscriber, error) {
	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(time.Second),
	}

	subOpts := []natsgo.SubOpt{
		natsgo.MaxDeliver(5),
		natsgo.AckWait(30 * time.Second),
		natsgo.BindStream(StreamName),
		natsgo.DeliverNew(),
	}

	return wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              p.url,
		QueueGroupPrefix: p.cfg.QueueGroup,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     p.cfg.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:         false,
			AutoProvision:    false,
			SubscribeOptions: subOpts,
			DurablePrefix:    p.cfg.DurableName,
		},
	}, p.logger)
}

func (p *Processor) handle(msg *message.Message) {
	start := time.Now()
	metrics.NATSMessagesConsumed.Inc()

	event, err := Deserialize(msg.Payload)
	if err != nil {
		metrics.NATSMessagesParseFailed.Inc()
		logging.Err(err).Str("message_uuid", msg.UUID).Msg("dropping unparseable event")
		// Ack: redelivery cannot fix a malformed payload.
		msg.Ack()
		return
	}

	p.hub.Broadcast(messageTypeFor(event), event)
	msg.Ack()

	metrics.NATSProcessingDuration.Observe(time.Since(start).Seconds())
}

// messageTypeFor maps a stream event to the WebSocket message type the
// dashboard expects.
func messageTypeFor(event *Event) string {
	if event.EntityType == models.EntityMap {
		return websocket.MessageTypeMapUpdated
	}
	switch event.Action {
	case models.ActionCreated:
		if event.EntityType == models.EntityDVR {
			return websocket.MessageTypeDVRUpdated
		}
		return websocket.MessageTypeCameraCreated
	case models.ActionDeleted:
		return websocket.MessageTypeCameraDeleted
	case models.ActionMoved:
		return websocket.MessageTypeCameraMoved
	case models.ActionStatusChanged:
		return websocket.MessageTypeStatusChanged
	case models.ActionUpdated:
		if event.EntityType == models.EntityDVR {
			return websocket.MessageTypeDVRUpdated
		}
		return websocket.MessageTypeCameraUpdated
	default:
		return websocket.MessageTypeCameraUpdated
	}
}
