// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package events

import (
	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/websocket"
)

// HubSink fans mutations out to WebSocket clients directly. Used when
// the NATS pipeline is disabled; the event envelope on the wire is
// identical either way, so the dashboard cannot tell the difference.
type HubSink struct {
	hub *websocket.Hub
}

// NewHubSink creates a sink that broadcasts through the given hub.
func NewHubSink(hub *websocket.Hub) *HubSink {
	return &HubSink{hub: hub}
}

// EntityChanged broadcasts the mutation to connected clients.
func (s *HubSink) EntityChanged(entityType string, entityID int64, action, name, details string) {
	event := NewEvent(entityType, entityID, action, name, details)
	s.hub.Broadcast(messageTypeFor(event), event)
}

// PublisherSink routes mutations through JetStream. The event
// processor consumes them and performs the WebSocket fan-out, so
// restarts replay nothing and every instance behind a load balancer
// sees the same stream.
type PublisherSink struct {
	publisher *Publisher
}

// NewPublisherSink creates a sink backed by the JetStream publisher.
func NewPublisherSink(publisher *Publisher) *PublisherSink {
	return &PublisherSink{publisher: publisher}
}

// EntityChanged publishes the mutation to the event stream. Publish
// failures are logged and dropped; the mutation itself already
// committed and the action log has the durable record.
func (s *PublisherSink) EntityChanged(entityType string, entityID int64, action, name, details string) {
	event := NewEvent(entityType, entityID, action, name, details)
	if err := s.publisher.PublishEvent(event); err != nil {
		logging.Err(err).
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Str("action", action).
			Msg("failed to publish entity change event")
	}
}
