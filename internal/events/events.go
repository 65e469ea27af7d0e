// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package events provides an optional NATS JetStream event pipeline.
// When enabled, mutation events flow through a durable stream and a
// supervised processor fans them out to WebSocket clients; a restart
// never loses an in-flight update. Single-instance deployments run the
// broker embedded in-process.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Stream identity. Subjects carry the entity type as the last token so
// consumers can filter cameras from DVRs.
const (
	StreamName    = "CAMCONTROL_EVENTS"
	SubjectPrefix = "camcontrol.events"
	SubjectAll    = SubjectPrefix + ".>"
)

// Event is one mutation or status transition, as published to the stream.
type Event struct {
	EventID    string    `json:"event_id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	Name       string    `json:"name,omitempty"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent creates an event with a fresh ID and timestamp.
func NewEvent(entityType string, entityID int64, action, name, details string) *Event {
	return &Event{
		EventID:    uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Name:       name,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}
}

// Subject returns the NATS subject for this event.
func (e *Event) Subject() string {
	return SubjectPrefix + "." + e.EntityType
}

// Serialize encodes an event for the wire.
func Serialize(event *Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("serialize event: %w", err)
	}
	return data, nil
}

// Deserialize decodes an event from the wire.
func Deserialize(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("deserialize event: %w", err)
	}
	if event.EventID == "" {
		return nil, fmt.Errorf("event missing event_id")
	}
	return &event, nil
}
