// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package models

import (
	"time"
)

// Action log entity types.
const (
	EntityCamera = "camera"
	EntityDVR    = "dvr"
	EntityMap    = "map"
)

// Action log action values. One row per mutation, written by the API
// handlers and the reachability monitor.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionMoved         = "moved"
	ActionStatusChanged = "status_changed"
)

// ActionLogEntry is one audit trail row. Details is free-form JSON
// describing the change (old/new coordinates, status transition, etc).
type ActionLogEntry struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
