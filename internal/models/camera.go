// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package models

import (
	"time"
)

// Camera status values reported by the reachability monitor.
const (
	CameraStatusOnline  = "online"
	CameraStatusOffline = "offline"
	CameraStatusUnknown = "unknown"
)

// Camera represents a security camera placed (or not yet placed) on the map.
//
// Latitude and Longitude are nullable: a camera can be registered before
// anyone drags it onto the map, and unpositioned cameras are excluded
// from coverage and overlap computation rather than treated as sitting
// at (0,0). CoverageRadius, FieldOfView and Direction may be zero in
// storage; the coverage engine resolves zero to its defaults.
type Camera struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required,min=1,max=200"`
	IPAddress      string    `json:"ip_address,omitempty" validate:"omitempty,ip|hostname"`
	Port           int       `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Latitude       *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64  `json:"longitude" validate:"omitempty,longitude"`
	DVRID          *int64    `json:"dvr_id"`
	Status         string    `json:"status"`
	CoverageRadius float64   `json:"coverage_radius" validate:"omitempty,gt=0,lte=10000"`
	FieldOfView    float64   `json:"field_of_view" validate:"omitempty,gt=0,lte=360"`
	Direction      float64   `json:"direction" validate:"omitempty,gte=0,lt=360"`
	Notes          string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Positioned reports whether the camera has both map coordinates.
func (c *Camera) Positioned() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// CreateCameraRequest is the payload for registering a camera.
// Coordinates and coverage parameters are all optional at creation time.
type CreateCameraRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	IPAddress      string   `json:"ip_address,omitempty" validate:"omitempty,ip|hostname"`
	Port           int      `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	DVRID          *int64   `json:"dvr_id"`
	CoverageRadius float64  `json:"coverage_radius" validate:"omitempty,gt=0,lte=10000"`
	FieldOfView    float64  `json:"field_of_view" validate:"omitempty,gt=0,lte=360"`
	Direction      float64  `json:"direction" validate:"omitempty,gte=0,lt=360"`
	Notes          string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateCameraRequest is the payload for a full camera update.
// Same shape as creation; the ID comes from the URL.
type UpdateCameraRequest = CreateCameraRequest

// PositionRequest is the payload for moving a camera or DVR on the map
// (the drag-and-drop endpoint). Both coordinates are required; removing
// a unit from the map goes through the full update instead.
type PositionRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// CoverageParamsRequest updates only a camera's coverage parameters,
// used by the coverage editing panel.
type CoverageParamsRequest struct {
	CoverageRadius float64 `json:"coverage_radius" validate:"required,gt=0,lte=10000"`
	FieldOfView    float64 `json:"field_of_view" validate:"required,gt=0,lte=360"`
	Direction      float64 `json:"direction" validate:"gte=0,lt=360"`
}
