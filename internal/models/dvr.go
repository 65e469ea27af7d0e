// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package models

import (
	"time"
)

// DVR represents a digital video recorder that cameras feed into.
// Like cameras, DVRs may exist before being placed on the map.
type DVR struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required,min=1,max=200"`
	IPAddress    string    `json:"ip_address,omitempty" validate:"omitempty,ip|hostname"`
	Port         int       `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Latitude     *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64  `json:"longitude" validate:"omitempty,longitude"`
	Status       string    `json:"status"`
	StorageTB    float64   `json:"storage_tb,omitempty" validate:"omitempty,gte=0"`
	MaxChannels  int       `json:"max_channels,omitempty" validate:"omitempty,min=0,max=512"`
	Notes        string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	CameraCount  int       `json:"camera_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Positioned reports whether the DVR has both map coordinates.
func (d *DVR) Positioned() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// CreateDVRRequest is the payload for registering a DVR.
type CreateDVRRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	IPAddress   string   `json:"ip_address,omitempty" validate:"omitempty,ip|hostname"`
	Port        int      `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	StorageTB   float64  `json:"storage_tb,omitempty" validate:"omitempty,gte=0"`
	MaxChannels int      `json:"max_channels,omitempty" validate:"omitempty,min=0,max=512"`
	Notes       string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateDVRRequest is the payload for a full DVR update.
type UpdateDVRRequest = CreateDVRRequest
