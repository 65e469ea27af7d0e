// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package models

import (
	"time"
)

// MapConfiguration is a saved map view: center, zoom and tile layer.
// The dashboard loads the default configuration on startup and lets
// operators save named views of different sites.
type MapConfiguration struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required,min=1,max=200"`
	CenterLat    float64   `json:"center_lat" validate:"latitude"`
	CenterLon    float64   `json:"center_lon" validate:"longitude"`
	ZoomLevel    int       `json:"zoom_level" validate:"min=1,max=22"`
	TileProvider string    `json:"tile_provider,omitempty" validate:"omitempty,max=100"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaveMapConfigurationRequest is the payload for creating or updating
// a saved map view.
type SaveMapConfigurationRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	CenterLat    float64 `json:"center_lat" validate:"latitude"`
	CenterLon    float64 `json:"center_lon" validate:"longitude"`
	ZoomLevel    int     `json:"zoom_level" validate:"min=1,max=22"`
	TileProvider string  `json:"tile_provider,omitempty" validate:"omitempty,max=100"`
	IsDefault    bool    `json:"is_default"`
}
