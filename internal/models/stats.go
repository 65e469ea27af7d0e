// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package models

// DashboardStats is the summary block shown on the dashboard header.
type DashboardStats struct {
	TotalCameras      int     `json:"total_cameras"`
	OnlineCameras     int     `json:"online_cameras"`
	OfflineCameras    int     `json:"offline_cameras"`
	UnknownCameras    int     `json:"unknown_cameras"`
	PositionedCameras int     `json:"positioned_cameras"`
	TotalDVRs         int     `json:"total_dvrs"`
	OverlappingPairs  int     `json:"overlapping_pairs"`
	TotalCoverageSqM  float64 `json:"total_coverage_sq_m"`
}
