// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package models defines the data structures shared between the HTTP
// API, the database layer, and the event pipeline: cameras, DVRs, map
// configurations, the action log, and the standard API response
// envelope. Validation tags on request types are enforced by the
// validation package before anything reaches storage.
package models
