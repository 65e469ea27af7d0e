// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import "errors"

// Sentinel errors returned by the polygon generators. Callers dispatch
// with errors.Is; the wrapped message carries the offending values.
var (
	// ErrInvalidCoordinate indicates a latitude outside [-90, 90] or a
	// longitude outside [-180, 180].
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidRadius indicates a coverage radius <= 0 meters.
	ErrInvalidRadius = errors.New("invalid radius")

	// ErrInvalidFieldOfView indicates a field of view outside (0, 360] degrees.
	ErrInvalidFieldOfView = errors.New("invalid field of view")

	// ErrInvalidDirection indicates a heading outside [0, 360) degrees.
	ErrInvalidDirection = errors.New("invalid direction")
)
