// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package database

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested row does not exist.
// Handlers map it to a 404 with the NOT_FOUND error code.
var ErrNotFound = errors.New("record not found")

// mapRowError converts sql.ErrNoRows into the package sentinel so
// callers can use errors.Is without importing database/sql.
func mapRowError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
