// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coff33ninja/cam-control/internal/metrics"
	"github.com/coff33ninja/cam-control/internal/models"
)

// InsertAction writes one audit trail row. Failures are returned to the
// caller but never abort the mutation they describe.
func (db *DB) InsertAction(ctx context.Context, entityType string, entityID int64, action, details string) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO action_log (entity_type, entity_id, action, details)
		VALUES (?, ?, ?, ?)`,
		entityType, entityID, action, nullString(details),
	)
	metrics.RecordDBQuery("insert", "action_log", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert action log entry: %w", err)
	}
	return nil
}

// ListActions returns audit trail rows newest first.
func (db *DB) ListActions(ctx context.Context, limit, offset int) ([]models.ActionLogEntry, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM action_log
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	metrics.RecordDBQuery("select", "action_log", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer closeQuietly(rows)

	return scanActions(rows)
}

// ListActionsForEntity returns the audit trail for one camera or DVR,
// newest first.
func (db *DB) ListActionsForEntity(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]models.ActionLogEntry, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM action_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		entityType, entityID, limit, offset,
	)
	metrics.RecordDBQuery("select", "action_log", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions for %s %d: %w", entityType, entityID, err)
	}
	defer closeQuietly(rows)

	return scanActions(rows)
}

func scanActions(rows *sql.Rows) ([]models.ActionLogEntry, error) {
	entries := make([]models.ActionLogEntry, 0)
	for rows.Next() {
		var (
			entry   models.ActionLogEntry
			details sql.NullString
		)
		err := rows.Scan(&entry.ID, &entry.EntityType, &entry.EntityID,
			&entry.Action, &details, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action log entry: %w", err)
		}
		entry.Details = details.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
