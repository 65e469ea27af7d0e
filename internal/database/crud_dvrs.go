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

// camera_count is computed on read rather than maintained as a column,
// so camera reassignment never leaves a stale counter behind.
const dvrColumns = `d.id, d.name, d.ip_address, d.port, d.latitude, d.longitude, d.status,
	d.storage_tb, d.max_channels, d.notes, d.created_at, d.updated_at,
	(SELECT COUNT(*) FROM cameras c WHERE c.dvr_id = d.id) AS camera_count`

// CreateDVR inserts a new DVR and returns it with its assigned ID.
func (db *DB) CreateDVR(ctx context.Context, req *models.CreateDVRRequest) (*models.DVR, error) {
	qctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	var id int64
	err := db.conn.QueryRowContext(qctx, `
		INSERT INTO dvrs (name, ip_address, port, latitude, longitude,
			status, storage_tb, max_channels, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		req.Name, nullString(req.IPAddress), nullInt(req.Port),
		req.Latitude, req.Longitude, models.CameraStatusUnknown,
		req.StorageTB, req.MaxChannels, nullString(req.Notes),
	).Scan(&id)
	metrics.RecordDBQuery("insert", "dvrs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to create dvr: %w", err)
	}

	return db.GetDVR(ctx, id)
}

// GetDVR fetches one DVR by ID. Returns ErrNotFound if missing.
func (db *DB) GetDVR(ctx context.Context, id int64) (*models.DVR, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+dvrColumns+` FROM dvrs d WHERE d.id = ?`, id)

	dvr, err := scanDVR(row)
	metrics.RecordDBQuery("select", "dvrs", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return dvr, nil
}

// ListDVRs returns all DVRs ordered by name, each with its camera count.
func (db *DB) ListDVRs(ctx context.Context) ([]models.DVR, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+dvrColumns+` FROM dvrs d ORDER BY d.name, d.id`)
	metrics.RecordDBQuery("select", "dvrs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list dvrs: %w", err)
	}
	defer closeQuietly(rows)

	dvrs := make([]models.DVR, 0)
	for rows.Next() {
		dvr, err := scanDVR(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dvr: %w", err)
		}
		dvrs = append(dvrs, *dvr)
	}
	return dvrs, rows.Err()
}

// UpdateDVR applies a full update to a DVR.
// Returns ErrNotFound if the DVR does not exist.
func (db *DB) UpdateDVR(ctx context.Context, id int64, req *models.UpdateDVRRequest) (*models.DVR, error) {
	qctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(qctx, `
		UPDATE dvrs SET
			name = ?, ip_address = ?, port = ?, latitude = ?, longitude = ?,
			storage_tb = ?, max_channels = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		req.Name, nullString(req.IPAddress), nullInt(req.Port),
		req.Latitude, req.Longitude, req.StorageTB, req.MaxChannels,
		nullString(req.Notes), id,
	)
	metrics.RecordDBQuery("update", "dvrs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update dvr: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return db.GetDVR(ctx, id)
}

// UpdateDVRPosition moves a DVR on the map.
func (db *DB) UpdateDVRPosition(ctx context.Context, id int64, lat, lon float64) (*models.DVR, error) {
	qctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(qctx, `
		UPDATE dvrs SET latitude = ?, longitude = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		lat, lon, id,
	)
	metrics.RecordDBQuery("update", "dvrs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update dvr position: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return db.GetDVR(ctx, id)
}

// UpdateDVRStatus records a reachability transition.
func (db *DB) UpdateDVRStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		UPDATE dvrs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	metrics.RecordDBQuery("update", "dvrs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update dvr status: %w", err)
	}
	return requireAffected(res)
}

// DeleteDVR removes a DVR after unassigning its cameras. Cameras keep
// their positions and coverage; only the dvr_id link is cleared.
func (db *DB) DeleteDVR(ctx context.Context, id int64) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		UPDATE cameras SET dvr_id = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE dvr_id = ?`, id)
	metrics.RecordDBQuery("update", "cameras", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to unassign cameras for dvr %d: %w", id, err)
	}

	start = time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM dvrs WHERE id = ?`, id)
	metrics.RecordDBQuery("delete", "dvrs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete dvr: %w", err)
	}
	return requireAffected(res)
}

// requireAffected maps "zero rows touched" to ErrNotFound.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanDVR reads one DVR row, converting nullable columns to pointers.
func scanDVR(row rowScanner) (*models.DVR, error) {
	var (
		d         models.DVR
		ipAddress sql.NullString
		port      sql.NullInt32
		lat, lon  sql.NullFloat64
		notes     sql.NullString
	)

	err := row.Scan(&d.ID, &d.Name, &ipAddress, &port, &lat, &lon, &d.Status,
		&d.StorageTB, &d.MaxChannels, &notes, &d.CreatedAt, &d.UpdatedAt,
		&d.CameraCount)
	if err != nil {
		return nil, err
	}

	d.IPAddress = ipAddress.String
	d.Port = int(port.Int32)
	d.Notes = notes.String
	if lat.Valid {
		d.Latitude = &lat.Float64
	}
	if lon.Valid {
		d.Longitude = &lon.Float64
	}
	return &d, nil
}
