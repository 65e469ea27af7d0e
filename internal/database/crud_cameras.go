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

const cameraColumns = `id, name, ip_address, port, latitude, longitude, dvr_id, status,
	coverage_radius, field_of_view, direction, notes, created_at, updated_at`

// CreateCamera inserts a new camera and returns it with its assigned ID.
func (db *DB) CreateCamera(ctx context.Context, req *models.CreateCameraRequest) (*models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO cameras (name, ip_address, port, latitude, longitude, dvr_id,
			status, coverage_radius, field_of_view, direction, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+cameraColumns,
		req.Name, nullString(req.IPAddress), nullInt(req.Port),
		req.Latitude, req.Longitude, req.DVRID,
		models.CameraStatusUnknown, req.CoverageRadius, req.FieldOfView,
		req.Direction, nullString(req.Notes),
	)

	camera, err := scanCamera(row)
	metrics.RecordDBQuery("insert", "cameras", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	return camera, nil
}

// GetCamera fetches one camera by ID. Returns ErrNotFound if missing.
func (db *DB) GetCamera(ctx context.Context, id int64) (*models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+cameraColumns+` FROM cameras WHERE id = ?`, id)

	camera, err := scanCamera(row)
	metrics.RecordDBQuery("select", "cameras", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return camera, nil
}

// ListCameras returns all cameras ordered by name.
func (db *DB) ListCameras(ctx context.Context) ([]models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+cameraColumns+` FROM cameras ORDER BY name, id`)
	metrics.RecordDBQuery("select", "cameras", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list cameras: %w", err)
	}
	defer closeQuietly(rows)

	cameras := make([]models.Camera, 0)
	for rows.Next() {
		camera, err := scanCamera(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, *camera)
	}
	return cameras, rows.Err()
}

// ListCamerasByDVR returns the cameras assigned to one DVR.
func (db *DB) ListCamerasByDVR(ctx context.Context, dvrID int64) ([]models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+cameraColumns+` FROM cameras WHERE dvr_id = ? ORDER BY name, id`, dvrID)
	metrics.RecordDBQuery("select", "cameras", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list cameras for dvr %d: %w", dvrID, err)
	}
	defer closeQuietly(rows)

	cameras := make([]models.Camera, 0)
	for rows.Next() {
		camera, err := scanCamera(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, *camera)
	}
	return cameras, rows.Err()
}

// UpdateCamera applies a full update to a camera.
// Returns ErrNotFound if the camera does not exist.
func (db *DB) UpdateCamera(ctx context.Context, id int64, req *models.UpdateCameraRequest) (*models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		UPDATE cameras SET
			name = ?, ip_address = ?, port = ?, latitude = ?, longitude = ?,
			dvr_id = ?, coverage_radius = ?, field_of_view = ?, direction = ?,
			notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+cameraColumns,
		req.Name, nullString(req.IPAddress), nullInt(req.Port),
		req.Latitude, req.Longitude, req.DVRID,
		req.CoverageRadius, req.FieldOfView, req.Direction,
		nullString(req.Notes), id,
	)

	camera, err := scanCamera(row)
	metrics.RecordDBQuery("update", "cameras", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return camera, nil
}

// UpdateCameraPosition moves a camera on the map (drag-and-drop).
func (db *DB) UpdateCameraPosition(ctx context.Context, id int64, lat, lon float64) (*models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		UPDATE cameras SET latitude = ?, longitude = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+cameraColumns,
		lat, lon, id,
	)

	camera, err := scanCamera(row)
	metrics.RecordDBQuery("update", "cameras", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return camera, nil
}

// UpdateCameraCoverage updates only the coverage parameters.
func (db *DB) UpdateCameraCoverage(ctx context.Context, id int64, req *models.CoverageParamsRequest) (*models.Camera, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		UPDATE cameras SET coverage_radius = ?, field_of_view = ?, direction = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+cameraColumns,
		req.CoverageRadius, req.FieldOfView, req.Direction, id,
	)

	camera, err := scanCamera(row)
	metrics.RecordDBQuery("update", "cameras", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return camera, nil
}

// UpdateCameraStatus records a reachability transition.
// Returns ErrNotFound if the camera does not exist.
func (db *DB) UpdateCameraStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		UPDATE cameras SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	metrics.RecordDBQuery("update", "cameras", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update camera status: %w", err)
	}
	return requireAffected(res)
}

// DeleteCamera removes a camera. Returns ErrNotFound if it does not exist.
func (db *DB) DeleteCamera(ctx context.Context, id int64) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM cameras WHERE id = ?`, id)
	metrics.RecordDBQuery("delete", "cameras", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete camera: %w", err)
	}
	return requireAffected(res)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCamera reads one camera row, converting nullable columns to pointers.
func scanCamera(row rowScanner) (*models.Camera, error) {
	var (
		c         models.Camera
		ipAddress sql.NullString
		port      sql.NullInt32
		lat, lon  sql.NullFloat64
		dvrID     sql.NullInt64
		notes     sql.NullString
	)

	err := row.Scan(&c.ID, &c.Name, &ipAddress, &port, &lat, &lon, &dvrID,
		&c.Status, &c.CoverageRadius, &c.FieldOfView, &c.Direction, &notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.IPAddress = ipAddress.String
	c.Port = int(port.Int32)
	c.Notes = notes.String
	if lat.Valid {
		c.Latitude = &lat.Float64
	}
	if lon.Valid {
		c.Longitude = &lon.Float64
	}
	if dvrID.Valid {
		c.DVRID = &dvrID.Int64
	}
	return &c, nil
}

// nullString maps "" to NULL for optional text columns.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullInt maps 0 to NULL for optional integer columns.
func nullInt(i int) interface{} {
	if i == 0 {
		return nil
	}
	return i
}
