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

const mapConfigColumns = `id, name, center_lat, center_lon, zoom_level,
	tile_provider, is_default, created_at, updated_at`

// SaveMapConfiguration creates or updates a named map view. Names are
// unique; saving an existing name overwrites that view. When the saved
// view is marked default, the flag is cleared on every other view first
// so at most one default exists.
func (db *DB) SaveMapConfiguration(ctx context.Context, req *models.SaveMapConfigurationRequest) (*models.MapConfiguration, error) {
	qctx, cancel := queryContext(ctx)
	defer cancel()

	if req.IsDefault {
		start := time.Now()
		_, err := db.conn.ExecContext(qctx, `
			UPDATE map_configurations SET is_default = FALSE, updated_at = CURRENT_TIMESTAMP
			WHERE is_default = TRUE AND name <> ?`, req.Name)
		metrics.RecordDBQuery("update", "map_configurations", time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("failed to clear default map configuration: %w", err)
		}
	}

	start := time.Now()
	res, err := db.conn.ExecContext(qctx, `
		UPDATE map_configurations SET
			center_lat = ?, center_lon = ?, zoom_level = ?,
			tile_provider = ?, is_default = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?`,
		req.CenterLat, req.CenterLon, req.ZoomLevel,
		nullString(req.TileProvider), req.IsDefault, req.Name,
	)
	metrics.RecordDBQuery("update", "map_configurations", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update map configuration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		start = time.Now()
		_, err = db.conn.ExecContext(qctx, `
			INSERT INTO map_configurations (name, center_lat, center_lon,
				zoom_level, tile_provider, is_default)
			VALUES (?, ?, ?, ?, ?, ?)`,
			req.Name, req.CenterLat, req.CenterLon, req.ZoomLevel,
			nullString(req.TileProvider), req.IsDefault,
		)
		metrics.RecordDBQuery("insert", "map_configurations", time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("failed to insert map configuration: %w", err)
		}
	}

	return db.GetMapConfigurationByName(ctx, req.Name)
}

// GetMapConfigurationByName fetches one saved view by name.
func (db *DB) GetMapConfigurationByName(ctx context.Context, name string) (*models.MapConfiguration, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mapConfigColumns+` FROM map_configurations WHERE name = ?`, name)

	cfg, err := scanMapConfiguration(row)
	metrics.RecordDBQuery("select", "map_configurations", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return cfg, nil
}

// GetDefaultMapConfiguration returns the view flagged as default, or
// ErrNotFound when none has been saved yet.
func (db *DB) GetDefaultMapConfiguration(ctx context.Context) (*models.MapConfiguration, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mapConfigColumns+` FROM map_configurations WHERE is_default = TRUE LIMIT 1`)

	cfg, err := scanMapConfiguration(row)
	metrics.RecordDBQuery("select", "map_configurations", time.Since(start), err)
	if err != nil {
		return nil, mapRowError(err)
	}
	return cfg, nil
}

// ListMapConfigurations returns all saved views ordered by name.
func (db *DB) ListMapConfigurations(ctx context.Context) ([]models.MapConfiguration, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+mapConfigColumns+` FROM map_configurations ORDER BY name`)
	metrics.RecordDBQuery("select", "map_configurations", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list map configurations: %w", err)
	}
	defer closeQuietly(rows)

	configs := make([]models.MapConfiguration, 0)
	for rows.Next() {
		cfg, err := scanMapConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan map configuration: %w", err)
		}
		configs = append(configs, *cfg)
	}
	return configs, rows.Err()
}

// DeleteMapConfiguration removes a saved view by ID.
func (db *DB) DeleteMapConfiguration(ctx context.Context, id int64) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM map_configurations WHERE id = ?`, id)
	metrics.RecordDBQuery("delete", "map_configurations", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete map configuration: %w", err)
	}
	return requireAffected(res)
}

func scanMapConfiguration(row rowScanner) (*models.MapConfiguration, error) {
	var (
		cfg          models.MapConfiguration
		tileProvider sql.NullString
	)

	err := row.Scan(&cfg.ID, &cfg.Name, &cfg.CenterLat, &cfg.CenterLon,
		&cfg.ZoomLevel, &tileProvider, &cfg.IsDefault,
		&cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}

	cfg.TileProvider = tileProvider.String
	return &cfg, nil
}
