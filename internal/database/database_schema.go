// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

/*
database_schema.go - Database Schema Management

This file manages the DuckDB database schema including sequence, table
and index creation.

Tables:
  - cameras: Security cameras with optional map position, coverage
    parameters, and DVR assignment
  - dvrs: Digital video recorders cameras feed into
  - map_configurations: Saved map views (center, zoom, tile layer)
  - action_log: Audit trail of every mutation and status transition

Schema Strategy:
All columns are defined in the initial CREATE TABLE statements; the
schema is created idempotently at startup with IF NOT EXISTS. IDs come
from explicit sequences because DuckDB has no auto-increment column.
*/

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSequences creates the ID sequences.
func (db *DB) createSequences() error {
	ctx, cancel := schemaContext()
	defer cancel()

	sequences := []string{
		`CREATE SEQUENCE IF NOT EXISTS cameras_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS dvrs_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS map_configurations_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS action_log_id_seq START 1`,
	}

	for _, query := range sequences {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create sequence: %s: %w", query, err)
		}
	}
	return nil
}

// createTables creates the core database tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS dvrs (
			id BIGINT PRIMARY KEY DEFAULT nextval('dvrs_id_seq'),
			name TEXT NOT NULL,
			ip_address TEXT,
			port INTEGER,
			latitude DOUBLE,
			longitude DOUBLE,
			status TEXT NOT NULL DEFAULT 'unknown',
			storage_tb DOUBLE DEFAULT 0,
			max_channels INTEGER DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS cameras (
			id BIGINT PRIMARY KEY DEFAULT nextval('cameras_id_seq'),
			name TEXT NOT NULL,
			ip_address TEXT,
			port INTEGER,
			latitude DOUBLE,
			longitude DOUBLE,
			dvr_id BIGINT,
			status TEXT NOT NULL DEFAULT 'unknown',
			coverage_radius DOUBLE DEFAULT 0,
			field_of_view DOUBLE DEFAULT 0,
			direction DOUBLE DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS map_configurations (
			id BIGINT PRIMARY KEY DEFAULT nextval('map_configurations_id_seq'),
			name TEXT NOT NULL UNIQUE,
			center_lat DOUBLE NOT NULL,
			center_lon DOUBLE NOT NULL,
			zoom_level INTEGER NOT NULL DEFAULT 13,
			tile_provider TEXT,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS action_log (
			id BIGINT PRIMARY KEY DEFAULT nextval('action_log_id_seq'),
			entity_type TEXT NOT NULL,
			entity_id BIGINT NOT NULL,
			action TEXT NOT NULL,
			details TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// createIndexes creates indexes for the common query patterns:
// camera-by-DVR lookups, status filtering, and action log scans.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_cameras_dvr_id ON cameras(dvr_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cameras_status ON cameras(status)`,
		`CREATE INDEX IF NOT EXISTS idx_action_log_entity ON action_log(entity_type, entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_action_log_created_at ON action_log(created_at)`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
