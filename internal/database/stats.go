// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/coff33ninja/cam-control/internal/metrics"
	"github.com/coff33ninja/cam-control/internal/models"
)

// GetDashboardStats computes the count fields of the dashboard summary
// in a single scan. The coverage fields (overlapping pairs, total
// coverage area) come from the coverage engine, not from SQL; the
// caller fills them in afterwards.
func (db *DB) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM cameras),
			(SELECT COUNT(*) FROM cameras WHERE status = ?),
			(SELECT COUNT(*) FROM cameras WHERE status = ?),
			(SELECT COUNT(*) FROM cameras WHERE status = ?),
			(SELECT COUNT(*) FROM cameras WHERE latitude IS NOT NULL AND longitude IS NOT NULL),
			(SELECT COUNT(*) FROM dvrs)`,
		models.CameraStatusOnline, models.CameraStatusOffline, models.CameraStatusUnknown,
	)

	var stats models.DashboardStats
	err := row.Scan(&stats.TotalCameras, &stats.OnlineCameras,
		&stats.OfflineCameras, &stats.UnknownCameras,
		&stats.PositionedCameras, &stats.TotalDVRs)
	metrics.RecordDBQuery("select", "stats", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return &stats, nil
}
