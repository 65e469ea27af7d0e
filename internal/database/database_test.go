// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/coff33ninja/cam-control/internal/config"
	"github.com/coff33ninja/cam-control/internal/models"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      filepath.Join(t.TempDir(), "test.duckdb"),
		MaxMemory: "256MB",
		Threads:   2,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func createTestCamera(t *testing.T, db *DB, name string) *models.Camera {
	t.Helper()

	camera, err := db.CreateCamera(context.Background(), &models.CreateCameraRequest{
		Name:           name,
		CoverageRadius: 50,
	})
	if err != nil {
		t.Fatalf("CreateCamera() error = %v", err)
	}
	return camera
}

func floatPtr(v float64) *float64 { return &v }

// ============================================================================
// Connection and Schema Tests
// ============================================================================

func TestNewInitializesSchema(t *testing.T) {
	db := newTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	// Schema creation must be idempotent: reinitializing against an
	// existing database file must not fail.
	if err := db.initialize(); err != nil {
		t.Fatalf("initialize() on existing schema error = %v", err)
	}
}

// ============================================================================
// Camera CRUD Tests
// ============================================================================

func TestCameraCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateCamera(ctx, &models.CreateCameraRequest{
		Name:           "Front Gate",
		IPAddress:      "192.168.1.10",
		Port:           554,
		Latitude:       floatPtr(40.7128),
		Longitude:      floatPtr(-74.0060),
		CoverageRadius: 75,
		FieldOfView:    90,
		Direction:      45,
		Notes:          "pole mount",
	})
	if err != nil {
		t.Fatalf("CreateCamera() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("CreateCamera() did not assign an ID")
	}
	if created.Status != models.CameraStatusUnknown {
		t.Errorf("new camera status = %q, want %q", created.Status, models.CameraStatusUnknown)
	}

	got, err := db.GetCamera(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCamera() error = %v", err)
	}
	if got.Name != "Front Gate" {
		t.Errorf("Name = %q, want %q", got.Name, "Front Gate")
	}
	if got.IPAddress != "192.168.1.10" || got.Port != 554 {
		t.Errorf("endpoint = %s:%d, want 192.168.1.10:554", got.IPAddress, got.Port)
	}
	if !got.Positioned() {
		t.Fatal("camera with coordinates reported as unpositioned")
	}
	if *got.Latitude != 40.7128 || *got.Longitude != -74.0060 {
		t.Errorf("position = (%v, %v), want (40.7128, -74.0060)", *got.Latitude, *got.Longitude)
	}
	if got.CoverageRadius != 75 || got.FieldOfView != 90 || got.Direction != 45 {
		t.Errorf("coverage = (%v, %v, %v), want (75, 90, 45)",
			got.CoverageRadius, got.FieldOfView, got.Direction)
	}

	updated, err := db.UpdateCamera(ctx, created.ID, &models.UpdateCameraRequest{
		Name:           "Front Gate East",
		CoverageRadius: 100,
	})
	if err != nil {
		t.Fatalf("UpdateCamera() error = %v", err)
	}
	if updated.Name != "Front Gate East" {
		t.Errorf("updated Name = %q, want %q", updated.Name, "Front Gate East")
	}
	if updated.Positioned() {
		t.Error("full update with nil coordinates should clear the position")
	}
	if updated.IPAddress != "" {
		t.Errorf("full update with empty ip_address should clear it, got %q", updated.IPAddress)
	}

	if err := db.DeleteCamera(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCamera() error = %v", err)
	}
	if _, err := db.GetCamera(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCamera() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCameraUnpositionedRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := createTestCamera(t, db, "Warehouse Cam")
	if created.Positioned() {
		t.Fatal("camera created without coordinates reported as positioned")
	}

	got, err := db.GetCamera(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCamera() error = %v", err)
	}
	if got.Latitude != nil || got.Longitude != nil {
		t.Error("NULL coordinates should scan as nil pointers")
	}
	if got.DVRID != nil {
		t.Error("NULL dvr_id should scan as nil pointer")
	}
}

func TestUpdateCameraPosition(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := createTestCamera(t, db, "Lobby Cam")

	moved, err := db.UpdateCameraPosition(ctx, created.ID, 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("UpdateCameraPosition() error = %v", err)
	}
	if !moved.Positioned() {
		t.Fatal("camera not positioned after position update")
	}
	if *moved.Latitude != 51.5074 || *moved.Longitude != -0.1278 {
		t.Errorf("position = (%v, %v), want (51.5074, -0.1278)", *moved.Latitude, *moved.Longitude)
	}

	if _, err := db.UpdateCameraPosition(ctx, 99999, 0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateCameraPosition() on missing camera error = %v, want ErrNotFound", err)
	}
}

func TestUpdateCameraCoverage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := createTestCamera(t, db, "Yard Cam")

	got, err := db.UpdateCameraCoverage(ctx, created.ID, &models.CoverageParamsRequest{
		CoverageRadius: 120,
		FieldOfView:    60,
		Direction:      270,
	})
	if err != nil {
		t.Fatalf("UpdateCameraCoverage() error = %v", err)
	}
	if got.CoverageRadius != 120 || got.FieldOfView != 60 || got.Direction != 270 {
		t.Errorf("coverage = (%v, %v, %v), want (120, 60, 270)",
			got.CoverageRadius, got.FieldOfView, got.Direction)
	}
	if got.Name != "Yard Cam" {
		t.Error("coverage update must not touch other fields")
	}
}

func TestUpdateCameraStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := createTestCamera(t, db, "Dock Cam")

	if err := db.UpdateCameraStatus(ctx, created.ID, models.CameraStatusOnline); err != nil {
		t.Fatalf("UpdateCameraStatus() error = %v", err)
	}

	got, err := db.GetCamera(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCamera() error = %v", err)
	}
	if got.Status != models.CameraStatusOnline {
		t.Errorf("status = %q, want %q", got.Status, models.CameraStatusOnline)
	}

	if err := db.UpdateCameraStatus(ctx, 99999, models.CameraStatusOffline); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateCameraStatus() on missing camera error = %v, want ErrNotFound", err)
	}
}

func TestListCamerasOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestCamera(t, db, "Zulu")
	createTestCamera(t, db, "Alpha")
	createTestCamera(t, db, "Mike")

	cameras, err := db.ListCameras(ctx)
	if err != nil {
		t.Fatalf("ListCameras() error = %v", err)
	}
	if len(cameras) != 3 {
		t.Fatalf("ListCameras() returned %d cameras, want 3", len(cameras))
	}
	for i, want := range []string{"Alpha", "Mike", "Zulu"} {
		if cameras[i].Name != want {
			t.Errorf("cameras[%d].Name = %q, want %q", i, cameras[i].Name, want)
		}
	}
}

// ============================================================================
// DVR Tests
// ============================================================================

func TestDVRCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateDVR(ctx, &models.CreateDVRRequest{
		Name:        "Main DVR",
		IPAddress:   "192.168.1.100",
		Port:        8000,
		StorageTB:   8,
		MaxChannels: 16,
	})
	if err != nil {
		t.Fatalf("CreateDVR() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("CreateDVR() did not assign an ID")
	}
	if created.CameraCount != 0 {
		t.Errorf("new DVR CameraCount = %d, want 0", created.CameraCount)
	}

	updated, err := db.UpdateDVR(ctx, created.ID, &models.UpdateDVRRequest{
		Name:        "Main DVR",
		StorageTB:   16,
		MaxChannels: 32,
	})
	if err != nil {
		t.Fatalf("UpdateDVR() error = %v", err)
	}
	if updated.StorageTB != 16 || updated.MaxChannels != 32 {
		t.Errorf("updated DVR = (%v TB, %d ch), want (16 TB, 32 ch)",
			updated.StorageTB, updated.MaxChannels)
	}

	if _, err := db.GetDVR(ctx, 99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDVR() on missing DVR error = %v, want ErrNotFound", err)
	}
}

func TestDVRCameraCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	dvr, err := db.CreateDVR(ctx, &models.CreateDVRRequest{Name: "Counting DVR"})
	if err != nil {
		t.Fatalf("CreateDVR() error = %v", err)
	}

	for _, name := range []string{"Cam A", "Cam B"} {
		_, err := db.CreateCamera(ctx, &models.CreateCameraRequest{
			Name:  name,
			DVRID: &dvr.ID,
		})
		if err != nil {
			t.Fatalf("CreateCamera(%q) error = %v", name, err)
		}
	}

	got, err := db.GetDVR(ctx, dvr.ID)
	if err != nil {
		t.Fatalf("GetDVR() error = %v", err)
	}
	if got.CameraCount != 2 {
		t.Errorf("CameraCount = %d, want 2", got.CameraCount)
	}

	assigned, err := db.ListCamerasByDVR(ctx, dvr.ID)
	if err != nil {
		t.Fatalf("ListCamerasByDVR() error = %v", err)
	}
	if len(assigned) != 2 {
		t.Errorf("ListCamerasByDVR() returned %d cameras, want 2", len(assigned))
	}
}

func TestDeleteDVRUnassignsCameras(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	dvr, err := db.CreateDVR(ctx, &models.CreateDVRRequest{Name: "Doomed DVR"})
	if err != nil {
		t.Fatalf("CreateDVR() error = %v", err)
	}

	camera, err := db.CreateCamera(ctx, &models.CreateCameraRequest{
		Name:      "Orphan Cam",
		Latitude:  floatPtr(40.0),
		Longitude: floatPtr(-74.0),
		DVRID:     &dvr.ID,
	})
	if err != nil {
		t.Fatalf("CreateCamera() error = %v", err)
	}

	if err := db.DeleteDVR(ctx, dvr.ID); err != nil {
		t.Fatalf("DeleteDVR() error = %v", err)
	}

	// The camera must survive with its position intact; only the DVR
	// link is cleared.
	got, err := db.GetCamera(ctx, camera.ID)
	if err != nil {
		t.Fatalf("GetCamera() after DVR delete error = %v", err)
	}
	if got.DVRID != nil {
		t.Errorf("camera DVRID = %v after DVR delete, want nil", *got.DVRID)
	}
	if !got.Positioned() {
		t.Error("camera lost its position when its DVR was deleted")
	}

	if err := db.DeleteDVR(ctx, dvr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDVR() second call error = %v, want ErrNotFound", err)
	}
}

// ============================================================================
// Map Configuration Tests
// ============================================================================

func TestSaveMapConfigurationUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := db.SaveMapConfiguration(ctx, &models.SaveMapConfigurationRequest{
		Name:      "HQ",
		CenterLat: 40.7128,
		CenterLon: -74.0060,
		ZoomLevel: 15,
	})
	if err != nil {
		t.Fatalf("SaveMapConfiguration() error = %v", err)
	}

	second, err := db.SaveMapConfiguration(ctx, &models.SaveMapConfigurationRequest{
		Name:      "HQ",
		CenterLat: 41.0,
		CenterLon: -75.0,
		ZoomLevel: 12,
	})
	if err != nil {
		t.Fatalf("SaveMapConfiguration() overwrite error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("overwriting by name changed the ID: %d -> %d", first.ID, second.ID)
	}
	if second.CenterLat != 41.0 || second.ZoomLevel != 12 {
		t.Errorf("overwrite not applied: got (%v, zoom %d)", second.CenterLat, second.ZoomLevel)
	}

	configs, err := db.ListMapConfigurations(ctx)
	if err != nil {
		t.Fatalf("ListMapConfigurations() error = %v", err)
	}
	if len(configs) != 1 {
		t.Errorf("ListMapConfigurations() returned %d views, want 1", len(configs))
	}
}

func TestDefaultMapConfigurationExclusive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, req := range []*models.SaveMapConfigurationRequest{
		{Name: "Site A", CenterLat: 40, CenterLon: -74, ZoomLevel: 14, IsDefault: true},
		{Name: "Site B", CenterLat: 41, CenterLon: -75, ZoomLevel: 14, IsDefault: true},
	} {
		if _, err := db.SaveMapConfiguration(ctx, req); err != nil {
			t.Fatalf("SaveMapConfiguration(%q) error = %v", req.Name, err)
		}
	}

	def, err := db.GetDefaultMapConfiguration(ctx)
	if err != nil {
		t.Fatalf("GetDefaultMapConfiguration() error = %v", err)
	}
	if def.Name != "Site B" {
		t.Errorf("default view = %q, want %q", def.Name, "Site B")
	}

	configs, err := db.ListMapConfigurations(ctx)
	if err != nil {
		t.Fatalf("ListMapConfigurations() error = %v", err)
	}
	defaults := 0
	for _, cfg := range configs {
		if cfg.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("found %d default views, want exactly 1", defaults)
	}
}

func TestGetDefaultMapConfigurationEmpty(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetDefaultMapConfiguration(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDefaultMapConfiguration() on empty table error = %v, want ErrNotFound", err)
	}
}

// ============================================================================
// Action Log Tests
// ============================================================================

func TestActionLog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	camera := createTestCamera(t, db, "Logged Cam")

	entries := []struct {
		action  string
		details string
	}{
		{models.ActionCreated, ""},
		{models.ActionMoved, `{"latitude":40.7,"longitude":-74.0}`},
		{models.ActionStatusChanged, `{"from":"unknown","to":"online"}`},
	}
	for _, e := range entries {
		if err := db.InsertAction(ctx, models.EntityCamera, camera.ID, e.action, e.details); err != nil {
			t.Fatalf("InsertAction(%q) error = %v", e.action, err)
		}
	}
	if err := db.InsertAction(ctx, models.EntityDVR, 42, models.ActionCreated, ""); err != nil {
		t.Fatalf("InsertAction(dvr) error = %v", err)
	}

	all, err := db.ListActions(ctx, 50, 0)
	if err != nil {
		t.Fatalf("ListActions() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListActions() returned %d entries, want 4", len(all))
	}
	// Newest first.
	if all[0].EntityType != models.EntityDVR {
		t.Errorf("first entry entity = %q, want most recent (%q)", all[0].EntityType, models.EntityDVR)
	}

	forCamera, err := db.ListActionsForEntity(ctx, models.EntityCamera, camera.ID, 50, 0)
	if err != nil {
		t.Fatalf("ListActionsForEntity() error = %v", err)
	}
	if len(forCamera) != 3 {
		t.Fatalf("ListActionsForEntity() returned %d entries, want 3", len(forCamera))
	}
	if forCamera[0].Action != models.ActionStatusChanged {
		t.Errorf("newest camera action = %q, want %q", forCamera[0].Action, models.ActionStatusChanged)
	}

	limited, err := db.ListActions(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListActions() with limit error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListActions(limit=2) returned %d entries, want 2", len(limited))
	}
}

// ============================================================================
// Dashboard Stats Tests
// ============================================================================

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	positioned, err := db.CreateCamera(ctx, &models.CreateCameraRequest{
		Name:      "Positioned",
		Latitude:  floatPtr(40.0),
		Longitude: floatPtr(-74.0),
	})
	if err != nil {
		t.Fatalf("CreateCamera() error = %v", err)
	}
	createTestCamera(t, db, "Unpositioned")

	if err := db.UpdateCameraStatus(ctx, positioned.ID, models.CameraStatusOnline); err != nil {
		t.Fatalf("UpdateCameraStatus() error = %v", err)
	}
	if _, err := db.CreateDVR(ctx, &models.CreateDVRRequest{Name: "DVR 1"}); err != nil {
		t.Fatalf("CreateDVR() error = %v", err)
	}

	stats, err := db.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats() error = %v", err)
	}

	if stats.TotalCameras != 2 {
		t.Errorf("TotalCameras = %d, want 2", stats.TotalCameras)
	}
	if stats.OnlineCameras != 1 {
		t.Errorf("OnlineCameras = %d, want 1", stats.OnlineCameras)
	}
	if stats.UnknownCameras != 1 {
		t.Errorf("UnknownCameras = %d, want 1", stats.UnknownCameras)
	}
	if stats.OfflineCameras != 0 {
		t.Errorf("OfflineCameras = %d, want 0", stats.OfflineCameras)
	}
	if stats.PositionedCameras != 1 {
		t.Errorf("PositionedCameras = %d, want 1", stats.PositionedCameras)
	}
	if stats.TotalDVRs != 1 {
		t.Errorf("TotalDVRs = %d, want 1", stats.TotalDVRs)
	}
}
