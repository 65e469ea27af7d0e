// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package metrics

import (
	"errors"
	"testing"
	"time"
)

// The collectors are package-level promauto vars registered on the
// default registry; these tests exercise the helpers to catch label
// cardinality mistakes (wrong label count panics at record time).

func TestRecordDBQuery(t *testing.T) {
	RecordDBQuery("select", "cameras", 5*time.Millisecond, nil)
	RecordDBQuery("insert", "cameras", 10*time.Millisecond, errors.New("boom"))
}

func TestRecordAPIRequest(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/cameras", "200", 3*time.Millisecond)
	RecordAPIRequest("POST", "/api/v1/cameras", "422", 1*time.Millisecond)
}

func TestTrackActiveRequest(t *testing.T) {
	TrackActiveRequest(true)
	TrackActiveRequest(false)
}

func TestRecordCoverageHelpers(t *testing.T) {
	RecordCoverageComputation("circular")
	RecordCoverageComputation("directional")
	RecordOverlapScan(100*time.Microsecond, 3)
}

func TestRecordProbeAndTransition(t *testing.T) {
	RecordProbe("camera", true, 20*time.Millisecond)
	RecordProbe("dvr", false, 5*time.Second)
	RecordStatusTransition("camera", "offline")
}

func TestRecordGeocodeLookup(t *testing.T) {
	RecordGeocodeLookup("nominatim", "success", 200*time.Millisecond)
	RecordGeocodeLookup("ipapi", "rejected", 0)
}
