// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import "math"

// Meters-per-degree constants for the local planar projection used by
// AreaSize. Fixed values, not a proper map projection; fine for
// polygons at coverage-radius scale.
const (
	metersPerDegreeLon = 111320.0
	metersPerDegreeLat = 110540.0
)

// AreaSize estimates the area of a coverage polygon in square meters
// with the shoelace formula, after projecting each vertex to local
// planar meters. Polygons with fewer than 3 vertices have no area and
// return 0 rather than an error.
func AreaSize(vertices []Point) float64 {
	if len(vertices) < 3 {
		return 0.0
	}

	area := 0.0
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n

		x1 := vertices[i].Lon * metersPerDegreeLon * math.Cos(vertices[i].Lat*math.Pi/180)
		y1 := vertices[i].Lat * metersPerDegreeLat
		x2 := vertices[j].Lon * metersPerDegreeLon * math.Cos(vertices[j].Lat*math.Pi/180)
		y2 := vertices[j].Lat * metersPerDegreeLat

		area += x1*y2 - x2*y1
	}

	return math.Abs(area) / 2.0
}
