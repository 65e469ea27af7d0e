// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package coverage computes camera coverage-area geometry for map
// visualization: circular and directional (sector) coverage polygons,
// pairwise coverage overlaps, and approximate polygon areas.
//
// The package is pure and stateless. Every function is a synchronous,
// side-effect-free function of its inputs with no I/O and no shared
// mutable state, so it is safe to call concurrently without locking.
//
// # Geometry model
//
// All calculations use a spherical Earth with the WGS84 equatorial
// radius (EarthRadiusM). Polygon vertices are produced with a
// local-flat approximation: the coverage radius is converted to
// degrees and offset from the center with cos/sin, dividing the
// longitude offset by cos(lat) to compensate for longitude
// compression. This is accurate for the coverage radii cameras
// actually have (tens to low hundreds of meters) and degrades near
// the poles; that is a documented simplification, not a defect.
//
// Distances between cameras use the Haversine great-circle formula.
// Polygon areas use the planar shoelace formula over fixed
// meters-per-degree constants. Overlap percentages are a linear
// proxy, not a true circle-intersection area ratio; downstream
// consumers depend on the exact formula, so it must not be "fixed".
//
// # Error handling
//
// The polygon generators reject invalid input with one of four
// sentinel errors (ErrInvalidCoordinate, ErrInvalidRadius,
// ErrInvalidFieldOfView, ErrInvalidDirection); they never clamp or
// coerce. The GeoJSON adapter is the single place that degrades
// invalid cameras to a nil Feature with a logged warning, because it
// runs per camera inside the map rendering loop. Overlap detection
// silently skips cameras without coordinates: partially-positioned
// fleets are an expected steady state.
package coverage
