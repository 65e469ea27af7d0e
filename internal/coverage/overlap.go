// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package coverage

import "math"

// Overlap describes two cameras whose coverage circles intersect.
// OverlapPercentage is a linear proxy — overlap depth relative to the
// smaller circle's diameter, capped at 100 — not a true
// circle-intersection area ratio.
type Overlap struct {
	Camera1ID         int64   `json:"camera1_id"`
	Camera2ID         int64   `json:"camera2_id"`
	DistanceM         float64 `json:"distance_m"`
	OverlapDistanceM  float64 `json:"overlap_distance_m"`
	OverlapPercentage float64 `json:"overlap_percentage"`
}

// DistanceM returns the great-circle distance between two points in
// meters using the Haversine formula on the spherical Earth.
func DistanceM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusM * c
}

// FindOverlaps checks every unordered camera pair and reports the ones
// whose coverage circles intersect. Pairs where either camera is
// unpositioned are skipped silently, and non-overlapping pairs are
// omitted entirely — the result never carries zero or negative
// entries. O(n²) without spatial indexing; camera counts are tens to
// low hundreds, so a sweep is cheaper than maintaining an index.
func FindOverlaps(sites []Site) []Overlap {
	var overlaps []Overlap
	for i := 0; i < len(sites); i++ {
		for j := i + 1; j < len(sites); j++ {
			if o := pairOverlap(sites[i], sites[j]); o != nil {
				overlaps = append(overlaps, *o)
			}
		}
	}
	return overlaps
}

// pairOverlap computes the overlap descriptor for one pair, or nil if
// the pair is unpositioned or the circles do not intersect. Tangent
// circles (distance exactly r1+r2) do not count as overlapping.
func pairOverlap(a, b Site) *Overlap {
	if !a.Positioned() || !b.Positioned() {
		return nil
	}

	distance := DistanceM(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
	r1, r2 := a.Radius(), b.Radius()

	if distance >= r1+r2 {
		return nil
	}

	overlapDistance := (r1 + r2) - distance

	// Overlap depth relative to the smaller circle's diameter. A
	// simplified linear measure; the exact formula is a contract with
	// downstream consumers.
	maxPossibleOverlap := math.Min(r1, r2) * 2
	overlapPercentage := math.Min(overlapDistance/maxPossibleOverlap*100, 100)

	return &Overlap{
		Camera1ID:         a.ID,
		Camera2ID:         b.ID,
		DistanceM:         distance,
		OverlapDistanceM:  overlapDistance,
		OverlapPercentage: overlapPercentage,
	}
}
