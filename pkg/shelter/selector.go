package shelter

import (
	"sort"

	"shelternav/pkg/geo"
)

// Ranked is a Feature with derived navigation fields attached. Rebuilt in
// full on every location update, never mutated in place.
type Ranked struct {
	Feature
	DistanceMeters float64
	BearingDegrees float64
}

// SelectNearest ranks shelters by great-circle distance from origin and
// returns the closest k. Ties keep input order; fewer than k shelters
// returns all of them.
func SelectNearest(origin geo.Point, features []Feature, k int) []Ranked {
	ranked := make([]Ranked, 0, len(features))
	for _, f := range features {
		ranked = append(ranked, Ranked{
			Feature:        f,
			DistanceMeters: geo.Distance(origin, f.Point),
			BearingDegrees: geo.Bearing(origin, f.Point),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
