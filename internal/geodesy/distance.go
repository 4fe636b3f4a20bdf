package geodesy

import (
	"github.com/paulmach/orb/geo"
)

// Distance returns the great-circle (haversine) distance in metres between
// the unprojected points. It is 0 exactly when both share lon/lat.
func Distance(a, b GeoPoint) float64 {
	if a.SameLocation(b) {
		return 0
	}
	return geo.DistanceHaversine(a.ll, b.ll)
}

// Length returns the great-circle length in metres of the polyline through
// points. It sums Distance so segment sums and line lengths agree.
func Length(points []GeoPoint) float64 {
	var total float64
	for i := 0; i+1 < len(points); i++ {
		total += Distance(points[i], points[i+1])
	}
	return total
}
