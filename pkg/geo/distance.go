package geo

import (
	"github.com/paulmach/orb"
	orbGeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const (
	metersPerMile      = 1609.344
	metersPerKilometer = 1000.0
)

// UnitSphereDistance is the great-circle distance between two lon/lat points in the length unit
// of ms (mile or km).
func UnitSphereDistance(p1, p2 orb.Point, ms MeasurementSystem) float64 {
	meters := orbGeo.DistanceHaversine(p1, p2)
	if ms == Metric {
		return meters / metersPerKilometer
	}
	return meters / metersPerMile
}

// PlanarDistance is the euclidean distance in the coordinate space of the input projection.
func PlanarDistance(p1, p2 orb.Point) float64 {
	return planar.Distance(p1, p2)
}
