package measure

import "geomeasure/internal/units"

// Totals is the overall length across every line.
type Totals struct {
	Km    float64
	Miles float64
}

// Aggregate sums the distances of every segment of every table.
func Aggregate(tables ...Table) Totals {
	var km float64
	for _, t := range tables {
		km += t.TotalKm()
	}
	return Totals{Km: km, Miles: units.KmToMiles(km)}
}

// In returns the total in the given display unit.
func (t Totals) In(u units.DistanceUnit) float64 {
	if u == units.Miles {
		return t.Miles
	}
	return t.Km
}
