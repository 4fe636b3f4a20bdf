// Package measure derives per-segment measurement tables from a polyline's
// vertices and reduces them into totals.
package measure

import (
	"geomeasure/internal/geodesy"
)

// Segment holds the measurements of one edge between consecutive vertices.
type Segment struct {
	Azimuth    geodesy.Bearing
	DistanceKm float64
	// Turn is the deflection at the segment's first vertex; nil for the
	// first segment of a line.
	Turn *geodesy.Turn
}

// Table is the ordered list of segment measurements of one line.
type Table []Segment

// Recompute derives the table for vertices from scratch. Fewer than two
// vertices give an empty table.
func Recompute(vertices []geodesy.GeoPoint) Table {
	if len(vertices) < 2 {
		return Table{}
	}
	t := make(Table, 0, len(vertices)-1)
	for i := 0; i < len(vertices)-1; i++ {
		t = append(t, measureSegment(vertices, i))
	}
	return t
}

func measureSegment(v []geodesy.GeoPoint, i int) Segment {
	s := Segment{
		Azimuth:    geodesy.Azimuth(v[i], v[i+1]),
		DistanceKm: geodesy.Distance(v[i], v[i+1]) / 1000,
	}
	if i > 0 {
		turn := geodesy.Deflect(v[i-1], v[i], v[i+1])
		s.Turn = &turn
	}
	return s
}

func (t Table) Len() int { return len(t) }

// Clone returns a deep copy of t; turns are copied, not shared.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, s := range t {
		if s.Turn != nil {
			turn := *s.Turn
			s.Turn = &turn
		}
		out[i] = s
	}
	return out
}

// TotalKm sums the segment distances.
func (t Table) TotalKm() float64 {
	var km float64
	for _, s := range t {
		km += s.DistanceKm
	}
	return km
}

// LengthKm is the great-circle length of the polyline in km.
func LengthKm(vertices []geodesy.GeoPoint) float64 {
	return geodesy.Length(vertices) / 1000
}

// Preview measures the segment from the last placed vertex to cursor while a
// line is being drawn. ok is false when nothing has been placed yet.
func Preview(placed []geodesy.GeoPoint, cursor geodesy.GeoPoint) (s Segment, ok bool) {
	if len(placed) == 0 {
		return Segment{}, false
	}
	tail := placed[max(0, len(placed)-2):]
	v := make([]geodesy.GeoPoint, 0, len(tail)+1)
	v = append(append(v, tail...), cursor)
	return measureSegment(v, len(v)-2), true
}
