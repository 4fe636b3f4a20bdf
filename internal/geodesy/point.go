package geodesy

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// GeoPoint is a map vertex: the projected coordinate the map works in plus
// its lon/lat unprojection. It is a value type; edits replace vertices.
type GeoPoint struct {
	xy orb.Point
	ll orb.Point
}

// FromProjected builds a point from projected map coordinates, using
// unproject to recover lon/lat in degrees.
func FromProjected(xy orb.Point, unproject orb.Projection) GeoPoint {
	return GeoPoint{xy: xy, ll: unproject(xy)}
}

// FromMercator builds a point from web mercator (EPSG:3857) metres.
func FromMercator(x, y float64) GeoPoint {
	return FromProjected(orb.Point{x, y}, project.Mercator.ToWGS84)
}

// FromLonLat builds a point from lon/lat degrees; the projected coordinate
// is its web mercator projection.
func FromLonLat(lon, lat float64) GeoPoint {
	ll := orb.Point{lon, lat}
	return GeoPoint{xy: project.Point(ll, project.WGS84.ToMercator), ll: ll}
}

// XY returns the projected coordinate.
func (p GeoPoint) XY() orb.Point { return p.xy }

// LonLat returns the unprojected coordinate in degrees.
func (p GeoPoint) LonLat() orb.Point { return p.ll }

func (p GeoPoint) Lon() float64 { return p.ll[0] }
func (p GeoPoint) Lat() float64 { return p.ll[1] }

// SameLocation reports whether both points unproject to the same lon/lat.
func (p GeoPoint) SameLocation(o GeoPoint) bool {
	return p.ll.Equal(o.ll)
}

// LonLats converts vertices to an orb line string in lon/lat.
func LonLats(points []GeoPoint) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = p.ll
	}
	return ls
}

// FromLineString builds vertices from a lon/lat line string.
func FromLineString(ls orb.LineString) []GeoPoint {
	out := make([]GeoPoint, len(ls))
	for i, p := range ls {
		out[i] = FromLonLat(p[0], p[1])
	}
	return out
}
