package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// MaxLat is the latitude limit of the web mercator map.
const MaxLat = 85.05112878

// Data holds the polylines read from a file or pasted text, in lon/lat.
type Data struct {
	Lines []orb.LineString
	Bound orb.Bound
}

// validPoint reports whether p can be placed on the web mercator map.
func validPoint(p orb.Point) bool {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -MaxLat && lat <= MaxLat
}

// addLine drops vertices outside the map, then keeps lines with at least
// two vertices and grows the bound.
func (d *Data) addLine(ls orb.LineString) {
	kept := make(orb.LineString, 0, len(ls))
	for _, p := range ls {
		if validPoint(p) {
			kept = append(kept, p)
		}
	}
	ls = kept
	if len(ls) < 2 {
		return
	}
	if len(d.Lines) == 0 {
		d.Bound = ls.Bound()
	} else {
		d.Bound = d.Bound.Union(ls.Bound())
	}
	d.Lines = append(d.Lines, ls)
}

// addGeometry walks a geometry and keeps everything line-like. Polygon
// rings are measured as closed polylines; points are ignored.
func (d *Data) addGeometry(g orb.Geometry) {
	switch g := g.(type) {
	case orb.LineString:
		d.addLine(g)
	case orb.MultiLineString:
		for _, ls := range g {
			d.addLine(ls)
		}
	case orb.Ring:
		d.addLine(orb.LineString(g))
	case orb.Polygon:
		for _, r := range g {
			d.addLine(orb.LineString(r))
		}
	case orb.MultiPolygon:
		for _, p := range g {
			d.addGeometry(p)
		}
	case orb.Collection:
		for _, c := range g {
			d.addGeometry(c)
		}
	}
}
