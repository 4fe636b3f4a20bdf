package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT reads LINESTRING, MULTILINESTRING, POLYGON, MULTIPOLYGON or
// GEOMETRYCOLLECTION text. Coordinates are "lon lat".
func ParseWKT(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Data{}, fmt.Errorf("wkt: %w", err)
	}
	var d Data
	d.addGeometry(g)
	if len(d.Lines) == 0 {
		return Data{}, fmt.Errorf("wkt: %s has no line with two or more vertices", g.GeoJSONType())
	}
	return d, nil
}

// looksLikeWKT reports whether s starts with a WKT geometry keyword.
func looksLikeWKT(s string) bool {
	up := strings.ToUpper(strings.TrimSpace(s))
	for _, kw := range []string{"POINT", "MULTIPOINT", "LINESTRING", "MULTILINESTRING", "POLYGON", "MULTIPOLYGON", "GEOMETRYCOLLECTION"} {
		if strings.HasPrefix(up, kw) {
			return true
		}
	}
	return false
}
