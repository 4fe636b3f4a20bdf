package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// DecodePolyline reads a Google encoded polyline (precision 5) into a
// lon/lat line string.
func DecodePolyline(encoded string) (orb.LineString, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("failed to decode polyline: %d trailing bytes", len(rest))
	}
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		lat, lon := c[0], c[1]
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, errors.New("decoded polyline contains invalid coordinates")
		}
		ls = append(ls, orb.Point{lon, lat})
	}
	return ls, nil
}

// EncodePolyline writes a lon/lat line string as a Google encoded polyline.
func EncodePolyline(ls orb.LineString) string {
	coords := make([][]float64, len(ls))
	for i, p := range ls {
		coords[i] = []float64{p.Lat(), p.Lon()}
	}
	return string(polyline.EncodeCoords(coords))
}

// ParseText reads pasted geometry: WKT, or one encoded polyline per line.
func ParseText(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("paste: empty")
	}
	if looksLikeWKT(s) {
		return ParseWKT(s)
	}
	var d Data
	for _, row := range strings.Fields(s) {
		ls, err := DecodePolyline(row)
		if err != nil {
			return Data{}, err
		}
		d.addLine(ls)
	}
	if len(d.Lines) == 0 {
		return Data{}, errors.New("polyline: no line with two or more vertices")
	}
	return d, nil
}
