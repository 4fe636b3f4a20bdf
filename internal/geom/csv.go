package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseCSV reads a CSV with latitude/longitude columns. Rows become the
// vertices of one line, in file order; an optional line|id|track column
// starts a new line whenever its value changes.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func ParseCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	idxLat, idxLon, idxLine := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "line", "id", "track":
			if idxLine == -1 {
				idxLine = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Data{}, errors.New("csv: latitude/longitude columns not found")
	}
	var d Data
	var cur orb.LineString
	key, started := "", false
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if idxLine >= 0 && idxLine < len(row) {
			k := strings.TrimSpace(row[idxLine])
			if started && k != key {
				d.addLine(cur)
				cur = nil
			}
			key, started = k, true
		}
		cur = append(cur, orb.Point{lon, lat})
	}
	d.addLine(cur)
	if len(d.Lines) == 0 {
		return Data{}, errors.New("csv: no line with two or more valid points")
	}
	return d, nil
}
