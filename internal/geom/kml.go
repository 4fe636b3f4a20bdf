package geom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseKML extracts LineString and LinearRing coordinates from any
// Placemark in a KML document, nested folders included.
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func ParseKML(data []byte) (Data, error) {
	type kmlLine struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Lines []kmlLine `xml:"LineString"`
		Rings []kmlLine `xml:"Polygon>outerBoundaryIs>LinearRing"`
		Multi []kmlLine `xml:"MultiGeometry>LineString"`
	}
	var d Data
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Data{}, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, fmt.Errorf("kml: %w", err)
		}
		for _, group := range [][]kmlLine{pm.Lines, pm.Rings, pm.Multi} {
			for _, l := range group {
				d.addLine(parseKMLCoordinates(l.Coordinates))
			}
		}
	}
	if len(d.Lines) == 0 {
		return Data{}, errors.New("kml: no lines found")
	}
	return d, nil
}

func parseKMLCoordinates(s string) orb.LineString {
	var ls orb.LineString
	// tuples are separated by whitespace
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ls = append(ls, orb.Point{lon, lat})
	}
	return ls
}
