package geom

import (
	"fmt"
	"io"
	"strings"

	kml "github.com/twpayne/go-kml"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/measure"
	"geomeasure/internal/units"
)

// ExportLine is one measured polyline in a report.
type ExportLine struct {
	Name     string
	Vertices []geodesy.GeoPoint
	Table    measure.Table
}

// WriteKML writes the lines as a KML document, one placemark per line. Each
// placemark description lists the segment measurements in the given units.
func WriteKML(w io.Writer, lines []ExportLine, du units.DistanceUnit, au units.AngleUnit) error {
	doc := kml.Document(kml.Name("geomeasure"))
	for _, l := range lines {
		coords := make([]kml.Coordinate, len(l.Vertices))
		for i, v := range l.Vertices {
			coords[i] = kml.Coordinate{Lon: v.Lon(), Lat: v.Lat()}
		}
		doc.Add(kml.Placemark(
			kml.Name(l.Name),
			kml.Description(describe(l.Table, du, au)),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(coords...),
			),
		))
	}
	return kml.KML(doc).WriteIndent(w, "", "  ")
}

func describe(t measure.Table, du units.DistanceUnit, au units.AngleUnit) string {
	var b strings.Builder
	for i, s := range t {
		turn := "N/A"
		if s.Turn != nil {
			turn = units.FormatAngle(s.Turn.Degrees, au) + " " + s.Turn.Direction.String()
		}
		fmt.Fprintf(&b, "%d: azimuth %s, distance %s, turn %s\n", i+1, s.Azimuth, units.FormatDistance(s.DistanceKm, du), turn)
	}
	fmt.Fprintf(&b, "length %s", units.FormatDistance(t.TotalKm(), du))
	return b.String()
}
