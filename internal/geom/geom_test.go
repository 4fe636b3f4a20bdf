package geom

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/measure"
	"geomeasure/internal/units"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParseWKT(t *testing.T) {
	d, err := ParseWKT("LINESTRING(16.62 49.19, 16.63 49.20, 16.65 49.20)")
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, orb.LineString{{16.62, 49.19}, {16.63, 49.20}, {16.65, 49.20}}, d.Lines[0])
	assert.Equal(t, orb.Point{16.62, 49.19}, d.Bound.Min)
	assert.Equal(t, orb.Point{16.65, 49.20}, d.Bound.Max)

	d, err = ParseWKT("MULTILINESTRING((0 0, 1 1), (2 2, 3 3, 4 4))")
	require.NoError(t, err)
	assert.Len(t, d.Lines, 2)

	d, err = ParseWKT("POLYGON((0 0, 1 0, 1 1, 0 0))")
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Len(t, d.Lines[0], 4)
}

func TestParseWKT_Errors(t *testing.T) {
	_, err := ParseWKT("   ")
	assert.Error(t, err)
	_, err = ParseWKT("POINT(1 2)")
	assert.Error(t, err, "points carry no segments")
	_, err = ParseWKT("LINESTRING(1 2,")
	assert.Error(t, err)
}

func TestParseGeoJSON(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[16.62,49.19],[16.63,49.2]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[16.62,49.19]}},
		{"type":"Feature","properties":{},"geometry":{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}}
	]}`
	d, err := ParseGeoJSON([]byte(fc))
	require.NoError(t, err)
	assert.Len(t, d.Lines, 3)

	f := `{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":null}`
	d, err = ParseGeoJSON([]byte(f))
	require.NoError(t, err)
	assert.Len(t, d.Lines, 1)

	g := `{"type":"LineString","coordinates":[[5,5],[6,6],[7,5]]}`
	d, err = ParseGeoJSON([]byte(g))
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{5, 5}, {6, 6}, {7, 5}}, d.Lines[0])
}

func TestParseGeoJSON_Errors(t *testing.T) {
	_, err := ParseGeoJSON([]byte(`{}`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`not json`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	assert.Error(t, err)
}

func TestParseCSV_SingleLine(t *testing.T) {
	in := "name,Latitude,Longitude\na,49.19,16.62\nbad,x,y\nb,49.20,16.63\n"
	d, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, orb.LineString{{16.62, 49.19}, {16.63, 49.20}}, d.Lines[0])
}

func TestParseCSV_GroupsByLineColumn(t *testing.T) {
	in := "line,lat,lon\n1,0,0\n1,1,1\n2,5,5\n2,6,6\n2,7,7\n3,9,9\n"
	d, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, d.Lines, 2, "line 3 has a single vertex and is dropped")
	assert.Len(t, d.Lines[0], 2)
	assert.Len(t, d.Lines[1], 3)
}

func TestLoaders_DropOutOfRangeVertices(t *testing.T) {
	d, err := ParseCSV(strings.NewReader("lat,lon\n49.19,16.62\n95,16.63\n49.20,16.65\n"))
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, orb.LineString{{16.62, 49.19}, {16.65, 49.20}}, d.Lines[0])

	d, err = ParseWKT("LINESTRING(0 0, 200 10, 1 1, 2 89)")
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, d.Lines[0])
	assert.Equal(t, orb.Point{1, 1}, d.Bound.Max)

	_, err = ParseWKT("LINESTRING(0 86, 1 87)")
	assert.Error(t, err, "no vertex is on the map")

	_, err = ParseGeoJSON([]byte(`{"type":"LineString","coordinates":[[-181,0],[0,-90]]}`))
	assert.Error(t, err)

	// every imported vertex measures to finite values
	d, err = ParseKML([]byte(`<kml><Placemark><LineString><coordinates>16.62,49.19 16.63,91 16.65,49.20 16.66,49.18</coordinates></LineString></Placemark></kml>`))
	require.NoError(t, err)
	v := geodesy.FromLineString(d.Lines[0])
	for _, s := range measure.Recompute(v) {
		assert.False(t, math.IsNaN(s.DistanceKm))
		assert.False(t, math.IsNaN(s.Azimuth.Degrees()))
		if s.Turn != nil {
			assert.False(t, math.IsNaN(s.Turn.Degrees))
		}
	}
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestParseKML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Folder>
<Placemark><name>route</name><LineString><coordinates>16.62,49.19,0 16.63,49.20,0</coordinates></LineString></Placemark>
<Placemark><Point><coordinates>1,2</coordinates></Point></Placemark>
</Folder>
<Placemark><MultiGeometry><LineString><coordinates>0,0 1,1 2,0</coordinates></LineString></MultiGeometry></Placemark>
</Document></kml>`
	d, err := ParseKML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, orb.LineString{{16.62, 49.19}, {16.63, 49.20}}, d.Lines[0])
	assert.Len(t, d.Lines[1], 3)

	_, err = ParseKML([]byte(`<kml><Document></Document></kml>`))
	assert.Error(t, err)
}

func TestParseKML_Truncated(t *testing.T) {
	doc := `<kml><Document>
<Placemark><LineString><coordinates>0,0 1,1</coordinates></LineString></Placemark>
<Placemark><LineString><coordinates>2,2 3,3`
	_, err := ParseKML([]byte(doc))
	assert.Error(t, err, "a cut off document is not a partial success")

	_, err = ParseKML([]byte(`<kml><Placemark></Folder></kml>`))
	assert.Error(t, err)
}

func TestPolylineRoundTrip(t *testing.T) {
	ls := orb.LineString{{-120.2, 38.5}, {-120.95, 40.7}, {-126.453, 43.252}}
	enc := EncodePolyline(ls)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", enc)

	got, err := DecodePolyline(enc)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range ls {
		assert.InDelta(t, ls[i].Lon(), got[i].Lon(), 1e-5)
		assert.InDelta(t, ls[i].Lat(), got[i].Lat(), 1e-5)
	}

	_, err = DecodePolyline("")
	assert.Error(t, err)
}

func TestParseText(t *testing.T) {
	d, err := ParseText("LINESTRING(0 0, 1 1)")
	require.NoError(t, err)
	assert.Len(t, d.Lines, 1)

	d, err = ParseText("_p~iF~ps|U_ulLnnqC_mqNvxq`@\n_p~iF~ps|U_ulLnnqC")
	require.NoError(t, err)
	assert.Len(t, d.Lines, 2)

	_, err = ParseText("")
	assert.Error(t, err)
}

func TestLoadLines(t *testing.T) {
	p := writeFile(t, "route.wkt", "LINESTRING(0 0, 1 1)")
	d, err := LoadLines(p)
	require.NoError(t, err)
	assert.Len(t, d.Lines, 1)

	p = writeFile(t, "route.csv", "lat,lon\n0,0\n1,1\n")
	d, err = LoadLines(p)
	require.NoError(t, err)
	assert.Len(t, d.Lines, 1)

	p = writeFile(t, "route.shp", "")
	_, err = LoadLines(p)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".shp", unsupported.Ext)

	_, err = LoadLines(filepath.Join(t.TempDir(), "missing.wkt"))
	assert.Error(t, err)

	assert.True(t, Supported("a/b/c.GeoJSON"))
	assert.False(t, Supported("c.shp"))
}

func TestWriteKML(t *testing.T) {
	v := []geodesy.GeoPoint{
		geodesy.FromLonLat(16.62, 49.19),
		geodesy.FromLonLat(16.63, 49.20),
		geodesy.FromLonLat(16.65, 49.20),
	}
	var buf bytes.Buffer
	err := WriteKML(&buf, []ExportLine{{Name: "Line 1", Vertices: v, Table: measure.Recompute(v)}}, units.Kilometers, units.Degrees)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<Placemark>")
	assert.Contains(t, out, "<name>Line 1</name>")
	assert.Contains(t, out, "turn N/A")
	assert.Contains(t, out, " km")

	// the written document reads back through our own parser
	d, err := ParseKML(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.InDelta(t, 16.65, d.Lines[0][2].Lon(), 1e-9)
}
