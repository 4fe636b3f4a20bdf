package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/units"
)

func brnoLine() []geodesy.GeoPoint {
	return []geodesy.GeoPoint{
		geodesy.FromLonLat(16.62, 49.19),
		geodesy.FromLonLat(16.63, 49.20),
		geodesy.FromLonLat(16.65, 49.20),
		geodesy.FromLonLat(16.66, 49.18),
	}
}

func TestRecompute_OneSegmentPerVertexPair(t *testing.T) {
	v := brnoLine()
	for n := 2; n <= len(v); n++ {
		assert.Len(t, Recompute(v[:n]), n-1)
	}
}

func TestRecompute_ShortInputIsEmpty(t *testing.T) {
	for _, v := range [][]geodesy.GeoPoint{nil, {}, brnoLine()[:1]} {
		tbl := Recompute(v)
		require.NotNil(t, tbl)
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, 0.0, tbl.TotalKm())
	}
}

func TestRecompute_Segments(t *testing.T) {
	v := brnoLine()
	tbl := Recompute(v)
	require.Len(t, tbl, 3)

	assert.Nil(t, tbl[0].Turn, "first segment has no turn angle")
	for i := 1; i < len(tbl); i++ {
		require.NotNil(t, tbl[i].Turn)
		assert.Equal(t, geodesy.Deflect(v[i-1], v[i], v[i+1]), *tbl[i].Turn)
	}
	for i, s := range tbl {
		assert.Equal(t, geodesy.Azimuth(v[i], v[i+1]), s.Azimuth)
		assert.Equal(t, geodesy.Distance(v[i], v[i+1])/1000, s.DistanceKm)
	}
	assert.InDelta(t, 1.33, tbl[0].DistanceKm, 0.05)
}

func TestRecompute_Idempotent(t *testing.T) {
	v := brnoLine()
	assert.Equal(t, Recompute(v), Recompute(v))
}

func TestRecompute_SumMatchesLength(t *testing.T) {
	v := brnoLine()
	assert.InDelta(t, LengthKm(v), Recompute(v).TotalKm(), 1e-12)
}

func TestRecompute_CoincidentVertices(t *testing.T) {
	p := geodesy.FromLonLat(16.62, 49.19)
	q := geodesy.FromLonLat(16.63, 49.20)
	tbl := Recompute([]geodesy.GeoPoint{p, p, q})
	require.Len(t, tbl, 2)
	assert.Equal(t, 0.0, tbl[0].DistanceKm)
	assert.Equal(t, geodesy.Bearing(0), tbl[0].Azimuth)
	require.NotNil(t, tbl[1].Turn)
	assert.Equal(t, 0.0, tbl[1].Turn.Degrees)
}

func TestRecompute_CollinearTurnIsZero(t *testing.T) {
	v := []geodesy.GeoPoint{
		geodesy.FromMercator(0, 0),
		geodesy.FromMercator(1000, 500),
		geodesy.FromMercator(2000, 1000),
	}
	tbl := Recompute(v)
	require.NotNil(t, tbl[1].Turn)
	assert.InDelta(t, 0.0, tbl[1].Turn.Degrees, 1e-9)
}

func TestPreview(t *testing.T) {
	v := brnoLine()

	_, ok := Preview(nil, v[0])
	assert.False(t, ok)

	s, ok := Preview(v[:1], v[1])
	require.True(t, ok)
	assert.Nil(t, s.Turn)
	assert.Equal(t, Recompute(v[:2])[0], s)

	s, ok = Preview(v[:3], v[3])
	require.True(t, ok)
	assert.Equal(t, Recompute(v)[2], s)
}

func TestPreview_DoesNotTouchInput(t *testing.T) {
	v := brnoLine()
	placed := make([]geodesy.GeoPoint, 2, 8)
	copy(placed, v[:2])
	_, _ = Preview(placed, v[3])
	assert.Equal(t, v[:2], placed)
	assert.Equal(t, geodesy.GeoPoint{}, placed[:3][2], "spare capacity must not be written")
}

func TestTableClone_CopiesTurns(t *testing.T) {
	tbl := Recompute(brnoLine())
	c := tbl.Clone()
	require.Equal(t, tbl, c)
	c[1].Turn.Degrees = 12345
	assert.NotEqual(t, 12345.0, tbl[1].Turn.Degrees)
	assert.Nil(t, c[0].Turn)
	assert.Nil(t, Table(nil).Clone())
}

func TestAggregate(t *testing.T) {
	v := brnoLine()
	a := Recompute(v[:2])
	b := Recompute(v[1:])

	tot := Aggregate(a, b)
	assert.InDelta(t, a.TotalKm()+b.TotalKm(), tot.Km, 1e-12)
	assert.Equal(t, units.KmToMiles(tot.Km), tot.Miles)
	assert.Equal(t, tot.Miles, tot.In(units.Miles))
	assert.Equal(t, tot.Km, tot.In(units.Kilometers))

	assert.Equal(t, Totals{}, Aggregate())
	assert.Equal(t, Totals{}, Aggregate(Table{}, Recompute(v[:1])))
}
