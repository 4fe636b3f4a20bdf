package geodesy

import (
	"fmt"
	"math"

	"github.com/paulmach/orb/geo"
)

// Bearing is a compass direction in degrees, clockwise from true north,
// always in [0, 360).
type Bearing float64

// DMS is a bearing split into whole degrees, minutes and seconds.
// Minutes and seconds are truncated, not rounded.
type DMS struct {
	Degrees int
	Minutes int
	Seconds int
}

// Azimuth returns the initial great-circle bearing from a to b computed on
// the unprojected coordinates. Coincident points give 0.
func Azimuth(a, b GeoPoint) Bearing {
	theta := geo.Bearing(a.ll, b.ll)
	if math.IsNaN(theta) {
		return 0
	}
	return Bearing(math.Mod(theta+360, 360))
}

func (b Bearing) Degrees() float64 { return float64(b) }

func (b Bearing) Radians() float64 { return float64(b) * math.Pi / 180 }

func (b Bearing) DMS() DMS {
	a := float64(b)
	deg := math.Floor(a)
	minutes := (a - deg) * 60
	whole := math.Floor(minutes)
	sec := math.Floor((minutes - whole) * 60)
	return DMS{Degrees: int(deg), Minutes: int(whole), Seconds: int(sec)}
}

func (d DMS) String() string {
	return fmt.Sprintf("%d°%d'%d\"", d.Degrees, d.Minutes, d.Seconds)
}

// String renders the bearing as D°M'S".
func (b Bearing) String() string { return b.DMS().String() }
