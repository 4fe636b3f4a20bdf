package geodesy

import (
	"math"
)

// Direction is the side a polyline turns towards at a vertex.
type Direction int

const (
	Straight Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "straight"
	}
}

// Turn is the deflection at an interior vertex.
type Turn struct {
	Degrees   float64
	Direction Direction
}

// Radians returns the deflection angle in radians.
func (t Turn) Radians() float64 { return t.Degrees * math.Pi / 180 }

// TurnAngle returns the absolute deflection in degrees at p1 between the
// headings p0->p1 and p1->p2. Headings come from the projected planar
// coordinates, not the geodesic ones. The result is in [0, 180]; a
// zero-length incoming or outgoing segment gives 0.
func TurnAngle(p0, p1, p2 GeoPoint) float64 {
	if p0.xy.Equal(p1.xy) || p1.xy.Equal(p2.xy) {
		return 0
	}
	h1 := math.Atan2(p1.xy[1]-p0.xy[1], p1.xy[0]-p0.xy[0])
	h2 := math.Atan2(p2.xy[1]-p1.xy[1], p2.xy[0]-p1.xy[0])
	angle := math.Abs((h2 - h1) * 180 / math.Pi)
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}

// TurnDirection reports which way the line turns at p1, from the sign of
// the planar cross product of the incoming and outgoing segments.
func TurnDirection(p0, p1, p2 GeoPoint) Direction {
	ax, ay := p1.xy[0]-p0.xy[0], p1.xy[1]-p0.xy[1]
	bx, by := p2.xy[0]-p1.xy[0], p2.xy[1]-p1.xy[1]
	cross := ax*by - ay*bx
	switch {
	case cross > 0:
		return Left
	case cross < 0:
		return Right
	default:
		return Straight
	}
}

// Deflect bundles TurnAngle and TurnDirection for the vertex p1.
func Deflect(p0, p1, p2 GeoPoint) Turn {
	deg := TurnAngle(p0, p1, p2)
	if deg == 0 {
		return Turn{}
	}
	return Turn{Degrees: deg, Direction: TurnDirection(p0, p1, p2)}
}
