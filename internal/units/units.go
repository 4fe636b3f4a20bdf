// Package units converts between the distance and angle units the results
// can be displayed in. Conversions never round; Format* helpers do.
package units

import (
	"fmt"
	"math"
)

// MilesPerKm is the fixed km to statute mile factor.
const MilesPerKm = 0.621371

func KmToMiles(km float64) float64 { return km * MilesPerKm }

func MilesToKm(mi float64) float64 { return mi / MilesPerKm }

func RadFromDeg(deg float64) float64 { return deg * (math.Pi / 180) }

func DegFromRad(rad float64) float64 { return rad * (180 / math.Pi) }

type DistanceUnit int

const (
	Kilometers DistanceUnit = iota
	Miles
)

func (u DistanceUnit) String() string {
	if u == Miles {
		return "miles"
	}
	return "km"
}

// Toggle flips between kilometers and miles.
func (u DistanceUnit) Toggle() DistanceUnit {
	if u == Miles {
		return Kilometers
	}
	return Miles
}

// Convert expresses km in this unit.
func (u DistanceUnit) Convert(km float64) float64 {
	if u == Miles {
		return KmToMiles(km)
	}
	return km
}

type AngleUnit int

const (
	Degrees AngleUnit = iota
	Radians
)

func (u AngleUnit) String() string {
	if u == Radians {
		return "rad"
	}
	return "deg"
}

// Toggle flips between degrees and radians.
func (u AngleUnit) Toggle() AngleUnit {
	if u == Radians {
		return Degrees
	}
	return Radians
}

// ParseDistanceUnit accepts "km" or "miles" (also "mi").
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch s {
	case "km", "kilometers":
		return Kilometers, nil
	case "mi", "miles":
		return Miles, nil
	}
	return Kilometers, fmt.Errorf("unknown distance unit %q", s)
}

// ParseAngleUnit accepts "deg" or "rad".
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch s {
	case "deg", "degrees":
		return Degrees, nil
	case "rad", "radians":
		return Radians, nil
	}
	return Degrees, fmt.Errorf("unknown angle unit %q", s)
}

// FormatDistance renders km in unit with two decimals, e.g. "1.33 km".
func FormatDistance(km float64, unit DistanceUnit) string {
	return fmt.Sprintf("%.2f %s", unit.Convert(km), unit)
}

// FormatAngle renders deg in unit with two decimals, e.g. "12.50°" or "0.22 rad".
func FormatAngle(deg float64, unit AngleUnit) string {
	if unit == Radians {
		return fmt.Sprintf("%.2f rad", RadFromDeg(deg))
	}
	return fmt.Sprintf("%.2f°", deg)
}
