// Package transform converts geodetic positions to an Earth-centered
// Cartesian frame and extracts look angles between two such positions.
//
// Every function in this package is pure: results depend only on the
// arguments, nothing is cached, and all values are safe to share between
// goroutines.
package transform

import (
	"fmt"
	"math"
)

// WGS-84 reference ellipsoid parameters.
const (
	WGS84SemiMajorAxis     = 6378137.0     // meters
	WGS84InverseFlattening = 298.257223563 // dimensionless
)

// Ellipsoid describes the reference ellipsoid used for conversions.
type Ellipsoid struct {
	SemiMajorAxis     float64 // meters
	InverseFlattening float64
}

// WGS84 returns the WGS-84 reference ellipsoid.
func WGS84() Ellipsoid {
	return Ellipsoid{
		SemiMajorAxis:     WGS84SemiMajorAxis,
		InverseFlattening: WGS84InverseFlattening,
	}
}

// Flattening returns f = 1/InverseFlattening.
func (e Ellipsoid) Flattening() float64 {
	return 1 / e.InverseFlattening
}

// EccentricitySquared returns the first eccentricity squared, 1 - (1-f)².
func (e Ellipsoid) EccentricitySquared() float64 {
	f := e.Flattening()
	return 1 - (1-f)*(1-f)
}

// SemiMinorAxis returns the polar radius b = a(1-f).
func (e Ellipsoid) SemiMinorAxis() float64 {
	return e.SemiMajorAxis * (1 - e.Flattening())
}

// Validate reports whether the parameters describe an oblate ellipsoid.
// The conversion functions never call it; it exists for configuration
// loading.
func (e Ellipsoid) Validate() error {
	if math.IsNaN(e.SemiMajorAxis) || math.IsInf(e.SemiMajorAxis, 0) || e.SemiMajorAxis <= 0 {
		return fmt.Errorf("semi-major axis must be a positive finite number, got %v", e.SemiMajorAxis)
	}
	if math.IsNaN(e.InverseFlattening) || math.IsInf(e.InverseFlattening, 0) || e.InverseFlattening <= 1 {
		return fmt.Errorf("inverse flattening must be a finite number greater than 1, got %v", e.InverseFlattening)
	}
	return nil
}

func (e Ellipsoid) String() string {
	return fmt.Sprintf("a=%.3f m, 1/f=%.9f", e.SemiMajorAxis, e.InverseFlattening)
}
