package transform

import "math"

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// GeodeticPosition holds latitude/longitude in degrees and altitude in meters
// above the ellipsoid surface.
type GeodeticPosition struct {
	LatDeg, LonDeg, AltM float64
}

// CartesianPosition holds Earth-centered coordinates in meters.
type CartesianPosition struct {
	X, Y, Z float64
}

// Norm returns the distance from the Cartesian origin.
func (c CartesianPosition) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// Sub returns c - o.
func (c CartesianPosition) Sub(o CartesianPosition) CartesianPosition {
	return CartesianPosition{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// ToGeocentric converts a geodetic position to Cartesian coordinates on the
// given ellipsoid. Latitude and longitude are not range checked; out of range
// values still produce a defined result.
func ToGeocentric(pos GeodeticPosition, e Ellipsoid) CartesianPosition {
	lat := pos.LatDeg * deg2rad
	lon := pos.LonDeg * deg2rad

	sinLat := math.Sin(lat)
	e2 := e.EccentricitySquared()

	// Radius of curvature in the prime vertical.
	N := e.SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)
	r := (N + pos.AltM) * math.Cos(lat)

	return CartesianPosition{
		X: r * math.Cos(lon),
		Y: r * math.Sin(lon),
		Z: (N*(1-e2) + pos.AltM) * sinLat,
	}
}

// ToGeodetic converts Cartesian coordinates back to a geodetic position by
// iterating on latitude. Converges in a handful of iterations for points near
// the Earth's surface.
func ToGeodetic(c CartesianPosition, e Ellipsoid) GeodeticPosition {
	e2 := e.EccentricitySquared()
	lon := math.Atan2(c.Y, c.X)
	p := math.Sqrt(c.X*c.X + c.Y*c.Y)

	lat := math.Atan2(c.Z, p*(1-e2))
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		N := e.SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)
		next := math.Atan2(c.Z+e2*N*sinLat, p)
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	N := e.SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = p/cosLat - N
	} else {
		alt = math.Abs(c.Z)/math.Abs(sinLat) - N*(1-e2)
	}

	return GeodeticPosition{
		LatDeg: lat * rad2deg,
		LonDeg: lon * rad2deg,
		AltM:   alt,
	}
}
