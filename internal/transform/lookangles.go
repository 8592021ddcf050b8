package transform

import "math"

// LookAngles holds azimuth, elevation and line-of-sight range from an
// observer to a target.
type LookAngles struct {
	AzimuthDeg   float64 // [0, 360), 0 = North, clockwise
	ElevationDeg float64 // (-90, 90], 90 = along the observer's radial direction
	RangeM       float64
}

// Degenerate reports whether either angle is NaN or infinite. This happens
// when the observer sits at the Cartesian origin or on the polar axis.
func (la LookAngles) Degenerate() bool {
	for _, v := range []float64{la.AzimuthDeg, la.ElevationDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// Compute converts both positions on the given ellipsoid and returns the look
// angles from observer to target.
func Compute(observer, target GeodeticPosition, e Ellipsoid) LookAngles {
	src := ToGeocentric(observer, e)
	dst := ToGeocentric(target, e)
	return LookAngles{
		AzimuthDeg:   Azimuth(src, dst),
		ElevationDeg: Elevation(src, dst),
		RangeM:       dst.Sub(src).Norm(),
	}
}

// Elevation returns the angle in degrees between the line of sight and the
// plane normal to the observer's geocentric radius vector.
//
// The radius vector stands in for the ellipsoid normal, so results differ
// from a true topocentric elevation by up to the geodetic/geocentric latitude
// difference (about 0.19° at mid latitudes). A source at the origin yields NaN.
// The cosine is clamped to [-1, 1] before acos, so a collinear pair gives
// exactly ±90 rather than NaN from rounding.
func Elevation(source, destination CartesianPosition) float64 {
	x, y, z := source.X, source.Y, source.Z
	d := destination.Sub(source)

	cosElevation := (x*d.X + y*d.Y + z*d.Z) /
		math.Sqrt((x*x+y*y+z*z)*(d.X*d.X+d.Y*d.Y+d.Z*d.Z))
	// Rounding can push a collinear pair just past ±1. NaN passes through.
	cosElevation = math.Max(-1, math.Min(1, cosElevation))

	return 90 - math.Acos(cosElevation)*rad2deg
}

// Azimuth returns the bearing in degrees, clockwise from north, of the line
// of sight projected onto the plane normal to the observer's radius vector.
// The result lies in [0, 360). A source on the polar axis yields NaN.
func Azimuth(source, destination CartesianPosition) float64 {
	x, y, z := source.X, source.Y, source.Z
	d := destination.Sub(source)

	xy2 := x*x + y*y
	d2 := d.X*d.X + d.Y*d.Y + d.Z*d.Z

	cosAzimuth := (-z*x*d.X - z*y*d.Y + xy2*d.Z) / math.Sqrt(xy2*(xy2+z*z)*d2)
	sinAzimuth := (-y*d.X + x*d.Y) / math.Sqrt(xy2*d2)

	angle := math.Atan2(sinAzimuth, cosAzimuth) * rad2deg
	return math.Mod(360+angle, 360)
}
