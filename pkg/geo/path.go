package geo

import "math"

// sinEpsilon is the threshold below which sin(c) is treated as zero and
// spherical interpolation degenerates to linear weights. This covers both
// coincident endpoints (c == 0) and near-antipodal pairs (c == pi).
const sinEpsilon = 1e-12

// GreatCirclePath samples numPoints+1 points along the great circle between
// two coordinates given in decimal degrees. The first sample equals the
// source and the last equals the destination (within floating tolerance);
// intermediate samples are spaced by equal fractions of the angular
// separation, which makes the polyline follow Earth's curvature when drawn
// on a map projection.
//
// numPoints values below 1 are clamped to 1, so the result always contains
// at least the two endpoints. The function is pure and safe for concurrent
// use; paths for many routes can be generated in parallel.
func GreatCirclePath(lat1, lon1, lat2, lon2 float64, numPoints int) []Coordinates {
	if numPoints < 1 {
		numPoints = 1
	}

	lat1Rad := degreesToRadians(lat1)
	lon1Rad := degreesToRadians(lon1)
	lat2Rad := degreesToRadians(lat2)
	lon2Rad := degreesToRadians(lon2)

	// Angular separation via the haversine formula, with atan2 for
	// numerical stability near antipodal points.
	deltaLat := lat2Rad - lat1Rad
	deltaLon := lon2Rad - lon1Rad
	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	sinC := math.Sin(c)

	points := make([]Coordinates, 0, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		f := float64(i) / float64(numPoints)

		// Slerp weights; fall back to linear interpolation when the
		// endpoints coincide or are antipodal enough that sin(c) ~ 0.
		var wA, wB float64
		if math.Abs(sinC) < sinEpsilon {
			wA = 1 - f
			wB = f
		} else {
			wA = math.Sin((1-f)*c) / sinC
			wB = math.Sin(f*c) / sinC
		}

		x := wA*math.Cos(lat1Rad)*math.Cos(lon1Rad) + wB*math.Cos(lat2Rad)*math.Cos(lon2Rad)
		y := wA*math.Cos(lat1Rad)*math.Sin(lon1Rad) + wB*math.Cos(lat2Rad)*math.Sin(lon2Rad)
		z := wA*math.Sin(lat1Rad) + wB*math.Sin(lat2Rad)

		lat := math.Atan2(z, math.Sqrt(x*x+y*y))
		lon := math.Atan2(y, x)

		points = append(points, Coordinates{
			Lat: radiansToDegrees(lat),
			Lon: radiansToDegrees(lon),
		})
	}

	return points
}

// PathBetween samples a great-circle path between two coordinate points.
func PathBetween(from, to Coordinates, numPoints int) []Coordinates {
	return GreatCirclePath(from.Lat, from.Lon, to.Lat, to.Lon, numPoints)
}
