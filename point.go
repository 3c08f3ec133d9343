package sphere

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

const (
	degPerRad = 180 / math.Pi
	radPerDeg = math.Pi / 180
)

func sind(x float64) float64          { return math.Sin(x * radPerDeg) }
func cosd(x float64) float64          { return math.Cos(x * radPerDeg) }
func asind(x float64) float64         { return math.Asin(x) * degPerRad }
func atan2d(opp, adj float64) float64 { return math.Atan2(opp, adj) * degPerRad }

// clamp1 clamps x into [-1, 1], absorbing round-off before inverse trig.
func clamp1(x float64) float64 { return math.Max(-1, math.Min(1, x)) }

// Point is a location on the unit sphere: a latitude and longitude in
// degrees. Latitude is in [-90, 90]; any longitude representative is
// accepted, with -180 and 180 naming the same meridian.
type Point struct {
	Lat float64
	Lon float64
}

// LL returns the point at (lat, lon) degrees.
func LL(lat, lon float64) Point { return Point{Lat: lat, Lon: lon} }

func (pt Point) String() string { return fmt.Sprintf("(%g, %g)", pt.Lat, pt.Lon) }

// Vector returns the Cartesian coordinates of pt on the unit sphere.
func (pt Point) Vector() r3.Vector {
	return r3.Vector{
		X: cosd(pt.Lat) * cosd(pt.Lon),
		Y: cosd(pt.Lat) * sind(pt.Lon),
		Z: sind(pt.Lat),
	}
}

// Antipode returns the point diametrically opposite pt.
func (pt Point) Antipode() Point { return LL(-pt.Lat, NormalizeLon(pt.Lon+180)) }

// NewPointFromVector returns the point under v on the unit sphere. v
// need not be normalized, but must not be the zero vector.
func NewPointFromVector(v r3.Vector) Point {
	return Point{
		Lat: asind(clamp1(v.Z / v.Norm())),
		Lon: atan2d(v.Y, v.X),
	}
}

// NormalizeLon wraps a longitude into (-180, 180].
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon <= -180 {
		lon += 360
	} else if lon > 180 {
		lon -= 360
	}
	return lon
}

// AngularDistance returns the central angle between two points, in
// degrees. It uses the haversine form, which stays accurate for
// nearly-identical pairs where the plain cosine rule cancels.
func AngularDistance(p0, p1 Point) float64 {
	sLat := sind(0.5 * (p1.Lat - p0.Lat))
	sLon := sind(0.5 * (p1.Lon - p0.Lon))
	h := sLat*sLat + cosd(p0.Lat)*cosd(p1.Lat)*sLon*sLon
	return 2 * asind(math.Sqrt(clamp1(h)))
}

// AngularDistances returns the element-wise angular distances between
// two batches of points. It panics if the batch lengths differ.
func AngularDistances(p0, p1 []Point) []float64 {
	if len(p0) != len(p1) {
		panic("sphere: mismatched batch lengths")
	}
	ds := make([]float64, len(p0))
	for i := range p0 {
		ds[i] = AngularDistance(p0[i], p1[i])
	}
	return ds
}

// angleBetween returns the angle in degrees between two vectors. The
// atan2 form is stable near 0 and 180 where the cosine rule is not.
func angleBetween(v0, v1 r3.Vector) float64 {
	return atan2d(v0.Cross(v1).Norm(), v0.Dot(v1))
}
