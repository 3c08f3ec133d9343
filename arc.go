package sphere

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// DefaultTolerance is a default absolute tolerance for geometric
// queries, in degrees. It is the square root of the float64 machine
// epsilon: half of the available precision.
const DefaultTolerance = 1.4901161193847656e-08

// GeometryError reports invalid construction input or an intersection
// pairing with no handler.
type GeometryError string

func (e GeometryError) Error() string { return string(e) }

// Arc is a curve on the unit sphere with a unit-speed parameterization
// by arc length. Lengths, parameters, and distances are great-circle
// degrees; see the package documentation for the unit conventions.
//
// The concrete variants are [Geodesic], [Parallel], and
// [SimplePiecewiseArc] (with [Polygon] and [BoundingBox] built on the
// latter).
type Arc interface {
	// Length returns the angular length of the arc, in degrees.
	Length() float64

	// At evaluates the arc at parameter t. It panics when t is outside
	// [0, Length].
	At(t float64) Point

	// Start returns the first endpoint, At(0).
	Start() Point

	// End returns the last endpoint, At(Length).
	End() Point

	// Tangent returns the unit direction of travel at parameter t. It
	// panics when t is outside [0, Length].
	Tangent(t float64) r3.Vector

	// Intersections returns isolated points where the two arcs meet,
	// located to within the absolute angular tolerance tol. Where the
	// arcs coincide over a continuous stretch, a single representative
	// point is reported for the stretch. Pairings with no handler on
	// either side return a GeometryError.
	Intersections(other Arc, tol float64) ([]Point, error)

	// Nearest returns the parameter of the point on the arc nearest to
	// q, located to within tol, and its angular distance from q. The
	// result is a local minimum; see the package documentation.
	Nearest(q Point, tol float64) (t, d float64)
}

// arcIntersecter is implemented by composite arcs that can intersect an
// arbitrary Arc. Primitives double-dispatch through it for pairings
// they do not handle themselves.
type arcIntersecter interface {
	intersectArc(other Arc, tol float64) ([]Point, error)
}

func checkParam(t, length float64) {
	if t < 0 || t > length {
		panic(fmt.Sprintf("sphere: parameter %g outside [0, %g]", t, length))
	}
}

// dedupePoints drops points within tol of an earlier point in the list.
func dedupePoints(pts []Point, tol float64) []Point {
	var out []Point
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if AngularDistance(p, q) <= tol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
