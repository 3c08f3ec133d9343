package sphere

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Geodesic is the shortest great-circle path between two points.
//
// The path is parameterized by rotation about the great circle's axis:
// At(t) sweeps from the source toward the destination at unit angular
// speed, so Length is the central angle between the endpoints.
type Geodesic struct {
	source, dest Point
	xyz0         r3.Vector // source as a unit vector
	axis         r3.Vector // unit rotation axis, xyz0 x xyz1
	ortho        r3.Vector // axis x xyz0, completing the in-plane frame
	angle        float64
}

var _ Arc = (*Geodesic)(nil)

func newGeodesic(source, dest Point) *Geodesic {
	xyz0 := source.Vector()
	xyz1 := dest.Vector()
	angle := angleBetween(xyz0, xyz1)
	axis := xyz0.Cross(xyz1)
	if axis.Norm() < 1e-12 {
		// Coincident or antipodal endpoints leave the plane
		// unconstrained; substitute a deterministic axis.
		axis = xyz0.Ortho()
	} else {
		axis = axis.Normalize()
	}
	return &Geodesic{
		source: source,
		dest:   dest,
		xyz0:   xyz0,
		axis:   axis,
		ortho:  axis.Cross(xyz0).Normalize(),
		angle:  angle,
	}
}

// NewGeodesic returns the shortest path from source to dest. Endpoints
// within DefaultTolerance of antipodal are rejected: the shortest path
// between them is numerically unstable, and at exact antipodes not even
// unique.
func NewGeodesic(source, dest Point) (*Geodesic, error) {
	g := newGeodesic(source, dest)
	if g.angle >= 180-DefaultTolerance {
		return nil, GeometryError(fmt.Sprintf("sphere: geodesic endpoints %v and %v are nearly antipodal", source, dest))
	}
	return g, nil
}

// Length returns the central angle between the endpoints, in degrees.
func (g *Geodesic) Length() float64 { return g.angle }

// Start returns the source endpoint.
func (g *Geodesic) Start() Point { return g.source }

// End returns the destination endpoint.
func (g *Geodesic) End() Point { return g.dest }

func (g *Geodesic) vectorAt(t float64) r3.Vector {
	return g.xyz0.Mul(cosd(t)).Add(g.ortho.Mul(sind(t)))
}

// latAt returns the latitude of the path at parameter t.
func (g *Geodesic) latAt(t float64) float64 {
	return asind(clamp1(g.vectorAt(t).Z))
}

// At evaluates the path t degrees from the source.
func (g *Geodesic) At(t float64) Point {
	checkParam(t, g.angle)
	return NewPointFromVector(g.vectorAt(t))
}

// Tangent returns the unit direction of travel at parameter t.
func (g *Geodesic) Tangent(t float64) r3.Vector {
	checkParam(t, g.angle)
	return g.xyz0.Mul(-sind(t)).Add(g.ortho.Mul(cosd(t)))
}

// Intersections returns the points where the two arcs meet, if any.
func (g *Geodesic) Intersections(other Arc, tol float64) ([]Point, error) {
	switch o := other.(type) {
	case *Geodesic:
		return g.intersectGeodesic(o, tol), nil
	case *Parallel:
		return o.intersectGeodesic(g, tol), nil
	default:
		if c, ok := other.(arcIntersecter); ok {
			return c.intersectArc(g, tol)
		}
		return nil, GeometryError(fmt.Sprintf("sphere: no intersection rule for %T and %T", g, other))
	}
}

// crossGreatCircle locates the parameter where g crosses the great
// circle containing o, by bisecting the signed distance from o's plane.
func (g *Geodesic) crossGreatCircle(o *Geodesic, tol float64) (Point, bool) {
	f := func(t float64) float64 { return g.vectorAt(t).Dot(o.axis) }
	t, ok := Bisection(f, 0, g.angle, tol)
	if !ok {
		return Point{}, false
	}
	return g.At(t), true
}

func (g *Geodesic) intersectGeodesic(o *Geodesic, tol float64) []Point {
	// The plane distance bisected below is a sine of angle, so the
	// angular tolerance is scaled down before use as a residual bound.
	gcTol := tol / (2 * math.Pi)
	p0, ok := g.crossGreatCircle(o, gcTol)
	if !ok {
		return nil
	}
	p1, ok := o.crossGreatCircle(g, gcTol)
	if !ok {
		return nil
	}
	// Each side found where it meets the other's great circle; the two
	// candidates agree only if the segments themselves meet.
	conn := newGeodesic(p0, p1)
	if conn.angle >= tol {
		return nil
	}
	return []Point{conn.At(0.5 * conn.angle)}
}

// Nearest returns the parameter of the point nearest to q and its
// angular distance from q.
func (g *Geodesic) Nearest(q Point, tol float64) (t, d float64) {
	qv := q.Vector()
	return GoldenSection(func(t float64) float64 {
		return angleBetween(qv, g.vectorAt(t))
	}, 0, g.angle, tol)
}
