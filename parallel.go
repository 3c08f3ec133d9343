package sphere

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Parallel is a segment of a latitude circle. It is parameterized by
// arc length like every Arc, so its length is the traversed longitude
// extent scaled by the cosine of the latitude: a long parallel near a
// pole is still a short arc.
type Parallel struct {
	lat     float64
	lon0    float64 // normalized start longitude
	sweep   float64 // signed longitude extent, positive eastward
	crossDL bool
	length  float64
}

var _ Arc = (*Parallel)(nil)

func newParallelSweep(lat, lon0, sweep float64) *Parallel {
	p := &Parallel{lat: lat, lon0: NormalizeLon(lon0), sweep: sweep}
	p.crossDL = sweep != 0 && crossesSeam(p.lon0, sweep)
	p.length = math.Abs(sweep) * cosd(lat)
	return p
}

// NewParallel returns the segment of the latitude circle at lat degrees
// running from lon0 to lon1. The direction of travel follows the sign
// of the raw difference lon1 - lon0; crossDateline selects, of the two
// ways around the circle, the one that does (true) or does not (false)
// cross the ±180 seam. lon1 = lon0 ± 360 denotes the full circle, which
// always counts as crossing the seam.
func NewParallel(lat, lon0, lon1 float64, crossDateline bool) (*Parallel, error) {
	if lat < -90 || lat > 90 {
		return nil, GeometryError(fmt.Sprintf("sphere: latitude %g outside [-90, 90]", lat))
	}
	l0 := NormalizeLon(lon0)
	delta := lon1 - lon0
	var sweep float64
	switch {
	case math.Abs(delta) >= 360:
		sweep = math.Copysign(360, delta)
	case delta == 0:
		if crossDateline {
			sweep = 360
		}
	default:
		sweep = delta
		if crossDateline != crossesSeam(l0, delta) {
			sweep = delta - math.Copysign(360, delta)
		}
	}
	return newParallelSweep(lat, l0, sweep), nil
}

// crossesSeam reports whether traveling delta degrees of longitude from
// l0 crosses the ±180 seam. Ending exactly on the seam does not count.
func crossesSeam(l0, delta float64) bool {
	if delta > 0 {
		return l0+delta > 180
	}
	return l0+delta < -180
}

// Latitude returns the latitude of the circle, in degrees.
func (p *Parallel) Latitude() float64 { return p.lat }

// CrossesDateline reports whether the traversal crosses the ±180 seam.
func (p *Parallel) CrossesDateline() bool { return p.crossDL }

// Length returns the arc length in great-circle degrees: the longitude
// extent scaled by cos(latitude).
func (p *Parallel) Length() float64 { return p.length }

// lonAt converts an arc-length parameter to a signed longitude offset
// from lon0.
func (p *Parallel) lonAt(t float64) float64 {
	if p.length == 0 {
		return 0
	}
	return math.Copysign(t/cosd(p.lat), p.sweep)
}

// At evaluates the parallel t degrees of arc from its start.
func (p *Parallel) At(t float64) Point {
	checkParam(t, p.length)
	return LL(p.lat, NormalizeLon(p.lon0+p.lonAt(t)))
}

// Start returns the first endpoint.
func (p *Parallel) Start() Point { return LL(p.lat, p.lon0) }

// End returns the last endpoint.
func (p *Parallel) End() Point { return LL(p.lat, NormalizeLon(p.lon0+p.sweep)) }

// Tangent returns the unit direction of travel at parameter t.
func (p *Parallel) Tangent(t float64) r3.Vector {
	checkParam(t, p.length)
	pos := p.At(t).Vector()
	east := r3.Vector{Z: 1}.Cross(pos)
	if east.Norm() < 1e-12 {
		// A polar circle has no east; the direction is arbitrary.
		east = pos.Ortho()
	}
	east = east.Normalize()
	if p.sweep < 0 {
		return east.Mul(-1)
	}
	return east
}

// eastInterval returns the covered longitudes as an eastward traversal:
// a start longitude and a nonnegative width in degrees.
func (p *Parallel) eastInterval() (start, width float64) {
	if p.sweep >= 0 {
		return p.lon0, p.sweep
	}
	return NormalizeLon(p.lon0 + p.sweep), -p.sweep
}

// covers reports whether the longitude span contains lon, within an
// angular tolerance converted to longitude degrees at this latitude.
func (p *Parallel) covers(lon, tol float64) bool {
	start, width := p.eastInterval()
	if width >= 360 {
		return true
	}
	lonTol := 360.0
	if c := cosd(p.lat); c > tol/360 {
		lonTol = tol / c
	}
	rel := math.Mod(lon-start, 360)
	if rel < 0 {
		rel += 360
	}
	return rel <= width+lonTol || rel >= 360-lonTol
}

// Intersections returns the points where the two arcs meet, if any.
func (p *Parallel) Intersections(other Arc, tol float64) ([]Point, error) {
	switch o := other.(type) {
	case *Parallel:
		return p.intersectParallel(o, tol), nil
	case *Geodesic:
		return p.intersectGeodesic(o, tol), nil
	default:
		if c, ok := other.(arcIntersecter); ok {
			return c.intersectArc(p, tol)
		}
		return nil, GeometryError(fmt.Sprintf("sphere: no intersection rule for %T and %T", p, other))
	}
}

func (p *Parallel) intersectParallel(o *Parallel, tol float64) []Point {
	if math.Abs(p.lat-o.lat) > tol {
		// Distinct latitude circles never meet.
		return nil
	}
	sa, wa := p.eastInterval()
	sb, wb := o.eastInterval()
	off := math.Mod(sb-sa, 360)
	if off < 0 {
		off += 360
	}
	comps := overlapComponents(wa, off, wb)
	pts := make([]Point, 0, len(comps))
	for _, c := range comps {
		pts = append(pts, LL(p.lat, NormalizeLon(sa+0.5*(c[0]+c[1]))))
	}
	return dedupePoints(pts, tol)
}

// overlapComponents intersects [0, wa] with the circular interval of
// width wb starting at offset off, in the frame of the first interval.
// The circular operand is unwrapped into its two linear copies; abutting
// results are merged so a coincident stretch yields one component.
func overlapComponents(wa, off, wb float64) [][2]float64 {
	const seam = 1e-9
	var comps [][2]float64
	for _, lo := range []float64{off, off - 360} {
		l, h := math.Max(lo, 0), math.Min(lo+wb, wa)
		if l <= h {
			comps = append(comps, [2]float64{l, h})
		}
	}
	if len(comps) == 2 {
		if comps[1][0] < comps[0][0] {
			comps[0], comps[1] = comps[1], comps[0]
		}
		switch {
		case comps[1][0] <= comps[0][1]+seam:
			comps = [][2]float64{{comps[0][0], math.Max(comps[0][1], comps[1][1])}}
		case wa >= 360-seam && comps[0][0] <= seam && comps[1][1] >= wa-seam:
			// Touching across the wrap of a full first circle.
			comps = [][2]float64{{comps[1][0] - 360, comps[0][1]}}
		}
	}
	return comps
}

func (p *Parallel) intersectGeodesic(g *Geodesic, tol float64) []Point {
	// The equator is the only geodesic that runs along a parallel; that
	// pairing reduces to interval overlap like two parallels.
	if math.Abs(p.lat) <= tol && math.Abs(g.source.Lat) <= tol && math.Abs(g.dest.Lat) <= tol {
		return p.intersectEquator(g, tol)
	}

	// Split the path at its latitude extrema, bisect each monotone
	// piece, and accept a tangency when an extremum sits on the circle.
	tMax, _ := GoldenSection(func(t float64) float64 { return -g.latAt(t) }, 0, g.angle, tol)
	tMin, _ := GoldenSection(g.latAt, 0, g.angle, tol)
	cuts := []float64{0, g.angle}
	for _, te := range [2]float64{tMin, tMax} {
		if te > tol && te < g.angle-tol {
			cuts = append(cuts, te)
		}
	}
	sort.Float64s(cuts)

	var pts []Point
	accept := func(t float64) {
		if q := g.At(t); math.Abs(q.Lat-p.lat) <= tol && p.covers(q.Lon, tol) {
			pts = append(pts, LL(p.lat, q.Lon))
		}
	}
	f := func(t float64) float64 { return g.latAt(t) - p.lat }
	for i := 0; i+1 < len(cuts); i++ {
		if troot, ok := Bisection(f, cuts[i], cuts[i+1], tol); ok {
			accept(troot)
		}
	}
	accept(tMax)
	accept(tMin)
	return dedupePoints(pts, tol)
}

// intersectEquator overlaps the longitude intervals of an equatorial
// parallel and an equatorial geodesic.
func (p *Parallel) intersectEquator(g *Geodesic, tol float64) []Point {
	sa, wa := p.eastInterval()
	sb := NormalizeLon(g.source.Lon)
	if g.axis.Z < 0 {
		// Westward travel; restate as an eastward interval.
		sb = NormalizeLon(g.dest.Lon)
	}
	off := math.Mod(sb-sa, 360)
	if off < 0 {
		off += 360
	}
	comps := overlapComponents(wa, off, g.angle)
	pts := make([]Point, 0, len(comps))
	for _, c := range comps {
		pts = append(pts, LL(p.lat, NormalizeLon(sa+0.5*(c[0]+c[1]))))
	}
	return dedupePoints(pts, tol)
}

// Nearest returns the parameter of the point nearest to q and its
// angular distance from q.
func (p *Parallel) Nearest(q Point, tol float64) (t, d float64) {
	qv := q.Vector()
	return GoldenSection(func(t float64) float64 {
		return angleBetween(qv, p.At(t).Vector())
	}, 0, p.length, tol)
}
