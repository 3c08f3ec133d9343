package sphere

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// SimplePiecewiseArc is a continuous chain of arcs that does not cross
// itself. A chain whose last segment ends at the start of its first is
// closed and divides the sphere in two; closed chains answer point
// containment queries.
//
// The chain is parameterized by cumulative arc length over its
// segments, with a prefix table resolving parameters to segments in
// logarithmic time.
type SimplePiecewiseArc struct {
	segs   []Arc
	tol    float64
	lens   []float64
	cum    []float64 // cum[i] is the length of segs[:i+1]
	closed bool
	ref    Point
	refIn  bool
	hasRef bool
}

var (
	_ Arc            = (*SimplePiecewiseArc)(nil)
	_ arcIntersecter = (*SimplePiecewiseArc)(nil)
)

// NewSimplePiecewiseArc builds a chain from consecutive segments. Each
// segment must start where its predecessor ends, within tol, and no two
// segments may cross; a segment may share a single point with its
// predecessor, and in a closed chain the last segment may share one with
// the first. A nonpositive tol selects DefaultTolerance.
//
// Closed chains precompute a reference point for ContainsByReference.
func NewSimplePiecewiseArc(segs []Arc, tol float64) (*SimplePiecewiseArc, error) {
	if len(segs) == 0 {
		return nil, GeometryError("sphere: piecewise arc needs at least one segment")
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	lens := make([]float64, len(segs))
	for i, seg := range segs {
		lens[i] = seg.Length()
	}
	s := &SimplePiecewiseArc{
		segs: segs,
		tol:  tol,
		lens: lens,
		cum:  floats.CumSum(make([]float64, len(lens)), lens),
	}
	for i := 1; i < len(segs); i++ {
		if d := AngularDistance(segs[i-1].End(), segs[i].Start()); d > tol {
			return nil, GeometryError(fmt.Sprintf("sphere: chain is discontinuous at segment %d (gap of %g degrees)", i, d))
		}
	}
	s.closed = AngularDistance(segs[len(segs)-1].End(), segs[0].Start()) <= tol
	if err := s.checkSimple(); err != nil {
		return nil, err
	}
	if s.closed {
		s.pickReference()
	}
	return s, nil
}

func (s *SimplePiecewiseArc) checkSimple() error {
	n := len(s.segs)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			pts, err := s.segs[i].Intersections(s.segs[j], s.tol)
			if err != nil {
				return err
			}
			if len(pts) == 0 {
				continue
			}
			if j == i-1 && len(pts) == 1 {
				continue // shared junction
			}
			if j == 0 && i == n-1 && s.closed && len(pts) == 1 {
				continue // shared closing point
			}
			return GeometryError(fmt.Sprintf("sphere: chain crosses itself (segments %d and %d)", j, i))
		}
	}
	return nil
}

// Length returns the total arc length of the chain, in degrees.
func (s *SimplePiecewiseArc) Length() float64 { return s.cum[len(s.cum)-1] }

// Closed reports whether the chain ends where it starts.
func (s *SimplePiecewiseArc) Closed() bool { return s.closed }

// Segments returns the chain's segments, in order.
func (s *SimplePiecewiseArc) Segments() []Arc {
	out := make([]Arc, len(s.segs))
	copy(out, s.segs)
	return out
}

// locate maps a global parameter to its owning segment and a local
// parameter clamped into that segment's range. Parameters exactly at a
// junction belong to the later segment.
func (s *SimplePiecewiseArc) locate(t float64) (int, float64) {
	i := sort.Search(len(s.cum), func(i int) bool { return s.cum[i] > t })
	if i == len(s.cum) {
		i = len(s.cum) - 1
	}
	local := t - (s.cum[i] - s.lens[i])
	return i, math.Max(0, math.Min(local, s.lens[i]))
}

// At evaluates the chain t degrees of arc from its start.
func (s *SimplePiecewiseArc) At(t float64) Point {
	checkParam(t, s.Length())
	i, local := s.locate(t)
	return s.segs[i].At(local)
}

// Start returns the first endpoint of the chain.
func (s *SimplePiecewiseArc) Start() Point { return s.segs[0].Start() }

// End returns the last endpoint of the chain.
func (s *SimplePiecewiseArc) End() Point { return s.segs[len(s.segs)-1].End() }

// Tangent returns the unit direction of travel at parameter t. At a
// junction it is the outgoing segment's direction.
func (s *SimplePiecewiseArc) Tangent(t float64) r3.Vector {
	checkParam(t, s.Length())
	i, local := s.locate(t)
	return s.segs[i].Tangent(local)
}

// tangents returns the directions of travel arriving at and leaving
// parameter t. They differ only at segment junctions.
func (s *SimplePiecewiseArc) tangents(t float64) (back, fwd r3.Vector) {
	i, local := s.locate(t)
	n := len(s.segs)
	fwd = s.segs[i].Tangent(local)
	back = fwd
	switch {
	case local <= s.tol:
		if i > 0 {
			back = s.segs[i-1].Tangent(s.lens[i-1])
		} else if s.closed {
			back = s.segs[n-1].Tangent(s.lens[n-1])
		}
	case s.lens[i]-local <= s.tol:
		back = s.segs[i].Tangent(s.lens[i])
		if i < n-1 {
			fwd = s.segs[i+1].Tangent(0)
		} else if s.closed {
			fwd = s.segs[0].Tangent(0)
		}
	}
	return back, fwd
}

// Nearest returns the parameter of the point on the chain nearest to q
// and its angular distance from q.
func (s *SimplePiecewiseArc) Nearest(q Point, tol float64) (t, d float64) {
	ts := make([]float64, len(s.segs))
	ds := make([]float64, len(s.segs))
	for i, seg := range s.segs {
		ts[i], ds[i] = seg.Nearest(q, tol)
	}
	i := floats.MinIdx(ds)
	return ts[i] + s.cum[i] - s.lens[i], ds[i]
}

// Intersections returns the points where the chain meets other, the
// union of per-segment intersections with duplicates removed.
func (s *SimplePiecewiseArc) Intersections(other Arc, tol float64) ([]Point, error) {
	return s.intersectArc(other, tol)
}

func (s *SimplePiecewiseArc) intersectArc(other Arc, tol float64) ([]Point, error) {
	var pts []Point
	for _, seg := range s.segs {
		got, err := seg.Intersections(other, tol)
		if err != nil {
			return nil, err
		}
		pts = append(pts, got...)
	}
	return dedupePoints(pts, tol), nil
}

// Contains reports whether q lies in the region enclosed by a closed
// chain, where the enclosed region is the one to the right of the
// direction of travel (vertex order counterclockwise as seen from the
// sphere's center). Points on the boundary, within the construction
// tolerance, count as inside. Contains panics when the chain is not
// closed.
func (s *SimplePiecewiseArc) Contains(q Point) bool {
	if !s.closed {
		panic("sphere: containment query on a non-closed chain")
	}
	return s.containsAngle(q, s.tol)
}

// containsAngle classifies q by the tangent directions at the nearest
// boundary point: q is inside when the direction from the boundary
// toward q falls in the interior wedge between the outgoing tangent and
// the reversed incoming tangent.
func (s *SimplePiecewiseArc) containsAngle(q Point, tol float64) bool {
	tStar, d := s.Nearest(q, tol)
	if d <= tol {
		return true
	}
	b := s.At(tStar).Vector()
	qv := q.Vector()
	u := qv.Sub(b.Mul(qv.Dot(b)))
	if u.Norm() == 0 {
		return true
	}
	u = u.Normalize()
	back, fwd := s.tangents(tStar)
	// The interior wedge runs clockwise about b from the outgoing
	// tangent to the reversed incoming tangent.
	return cwAngle(b, fwd, u) < cwAngle(b, fwd, back.Mul(-1))
}

// cwAngle returns the clockwise angle about axis from x to y, in
// [0, 2π). x and y must be tangent to the sphere at axis.
func cwAngle(axis, x, y r3.Vector) float64 {
	a := math.Atan2(-x.Cross(y).Dot(axis), x.Dot(y))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// referenceCandidates are probed in order when a closed chain needs a
// reference point; the first candidate clear of the boundary wins, so
// the choice is deterministic.
var referenceCandidates = []Point{
	{0, 0}, {90, 0}, {-90, 0}, {30, 60}, {-30, -60}, {60, -120},
	{-60, 120}, {45, 170}, {-45, -10}, {10, -75}, {-10, 105}, {75, 45},
}

func (s *SimplePiecewiseArc) pickReference() {
	for _, c := range referenceCandidates {
		if _, d := s.Nearest(c, s.tol); d > 10*s.tol {
			s.ref = c
			s.refIn = s.containsAngle(c, s.tol)
			s.hasRef = true
			return
		}
	}
}

// ContainsByReference reports whether q lies in the enclosed region by
// counting boundary crossings of a geodesic from q to a precomputed
// reference point: an odd count means q and the reference are on
// opposite sides. A path that grazes a segment junction cannot be
// counted reliably and is rerouted through a detour point, so that
// every counted crossing is transversal. Cheaper than Contains when the
// boundary has many segments, but still unreliable when the path runs
// tangent to a boundary edge away from any junction. Panics when the
// chain is not closed.
func (s *SimplePiecewiseArc) ContainsByReference(q Point, tol float64) (bool, error) {
	if !s.closed {
		panic("sphere: containment query on a non-closed chain")
	}
	if !s.hasRef {
		return false, GeometryError("sphere: no reference point clear of the boundary")
	}
	if _, d := s.Nearest(q, tol); d <= tol {
		return true, nil
	}
	crossings, ok, err := s.countCrossings(q, s.ref, tol)
	if err != nil {
		return false, err
	}
	if !ok {
		crossings, ok, err = s.detourCrossings(q, tol)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, GeometryError("sphere: no crossing path clear of segment junctions")
		}
	}
	inside := s.refIn
	if crossings%2 == 1 {
		inside = !inside
	}
	return inside, nil
}

// countCrossings counts the boundary crossings of the geodesic path
// from a to b. It reports ok = false when the path passes close to a
// segment junction: the two segments sharing the junction can report
// the same crossing zero, once, or twice depending on rounding, so the
// count cannot be trusted there.
func (s *SimplePiecewiseArc) countCrossings(a, b Point, tol float64) (count int, ok bool, err error) {
	legs, err := connect(a, b)
	if err != nil {
		return 0, false, err
	}
	for _, leg := range legs {
		for _, seg := range s.segs {
			if _, d := leg.Nearest(seg.Start(), tol); d <= 10*tol {
				return 0, false, nil
			}
		}
		pts, err := s.intersectArc(leg, tol)
		if err != nil {
			return 0, false, err
		}
		count += len(pts)
	}
	return count, true, nil
}

// detourCrossings counts crossings along a rerouted path from q to the
// reference point through a detour. The parity of the crossing count is
// path independent, so any detour clear of the boundary and of the
// junctions serves.
func (s *SimplePiecewiseArc) detourCrossings(q Point, tol float64) (int, bool, error) {
	for _, d := range referenceCandidates {
		if _, bd := s.Nearest(d, tol); bd <= 10*tol {
			continue
		}
		c0, ok, err := s.countCrossings(q, d, tol)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			continue
		}
		c1, ok, err := s.countCrossings(d, s.ref, tol)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			continue
		}
		return c0 + c1, true, nil
	}
	return 0, false, nil
}

// connect returns a geodesic from a to b, or two legs through a detour
// point when a and b are nearly antipodal.
func connect(a, b Point) ([]Arc, error) {
	g, err := NewGeodesic(a, b)
	if err == nil {
		return []Arc{g}, nil
	}
	mid := NewPointFromVector(a.Vector().Ortho())
	g0, err := NewGeodesic(a, mid)
	if err != nil {
		return nil, err
	}
	g1, err := NewGeodesic(mid, b)
	if err != nil {
		return nil, err
	}
	return []Arc{g0, g1}, nil
}

// Distance returns 0 when q is in the enclosed region or within tol of
// the boundary, and the nearest boundary distance otherwise. For open
// chains it is simply the nearest distance. Distance satisfies the
// triangle inequality, which makes it a valid oracle for
// BallTree.Touches.
func (s *SimplePiecewiseArc) Distance(q Point, tol float64) float64 {
	_, d := s.Nearest(q, tol)
	if d <= tol {
		return 0
	}
	if s.closed && s.containsAngle(q, tol) {
		return 0
	}
	return d
}
