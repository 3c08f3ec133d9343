package sphere

import (
	"math"
	"slices"
	"sort"
)

// BallTree is a static spatial index over a point set, supporting
// pruned proximity queries in angular distance. Nodes live in a
// complete-binary-tree array, node i owning a contiguous run of a
// permutation of the points, with children at 2i+1 and 2i+2. Each node
// stores the angular radius of its run about a representative point,
// the first point of the run.
type BallTree struct {
	pts   []Point
	idx   []int
	nodes []ballNode
}

type ballNode struct {
	start, end int
	leaf       bool
	radius     float64
}

// NewBallTree indexes pts with at most leafSize points per leaf. A
// nonpositive leafSize selects a default. The point slice is copied.
func NewBallTree(pts []Point, leafSize int) *BallTree {
	if leafSize <= 0 {
		leafSize = 30
	}
	n := len(pts)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	levels := 1
	for (1<<(levels-1))*leafSize < n {
		levels++
	}
	t := &BallTree{
		pts:   slices.Clone(pts),
		idx:   idx,
		nodes: make([]ballNode, 1<<levels-1),
	}
	if n > 0 {
		t.build(0, 0, n)
	}
	return t
}

func (t *BallTree) build(node, start, end int) {
	rep := t.pts[t.idx[start]]
	radius := 0.0
	for _, i := range t.idx[start:end] {
		radius = math.Max(radius, AngularDistance(rep, t.pts[i]))
	}
	left := 2*node + 1
	if left >= len(t.nodes) || end-start <= 2 {
		t.nodes[node] = ballNode{start: start, end: end, leaf: true, radius: radius}
		return
	}
	t.nodes[node] = ballNode{start: start, end: end, radius: radius}

	// Median split on the coordinate with the greater spread.
	run := t.idx[start:end]
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for _, i := range run {
		minLat = math.Min(minLat, t.pts[i].Lat)
		maxLat = math.Max(maxLat, t.pts[i].Lat)
		lon := NormalizeLon(t.pts[i].Lon)
		minLon = math.Min(minLon, lon)
		maxLon = math.Max(maxLon, lon)
	}
	if maxLat-minLat >= maxLon-minLon {
		sort.Slice(run, func(a, b int) bool { return t.pts[run[a]].Lat < t.pts[run[b]].Lat })
	} else {
		sort.Slice(run, func(a, b int) bool {
			return NormalizeLon(t.pts[run[a]].Lon) < NormalizeLon(t.pts[run[b]].Lon)
		})
	}
	mid := (start + end) / 2
	t.build(left, start, mid)
	t.build(left+1, mid, end)
}

// Count returns the number of indexed points.
func (t *BallTree) Count() int { return len(t.pts) }

// Touches reports whether any indexed point lies within tol of the
// region described by the distance oracle d, which must return the
// angular distance from its argument to the region (0 inside) and must
// satisfy the triangle inequality against angular distance. A subtree
// is skipped when its representative alone proves every point in it out
// of range. On success the second result is a touching witness point.
func (t *BallTree) Touches(d func(Point) float64, tol float64) (bool, Point) {
	if len(t.pts) == 0 {
		return false, Point{}
	}
	return t.touch(0, d, tol)
}

func (t *BallTree) touch(node int, d func(Point) float64, tol float64) (bool, Point) {
	nd := t.nodes[node]
	rep := t.pts[t.idx[nd.start]]
	if d(rep) > 2*nd.radius+tol {
		// Every point of the subtree is within 2*radius of the
		// representative, so none can be within tol of the region.
		return false, rep
	}
	if nd.leaf {
		for _, i := range t.idx[nd.start:nd.end] {
			if p := t.pts[i]; d(p) < tol {
				return true, p
			}
		}
		return false, rep
	}
	if touched, p := t.touch(2*node+1, d, tol); touched {
		return true, p
	}
	return t.touch(2*node+2, d, tol)
}

// Nearest returns the indexed point closest to q and its angular
// distance, by branch-and-bound descent into the nearer child first.
// An empty tree returns an infinite distance.
func (t *BallTree) Nearest(q Point) (Point, float64) {
	if len(t.pts) == 0 {
		return Point{}, math.Inf(1)
	}
	best := math.Inf(1)
	var bp Point
	t.nearest(0, q, &bp, &best)
	return bp, best
}

func (t *BallTree) nearest(node int, q Point, bp *Point, best *float64) {
	nd := t.nodes[node]
	rep := t.pts[t.idx[nd.start]]
	if AngularDistance(q, rep)-nd.radius >= *best {
		return
	}
	if nd.leaf {
		for _, i := range t.idx[nd.start:nd.end] {
			if d := AngularDistance(q, t.pts[i]); d < *best {
				*best, *bp = d, t.pts[i]
			}
		}
		return
	}
	l, r := 2*node+1, 2*node+2
	dl := AngularDistance(q, t.pts[t.idx[t.nodes[l].start]])
	dr := AngularDistance(q, t.pts[t.idx[t.nodes[r].start]])
	if dr < dl {
		l, r = r, l
	}
	t.nearest(l, q, bp, best)
	t.nearest(r, q, bp, best)
}
