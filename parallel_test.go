package sphere

import (
	"math"
	"testing"
)

func mustParallel(t *testing.T, lat, lon0, lon1 float64, crossDateline bool) *Parallel {
	t.Helper()
	p, err := NewParallel(lat, lon0, lon1, crossDateline)
	if err != nil {
		t.Fatalf("NewParallel(%g, %g, %g, %t): %v", lat, lon0, lon1, crossDateline, err)
	}
	return p
}

func intersections(t *testing.T, a, b Arc) []Point {
	t.Helper()
	pts, err := a.Intersections(b, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	return pts
}

func TestParallelSweep(t *testing.T) {
	approxEqual := func(x, y float64) bool {
		return math.Abs(x-y) < 1e-9
	}

	// Eastward quarter circle at mid latitude.
	p := mustParallel(t, 45, 0, 90, false)
	if want := 90 * cosd(45); !approxEqual(p.Length(), want) {
		t.Errorf("got length %g, expected %g", p.Length(), want)
	}
	if mid := p.At(p.Length() / 2); AngularDistance(mid, LL(45, 45)) > 1e-9 {
		t.Errorf("midpoint %v, expected (45, 45)", mid)
	}
	if p.CrossesDateline() {
		t.Error("a 0 to 90 sweep does not cross the dateline")
	}

	// Westward when lon1 is west of lon0.
	p = mustParallel(t, 0, 10, -10, false)
	if got := p.End(); AngularDistance(got, LL(0, -10)) > 1e-9 {
		t.Errorf("got end %v, expected (0, -10)", got)
	}
	if p.At(10).Lon >= 10 {
		t.Error("expected westward travel from lon 10")
	}

	// The dateline flag selects the complementary way around.
	p = mustParallel(t, 0, 170, -170, true)
	if !approxEqual(p.Length(), 20) {
		t.Errorf("got length %g, expected 20", p.Length())
	}
	if !p.CrossesDateline() {
		t.Error("expected a dateline crossing")
	}
	if got := p.At(10); AngularDistance(got, LL(0, 180)) > 1e-9 {
		t.Errorf("got midpoint %v, expected (0, 180)", got)
	}

	// Full circle.
	p = mustParallel(t, 30, -20, 340, false)
	if want := 360 * cosd(30); !approxEqual(p.Length(), want) {
		t.Errorf("got length %g, expected %g", p.Length(), want)
	}

	if _, err := NewParallel(100, 0, 10, false); err == nil {
		t.Error("expected an error for a latitude beyond 90")
	}
}

// The half-globe equator segments exercise the sign rule for spans of
// exactly 180 degrees: a negative raw difference runs west, a positive
// one east.
func TestParallelIntersections(t *testing.T) {
	western := mustParallel(t, 0, 0, -180, false)
	eastern := mustParallel(t, 0, 0, 180, false)

	pts := intersections(t, western, eastern)
	if len(pts) != 2 {
		t.Fatalf("got %d intersections of the two equator halves, expected 2", len(pts))
	}
	seen := map[bool]bool{}
	for _, p := range pts {
		if math.Abs(p.Lat) > 1e-9 {
			t.Errorf("intersection %v is off the equator", p)
		}
		seen[math.Abs(NormalizeLon(p.Lon)) > 90] = true
	}
	if !seen[false] || !seen[true] {
		t.Errorf("expected one meeting point near lon 0 and one near lon 180, got %v", pts)
	}

	// An equatorial geodesic overlaps each half in a stretch, reported
	// as a single representative point.
	equatorRun := mustGeodesic(t, LL(0, 0), LL(0, 100))
	if pts := intersections(t, equatorRun, western); len(pts) != 1 {
		t.Errorf("got %d intersections with the western half, expected 1", len(pts))
	}
	if pts := intersections(t, equatorRun, eastern); len(pts) != 1 {
		t.Errorf("got %d intersections with the eastern half, expected 1", len(pts))
	}

	// The pole circle is a zero-length full circle.
	pole := mustParallel(t, 90, -180, 180, true)
	if pts := intersections(t, pole, western); len(pts) != 0 {
		t.Errorf("got %d intersections of the pole circle with the equator, expected 0", len(pts))
	}
	if pts := intersections(t, equatorRun, pole); len(pts) != 0 {
		t.Errorf("got %d intersections of an equatorial run with the pole circle, expected 0", len(pts))
	}
	if pts := intersections(t, pole, pole); len(pts) != 1 {
		t.Errorf("got %d self-intersections of the pole circle, expected 1", len(pts))
	}

	// A geodesic between antipodal longitudes passes through the pole.
	overPole := mustGeodesic(t, LL(70, -20), LL(40, 160))
	if pts := intersections(t, overPole, pole); len(pts) != 1 {
		t.Errorf("got %d intersections at the pole, expected 1", len(pts))
	}
}

func TestParallelGeodesicCrossings(t *testing.T) {
	// Complement of a 30-degree gap: covers all longitudes outside
	// (-15, 15).
	farSouth := mustParallel(t, -30, -15, 15, true)

	descending := mustGeodesic(t, LL(-10, 40), LL(-55, 65))
	pts := intersections(t, farSouth, descending)
	if len(pts) != 1 {
		t.Fatalf("got %d crossings, expected 1", len(pts))
	}
	if math.Abs(pts[0].Lat+30) > 1e-6 {
		t.Errorf("crossing %v is off latitude -30", pts[0])
	}

	// The same geodesic never reaches the equator.
	eastern := mustParallel(t, 0, 0, 180, false)
	if pts := intersections(t, descending, eastern); len(pts) != 0 {
		t.Errorf("got %d equator crossings, expected 0", len(pts))
	}

	// A same-latitude geodesic across the dateline dips south of its
	// endpoints and crosses latitude -30 twice near the seam.
	dipping := mustGeodesic(t, LL(-28, -140), LL(-28, 140))
	if pts := intersections(t, farSouth, dipping); len(pts) != 2 {
		t.Errorf("got %d crossings, expected 2", len(pts))
	}
	// Both crossings are outside a short parallel far from the seam.
	nearPrime := mustParallel(t, -30, -10, 10, false)
	if pts := intersections(t, nearPrime, dipping); len(pts) != 0 {
		t.Errorf("got %d crossings, expected 0", len(pts))
	}

	// An endpoint landing exactly on the parallel counts once.
	short := mustParallel(t, -55, 60, 70, false)
	if pts := intersections(t, short, descending); len(pts) != 1 {
		t.Errorf("got %d endpoint touches, expected 1", len(pts))
	}
}

func TestParallelNearest(t *testing.T) {
	p := mustParallel(t, 45, 0, 90, false)
	tt, d := p.Nearest(LL(50, 45), 1e-9)
	if math.Abs(d-5) > 1e-6 {
		t.Errorf("got distance %g, expected 5", d)
	}
	if at := p.At(tt); math.Abs(at.Lon-45) > 1e-5 {
		t.Errorf("nearest point %v, expected lon 45", at)
	}
}
