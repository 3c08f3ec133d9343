package sphere

import (
	"testing"
)

func mustPolygon(t *testing.T, verts []Point) *Polygon {
	t.Helper()
	p, err := NewPolygon(verts, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPolygonContains(t *testing.T) {
	box := mustPolygon(t, []Point{LL(45, 0), LL(45, 10), LL(35, 10), LL(35, 0)})
	if !box.Contains(LL(40, 5)) {
		t.Error("expected (40, 5) inside the polygon")
	}
	if box.Contains(LL(0, 0)) {
		t.Error("expected (0, 0) outside the polygon")
	}
	// Vertices and edge points are on the boundary, which counts as
	// inside.
	if !box.Contains(LL(45, 0)) {
		t.Error("expected the vertex (45, 0) inside")
	}
	if !box.Contains(box.At(box.Length() / 3)) {
		t.Error("expected a boundary point inside")
	}
}

func TestPolygonContainsByReference(t *testing.T) {
	box := mustPolygon(t, []Point{LL(45, 0), LL(45, 10), LL(35, 10), LL(35, 0)})
	for _, c := range []struct {
		q    Point
		want bool
	}{
		{LL(40, 5), true},
		{LL(0, 0), false},
		{LL(40, 20), false},
		{LL(50, 5), false},
		{LL(-40, -175), false},
	} {
		got, err := box.ContainsByReference(c.q, DefaultTolerance)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("ContainsByReference(%v) = %t, expected %t", c.q, got, c.want)
		}
	}
}

func TestPolygonContainmentMethodsAgree(t *testing.T) {
	polys := []*Polygon{
		mustPolygon(t, []Point{LL(45, 0), LL(45, 10), LL(35, 10), LL(35, 0)}),
		mustPolygon(t, []Point{LL(45, 0), LL(-22, 90), LL(-22, -90)}),
	}
	for _, poly := range polys {
		for lat := -80.0; lat <= 80; lat += 20 {
			for lon := -160.0; lon <= 160; lon += 40 {
				q := LL(lat, lon)
				// Skip queries close to the boundary, where the two
				// methods may legitimately disagree within tolerance.
				if _, d := poly.Nearest(q, DefaultTolerance); d < 0.5 {
					continue
				}
				byRef, err := poly.ContainsByReference(q, DefaultTolerance)
				if err != nil {
					t.Fatal(err)
				}
				if byAngle := poly.Contains(q); byAngle != byRef {
					t.Errorf("methods disagree at %v: angle %t, reference %t", q, byAngle, byRef)
				}
			}
		}
	}
}

func TestPolygonReferenceThroughVertex(t *testing.T) {
	// The geodesic from these queries to the reference point runs down
	// the lon-0 meridian, exactly through a vertex of each polygon. The
	// crossing count must reroute around the vertex instead of trusting
	// the per-segment counts there.
	polys := []*Polygon{
		mustPolygon(t, []Point{LL(45, 0), LL(-22, 90), LL(-22, -90)}),
		mustPolygon(t, []Point{LL(45, 0), LL(45, 10), LL(35, 10), LL(35, 0)}),
	}
	for _, poly := range polys {
		for _, q := range []Point{LL(60, 0), LL(80, 0)} {
			got, err := poly.ContainsByReference(q, DefaultTolerance)
			if err != nil {
				t.Fatal(err)
			}
			if got {
				t.Errorf("ContainsByReference(%v) = true, expected outside", q)
			}
			if want := poly.Contains(q); got != want {
				t.Errorf("methods disagree at %v: angle %t, reference %t", q, want, got)
			}
		}
	}
}

func TestPolygonValidation(t *testing.T) {
	if _, err := NewPolygon([]Point{LL(0, 0), LL(10, 10)}, DefaultTolerance); err == nil {
		t.Error("expected an error for fewer than three vertices")
	}
	// A bowtie: the second and fourth edges cross.
	bowtie := []Point{LL(10, 0), LL(-10, 0), LL(10, 10), LL(-10, 10)}
	if _, err := NewPolygon(bowtie, DefaultTolerance); err == nil {
		t.Error("expected an error for a self-intersecting vertex list")
	}
	// Consecutive antipodal vertices have no unique edge.
	antipodal := []Point{LL(0, 0), LL(0, 180), LL(45, 90)}
	if _, err := NewPolygon(antipodal, DefaultTolerance); err == nil {
		t.Error("expected an error for antipodal neighbors")
	}
}

func TestPolygonVertices(t *testing.T) {
	verts := []Point{LL(45, 0), LL(45, 10), LL(35, 10), LL(35, 0)}
	poly := mustPolygon(t, verts)
	diff(t, verts, poly.Vertices())
	if !poly.Closed() {
		t.Error("a polygon must report itself closed")
	}
}
