package sphere

import (
	"math"
	"testing"
)

func TestVectorRoundTrip(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 15 {
		for lon := -180.0; lon <= 180; lon += 20 {
			p := LL(lat, lon)
			back := NewPointFromVector(p.Vector())
			if d := AngularDistance(p, back); d > 1e-9 {
				t.Errorf("round trip of %v moved %g degrees to %v", p, d, back)
			}
		}
	}
}

func TestAngularDistance(t *testing.T) {
	approxEqual := func(x, y float64) bool {
		return math.Abs(x-y) < 1e-9
	}

	cases := []struct {
		p0, p1 Point
		want   float64
	}{
		{LL(0, 0), LL(0, 90), 90},
		{LL(90, 0), LL(-90, 0), 180},
		{LL(0, 0), LL(0, 180), 180},
		{LL(45, 10), LL(45, 10), 0},
		{LL(0, -180), LL(0, 180), 0},
		{LL(0, 0), LL(0, 1e-7), 1e-7},
	}
	for _, c := range cases {
		if got := AngularDistance(c.p0, c.p1); !approxEqual(got, c.want) {
			t.Errorf("AngularDistance(%v, %v) = %g, expected %g", c.p0, c.p1, got, c.want)
		}
		if fwd, rev := AngularDistance(c.p0, c.p1), AngularDistance(c.p1, c.p0); fwd != rev {
			t.Errorf("AngularDistance not symmetric for %v, %v: %g vs %g", c.p0, c.p1, fwd, rev)
		}
	}
}

func TestAngularDistancesBatch(t *testing.T) {
	p0 := []Point{LL(0, 0), LL(10, 10), LL(-45, 170)}
	p1 := []Point{LL(0, 90), LL(10, 10), LL(45, -170)}
	ds := AngularDistances(p0, p1)
	for i := range p0 {
		if want := AngularDistance(p0[i], p1[i]); ds[i] != want {
			t.Errorf("batch distance %d = %g, expected %g", i, ds[i], want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched batch lengths")
		}
	}()
	AngularDistances(p0, p1[:2])
}

func TestNormalizeLon(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{720, 0},
	}
	for _, c := range cases {
		if got := NormalizeLon(c.in); got != c.want {
			t.Errorf("NormalizeLon(%g) = %g, expected %g", c.in, got, c.want)
		}
	}
}

func TestAntipode(t *testing.T) {
	for _, p := range []Point{LL(0, 0), LL(45, 10), LL(-30, -170), LL(90, 0)} {
		a := p.Antipode()
		if d := AngularDistance(p, a); math.Abs(d-180) > 1e-9 {
			t.Errorf("antipode of %v is %v, only %g degrees away", p, a, d)
		}
	}
}
