package sphere

import "math"

// invPhi is the inverse golden ratio, the bracket shrink factor of
// golden-section search.
var invPhi = (math.Sqrt(5) - 1) / 2

// Bisection estimates the root of f on [a, b] to within tol, assuming f
// has at most one root there. It reports ok = false if no sign change is
// ever observed. On termination the returned parameter is the best of
// the final bracket's endpoints and midpoint, by smallest |f|.
//
// An interval already narrower than tol returns its best point
// immediately, so degenerate (even zero-length) intervals are safe.
func Bisection(f func(float64) float64, a, b, tol float64) (root float64, ok bool) {
	fa, fb := f(a), f(b)
	for {
		m := 0.5 * (a + b)
		fm := f(m)
		if b-a < tol {
			root = a
			best := math.Abs(fa)
			if v := math.Abs(fm); v < best {
				root, best = m, v
			}
			if v := math.Abs(fb); v < best {
				root = b
			}
			return root, true
		}
		switch {
		case fa*fm < 0:
			b, fb = m, fm
		case fm*fb <= 0:
			a, fa = m, fm
		default:
			return 0, false
		}
	}
}

// GoldenSection minimizes f on [a, b] to within tol, evaluating one new
// probe per bracket shrink. The converged midpoint is compared against
// both endpoints, so boundary minima are found exactly. When f is not
// unimodal on the interval the result is only a local minimum.
func GoldenSection(f func(float64) float64, a, b, tol float64) (t, ft float64) {
	if b-a >= tol {
		x := invPhi*a + (1-invPhi)*b
		y := (1-invPhi)*a + invPhi*b
		fx, fy := f(x), f(y)
		for b-a >= tol {
			if fx <= fy {
				b = y
				y, fy = x, fx
				x = invPhi*a + (1-invPhi)*b
				fx = f(x)
			} else {
				a = x
				x, fx = y, fy
				y = (1-invPhi)*a + invPhi*b
				fy = f(y)
			}
		}
	}
	t = 0.5 * (a + b)
	ft = f(t)
	if fa := f(a); fa < ft {
		t, ft = a, fa
	}
	if fb := f(b); fb < ft {
		t, ft = b, fb
	}
	return t, ft
}
