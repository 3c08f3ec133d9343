// Package sphere implements computational geometry on the unit sphere:
// great-circle segments, latitude-circle segments, and simple piecewise
// chains of them, with queries for arc length, evaluation, intersection,
// point containment, and nearest points. A ball tree over point sets
// supports pruned proximity queries against arbitrary regions described
// by a distance oracle.
//
// # Units
//
// Coordinates are (latitude, longitude) pairs in degrees. Lengths,
// parameters, and distances are great-circle degrees: the angle
// subtended at the sphere's center. Every [Arc] is parameterized at unit
// speed in that angle, so a [Parallel]'s length is its longitude extent
// scaled by the cosine of its latitude.
//
// # Tolerances
//
// Queries take an absolute angular tolerance in degrees;
// [DefaultTolerance] is a suitable general-purpose value. Tolerances are
// explicit arguments rather than package state so that callers with
// differing precision needs can vary them per call.
//
// # Limitations
//
// Intersections reports isolated points only: where two curves coincide
// over a continuous stretch, a single representative point stands in for
// the whole stretch. Nearest-point queries use golden-section search and
// return a local minimum; the angular distance from a point to a long
// arc can have two local minima, so the global nearest point is only
// guaranteed when the distance function is unimodal over the arc.
//
// # Concurrency
//
// Every type in this package is immutable after construction, so
// concurrent read-only use is safe without locking.
package sphere
