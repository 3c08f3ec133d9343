package sphere

import "math"

// BoundingBox is the closed boundary of a latitude/longitude box
// between a northwest and a southeast corner: two meridian geodesics
// and two parallels, traversed with the box to the right of travel like
// any closed chain. The box may cross the ±180 seam. Containment is
// overridden with a constant-time coordinate test.
type BoundingBox struct {
	*SimplePiecewiseArc
	nw, se   Point
	lonWidth float64
	crossDL  bool
}

// NewBoundingBox builds the boundary of the box with the given
// northwest and southeast corners. The northwest corner must be
// strictly north of the southeast corner, and the corners must not
// share a longitude. Boxes reaching a pole are rejected: their meridian
// sides would meet there.
func NewBoundingBox(nw, se Point, tol float64) (*BoundingBox, error) {
	if nw.Lat <= se.Lat {
		return nil, GeometryError("sphere: northwest corner must be strictly north of southeast corner")
	}
	if nw.Lat >= 90 || se.Lat <= -90 {
		return nil, GeometryError("sphere: bounding box corner at a pole")
	}
	west := NormalizeLon(nw.Lon)
	east := NormalizeLon(se.Lon)
	width := math.Mod(east-west, 360)
	if width < 0 {
		width += 360
	}
	if width == 0 {
		return nil, GeometryError("sphere: bounding box corners share a longitude")
	}
	eastSide, err := NewGeodesic(LL(nw.Lat, east), LL(se.Lat, east))
	if err != nil {
		return nil, err
	}
	westSide, err := NewGeodesic(LL(se.Lat, west), LL(nw.Lat, west))
	if err != nil {
		return nil, err
	}
	// North edge eastward, down the east meridian, south edge westward,
	// and back up the west meridian.
	chain, err := NewSimplePiecewiseArc([]Arc{
		newParallelSweep(nw.Lat, west, width),
		eastSide,
		newParallelSweep(se.Lat, east, -width),
		westSide,
	}, tol)
	if err != nil {
		return nil, err
	}
	return &BoundingBox{
		SimplePiecewiseArc: chain,
		nw:                 LL(nw.Lat, west),
		se:                 LL(se.Lat, east),
		lonWidth:           width,
		crossDL:            west+width > 180,
	}, nil
}

// NW returns the northwest corner, with normalized longitude.
func (b *BoundingBox) NW() Point { return b.nw }

// SE returns the southeast corner, with normalized longitude.
func (b *BoundingBox) SE() Point { return b.se }

// CrossesDateline reports whether the box spans the ±180 seam.
func (b *BoundingBox) CrossesDateline() bool { return b.crossDL }

// Contains reports whether q lies in the closed box, boundary included.
// It runs in constant time, unlike the generic chain containment test.
func (b *BoundingBox) Contains(q Point) bool {
	if q.Lat < b.se.Lat || q.Lat > b.nw.Lat {
		return false
	}
	rel := math.Mod(q.Lon-b.nw.Lon, 360)
	if rel < 0 {
		rel += 360
	}
	return rel <= b.lonWidth
}
