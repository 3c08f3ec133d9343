package sphere

import (
	"fmt"
	"slices"
)

// Polygon is a closed chain of geodesic edges over a vertex list, with
// an implicit closing edge from the last vertex back to the first.
// Vertices must be ordered counterclockwise as seen from the sphere's
// center, so that the enclosed region lies to the right of travel; the
// containment queries of the embedded chain then answer for the
// enclosed region.
type Polygon struct {
	*SimplePiecewiseArc
	verts []Point
}

// NewPolygon builds a polygon from at least three vertices. Consecutive
// vertices must not be antipodal, and the edges must form a simple
// closed chain.
func NewPolygon(verts []Point, tol float64) (*Polygon, error) {
	if len(verts) < 3 {
		return nil, GeometryError("sphere: polygon needs at least three vertices")
	}
	edges := make([]Arc, len(verts))
	for i, v := range verts {
		g, err := NewGeodesic(v, verts[(i+1)%len(verts)])
		if err != nil {
			return nil, fmt.Errorf("sphere: polygon edge %d: %w", i, err)
		}
		edges[i] = g
	}
	chain, err := NewSimplePiecewiseArc(edges, tol)
	if err != nil {
		return nil, err
	}
	return &Polygon{SimplePiecewiseArc: chain, verts: slices.Clone(verts)}, nil
}

// Vertices returns a copy of the vertex list.
func (p *Polygon) Vertices() []Point { return slices.Clone(p.verts) }
