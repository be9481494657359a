package curveray

import (
	"github.com/soypat/curveray/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

// degenerateArea2 is the squared double area below which a triangle
// is considered degenerate.
const degenerateArea2 = 1e-8

// Triangle is a flat triangle. It doubles as a BVH primitive for the
// triangulated rendering path.
type Triangle struct {
	V [3]ms3.Vec

	nodeIndex int
}

// NewTriangle returns the triangle with vertices v0, v1, v2.
func NewTriangle(v0, v1, v2 ms3.Vec) Triangle {
	return Triangle{V: [3]ms3.Vec{v0, v1, v2}}
}

// cross returns (v1-v0)x(v2-v0), the unnormalized normal scaled by twice the area.
func (t Triangle) cross() ms3.Vec {
	return ms3.Cross(ms3.Sub(t.V[1], t.V[0]), ms3.Sub(t.V[2], t.V[0]))
}

// Normal returns the unit normal following the right hand rule over V[0],V[1],V[2].
func (t Triangle) Normal() ms3.Vec {
	return ms3.Unit(t.cross())
}

// Degenerate returns true if the triangle's squared double area is below tol.
func (t Triangle) Degenerate(tol float32) bool {
	return d3.Norm2(t.cross()) < tol
}

// Centroid returns the mean of the vertices.
func (t Triangle) Centroid() ms3.Vec {
	return d3.Centroid(t.V[:]...)
}

// Bary returns the barycentric coordinates of p with respect to the plane of
// the triangle. p need not lie on the plane; it is implicitly projected along
// the normal. Degenerate triangles return the zero vector.
func (t Triangle) Bary(p ms3.Vec) ms3.Vec {
	n := t.cross()
	area2 := d3.Norm2(n)
	if area2 < degenerateArea2 {
		return ms3.Vec{}
	}
	a0 := ms3.Sub(t.V[0], p)
	a1 := ms3.Sub(t.V[1], p)
	a2 := ms3.Sub(t.V[2], p)
	return ms3.Vec{
		X: ms3.Dot(ms3.Cross(a1, a2), n) / area2,
		Y: ms3.Dot(ms3.Cross(a2, a0), n) / area2,
		Z: ms3.Dot(ms3.Cross(a0, a1), n) / area2,
	}
}

// IntersectPlane returns the ray parameter at which r crosses the plane
// of the triangle. The result is ±Inf or NaN for rays parallel to the plane.
func (t Triangle) IntersectPlane(r Ray) float32 {
	e1 := ms3.Sub(t.V[1], t.V[0])
	e2 := ms3.Sub(t.V[2], t.V[0])
	tt := ms3.Sub(r.Origin, t.V[0])
	n := ms3.Cross(e1, e2)
	c := 1 / -ms3.Dot(r.Direction, n)
	return ms3.Dot(n, tt) * c
}

// Intersect solves the ray/plane intersection and returns the ray parameter,
// the barycentric coordinates of the crossing and whether the crossing lies
// inside the triangle. The barycentric coordinates are returned on a miss
// too: they extrapolate continuously outside of the triangle and callers
// may use them as a coordinate. tHit is only meaningful when inside is true.
func (t Triangle) Intersect(r Ray) (tHit float32, bary ms3.Vec, inside bool) {
	// https://en.wikipedia.org/wiki/Line%E2%80%93plane_intersection
	e1 := ms3.Sub(t.V[1], t.V[0])
	e2 := ms3.Sub(t.V[2], t.V[0])
	tt := ms3.Sub(r.Origin, t.V[0])
	n := ms3.Cross(e1, e2)
	negDir := ms3.Scale(-1, r.Direction)
	c := 1 / ms3.Dot(negDir, n)

	w1 := ms3.Dot(ms3.Cross(e2, negDir), tt) * c
	w2 := ms3.Dot(ms3.Cross(negDir, e1), tt) * c
	w0 := 1 - (w1 + w2)
	bary = ms3.Vec{X: w0, Y: w1, Z: w2}
	if !d3.InUnit(bary) {
		// NaN weights from rays parallel to the plane also land here.
		return 0, bary, false
	}
	return ms3.Dot(n, tt) * c, bary, true
}

// Bounds returns the axis aligned box over the three vertices.
func (t Triangle) Bounds() Box {
	return NewBox(t.V[:]...)
}

// NodeIndex returns the BVH node index last assigned by a hierarchy build.
func (t *Triangle) NodeIndex() int { return t.nodeIndex }

// SetNodeIndex stores the BVH node index. It is only called by hierarchy builds.
func (t *Triangle) SetNodeIndex(i int) { t.nodeIndex = i }
