package curveray

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/curveray/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

const (
	// Bisection steps spent looking for a sign change of the radial field.
	searchIterations = 5
	// Bisection steps spent refining a bracketed crossing.
	refineIterations = 3
)

// CurveTriangle is a curved triangle patch. The surface passes through the
// three corners of Base and bulges along edge i toward Pivots[i], which is
// associated with the edge (Base.V[i], Base.V[(i+1)%3]). Koefs[i] is the
// curvature exponent of edge i: 2 gives a circular arc for a pivot at the
// corner of a right angle, larger values flatten the edge toward the straight
// line and smaller values sharpen the bulge toward the pivot.
//
// The geometry is immutable after construction. Triangulation is the only
// field mutated afterwards, by Triangulate.
type CurveTriangle struct {
	Base   Triangle
	Pivots [3]ms3.Vec
	Koefs  [3]float32

	// Triangulation is a flat approximation of the surface filled by Triangulate.
	Triangulation []Triangle

	root         ms3.Vec
	oppositeRoot ms3.Vec
	shellPoints  [3]ms3.Vec
	shell        Shell
	nodeIndex    int
}

// NewCurveTriangle creates a curved patch over base. All curvature exponents
// must be positive and finite.
func NewCurveTriangle(base Triangle, pivots [3]ms3.Vec, koefs [3]float32) (*CurveTriangle, error) {
	for i, k := range koefs {
		if !(k > 0) || math32.IsInf(k, 1) {
			return nil, fmt.Errorf("edge %d exponent %g: %w", i, k, ErrBadKoef)
		}
	}
	c := &CurveTriangle{
		Base:   base,
		Pivots: pivots,
		Koefs:  koefs,
	}
	c.root = d3.Centroid(pivots[:]...)
	sum := ms3.Add(ms3.Add(base.V[0], base.V[1]), base.V[2])
	c.oppositeRoot = ms3.Sub(sum, ms3.Scale(2, c.root))
	for i := range c.shellPoints {
		// Corner reflected through its pivot.
		c.shellPoints[i] = ms3.Sub(ms3.Scale(2, base.V[i]), pivots[i])
	}
	c.shell = NewShell(c.root, c.shellPoints)
	return c, nil
}

// Root returns the centroid of the pivots, the apex the radial field is measured from.
func (c *CurveTriangle) Root() ms3.Vec { return c.root }

// OppositeRoot returns the coarse bounding helper point opposite to the root.
func (c *CurveTriangle) OppositeRoot() ms3.Vec { return c.oppositeRoot }

// ShellPoints returns the cap vertices of the bounding shell.
func (c *CurveTriangle) ShellPoints() [3]ms3.Vec { return c.shellPoints }

// Shell returns the bounding shell of the patch.
func (c *CurveTriangle) Shell() Shell { return c.shell }

// SurfacePoint returns the surface point over a point on (or near) the base plane.
func (c *CurveTriangle) SurfacePoint(onBase ms3.Vec) ms3.Vec {
	return c.SurfacePointBary(c.Base.Bary(onBase))
}

// SurfacePointBary returns the surface point at barycentric coordinates
// bary of the base triangle. Coordinates outside the base triangle extrapolate
// the surface.
func (c *CurveTriangle) SurfacePointBary(bary ms3.Vec) ms3.Vec {
	b := [3]float32{bary.X, bary.Y, bary.Z}
	// Ratio of each coordinate against the remainder of the preceding one.
	// Two zero coordinates at a corner give 0/0 which is defined as 1.
	var rel [3]float32
	for i := range rel {
		rel[i] = b[i] / (1 - b[(i+2)%3])
		if math32.IsNaN(rel[i]) {
			rel[i] = 1
		}
	}
	// Edge weights, a partition of unity.
	var w [3]float32
	for i := range w {
		w[i] = b[i]*rel[(i+1)%3] + b[(i+1)%3]*(1-rel[(i+2)%3])
	}
	var balanced float32
	for i := range w {
		balanced += w[i] * c.Koefs[i]
	}
	var sum ms3.Vec
	for i := range w {
		p := Curve(1-rel[i], c.Base.V[i], c.Base.V[(i+1)%3], c.Pivots[i], c.Koefs[i])
		sum = ms3.Add(sum, ms3.Scale(w[i], d3.UPowElem(p, balanced)))
	}
	return d3.UPowElem(sum, 1/balanced)
}

// Curve evaluates the edge curve from v1 (t=0) to v2 (t=1) bent toward pivot
// with curvature exponent k. t is clamped to [0,1]; NaN is taken as 1.
func Curve(t float32, v1, v2, pivot ms3.Vec, k float32) ms3.Vec {
	switch {
	case !(t < 1):
		t = 1
	case t < 0:
		t = 0
	}
	var p1, p2 float32
	if k == 2 {
		s := (1 - t) * (1 - t)
		f := t * t
		p1 = math32.Sqrt(s / (s + f))
		p2 = math32.Sqrt(f / (s + f))
	} else {
		s := math32.Pow(1-t, k)
		f := math32.Pow(t, k)
		p1 = math32.Pow(s/(s+f), 1/k)
		p2 = math32.Pow(f/(s+f), 1/k)
	}
	return ms3.Add(ms3.Add(ms3.Scale(p1, v1), ms3.Scale(p2, v2)), ms3.Scale(1-p1-p2, pivot))
}

// Triangulate appends a flat approximation of the surface with accuracy²
// triangles to Triangulation. Calling it again appends another triangulation.
func (c *CurveTriangle) Triangulate(accuracy int) {
	if accuracy <= 0 {
		return
	}
	v := c.Base.V
	prev := []ms3.Vec{c.SurfacePoint(v[1])}
	for major := 1; major <= accuracy; major++ {
		mi := float32(major) / float32(accuracy)
		left := d3.Lerp(v[1], v[0], mi)
		right := d3.Lerp(v[1], v[2], mi)
		lineSize := major
		cur := make([]ms3.Vec, 1, lineSize+1)
		cur[0] = c.SurfacePoint(left)
		for minor := 1; minor <= lineSize; minor++ {
			next := c.SurfacePoint(d3.Lerp(left, right, float32(minor)/float32(lineSize)))
			c.Triangulation = append(c.Triangulation, NewTriangle(prev[minor-1], cur[minor-1], next))
			if minor > 1 {
				c.Triangulation = append(c.Triangulation, NewTriangle(prev[minor-2], prev[minor-1], cur[minor-1]))
			}
			cur = append(cur, next)
		}
		prev = cur
	}
}

// Field evaluates the radial distance field of the patch at ray parameter t:
// the distance from the root to the ray point minus the distance from the
// root to the surface point in the same direction. It is positive outside of
// the patch volume and negative inside.
func (c *CurveTriangle) Field(t float32, r Ray) float32 {
	p := r.At(t)
	// Extrapolated coordinates are fine here, the field must stay continuous.
	_, bary, _ := c.Base.Intersect(Toward(p, c.root))
	s := c.SurfacePointBary(bary)
	return ms3.Norm(ms3.Sub(p, c.root)) - ms3.Norm(ms3.Sub(s, c.root))
}

// Intersect finds the crossing of r with the patch surface. It returns the ray
// parameter and the barycentric coordinates of the crossing on the base triangle.
// Errors are per-ray outcomes: ErrBehindRay, ErrNoIntersections or ErrCantSubrayBase.
func (c *CurveTriangle) Intersect(r Ray) (t float32, bary ms3.Vec, err error) {
	tStart, tEnd := c.shell.Slice(r)
	if tStart < 0 {
		return 0, ms3.Vec{}, ErrBehindRay
	}
	startField := c.Field(tStart, r)
	endField := c.Field(tEnd, r)
	crossed := false
	for i := 0; i < searchIterations; i++ {
		tMid := (tStart + tEnd) * 0.5
		midField := c.Field(tMid, r)
		switch {
		case signum(startField) != signum(midField):
			tEnd, endField = tMid, midField
			crossed = true
		case signum(midField) != signum(endField):
			tStart, startField = tMid, midField
			crossed = true
		case math32.Abs(startField) < math32.Abs(endField):
			// No bracketed crossing, descend toward the end nearer the surface.
			tEnd, endField = tMid, midField
		default:
			tStart, startField = tMid, midField
		}
	}
	if !crossed {
		return 0, ms3.Vec{}, ErrNoIntersections
	}
	for i := 0; i < refineIterations; i++ {
		tMid := (tStart + tEnd) * 0.5
		midField := c.Field(tMid, r)
		if signum(startField) != signum(midField) {
			tEnd = tMid
		} else {
			tStart, startField = tMid, midField
		}
	}
	t = (tStart + tEnd) * 0.5
	_, bary, inside := c.Base.Intersect(Toward(r.At(t), c.root))
	if !inside {
		return 0, ms3.Vec{}, ErrCantSubrayBase
	}
	return t, bary, nil
}

// Bounds returns a conservative box over the corners and the opposite root.
// It is not tight and prunes pessimistically.
func (c *CurveTriangle) Bounds() Box {
	return NewBox(c.Base.V[0], c.Base.V[1], c.Base.V[2], c.oppositeRoot)
}

// NodeIndex returns the BVH node index last assigned by a hierarchy build.
func (c *CurveTriangle) NodeIndex() int { return c.nodeIndex }

// SetNodeIndex stores the BVH node index. It is only called by hierarchy builds.
func (c *CurveTriangle) SetNodeIndex(i int) { c.nodeIndex = i }

// signum returns ±1 following the sign bit of x, or NaN for NaN.
func signum(x float32) float32 {
	if math32.IsNaN(x) {
		return x
	}
	return math32.Copysign(1, x)
}
