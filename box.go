package curveray

import (
	"github.com/chewxy/math32"
	"github.com/soypat/curveray/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

// Box is an axis aligned bounding box. Min is less or equal to Max on every axis.
type Box struct {
	Min, Max ms3.Vec
}

// NewBox returns the smallest box containing all points. At least one point is required.
func NewBox(points ...ms3.Vec) Box {
	set := d3.Set(points)
	return Box{Min: set.Min(), Max: set.Max()}
}

// Union returns a box enclosing both boxes.
func (a Box) Union(b Box) Box {
	return Box{
		Min: d3.MinElem(a.Min, b.Min),
		Max: d3.MaxElem(a.Max, b.Max),
	}
}

// Include enlarges a box to include a point.
func (a Box) Include(v ms3.Vec) Box {
	return Box{
		Min: d3.MinElem(a.Min, v),
		Max: d3.MaxElem(a.Max, v),
	}
}

// Size returns the extent of the box along each axis.
func (a Box) Size() ms3.Vec { return ms3.Sub(a.Max, a.Min) }

// HalfSize returns half the extent of the box along each axis.
func (a Box) HalfSize() ms3.Vec { return ms3.Scale(0.5, a.Size()) }

// Center returns the center of the box.
func (a Box) Center() ms3.Vec {
	return ms3.Scale(0.5, ms3.Add(a.Min, a.Max))
}

// Contains checks if the box contains the given point (considering bounds as inside).
func (a Box) Contains(v ms3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}

// Slice returns the ray parameter interval [tEnter, tExit] spent inside the box
// using the slab method. tEnter is clamped to zero for rays starting inside the
// box. If the ray misses the box or the box is behind the ray (-1, -1) is returned.
func (a Box) Slice(r Ray) (tEnter, tExit float32) {
	// Zero direction components yield infinite slab distances.
	inv := d3.InvElem(r.Direction)
	t1 := d3.MulElem(ms3.Sub(a.Min, r.Origin), inv)
	t2 := d3.MulElem(ms3.Sub(a.Max, r.Origin), inv)
	tEnter = fmax(fmin(t1.X, t2.X), fmax(fmin(t1.Y, t2.Y), fmin(t1.Z, t2.Z)))
	tExit = fmin(fmax(t1.X, t2.X), fmin(fmax(t1.Y, t2.Y), fmax(t1.Z, t2.Z)))
	if tEnter > tExit || tExit < 0 {
		return -1, -1
	}
	return fmax(tEnter, 0), tExit
}

// fmin returns the lesser of a and b. Unlike math32.Min a NaN argument
// is ignored in favor of the other, which keeps 0*Inf slabs from poisoning the
// interval of a ray grazing the box boundary.
func fmin(a, b float32) float32 {
	switch {
	case math32.IsNaN(a):
		return b
	case math32.IsNaN(b), a < b:
		return a
	}
	return b
}

// fmax is the NaN ignoring counterpart of fmin.
func fmax(a, b float32) float32 {
	switch {
	case math32.IsNaN(a):
		return b
	case math32.IsNaN(b), a > b:
		return a
	}
	return b
}
