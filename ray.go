// Package curveray casts rays against curved triangle patches.
//
// A curved patch is defined by a flat base triangle, one pivot control point
// per edge and one curvature exponent per edge. Rays are intersected with the
// true implicit surface by root finding on a radial distance field, using the
// base triangle as the barycentric parametrization of the surface.
package curveray

import "github.com/soypat/glgl/math/ms3"

// Ray is a half-line starting at Origin. Direction need not be unit length
// for plane intersections but distance comparisons between rays assume it is.
type Ray struct {
	Origin    ms3.Vec
	Direction ms3.Vec
}

// At returns the point on the ray at parameter t.
func (r Ray) At(t float32) ms3.Vec {
	return ms3.Add(r.Origin, ms3.Scale(t, r.Direction))
}

// Toward returns a ray starting at from with unit direction pointing to target.
func Toward(from, target ms3.Vec) Ray {
	return Ray{Origin: from, Direction: ms3.Unit(ms3.Sub(target, from))}
}
