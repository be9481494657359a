// Package must holds panicking scene constructors. Package shape wraps them
// with error returns.
package must

import (
	"github.com/chewxy/math32"
	"github.com/soypat/curveray"
	"github.com/soypat/curveray/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

// Patch returns a curved patch over the triangle v0, v1, v2 with all three
// edges bent toward pivot with curvature exponent koef.
func Patch(v0, v1, v2, pivot ms3.Vec, koef float32) *curveray.CurveTriangle {
	base := curveray.NewTriangle(v0, v1, v2)
	if base.Degenerate(1e-12) {
		panic("degenerate base triangle")
	}
	p, err := curveray.NewCurveTriangle(base, [3]ms3.Vec{pivot, pivot, pivot}, [3]float32{koef, koef, koef})
	if err != nil {
		panic(err)
	}
	return p
}

// Ellipsoid returns 8 octant patches of an ellipsoid centered at the origin
// with semi-axes radii. With koef 2 the patches lie exactly on the ellipsoid.
// Surface evaluation is not translation invariant, so there is no center.
func Ellipsoid(radii ms3.Vec, koef float32) []*curveray.CurveTriangle {
	if d3.Min(radii) <= 0 || d3.AnyNaN(radii) {
		panic("radii <= 0")
	}
	var center ms3.Vec
	patches := make([]*curveray.CurveTriangle, 0, 8)
	for index := 0; index < 8; index++ {
		sx := octantSign(index & 1)
		sy := octantSign(index & 2)
		sz := octantSign(index & 4)
		v0 := ms3.Vec{X: sx * radii.X}
		v1 := ms3.Vec{Y: sy * radii.Y}
		v2 := ms3.Vec{Z: sz * radii.Z}
		patches = append(patches, Patch(v0, v1, v2, center, koef))
	}
	return patches
}

// OctantSphere returns 8 octant patches approximating a sphere of the given
// radius centered at the origin.
func OctantSphere(radius, koef float32) []*curveray.CurveTriangle {
	if radius <= 0 || math32.IsInf(radius, 1) {
		panic("radius <= 0")
	}
	return Ellipsoid(d3.Elem(radius), koef)
}

func octantSign(bit int) float32 {
	if bit == 0 {
		return 1
	}
	return -1
}
