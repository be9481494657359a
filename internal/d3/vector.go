package d3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// float32 ms3 vector routines that ms3 does not provide.

func Elem(sides float32) ms3.Vec {
	return ms3.Vec{
		X: sides,
		Y: sides,
		Z: sides,
	}
}

func EqualWithin(a, b ms3.Vec, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol &&
		math32.Abs(a.Y-b.Y) <= tol &&
		math32.Abs(a.Z-b.Z) <= tol
}

// AnyNaN returns true if any vector component is NaN.
func AnyNaN(a ms3.Vec) bool {
	return math32.IsNaN(a.X) || math32.IsNaN(a.Y) || math32.IsNaN(a.Z)
}

// InUnit returns true if all vector components lie within [0,1].
func InUnit(a ms3.Vec) bool {
	return a.X >= 0 && a.X <= 1 &&
		a.Y >= 0 && a.Y <= 1 &&
		a.Z >= 0 && a.Z <= 1
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{X: math32.Min(a.X, b.X), Y: math32.Min(a.Y, b.Y), Z: math32.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{X: math32.Max(a.X, b.X), Y: math32.Max(a.Y, b.Y), Z: math32.Max(a.Z, b.Z)}
}

func Min(a ms3.Vec) float32 {
	return math32.Min(a.Z, math32.Min(a.X, a.Y))
}

func MulElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: a.X * b.X,
		Y: a.Y * b.Y,
		Z: a.Z * b.Z,
	}
}

// DivElem divides a by b element-wise. Division by zero
// follows IEEE semantics and yields ±Inf or NaN.
func DivElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: a.X / b.X,
		Y: a.Y / b.Y,
		Z: a.Z / b.Z,
	}
}

// InvElem returns 1/a element-wise. Zero components become ±Inf.
func InvElem(a ms3.Vec) ms3.Vec {
	return DivElem(Elem(1), a)
}

// UPow is a sign preserving power: sign(x)*|x|^p.
func UPow(x, p float32) float32 {
	return math32.Copysign(math32.Pow(math32.Abs(x), p), x)
}

// UPowElem applies UPow to every component of a.
func UPowElem(a ms3.Vec, p float32) ms3.Vec {
	return ms3.Vec{
		X: UPow(a.X, p),
		Y: UPow(a.Y, p),
		Z: UPow(a.Z, p),
	}
}

// Lerp linearly interpolates from a (t=0) to b (t=1).
func Lerp(a, b ms3.Vec, t float32) ms3.Vec {
	return ms3.Add(ms3.Scale(1-t, a), ms3.Scale(t, b))
}

// Centroid returns the arithmetic mean of the vectors.
func Centroid(vs ...ms3.Vec) ms3.Vec {
	var sum ms3.Vec
	for _, v := range vs {
		sum = ms3.Add(sum, v)
	}
	return ms3.Scale(1/float32(len(vs)), sum)
}

type Set []ms3.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() ms3.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() ms3.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Norm2 returns the squared euclidean norm of a.
func Norm2(a ms3.Vec) float32 {
	return ms3.Dot(a, a)
}
