package curveray

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/num/quat"
)

// Camera generates primary rays through a viewport. Direction must be a unit
// vector that is not parallel to the Y axis, which is taken as world up.
type Camera struct {
	Origin    ms3.Vec
	Direction ms3.Vec
	// FOV is the vertical field of view in radians.
	FOV float32
	// Ratio scales the horizontal half angle.
	Ratio float32
}

// NewCamera returns a camera at origin looking at lookAt with a vertical field
// of view of fovDeg degrees.
func NewCamera(origin, lookAt ms3.Vec, fovDeg, ratio float32) Camera {
	return Camera{
		Origin:    origin,
		Direction: ms3.Unit(ms3.Sub(lookAt, origin)),
		FOV:       fovDeg * math32.Pi / 180,
		Ratio:     ratio,
	}
}

// Ray returns the ray through viewport offsets shiftX, shiftY, roughly in [-1,1].
// (0,0) is the view direction. Positive shiftY tilts the ray toward world up
// and positive shiftX toward the (Direction.Z, 0, -Direction.X) axis. The view
// is rotated by half angle quaternions applied from the right, so an offset
// of 1 deviates the ray by a quarter of the field of view.
func (c Camera) Ray(shiftX, shiftY float32) Ray {
	alpha := shiftX * (c.FOV / 2) * c.Ratio
	beta := shiftY * (c.FOV / 2)
	side := ms3.Unit(ms3.Vec{X: c.Direction.Z, Y: 0, Z: -c.Direction.X})
	normal := ms3.Cross(side, c.Direction)

	qa := axisHalfAngle(normal, alpha)
	qb := axisHalfAngle(side, beta)
	q := quat.Mul(quat.Mul(quat.Number{
		Imag: float64(c.Direction.X),
		Jmag: float64(c.Direction.Y),
		Kmag: float64(c.Direction.Z),
	}, qa), qb)
	dir := ms3.Vec{X: float32(q.Imag), Y: float32(q.Jmag), Z: float32(q.Kmag)}
	return Ray{Origin: c.Origin, Direction: ms3.Unit(dir)}
}

// axisHalfAngle returns the quaternion (cos(a/2), axis*sin(a/2)).
func axisHalfAngle(axis ms3.Vec, angle float32) quat.Number {
	s, co := math32.Sincos(angle / 2)
	return quat.Number{
		Real: float64(co),
		Imag: float64(axis.X * s),
		Jmag: float64(axis.Y * s),
		Kmag: float64(axis.Z * s),
	}
}
