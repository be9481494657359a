// Package shape builds curved patch scenes.
package shape

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/curveray"
	"github.com/soypat/curveray/shape/must"
	"github.com/soypat/glgl/math/ms3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Unwrap returns the panic value if it is an error.
func (s *shapeErr) Unwrap() error {
	err, _ := s.panicObj.(error)
	return err
}

// Stack returns the stack trace of the failed construction.
func (s *shapeErr) Stack() string { return s.stack }

func recovered(a interface{}) error {
	return &shapeErr{
		panicObj: a,
		stack:    string(debug.Stack()),
	}
}

// Patch returns a curved patch over v0, v1, v2 with every edge bent toward pivot.
func Patch(v0, v1, v2, pivot ms3.Vec, koef float32) (p *curveray.CurveTriangle, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = recovered(a)
		}
	}()
	return must.Patch(v0, v1, v2, pivot, koef), err
}

// Ellipsoid returns 8 octant patches of an ellipsoid with semi-axes radii
// centered at the origin.
func Ellipsoid(radii ms3.Vec, koef float32) (patches []*curveray.CurveTriangle, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = recovered(a)
		}
	}()
	return must.Ellipsoid(radii, koef), err
}

// OctantSphere returns 8 octant patches of a sphere centered at the origin,
// corners on the axes and pivots at the center. Corner order of patch i is
// (±r,0,0), (0,±r,0), (0,0,±r) where bits 0, 1 and 2 of i select the
// negative sign on X, Y and Z.
func OctantSphere(radius, koef float32) (patches []*curveray.CurveTriangle, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = recovered(a)
		}
	}()
	return must.OctantSphere(radius, koef), err
}
