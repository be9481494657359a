package curveray

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/curveray/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

func TestCameraRay(t *testing.T) {
	const tol = 1e-5
	cam := NewCamera(d3.Elem(2), ms3.Vec{}, 90, 1)
	center := cam.Ray(0, 0)
	if center.Origin != cam.Origin {
		t.Errorf("origin: got %v", center.Origin)
	}
	if !d3.EqualWithin(center.Direction, ms3.Unit(d3.Elem(-1)), tol) {
		t.Errorf("center direction: got %v", center.Direction)
	}
	// Unit offsets deviate by a quarter of the field of view.
	want := math32.Cos(cam.FOV / 4)
	for _, shift := range [][2]float32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		r := cam.Ray(shift[0], shift[1])
		if n := ms3.Norm(r.Direction); math32.Abs(n-1) > tol {
			t.Errorf("shift %v: direction not unit, norm %g", shift, n)
		}
		if got := ms3.Dot(r.Direction, cam.Direction); math32.Abs(got-want) > tol {
			t.Errorf("shift %v: got cos %g, want %g", shift, got, want)
		}
	}
	if up, down := cam.Ray(0, 1), cam.Ray(0, -1); up.Direction.Y <= down.Direction.Y {
		t.Errorf("positive vertical shift should look up: %v %v", up.Direction, down.Direction)
	}
	// Horizontal shifts keep the vertical component symmetric.
	left, right := cam.Ray(-0.5, 0), cam.Ray(0.5, 0)
	if math32.Abs(left.Direction.Y-right.Direction.Y) > tol {
		t.Errorf("horizontal shifts tilt vertically: %v %v", left.Direction, right.Direction)
	}
}
