package shape_test

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/curveray"
	"github.com/soypat/curveray/shape"
	"github.com/soypat/glgl/math/ms3"
)

func TestOctantSphere(t *testing.T) {
	const radius = 3
	patches, err := shape.OctantSphere(radius, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 8 {
		t.Fatalf("got %d patches, want 8", len(patches))
	}
	want := curveray.Box{Min: ms3.Vec{X: -radius, Y: -radius, Z: -radius}, Max: ms3.Vec{X: radius, Y: radius, Z: radius}}
	var bb curveray.Box
	for i, p := range patches {
		x, y, z := p.Base.V[0], p.Base.V[1], p.Base.V[2]
		if math32.Abs(x.X) != radius || math32.Abs(y.Y) != radius || math32.Abs(z.Z) != radius {
			t.Errorf("patch %d: unexpected corners %v", i, p.Base.V)
		}
		if (x.X < 0) != (i&1 != 0) || (y.Y < 0) != (i&2 != 0) || (z.Z < 0) != (i&4 != 0) {
			t.Errorf("patch %d: corner signs do not match octant: %v", i, p.Base.V)
		}
		if p.Root() != (ms3.Vec{}) {
			t.Errorf("patch %d: root %v not at center", i, p.Root())
		}
		if i == 0 {
			bb = p.Bounds()
		} else {
			bb = bb.Union(p.Bounds())
		}
	}
	if bb != want {
		t.Errorf("bounds: got %v, want %v", bb, want)
	}
}

func TestEllipsoid(t *testing.T) {
	const tol = 1e-4
	radii := ms3.Vec{X: 2, Y: 1, Z: 0.5}
	patches, err := shape.Ellipsoid(radii, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 8 {
		t.Fatalf("got %d patches, want 8", len(patches))
	}
	// Every surface point satisfies (x/a)² + (y/b)² + (z/c)² = 1.
	const n = 6
	for i, p := range patches {
		for u := 0; u <= n; u++ {
			for v := 0; u+v <= n; v++ {
				b := ms3.Vec{X: float32(u) / n, Y: float32(v) / n}
				b.Z = 1 - b.X - b.Y
				s := p.SurfacePointBary(b)
				q := ms3.Vec{X: s.X / radii.X, Y: s.Y / radii.Y, Z: s.Z / radii.Z}
				if got := ms3.Dot(q, q); math32.Abs(got-1) > tol {
					t.Errorf("patch %d bary %v: surface point %v off ellipsoid (%g)", i, b, s, got)
				}
			}
		}
	}
	// A ray aimed radially at the centroid surface point finds it.
	p := patches[0]
	target := p.SurfacePointBary(ms3.Vec{X: 1. / 3, Y: 1. / 3, Z: 1. / 3})
	origin := ms3.Scale(3, target)
	tHit, _, err := p.Intersect(curveray.Toward(origin, target))
	if err != nil {
		t.Fatal(err)
	}
	if want := ms3.Norm(ms3.Sub(origin, target)); math32.Abs(tHit-want) > 1e-2 {
		t.Errorf("centroid ray: got t=%g, want %g", tHit, want)
	}
}

func TestShapeErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		fn   func() error
		is   error
	}{
		{name: "zero radius", fn: func() error { _, err := shape.OctantSphere(0, 2); return err }},
		{name: "NaN radius", fn: func() error { _, err := shape.OctantSphere(math32.NaN(), 2); return err }},
		{name: "zero koef", fn: func() error { _, err := shape.OctantSphere(1, 0); return err }, is: curveray.ErrBadKoef},
		{name: "flat radii", fn: func() error { _, err := shape.Ellipsoid(ms3.Vec{X: 1, Y: 1}, 2); return err }},
		{name: "degenerate patch", fn: func() error {
			_, err := shape.Patch(ms3.Vec{X: 1}, ms3.Vec{X: 1}, ms3.Vec{Z: 1}, ms3.Vec{}, 2)
			return err
		}},
	} {
		err := test.fn()
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if test.is != nil && !errors.Is(err, test.is) {
			t.Errorf("%s: expected %v, got %v", test.name, test.is, err)
		}
	}
}
