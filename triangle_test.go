package curveray

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/curveray/internal/d3"
	"github.com/soypat/glgl/math/ms3"
)

var unitTriangle = NewTriangle(ms3.Vec{X: 1}, ms3.Vec{Y: 1}, ms3.Vec{Z: 1})

func TestTriangleBary(t *testing.T) {
	const tol = 1e-5
	tri := unitTriangle
	for i, want := range []ms3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		got := tri.Bary(tri.V[i])
		if !d3.EqualWithin(got, want, tol) {
			t.Errorf("corner %d: got %v, want %v", i, got, want)
		}
	}
	got := tri.Bary(tri.Centroid())
	if !d3.EqualWithin(got, d3.Elem(1./3), tol) {
		t.Errorf("centroid: got %v", got)
	}
	// Points off the plane project along the normal.
	off := ms3.Add(tri.Centroid(), ms3.Scale(3, tri.Normal()))
	got = tri.Bary(off)
	if !d3.EqualWithin(got, d3.Elem(1./3), tol) {
		t.Errorf("off plane: got %v", got)
	}
	for _, p := range []ms3.Vec{{X: 2, Y: -1}, {X: 0.2, Y: 0.3, Z: 0.5}, {X: -4, Y: 3, Z: 2}} {
		b := tri.Bary(p)
		if sum := b.X + b.Y + b.Z; math32.Abs(sum-1) > 1e-5 {
			t.Errorf("bary of %v sums to %g", p, sum)
		}
	}
	degenerate := NewTriangle(ms3.Vec{}, ms3.Vec{X: 1}, ms3.Vec{X: 2})
	if got := degenerate.Bary(ms3.Vec{X: 1}); got != (ms3.Vec{}) {
		t.Errorf("degenerate triangle bary should be zero, got %v", got)
	}
}

func TestTriangleIntersect(t *testing.T) {
	const tol = 1e-5
	tri := unitTriangle
	c := tri.Centroid()
	n := tri.Normal()
	for _, test := range []struct {
		name   string
		r      Ray
		inside bool
		t      float32
	}{
		{name: "centroid", r: Ray{Origin: ms3.Add(c, ms3.Scale(2, n)), Direction: ms3.Scale(-1, n)}, inside: true, t: 2},
		{name: "backface", r: Ray{Origin: ms3.Sub(c, n), Direction: n}, inside: true, t: 1},
		{name: "behind", r: Ray{Origin: ms3.Add(c, n), Direction: n}, inside: true, t: -1},
		{name: "outside", r: Ray{Origin: ms3.Vec{X: 3, Y: 3, Z: 3}, Direction: ms3.Unit(ms3.Vec{X: -1, Y: -4, Z: -3})}},
		{name: "parallel", r: Ray{Origin: ms3.Add(c, n), Direction: ms3.Unit(ms3.Vec{X: 1, Y: -1})}},
	} {
		tHit, bary, inside := tri.Intersect(test.r)
		if inside != test.inside {
			t.Errorf("%s: got inside=%t, want %t (bary %v)", test.name, inside, test.inside, bary)
			continue
		}
		if !inside {
			continue
		}
		if math32.Abs(tHit-test.t) > tol {
			t.Errorf("%s: got t=%g, want %g", test.name, tHit, test.t)
		}
		if !d3.EqualWithin(bary, d3.Elem(1./3), tol) {
			t.Errorf("%s: got bary %v", test.name, bary)
		}
		if pt := tri.IntersectPlane(test.r); math32.Abs(pt-test.t) > tol {
			t.Errorf("%s: plane intersection got t=%g, want %g", test.name, pt, test.t)
		}
	}
}

func TestTriangleIntersectBaryOnMiss(t *testing.T) {
	tri := NewTriangle(ms3.Vec{}, ms3.Vec{X: 1}, ms3.Vec{Y: 1})
	r := Ray{Origin: ms3.Vec{X: 2, Y: 2, Z: 1}, Direction: ms3.Vec{Z: -1}}
	_, bary, inside := tri.Intersect(r)
	if inside {
		t.Fatal("expected miss")
	}
	want := tri.Bary(ms3.Vec{X: 2, Y: 2})
	if !d3.EqualWithin(bary, want, 1e-5) {
		t.Errorf("extrapolated bary mismatch: got %v, want %v", bary, want)
	}
}

func TestBoxSlice(t *testing.T) {
	const tol = 1e-4
	box := NewBox(ms3.Vec{X: -1, Y: -1, Z: -1}, ms3.Vec{X: 1, Y: 1, Z: 1})
	for _, test := range []struct {
		name         string
		r            Ray
		enter, exit  float32
		expectMissed bool
	}{
		{name: "axis", r: Ray{Origin: ms3.Vec{X: -3}, Direction: ms3.Vec{X: 1}}, enter: 2, exit: 4},
		{name: "inside", r: Ray{Origin: ms3.Vec{}, Direction: ms3.Vec{Y: -1}}, enter: 0, exit: 1},
		{name: "diagonal", r: Ray{Origin: d3.Elem(2), Direction: ms3.Unit(d3.Elem(-1))}, enter: math32.Sqrt(3), exit: 3 * math32.Sqrt(3)},
		{name: "behind", r: Ray{Origin: ms3.Vec{X: 3}, Direction: ms3.Vec{X: 1}}, expectMissed: true},
		{name: "beside", r: Ray{Origin: ms3.Vec{X: -3, Y: 2}, Direction: ms3.Vec{X: 1}}, expectMissed: true},
	} {
		enter, exit := box.Slice(test.r)
		if test.expectMissed {
			if enter != -1 || exit != -1 {
				t.Errorf("%s: expected miss, got [%g, %g]", test.name, enter, exit)
			}
			continue
		}
		if math32.Abs(enter-test.enter) > tol || math32.Abs(exit-test.exit) > tol {
			t.Errorf("%s: got [%g, %g], want [%g, %g]", test.name, enter, exit, test.enter, test.exit)
		}
	}
}

func TestBoxUnion(t *testing.T) {
	a := NewBox(ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1})
	b := NewBox(ms3.Vec{X: -1, Y: 0.5}, ms3.Vec{X: 0.5, Y: 2})
	u := a.Union(b)
	want := Box{Min: ms3.Vec{X: -1}, Max: ms3.Vec{X: 1, Y: 2, Z: 1}}
	if u != want {
		t.Errorf("got %v, want %v", u, want)
	}
	if !u.Contains(a.Center()) || !u.Contains(b.Center()) {
		t.Error("union does not contain centers")
	}
	if u.Include(ms3.Vec{Z: 5}).Max.Z != 5 {
		t.Error("include did not grow box")
	}
}
