package render

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/curveray"
	"github.com/soypat/curveray/bvh"
)

// Caster finds the nearest hit of a ray against a set of primitives.
// Implementations must be safe for concurrent use.
type Caster interface {
	// Cast returns the nearest non negative ray parameter of a hit.
	// Per primitive outcomes are recorded in tally.
	Cast(r curveray.Ray, tally *Tally) (t float32, hit bool)
	// Len returns the number of primitives.
	Len() int
}

// Tally counts primitive intersection outcomes.
type Tally struct {
	Tests           int
	Hits            int
	Misses          int
	BehindRay       int
	NoIntersections int
	CantSubrayBase  int
}

func (t *Tally) add(o Tally) {
	t.Tests += o.Tests
	t.Hits += o.Hits
	t.Misses += o.Misses
	t.BehindRay += o.BehindRay
	t.NoIntersections += o.NoIntersections
	t.CantSubrayBase += o.CantSubrayBase
}

func (t *Tally) record(err error) {
	t.Tests++
	switch {
	case err == nil:
		t.Hits++
	case errors.Is(err, curveray.ErrBehindRay):
		t.BehindRay++
	case errors.Is(err, curveray.ErrNoIntersections):
		t.NoIntersections++
	case errors.Is(err, curveray.ErrCantSubrayBase):
		t.CantSubrayBase++
	default:
		t.Misses++
	}
}

// CurveCaster intersects rays with curved patches directly.
type CurveCaster struct {
	Patches []*curveray.CurveTriangle
	// BVH is optional. When set it must have been built over Patches.
	BVH *bvh.BVH
}

// Len returns the number of patches.
func (c *CurveCaster) Len() int { return len(c.Patches) }

// Cast intersects r with every patch, or the BVH candidates when set.
func (c *CurveCaster) Cast(r curveray.Ray, tally *Tally) (float32, bool) {
	nearest := math32.Inf(1)
	test := func(i int) bool {
		t, _, err := c.Patches[i].Intersect(r)
		tally.record(err)
		if err == nil && t >= 0 && t < nearest {
			nearest = t
		}
		return true
	}
	if c.BVH != nil {
		c.BVH.Traverse(r, test)
	} else {
		for i := range c.Patches {
			test(i)
		}
	}
	return nearest, !math32.IsInf(nearest, 1)
}

// MeshCaster intersects rays with a flat triangulation.
type MeshCaster struct {
	Triangles []curveray.Triangle
	// BVH is optional. When set it must have been built over Triangles.
	BVH *bvh.BVH
}

// Len returns the number of triangles.
func (m *MeshCaster) Len() int { return len(m.Triangles) }

// Cast intersects r with every triangle, or the BVH candidates when set.
// Hits outside the triangle or behind the origin count as misses.
func (m *MeshCaster) Cast(r curveray.Ray, tally *Tally) (float32, bool) {
	nearest := math32.Inf(1)
	test := func(i int) bool {
		tally.Tests++
		t, _, inside := m.Triangles[i].Intersect(r)
		if !inside || t < 0 {
			tally.Misses++
			return true
		}
		tally.Hits++
		if t < nearest {
			nearest = t
		}
		return true
	}
	if m.BVH != nil {
		m.BVH.Traverse(r, test)
	} else {
		for i := range m.Triangles {
			test(i)
		}
	}
	return nearest, !math32.IsInf(nearest, 1)
}

// positionColor encodes a surface point as a color, mapping [-1,1] to [0,1]
// on every axis.
func positionColor(r curveray.Ray, t float32) RGB {
	p := r.At(t)
	return RGB{(p.X + 1) * 0.5, (p.Y + 1) * 0.5, (p.Z + 1) * 0.5}
}
