package render

import (
	"github.com/soypat/curveray"
)

// Scene is the set of curved patches to render.
type Scene struct {
	Patches []*curveray.CurveTriangle
}

// Triangulate replaces each patch's triangulation with a fresh one of the
// given accuracy.
func (s *Scene) Triangulate(accuracy int) {
	for _, p := range s.Patches {
		p.Triangulation = p.Triangulation[:0]
		p.Triangulate(accuracy)
	}
}

// Mesh returns the concatenated triangulations of all patches.
func (s *Scene) Mesh() []curveray.Triangle {
	n := 0
	for _, p := range s.Patches {
		n += len(p.Triangulation)
	}
	mesh := make([]curveray.Triangle, 0, n)
	for _, p := range s.Patches {
		mesh = append(mesh, p.Triangulation...)
	}
	return mesh
}

// Bounds returns the union of patch bounds. The scene must not be empty.
func (s *Scene) Bounds() curveray.Box {
	bb := s.Patches[0].Bounds()
	for _, p := range s.Patches[1:] {
		bb = bb.Union(p.Bounds())
	}
	return bb
}
