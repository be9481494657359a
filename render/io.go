package render

import (
	"io"

	"github.com/soypat/curveray"
)

// MeshReader streams triangles. ReadTriangles returns io.EOF once all
// triangles have been read.
type MeshReader interface {
	ReadTriangles(dst []curveray.Triangle) (int, error)
}

// NewMeshReader returns a MeshReader over the given triangles.
func NewMeshReader(model []curveray.Triangle) MeshReader {
	return &triangleBuffer{buf: model}
}

// PatchReader returns a MeshReader that triangulates each patch with the
// given accuracy as it is read. The patches' Triangulation is replaced.
func PatchReader(patches []*curveray.CurveTriangle, accuracy int) MeshReader {
	return &patchReader{patches: patches, accuracy: accuracy}
}

// ReadAll reads the full contents of a MeshReader and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func ReadAll(r MeshReader) ([]curveray.Triangle, error) {
	var err error
	var nt int
	result := make([]curveray.Triangle, 0, 1<<12)
	buf := make([]curveray.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

type triangleBuffer struct {
	buf []curveray.Triangle
}

func (b *triangleBuffer) ReadTriangles(t []curveray.Triangle) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

func (b *triangleBuffer) Len() int { return len(b.buf) }

type patchReader struct {
	patches  []*curveray.CurveTriangle
	accuracy int
	pending  triangleBuffer
}

func (p *patchReader) ReadTriangles(dst []curveray.Triangle) (int, error) {
	for p.pending.Len() == 0 {
		if len(p.patches) == 0 {
			return 0, io.EOF
		}
		patch := p.patches[0]
		p.patches = p.patches[1:]
		patch.Triangulation = patch.Triangulation[:0]
		patch.Triangulate(p.accuracy)
		p.pending.buf = patch.Triangulation
	}
	return p.pending.ReadTriangles(dst)
}
