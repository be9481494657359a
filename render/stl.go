package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/curveray"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Binary STL layout: 80 byte comment, uint32 triangle count, then one 50 byte
// record per triangle (normal, 3 vertices, uint16 attribute), little endian.
const (
	stlCountOffset = 80
	stlHeaderSize  = stlCountOffset + 4
	stlRecordSize  = 50
	// triangles encoded per write.
	stlBatch = 512
)

var (
	ErrEmptyMesh = errors.New("render: mesh has no triangles")

	errNormalMismatch = errors.New("stored normal disagrees with vertex winding")
)

// CreateSTL streams the triangles of r to a binary STL file at path. The
// triangle count is written into the header once r is exhausted.
func CreateSTL(path string, r MeshReader) (err error) {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(fp)
	var header [stlHeaderSize]byte
	if _, err = bw.Write(header[:]); err != nil {
		return err
	}
	n, err := encodeSTL(bw, r)
	if err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(header[stlCountOffset:], uint32(n))
	_, err = fp.WriteAt(header[stlCountOffset:], stlCountOffset)
	return err
}

// WriteSTL writes model to w in binary STL format.
func WriteSTL(w io.Writer, model []curveray.Triangle) error {
	if len(model) == 0 {
		return ErrEmptyMesh
	}
	var header [stlHeaderSize]byte
	binary.LittleEndian.PutUint32(header[stlCountOffset:], uint32(len(model)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := encodeSTL(w, NewMeshReader(model))
	return err
}

// encodeSTL writes one record per triangle read from r until io.EOF and
// returns the number of records written.
func encodeSTL(w io.Writer, r MeshReader) (int, error) {
	var (
		tris  [stlBatch]curveray.Triangle
		recs  [stlBatch * stlRecordSize]byte
		total int
	)
	for {
		n, err := r.ReadTriangles(tris[:])
		for i, t := range tris[:n] {
			putSTLRecord(recs[i*stlRecordSize:], t)
		}
		if _, werr := w.Write(recs[:n*stlRecordSize]); werr != nil {
			return total, werr
		}
		total += n
		if err == io.EOF {
			return total, nil
		} else if err != nil {
			return total, err
		}
	}
}

// ReadSTL reads a binary STL stream. Triangles whose stored normal disagrees
// with their winding are still returned along with a non nil error.
func ReadSTL(r io.Reader) ([]curveray.Triangle, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("STL header: %w", err)
	}
	count := int(binary.LittleEndian.Uint32(header[stlCountOffset:]))
	if count == 0 {
		return nil, ErrEmptyMesh
	}
	// The count is untrusted, grow past this as records arrive.
	model := make([]curveray.Triangle, 0, minInt(count, 1<<16))
	var (
		rec        [stlRecordSize]byte
		mismatches int
	)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("STL triangle %d/%d: %w", i+1, count, err)
		}
		normal, t := getSTLRecord(rec[:])
		err := checkSTLRecord(normal, t)
		if errors.Is(err, errNormalMismatch) {
			mismatches++
		} else if err != nil {
			return nil, fmt.Errorf("STL triangle %d/%d: %w", i+1, count, err)
		}
		model = append(model, t)
	}
	if mismatches > 0 {
		return model, fmt.Errorf("%d of %d STL triangles: %w", mismatches, count, errNormalMismatch)
	}
	return model, nil
}

func putSTLRecord(b []byte, t curveray.Triangle) {
	_ = b[stlRecordSize-1]
	putVec(b, t.Normal())
	putVec(b[12:], t.V[0])
	putVec(b[24:], t.V[1])
	putVec(b[36:], t.V[2])
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func getSTLRecord(b []byte) (normal ms3.Vec, t curveray.Triangle) {
	_ = b[stlRecordSize-1]
	return getVec(b), curveray.NewTriangle(getVec(b[12:]), getVec(b[24:]), getVec(b[36:]))
}

func putVec(b []byte, v ms3.Vec) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}

func getVec(b []byte) ms3.Vec {
	return ms3.Vec{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b)),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

// checkSTLRecord rejects non finite and zero area triangles. Either normal
// sign is accepted. The winding normal is computed in float64 so small
// triangles of fine triangulations keep their precision.
func checkSTLRecord(normal ms3.Vec, t curveray.Triangle) error {
	const normalTol = 5e-2
	if !finite(normal) {
		return errors.New("non finite normal")
	}
	for _, v := range t.V {
		if !finite(v) {
			return errors.New("non finite vertex")
		}
	}
	v0 := r3From(t.V[0])
	c := r3.Cross(r3.Sub(r3From(t.V[1]), v0), r3.Sub(r3From(t.V[2]), v0))
	if r3.Norm2(c) == 0 {
		return errors.New("zero area triangle")
	}
	want := r3.Unit(c)
	got := r3From(normal)
	if r3.Norm(r3.Sub(got, want)) > normalTol && r3.Norm(r3.Add(got, want)) > normalTol {
		return errNormalMismatch
	}
	return nil
}

func finite(v ms3.Vec) bool {
	return !math32.IsNaN(v.X) && !math32.IsInf(v.X, 0) &&
		!math32.IsNaN(v.Y) && !math32.IsInf(v.Y, 0) &&
		!math32.IsNaN(v.Z) && !math32.IsInf(v.Z, 0)
}

func r3From(v ms3.Vec) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
