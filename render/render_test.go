package render_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/curveray"
	"github.com/soypat/curveray/render"
	"github.com/soypat/curveray/shape"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/plot/cmpimg"
)

const (
	frameW = 40
	frameH = 20
	// imgDelta a normalized imgDelta parameter to describe how close the matching
	// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
	imgDelta = 0.01
)

func octantScene(t testing.TB) *render.Scene {
	t.Helper()
	patches, err := shape.OctantSphere(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	return &render.Scene{Patches: patches}
}

func defaultCamera(ratio float32) curveray.Camera {
	return curveray.NewCamera(ms3.Vec{X: 2, Y: 2, Z: 2}, ms3.Vec{}, 90, ratio)
}

func renderFrame(t testing.TB, opts render.Options) (*render.Frame, *render.Renderer) {
	t.Helper()
	r, err := render.NewRenderer(octantScene(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	frame := render.NewFrame(frameW, frameH)
	ratio := frame.Bounds().Aspect()
	if opts.Mode == render.ModeSplit {
		left, _ := frame.Bounds().Split()
		ratio = left.Aspect()
	}
	if err := r.Render(context.Background(), frame, defaultCamera(ratio)); err != nil {
		t.Fatal(err)
	}
	return frame, r
}

// inUnit reports whether c encodes a point of the unit cube. Silhouette hits
// may land slightly off the surface.
func inUnit(c render.RGB) bool {
	const tol = 0.01
	for _, v := range c {
		if !(v >= -tol && v <= 1+tol) {
			return false
		}
	}
	return true
}

func TestRenderCurve(t *testing.T) {
	for _, useBVH := range []bool{false, true} {
		opts := render.DefaultOptions()
		opts.Mode = render.ModeCurve
		opts.UseBVH = useBVH
		frame, r := renderFrame(t, opts)
		center := frame.At(frameW/2, frameH/2)
		if center == opts.CurveBackground || !inUnit(center) {
			t.Errorf("bvh=%t: center pixel should hit the sphere, got %v", useBVH, center)
		}
		if corner := frame.At(0, 0); corner != opts.CurveBackground {
			t.Errorf("bvh=%t: corner pixel should be background, got %v", useBVH, corner)
		}
		for i, c := range frame.Pix {
			if c != opts.CurveBackground && !inUnit(c) {
				t.Errorf("bvh=%t: pixel %d color %v out of range", useBVH, i, c)
			}
		}
		stats := r.Stats()
		if len(stats.Passes) != 1 || stats.Passes[0].Hits == 0 {
			t.Errorf("bvh=%t: unexpected stats %+v", useBVH, stats)
		}
	}
}

func TestRenderBVHMatchesBruteForce(t *testing.T) {
	for _, mode := range []render.Mode{render.ModeCurve, render.ModeMesh} {
		opts := render.DefaultOptions()
		opts.Mode = mode
		opts.UseBVH = false
		brute, _ := renderFrame(t, opts)
		opts.UseBVH = true
		pruned, _ := renderFrame(t, opts)
		if !equalFrames(t, brute, pruned) {
			t.Errorf("%v: BVH render differs from brute force render", mode)
		}
	}
}

func TestRenderSplit(t *testing.T) {
	opts := render.DefaultOptions()
	frame, r := renderFrame(t, opts)
	left, right := frame.Bounds().Split()
	meshCenter := frame.At(left.Left+left.Width/2, left.Height/2)
	curveCenter := frame.At(right.Left+right.Width/2, right.Height/2)
	if meshCenter == opts.MeshBackground || !inUnit(meshCenter) {
		t.Errorf("mesh half center should hit, got %v", meshCenter)
	}
	if curveCenter == opts.CurveBackground || !inUnit(curveCenter) {
		t.Errorf("curve half center should hit, got %v", curveCenter)
	}
	if c := frame.At(left.Left, 0); c != opts.MeshBackground {
		t.Errorf("mesh half corner should be mesh background, got %v", c)
	}
	if c := frame.At(right.Left, 0); c != opts.CurveBackground {
		t.Errorf("curve half corner should be curve background, got %v", c)
	}
	stats := r.Stats()
	if len(stats.Passes) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(stats.Passes))
	}
	if got := len(r.Mesh()); got != 8*opts.Accuracy*opts.Accuracy {
		t.Errorf("got %d mesh triangles, want %d", got, 8*opts.Accuracy*opts.Accuracy)
	}
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	if !strings.Contains(buf.String(), "TOTAL") || !strings.Contains(buf.String(), "curve") {
		t.Errorf("unexpected stats table:\n%s", buf.String())
	}
}

func TestRenderInterrupted(t *testing.T) {
	r, err := render.NewRenderer(octantScene(t), render.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Render(ctx, render.NewFrame(frameW, frameH), defaultCamera(1))
	if !errors.Is(err, render.ErrInterrupted) {
		t.Errorf("expected ErrInterrupted, got %v", err)
	}
}

func TestNewRendererErrors(t *testing.T) {
	opts := render.DefaultOptions()
	if _, err := render.NewRenderer(&render.Scene{}, opts); !errors.Is(err, render.ErrEmptyScene) {
		t.Errorf("expected ErrEmptyScene, got %v", err)
	}
	opts.Accuracy = 0
	if _, err := render.NewRenderer(octantScene(t), opts); !errors.Is(err, render.ErrBadOptions) {
		t.Errorf("expected ErrBadOptions, got %v", err)
	}
	opts.Mode = render.ModeCurve
	if _, err := render.NewRenderer(octantScene(t), opts); err != nil {
		t.Errorf("curve mode does not need accuracy: %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	frame, _ := renderFrame(t, render.DefaultOptions())
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	if err := render.SavePNG(path, frame, 2); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	img, err := png.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2*frameW || b.Dy() != 2*frameH {
		t.Errorf("scaled image has bounds %v", b)
	}
}

func equalFrames(t *testing.T, a, b *render.Frame) bool {
	var ba, bb bytes.Buffer
	if err := png.Encode(&ba, a.Image()); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&bb, b.Image()); err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", ba.Bytes(), bb.Bytes(), imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
