// Package render casts camera rays against curved patch scenes into color
// frames and exports their triangulations as STL meshes.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/soypat/curveray"
	"github.com/soypat/curveray/bvh"
	"github.com/soypat/curveray/log"
	"golang.org/x/sync/errgroup"
)

var logger = log.New("render")

var (
	ErrBadOptions  = errors.New("render: bad options")
	ErrEmptyScene  = errors.New("render: scene has no patches")
	ErrBadRect     = errors.New("render: rect outside of frame")
	ErrInterrupted = errors.New("render: interrupted while rendering")
)

// Mode selects which primitives are cast against.
type Mode int

const (
	// ModeCurve casts against the curved patches.
	ModeCurve Mode = iota
	// ModeMesh casts against the patch triangulations.
	ModeMesh
	// ModeSplit renders the mesh in the left half of the frame and the
	// curved patches in the right half.
	ModeSplit
)

var modeNames = [...]string{ModeCurve: "curve", ModeMesh: "mesh", ModeSplit: "split"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q: %w", s, ErrBadOptions)
}

// Options configures a Renderer.
type Options struct {
	Mode Mode
	// UseBVH enables bounding volume hierarchy pruning.
	UseBVH bool
	// Accuracy is the triangulation accuracy of the mesh path. Each patch is
	// split into Accuracy² triangles.
	Accuracy int
	// Workers is the number of rows cast concurrently. Zero or less means one
	// worker per row.
	Workers int

	CurveBackground RGB
	MeshBackground  RGB
}

// DefaultOptions returns options for a split render with BVH pruning.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeSplit,
		UseBVH:          true,
		Accuracy:        5,
		Workers:         0,
		CurveBackground: RGB{0, 0, 0.05},
		MeshBackground:  RGB{0, 0.05, 0},
	}
}

func (o Options) validate() error {
	if o.Mode < ModeCurve || o.Mode > ModeSplit {
		return fmt.Errorf("mode %d: %w", int(o.Mode), ErrBadOptions)
	}
	if o.Mode != ModeCurve && o.Accuracy <= 0 {
		return fmt.Errorf("mesh accuracy must be positive, got %d: %w", o.Accuracy, ErrBadOptions)
	}
	return nil
}

// Renderer renders frames of a scene. Scene geometry must not change while
// the renderer is in use.
type Renderer struct {
	opts  Options
	curve *CurveCaster
	mesh  *MeshCaster
	build map[string]PassStats

	mu    sync.Mutex
	stats FrameStats
}

// NewRenderer prepares the scene for casting: triangulates it if a mesh pass
// is needed and builds the hierarchies if enabled.
func NewRenderer(scene *Scene, opts Options) (*Renderer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if scene == nil || len(scene.Patches) == 0 {
		return nil, ErrEmptyScene
	}
	r := &Renderer{opts: opts, build: make(map[string]PassStats)}
	if opts.Mode != ModeMesh {
		r.curve = &CurveCaster{Patches: scene.Patches}
		var ps PassStats
		if opts.UseBVH {
			start := time.Now()
			r.curve.BVH = bvh.Build(scene.Patches)
			ps.BVHBuild = time.Since(start)
			ps.BVHNodes = r.curve.BVH.Nodes()
			ps.BVHDepth = r.curve.BVH.Depth()
			ps.BVHVolume = r.curve.BVH.Volume()
			logger.Infof("curve BVH built in %s", ps.BVHBuild)
		}
		r.build[ModeCurve.String()] = ps
	}
	if opts.Mode != ModeCurve {
		scene.Triangulate(opts.Accuracy)
		r.mesh = &MeshCaster{Triangles: scene.Mesh()}
		logger.Infof("triangulation %d", len(r.mesh.Triangles))
		var ps PassStats
		if opts.UseBVH {
			start := time.Now()
			ptrs := make([]*curveray.Triangle, len(r.mesh.Triangles))
			for i := range r.mesh.Triangles {
				ptrs[i] = &r.mesh.Triangles[i]
			}
			r.mesh.BVH = bvh.Build(ptrs)
			ps.BVHBuild = time.Since(start)
			ps.BVHNodes = r.mesh.BVH.Nodes()
			ps.BVHDepth = r.mesh.BVH.Depth()
			ps.BVHVolume = r.mesh.BVH.Volume()
			logger.Infof("mesh BVH built in %s", ps.BVHBuild)
		}
		r.build[ModeMesh.String()] = ps
	}
	return r, nil
}

// Mesh returns the triangulation used by the mesh pass, or nil in curve mode.
func (r *Renderer) Mesh() []curveray.Triangle {
	if r.mesh == nil {
		return nil
	}
	return r.mesh.Triangles
}

// Render casts one ray per pixel of frame from cam and writes the colors.
// Rows are cast concurrently. A cancelled context interrupts the render
// between rows and leaves the frame partially written.
func (r *Renderer) Render(ctx context.Context, frame *Frame, cam curveray.Camera) error {
	start := time.Now()
	full := frame.Bounds()
	var passes []PassStats
	var err error
	switch r.opts.Mode {
	case ModeCurve:
		passes, err = r.renderPasses(ctx, frame, cam, pass{ModeCurve, full})
	case ModeMesh:
		passes, err = r.renderPasses(ctx, frame, cam, pass{ModeMesh, full})
	case ModeSplit:
		left, right := full.Split()
		passes, err = r.renderPasses(ctx, frame, cam, pass{ModeMesh, left}, pass{ModeCurve, right})
	}
	r.mu.Lock()
	r.stats = FrameStats{Passes: passes, RenderTime: time.Since(start)}
	r.mu.Unlock()
	return err
}

// Stats returns statistics of the last call to Render.
func (r *Renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

type pass struct {
	mode Mode
	rect Rect
}

func (r *Renderer) renderPasses(ctx context.Context, frame *Frame, cam curveray.Camera, passes ...pass) ([]PassStats, error) {
	stats := make([]PassStats, 0, len(passes))
	for _, p := range passes {
		caster, bg := Caster(r.curve), r.opts.CurveBackground
		if p.mode == ModeMesh {
			caster, bg = r.mesh, r.opts.MeshBackground
		}
		ps := r.build[p.mode.String()]
		ps.Name = p.mode.String()
		ps.Rect = p.rect
		ps.Primitives = caster.Len()
		start := time.Now()
		tally, err := RenderRect(ctx, frame, p.rect, cam, caster, bg, r.opts.Workers)
		ps.CastTime = time.Since(start)
		ps.Tally = tally
		stats = append(stats, ps)
		if err != nil {
			return stats, err
		}
		logger.Infof("%s pass cast in %s", ps.Name, ps.CastTime)
	}
	return stats, nil
}

// RenderRect casts the pixels of rect in frame against caster. The full
// viewport of cam is mapped onto rect. Pixels without a hit are set to bg.
// At most workers rows are cast concurrently; zero or less removes the limit.
func RenderRect(ctx context.Context, frame *Frame, rect Rect, cam curveray.Camera, caster Caster, bg RGB, workers int) (Tally, error) {
	if !rect.In(frame) {
		return Tally{}, ErrBadRect
	}
	if rect.Empty() {
		return Tally{}, nil
	}
	var (
		mu    sync.Mutex
		total Tally
	)
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for y := 0; y < rect.Height; y++ {
		y := y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrInterrupted, err)
			}
			var tally Tally
			for x := 0; x < rect.Width; x++ {
				ray := cam.Ray(rect.ViewCoords(x, y))
				c := bg
				if t, hit := caster.Cast(ray, &tally); hit {
					c = positionColor(ray, t)
				}
				frame.Set(rect.Left+x, rect.Top+y, c)
			}
			mu.Lock()
			total.add(tally)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return total, err
}
