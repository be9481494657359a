package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/soypat/curveray"
	"github.com/soypat/curveray/log"
	"github.com/soypat/curveray/render"
	"github.com/soypat/curveray/shape"
	"github.com/soypat/glgl/math/ms3"
	"github.com/urfave/cli"
)

var logger = log.New("curveray")

var errBadVector = errors.New("expected three comma separated numbers")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

func loadScene(ctx *cli.Context) (*render.Scene, error) {
	patches, err := shape.OctantSphere(float32(ctx.Float64("radius")), float32(ctx.Float64("koef")))
	if err != nil {
		return nil, err
	}
	return &render.Scene{Patches: patches}, nil
}

// Render a still frame.
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	mode, err := render.ParseMode(ctx.String("mode"))
	if err != nil {
		return err
	}
	opts := render.DefaultOptions()
	opts.Mode = mode
	opts.UseBVH = ctx.BoolT("bvh")
	opts.Accuracy = ctx.Int("accuracy")
	opts.Workers = ctx.Int("workers")

	w, h := ctx.Int("width"), ctx.Int("height")
	if w <= 0 || h <= 0 {
		return fmt.Errorf("frame size %dx%d: %w", w, h, render.ErrBadOptions)
	}
	eye, err := parseVec(ctx.String("eye"))
	if err != nil {
		return fmt.Errorf("eye: %w", err)
	}
	lookat, err := parseVec(ctx.String("lookat"))
	if err != nil {
		return fmt.Errorf("lookat: %w", err)
	}
	frame := render.NewFrame(w, h)
	// Each pass maps the full viewport onto its own region.
	ratio := frame.Bounds().Aspect()
	if mode == render.ModeSplit {
		left, _ := frame.Bounds().Split()
		ratio = left.Aspect()
	}
	cam := curveray.NewCamera(eye, lookat, float32(ctx.Float64("fov")), ratio)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	r, err := render.NewRenderer(sc, opts)
	if err != nil {
		return err
	}

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = r.Render(sigctx, frame, cam); err != nil {
		return err
	}
	displayFrameStats(r.Stats())

	out := ctx.String("out")
	if err = render.SavePNG(out, frame, float32(ctx.Float64("scale"))); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return nil
}

// Export the scene triangulation.
func exportMesh(ctx *cli.Context) error {
	setupLogging(ctx)

	accuracy := ctx.Int("accuracy")
	if accuracy <= 0 {
		return fmt.Errorf("accuracy %d: %w", accuracy, render.ErrBadOptions)
	}
	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	out := ctx.String("out")
	if err = render.CreateSTL(out, render.PatchReader(sc.Patches, accuracy)); err != nil {
		return err
	}
	logger.Noticef("wrote %s with %d triangles", out, len(sc.Patches)*accuracy*accuracy)

	if preview := ctx.String("preview"); preview != "" {
		if err = render.PreviewSTL(out, preview, render.DefaultView); err != nil {
			return err
		}
		logger.Noticef("wrote %s", preview)
	}
	return nil
}

func displayFrameStats(stats render.FrameStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame statistics\n%s", buf.String())
}

func parseVec(s string) (ms3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return ms3.Vec{}, fmt.Errorf("%q: %w", s, errBadVector)
	}
	var f [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return ms3.Vec{}, fmt.Errorf("%q: %w", s, errBadVector)
		}
		f[i] = float32(v)
	}
	return ms3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}
