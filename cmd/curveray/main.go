package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sceneFlags := []cli.Flag{
		cli.Float64Flag{
			Name:  "radius",
			Value: 1,
			Usage: "octant sphere radius",
		},
		cli.Float64Flag{
			Name:  "koef",
			Value: 2,
			Usage: "curvature exponent of every patch edge",
		},
		cli.IntFlag{
			Name:  "accuracy",
			Value: 5,
			Usage: "triangulation accuracy, each patch is split into accuracy² triangles",
		},
	}

	app := cli.NewApp()
	app.Name = "curveray"
	app.Usage = "ray cast curved triangle patches"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a frame of an octant sphere",
			Description: `
Cast one ray per pixel against the curved patches of an octant sphere and the
triangulation of the same patches. Hit points are colored by position.

In split mode the triangulation is drawn in the left half of the frame and the
curved patches in the right half.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1000,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 500,
					Usage: "frame height",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 90,
					Usage: "vertical field of view in degrees",
				},
				cli.StringFlag{
					Name:  "eye",
					Value: "2,2,2",
					Usage: "camera position x,y,z",
				},
				cli.StringFlag{
					Name:  "lookat",
					Value: "0,0,0",
					Usage: "point the camera looks at x,y,z",
				},
				cli.StringFlag{
					Name:  "mode, m",
					Value: "split",
					Usage: "primitives to cast against: curve, mesh or split",
				},
				cli.BoolTFlag{
					Name:  "bvh",
					Usage: "prune with a bounding volume hierarchy",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "rows cast concurrently, 0 for no limit",
				},
				cli.Float64Flag{
					Name:  "scale",
					Value: 1,
					Usage: "output image scale",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, sceneFlags...),
			Action: renderFrame,
		},
		{
			Name:  "mesh",
			Usage: "export the triangulation of an octant sphere",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "sphere.stl",
					Usage: "STL filename",
				},
				cli.StringFlag{
					Name:  "preview",
					Usage: "optional PNG filename for a shaded preview of the mesh",
				},
			}, sceneFlags...),
			Action: exportMesh,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
