package render

import (
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig positions the preview camera.
type ViewConfig struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Far, Near float64

	// Output size in pixels.
	Width, Height int
	// Supersampling factor, 1 disables it.
	Supersample int
}

// DefaultView is an isometric view of a mesh fit in a bi-unit cube.
var DefaultView = ViewConfig{
	Up:          r3.Vec{Z: 1},
	Eye:         r3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Near:        1,
	Far:         10,
	Width:       768,
	Height:      432,
	Supersample: 1,
}

// PreviewSTL renders a shaded image of an STL mesh to a PNG file.
func PreviewSTL(stlPath, pngPath string, view ViewConfig) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const fovy = 30 // vertical field of view in degrees
	scale := view.Supersample
	if scale < 1 {
		scale = 1
	}
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, img)
}

// SavePNG writes frame to a PNG file. A scale other than 1 resizes the image.
func SavePNG(path string, frame *Frame, scale float32) error {
	return fauxgl.SavePNG(path, ScaleImage(frame.Image(), scale))
}

// ScaleImage resizes img by scale. Non positive scales and 1 return img as is.
func ScaleImage(img image.Image, scale float32) image.Image {
	if scale <= 0 || scale == 1 {
		return img
	}
	b := img.Bounds()
	w := uint(float32(b.Dx())*scale + 0.5)
	h := uint(float32(b.Dy())*scale + 0.5)
	if w == 0 || h == 0 {
		return img
	}
	return resize.Resize(w, h, img, resize.Bilinear)
}
