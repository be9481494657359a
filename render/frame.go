package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// RGB is a linear color with channels nominally in [0,1].
type RGB [3]float32

// Frame is a row-major color buffer. Row 0 is the top of the image.
type Frame struct {
	W, H int
	Pix  []RGB
}

// NewFrame allocates a black frame of w by h pixels.
func NewFrame(w, h int) *Frame {
	if w <= 0 || h <= 0 {
		panic("frame dimensions must be positive")
	}
	return &Frame{W: w, H: h, Pix: make([]RGB, w*h)}
}

// Set writes the color of pixel (x, y). Row 0 is the top of the frame.
func (f *Frame) Set(x, y int, c RGB) { f.Pix[y*f.W+x] = c }

// At returns the color of pixel (x, y).
func (f *Frame) At(x, y int) RGB { return f.Pix[y*f.W+x] }

// Fill sets every pixel to c.
func (f *Frame) Fill(c RGB) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// Bounds returns the frame's pixel rectangle.
func (f *Frame) Bounds() Rect { return Rect{Width: f.W, Height: f.H} }

// Image converts the frame to 8 bit color. Channels are clamped to [0,1].
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			c := f.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: channel8(c[0]),
				G: channel8(c[1]),
				B: channel8(c[2]),
				A: 255,
			})
		}
	}
	return img
}

func channel8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(math32.Min(v, 1)*255 + 0.5)
}

// Rect is a sub region of a frame in pixels. Top is the first row.
type Rect struct {
	Left, Top     int
	Width, Height int
}

// Split returns the left and right halves of r.
func (r Rect) Split() (left, right Rect) {
	half := r.Width / 2
	left = Rect{Left: r.Left, Top: r.Top, Width: half, Height: r.Height}
	right = Rect{Left: r.Left + half, Top: r.Top, Width: r.Width - half, Height: r.Height}
	return left, right
}

// Aspect returns width over height.
func (r Rect) Aspect() float32 { return float32(r.Width) / float32(r.Height) }

// Empty reports whether the rect has no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// In reports whether the rect lies within the frame.
func (r Rect) In(f *Frame) bool {
	return r.Left >= 0 && r.Top >= 0 && r.Left+r.Width <= f.W && r.Top+r.Height <= f.H
}

// ViewCoords maps pixel (x, y) of the rect, relative to its corner, to
// viewport offsets. x=0 maps to -1 and y=0 to +1.
func (r Rect) ViewCoords(x, y int) (viewX, viewY float32) {
	viewX = float32(2*x)/float32(r.Width) - 1
	viewY = 1 - float32(2*y)/float32(r.Height)
	return viewX, viewY
}
