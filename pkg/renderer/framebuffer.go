package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// intensity is the displayable range of a gamma-corrected channel
var intensity = core.NewInterval(0.000, 0.999)

// Framebuffer holds linear pixel colors in row-major order, row 0 at the top
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color of pixel (i, j)
func (f *Framebuffer) At(i, j int) core.Vec3 {
	return f.Pixels[j*f.Width+i]
}

// Set stores the linear color of pixel (i, j)
func (f *Framebuffer) Set(i, j int, c core.Vec3) {
	f.Pixels[j*f.Width+i] = c
}

// ToByte converts a linear channel value to an 8-bit gamma 2 value
func ToByte(linear float64) uint8 {
	gamma := 0.0
	if linear > 0 {
		gamma = math.Sqrt(linear)
	}
	return uint8(256 * intensity.Clamp(gamma))
}

// Colors returns the gamma-corrected 8-bit RGB triplets in row-major order
func (f *Framebuffer) Colors() [][3]uint8 {
	out := make([][3]uint8, len(f.Pixels))
	for idx, p := range f.Pixels {
		out[idx] = [3]uint8{ToByte(p.X), ToByte(p.Y), ToByte(p.Z)}
	}
	return out
}

// ToImage converts the framebuffer to an opaque RGBA image
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			p := f.At(i, j)
			img.SetRGBA(i, j, color.RGBA{
				R: ToByte(p.X),
				G: ToByte(p.Y),
				B: ToByte(p.Z),
				A: 255,
			})
		}
	}
	return img
}
