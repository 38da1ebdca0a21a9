// Package postfx implements an ordered chain of image-space post-processing
// effects composited onto a rendered frame.
package postfx

import (
	"image"
	"math"
)

// RGBA is a linear color with straight alpha. Channels may exceed 1 before
// presentation (additive bloom produces HDR values).
type RGBA struct {
	R, G, B, A float32
}

// Luminance returns the Rec. 709 luma of the color
func (c RGBA) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Scale multiplies the color channels by s, alpha is left untouched
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{c.R * s, c.G * s, c.B * s, c.A}
}

// Frame is a float image with an optional depth buffer
type Frame struct {
	Width  int
	Height int
	// Pix holds 4 floats per pixel, rows top to bottom
	Pix []float32
	// Depth holds normalized view depth per pixel, 0 near, 1 far. May be nil.
	Depth []float32
}

// NewFrame allocates a transparent black frame with a far-plane depth buffer
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
		Depth:  make([]float32, width*height),
	}
	for i := range f.Depth {
		f.Depth[i] = 1
	}
	return f
}

// Empty reports whether the frame has no pixels
func (f *Frame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Pix) < f.Width*f.Height*4
}

// Clone returns a deep copy of the frame
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Width:  f.Width,
		Height: f.Height,
		Pix:    make([]float32, len(f.Pix)),
	}
	copy(c.Pix, f.Pix)
	if f.Depth != nil {
		c.Depth = make([]float32, len(f.Depth))
		copy(c.Depth, f.Depth)
	}
	return c
}

// CopyFrom overwrites f with the pixels and depth of src. Sizes must match.
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Pix, src.Pix)
	if f.Depth != nil && src.Depth != nil {
		copy(f.Depth, src.Depth)
	}
}

// Resize reallocates the frame if its size changed. Contents are undefined afterwards.
func (f *Frame) Resize(width, height int) {
	if f.Width == width && f.Height == height {
		return
	}
	*f = *NewFrame(width, height)
}

// Fill sets every pixel to c
func (f *Frame) Fill(c RGBA) {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
	}
}

// At returns the pixel at (x, y), clamping coordinates to the frame edges
func (f *Frame) At(x, y int) RGBA {
	x = clampInt(x, 0, f.Width-1)
	y = clampInt(y, 0, f.Height-1)
	i := (y*f.Width + x) * 4
	return RGBA{f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]}
}

// Set writes the pixel at (x, y). Out of range writes are ignored.
func (f *Frame) Set(x, y int, c RGBA) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// DepthAt returns the normalized depth at (x, y), or 1 when there is no depth buffer
func (f *Frame) DepthAt(x, y int) float32 {
	if f.Depth == nil {
		return 1
	}
	x = clampInt(x, 0, f.Width-1)
	y = clampInt(y, 0, f.Height-1)
	return f.Depth[y*f.Width+x]
}

// Sample bilinearly filters the frame at pixel-space coordinates, where
// pixel centers sit at integer + 0.5. Edges are clamped.
func (f *Frame) Sample(px, py float32) RGBA {
	fx := px - 0.5
	fy := py - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	// Integer positions hit the texel exactly
	if tx == 0 && ty == 0 {
		return f.At(x0, y0)
	}

	c00 := f.At(x0, y0)
	c10 := f.At(x0+1, y0)
	c01 := f.At(x0, y0+1)
	c11 := f.At(x0+1, y0+1)

	return mixRGBA(mixRGBA(c00, c10, tx), mixRGBA(c01, c11, tx), ty)
}

// Equal reports whether both frames have identical size and bit-identical pixels
func (f *Frame) Equal(o *Frame) bool {
	if f.Width != o.Width || f.Height != o.Height || len(f.Pix) != len(o.Pix) {
		return false
	}
	for i := range f.Pix {
		if math.Float32bits(f.Pix[i]) != math.Float32bits(o.Pix[i]) {
			return false
		}
	}
	return true
}

// ToRGBA encodes the frame to 8-bit sRGB. dst is reused when it has the right bounds.
func (f *Frame) ToRGBA(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != f.Width || dst.Bounds().Dy() != f.Height {
		dst = image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	}
	for y := 0; y < f.Height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < f.Width; x++ {
			i := (y*f.Width + x) * 4
			o := x * 4
			row[o] = encodeSRGB(f.Pix[i])
			row[o+1] = encodeSRGB(f.Pix[i+1])
			row[o+2] = encodeSRGB(f.Pix[i+2])
			row[o+3] = uint8(clamp01(f.Pix[i+3])*255 + 0.5)
		}
	}
	return dst
}

// FromImage converts an 8-bit sRGB image into a linear frame without depth
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	f.Depth = nil
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			f.Set(x, y, RGBA{
				R: DecodeSRGB(uint8(r >> 8)),
				G: DecodeSRGB(uint8(g >> 8)),
				B: DecodeSRGB(uint8(bl >> 8)),
				A: float32(a) / 0xffff,
			})
		}
	}
	return f
}

// DecodeSRGB converts an 8-bit sRGB channel to linear
func DecodeSRGB(v uint8) float32 {
	c := float64(v) / 255
	if c <= 0.04045 {
		return float32(c / 12.92)
	}
	return float32(math.Pow((c+0.055)/1.055, 2.4))
}

func encodeSRGB(v float32) uint8 {
	c := float64(clamp01(v))
	if c <= 0.0031308 {
		c *= 12.92
	} else {
		c = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return uint8(c*255 + 0.5)
}

// mixRGBA returns exactly a at t == 0 and exactly b at t == 1
func mixRGBA(a, b RGBA, t float32) RGBA {
	s := 1 - t
	return RGBA{
		R: a.R*s + b.R*t,
		G: a.G*s + b.G*t,
		B: a.B*s + b.B*t,
		A: a.A*s + b.A*t,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
