package postfx

import (
	"fmt"

	"fxviewer/internal/util"
)

// BloomOptions configures a bloom effect
type BloomOptions struct {
	Threshold  float32
	Smoothing  float32
	Intensity  float32
	Radius     float32
	KernelSize KernelSize
	MipmapBlur bool
}

// Bloom extracts pixels brighter than a luminance threshold, blurs them and
// outputs the glow scaled by intensity. Composited with Add by default.
type Bloom struct {
	effectBase

	Threshold float32
	Smoothing float32
	Intensity float32
	// Radius mixes mip levels during upsampling, only used with MipmapBlur
	Radius float32
	// KernelSize picks the box blur, only used without MipmapBlur
	KernelSize KernelSize
	MipmapBlur bool

	bright *Frame
	tmp    *Frame
}

// NewBloom creates a disabled bloom effect
func NewBloom(opts BloomOptions) *Bloom {
	return &Bloom{
		effectBase: newEffectBase("bloom", BlendAdd),
		Threshold:  opts.Threshold,
		Smoothing:  opts.Smoothing,
		Intensity:  opts.Intensity,
		Radius:     opts.Radius,
		KernelSize: opts.KernelSize,
		MipmapBlur: opts.MipmapBlur,
		bright:     NewFrame(0, 0),
		tmp:        NewFrame(0, 0),
	}
}

// SetSize preallocates the blur buffers
func (b *Bloom) SetSize(width, height int) {
	b.bright.Resize(width, height)
	b.tmp.Resize(width, height)
}

// Mask returns the bright-pass weight of a luminance value
func (b *Bloom) Mask(luminance float32) float32 {
	return util.SmoothStep(b.Threshold, b.Threshold+b.Smoothing, luminance)
}

// Process implements Effect
func (b *Bloom) Process(_ Context, src, dst *Frame) {
	b.SetSize(src.Width, src.Height)

	forEachPixel(src, b.bright, func(_, _ int, c RGBA) RGBA {
		m := b.Mask(c.Luminance())
		if m <= 0 {
			return RGBA{}
		}
		return RGBA{c.R * m, c.G * m, c.B * m, 1}
	})

	if b.MipmapBlur {
		b.mipmapBlur()
	} else {
		boxBlur(b.bright, b.tmp, b.KernelSize.radius(src.Height))
		boxBlur(b.bright, b.tmp, b.KernelSize.radius(src.Height))
	}

	forEachPixel(b.bright, dst, func(_, _ int, c RGBA) RGBA {
		return RGBA{c.R * b.Intensity, c.G * b.Intensity, c.B * b.Intensity, 1}
	})
}

// mipmapBlur downsamples the bright pass into a mip chain and walks back
// up, mixing each level with the upsampled coarser one by Radius
func (b *Bloom) mipmapBlur() {
	levels := []*Frame{b.bright}
	for cur := b.bright; len(levels) < 8 && cur.Width > 4 && cur.Height > 4; {
		cur = downsample(cur)
		levels = append(levels, cur)
	}

	for i := len(levels) - 2; i >= 0; i-- {
		upsampleMix(levels[i], levels[i+1], util.Clamp32(b.Radius, 0, 1))
	}
}

// String describes the effect parameters
func (b *Bloom) String() string {
	return fmt.Sprintf("bloom(threshold=%.2f smoothing=%.2f intensity=%.2f radius=%.2f kernel=%s mipmap=%t)",
		b.Threshold, b.Smoothing, b.Intensity, b.Radius, b.KernelSize, b.MipmapBlur)
}
