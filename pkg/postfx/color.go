package postfx

import "math"

// HueSaturation rotates hue and scales saturation
type HueSaturation struct {
	effectBase

	// Hue is the rotation in radians
	Hue float32
	// Saturation in [-1, 1], 0 leaves the color untouched
	Saturation float32
}

// NewHueSaturation creates a disabled hue/saturation effect
func NewHueSaturation(hue, saturation float32) *HueSaturation {
	return &HueSaturation{
		effectBase: newEffectBase("hue", BlendNormal),
		Hue:        hue,
		Saturation: saturation,
	}
}

// Process implements Effect
func (h *HueSaturation) Process(_ Context, src, dst *Frame) {
	s, c := math.Sincos(float64(h.Hue))
	sqrt3 := math.Sqrt(3)
	k0 := float32((2*c + 1) / 3)
	k1 := float32((-sqrt3*s - c + 1) / 3)
	k2 := float32((sqrt3*s - c + 1) / 3)

	var satFactor float32
	if h.Saturation > 0 {
		satFactor = 1 - 1/(1.001-h.Saturation)
	} else {
		satFactor = -h.Saturation
	}

	forEachPixel(src, dst, func(_, _ int, in RGBA) RGBA {
		r := in.R*k0 + in.G*k1 + in.B*k2
		g := in.R*k2 + in.G*k0 + in.B*k1
		b := in.R*k1 + in.G*k2 + in.B*k0

		avg := (r + g + b) / 3
		r += (avg - r) * satFactor
		g += (avg - g) * satFactor
		b += (avg - b) * satFactor

		return RGBA{r, g, b, in.A}
	})
}

// BrightnessContrast shifts brightness and scales contrast around mid grey
type BrightnessContrast struct {
	effectBase

	// Brightness in [-1, 1]
	Brightness float32
	// Contrast in [-1, 1]
	Contrast float32
}

// NewBrightnessContrast creates a disabled brightness/contrast effect
func NewBrightnessContrast(brightness, contrast float32) *BrightnessContrast {
	return &BrightnessContrast{
		effectBase: newEffectBase("brightness", BlendNormal),
		Brightness: brightness,
		Contrast:   contrast,
	}
}

// Adjust applies brightness and contrast to one channel value
func (b *BrightnessContrast) Adjust(v float32) float32 {
	v += b.Brightness - 0.5
	if b.Contrast > 0 {
		v /= 1 - min(b.Contrast, 0.999)
	} else {
		v *= 1 + b.Contrast
	}
	return v + 0.5
}

// Process implements Effect
func (b *BrightnessContrast) Process(_ Context, src, dst *Frame) {
	forEachPixel(src, dst, func(_, _ int, c RGBA) RGBA {
		return RGBA{b.Adjust(c.R), b.Adjust(c.G), b.Adjust(c.B), c.A}
	})
}
