package postfx

// gradientFrame builds a deterministic test frame with a depth ramp
func gradientFrame(w, h int) *Frame {
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, RGBA{
				R: float32(x) / float32(w),
				G: float32(y) / float32(h),
				B: float32((x*7+y*13)%17) / 17,
				A: 1,
			})
			f.Depth[y*w+x] = float32(x) / float32(w)
		}
	}
	return f
}

// allEffects returns one instance of every effect with non-trivial parameters
func allEffects() []Effect {
	return []Effect{
		NewDepthOfField(DepthOfFieldOptions{FocusDistance: 0.3, FocalLength: 0.1, BokehScale: 6}),
		NewPixelation(4),
		NewBloom(BloomOptions{Threshold: 0.2, Smoothing: 0.1, Intensity: 8, Radius: 0.7, KernelSize: KernelLarge, MipmapBlur: true}),
		NewHueSaturation(1.2, -0.5),
		NewBrightnessContrast(0.2, 0.3),
		NewVignette(0.5, 0.5, false),
		NewNoise(true, 11),
		NewFXAA(),
	}
}

// constEffect outputs a fixed color, used to observe compositing order
type constEffect struct {
	effectBase
	color RGBA
}

func newConstEffect(name string, c RGBA) *constEffect {
	e := &constEffect{effectBase: newEffectBase(name, BlendNormal), color: c}
	e.SetEnabled(true)
	return e
}

func (e *constEffect) Process(_ Context, src, dst *Frame) {
	forEachPixel(src, dst, func(_, _ int, _ RGBA) RGBA { return e.color })
}
