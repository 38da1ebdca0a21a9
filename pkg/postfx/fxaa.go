package postfx

// FXAA tuning, matching the common console variant
const (
	fxaaReduceMin = 1.0 / 128.0
	fxaaReduceMul = 1.0 / 8.0
	fxaaSpanMax   = 8.0
)

// FXAA is fast approximate anti-aliasing along luma edges
type FXAA struct {
	effectBase
}

// NewFXAA creates a disabled FXAA effect
func NewFXAA() *FXAA {
	return &FXAA{effectBase: newEffectBase("fxaa", BlendNormal)}
}

// Process implements Effect
func (f *FXAA) Process(_ Context, src, dst *Frame) {
	forEachPixel(src, dst, func(x, y int, c RGBA) RGBA {
		lumaNW := src.At(x-1, y-1).Luminance()
		lumaNE := src.At(x+1, y-1).Luminance()
		lumaSW := src.At(x-1, y+1).Luminance()
		lumaSE := src.At(x+1, y+1).Luminance()
		lumaM := c.Luminance()

		lumaMin := min(lumaM, lumaNW, lumaNE, lumaSW, lumaSE)
		lumaMax := max(lumaM, lumaNW, lumaNE, lumaSW, lumaSE)

		dirX := -((lumaNW + lumaNE) - (lumaSW + lumaSE))
		dirY := (lumaNW + lumaSW) - (lumaNE + lumaSE)
		if dirX == 0 && dirY == 0 {
			return c
		}

		dirReduce := max((lumaNW+lumaNE+lumaSW+lumaSE)*(0.25*fxaaReduceMul), fxaaReduceMin)
		rcpDirMin := 1 / (min(abs32(dirX), abs32(dirY)) + dirReduce)
		dirX = clampF(dirX*rcpDirMin, -fxaaSpanMax, fxaaSpanMax)
		dirY = clampF(dirY*rcpDirMin, -fxaaSpanMax, fxaaSpanMax)

		px := float32(x) + 0.5
		py := float32(y) + 0.5
		sample := func(t float32) RGBA {
			return src.Sample(px+dirX*t, py+dirY*t)
		}

		a1 := sample(1.0/3.0 - 0.5)
		a2 := sample(2.0/3.0 - 0.5)
		rgbA := RGBA{(a1.R + a2.R) * 0.5, (a1.G + a2.G) * 0.5, (a1.B + a2.B) * 0.5, c.A}

		b1 := sample(-0.5)
		b2 := sample(0.5)
		rgbB := RGBA{
			R: rgbA.R*0.5 + (b1.R+b2.R)*0.25,
			G: rgbA.G*0.5 + (b1.G+b2.G)*0.25,
			B: rgbA.B*0.5 + (b1.B+b2.B)*0.25,
			A: c.A,
		}

		lumaB := rgbB.Luminance()
		if lumaB < lumaMin || lumaB > lumaMax {
			return rgbA
		}
		return rgbB
	})
}

func clampF(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
