package postfx

import (
	"math"

	"fxviewer/internal/util"
)

// Vignette darkens the frame towards its edges
type Vignette struct {
	effectBase

	Offset   float32
	Darkness float32
	// Eskil selects the Eskil technique, which fades to 1-darkness instead of black
	Eskil bool
}

// NewVignette creates a disabled vignette effect
func NewVignette(offset, darkness float32, eskil bool) *Vignette {
	return &Vignette{
		effectBase: newEffectBase("vignette", BlendNormal),
		Offset:     offset,
		Darkness:   darkness,
		Eskil:      eskil,
	}
}

// Factor returns the vignette weight at normalized coordinates (u, v)
func (v *Vignette) Factor(u, w float32) float32 {
	du := u - 0.5
	dv := w - 0.5
	d := float32(math.Sqrt(float64(du*du + dv*dv)))
	return util.SmoothStep(0.8, v.Offset*0.799, d*(v.Darkness+v.Offset))
}

// Process implements Effect
func (v *Vignette) Process(_ Context, src, dst *Frame) {
	fw := float32(src.Width)
	fh := float32(src.Height)

	forEachPixel(src, dst, func(x, y int, c RGBA) RGBA {
		u := (float32(x) + 0.5) / fw
		w := (float32(y) + 0.5) / fh

		if v.Eskil {
			cu := (u - 0.5) * v.Offset
			cv := (w - 0.5) * v.Offset
			t := cu*cu + cv*cv
			edge := 1 - v.Darkness
			return RGBA{
				R: c.R + (edge-c.R)*t,
				G: c.G + (edge-c.G)*t,
				B: c.B + (edge-c.B)*t,
				A: c.A,
			}
		}
		return c.Scale(v.Factor(u, w))
	})
}
