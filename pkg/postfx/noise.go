package postfx

import (
	"fxviewer/internal/noise"
)

// Noise overlays per-frame film grain. Composited with Screen by default.
type Noise struct {
	effectBase

	// Premultiply multiplies the grain with the input color
	Premultiply bool

	gen *noise.Generator
}

// NewNoise creates a disabled noise effect
func NewNoise(premultiply bool, seed int64) *Noise {
	return &Noise{
		effectBase:  newEffectBase("noise", BlendScreen),
		Premultiply: premultiply,
		gen:         noise.NewGenerator(seed),
	}
}

// Process implements Effect
func (n *Noise) Process(ctx Context, src, dst *Frame) {
	forEachPixel(src, dst, func(x, y int, c RGBA) RGBA {
		g := float32(n.gen.Grain(x, y, ctx.Frame))
		if n.Premultiply {
			return RGBA{min(c.R*g, 1), min(c.G*g, 1), min(c.B*g, 1), c.A}
		}
		return RGBA{g, g, g, c.A}
	})
}
