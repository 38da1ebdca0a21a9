package postfx

import (
	"math"

	"fxviewer/internal/util"
)

// DepthOfFieldOptions configures a depth of field effect
type DepthOfFieldOptions struct {
	FocusDistance float32
	FocalLength   float32
	BokehScale    float32
}

// DepthOfField blurs pixels by their circle of confusion. The output alpha
// is the CoC, so the default Alpha blend keeps in-focus pixels untouched.
type DepthOfField struct {
	effectBase

	// FocusDistance is the normalized depth in focus
	FocusDistance float32
	// FocalLength is the normalized depth range over which blur ramps up
	FocalLength float32
	// BokehScale is the blur radius in pixels at full CoC on a 540 line frame
	BokehScale float32
}

// bokehTaps is a golden angle spiral on the unit disc
var bokehTaps = func() [][2]float32 {
	const n = 24
	golden := math.Pi * (3 - math.Sqrt(5))
	taps := make([][2]float32, n)
	for i := range taps {
		r := math.Sqrt((float64(i) + 0.5) / n)
		a := float64(i) * golden
		taps[i] = [2]float32{float32(r * math.Cos(a)), float32(r * math.Sin(a))}
	}
	return taps
}()

// NewDepthOfField creates a disabled depth of field effect
func NewDepthOfField(opts DepthOfFieldOptions) *DepthOfField {
	return &DepthOfField{
		effectBase:    newEffectBase("dof", BlendAlpha),
		FocusDistance: opts.FocusDistance,
		FocalLength:   opts.FocalLength,
		BokehScale:    opts.BokehScale,
	}
}

// CircleOfConfusion returns the blur amount in [0, 1] for a normalized depth
func (d *DepthOfField) CircleOfConfusion(depth float32) float32 {
	return util.SmoothStep(0, d.FocalLength, abs32(depth-d.FocusDistance))
}

// Process implements Effect
func (d *DepthOfField) Process(_ Context, src, dst *Frame) {
	scale := d.BokehScale * max(float32(src.Height)/540, 1)

	forEachPixel(src, dst, func(x, y int, c RGBA) RGBA {
		coc := d.CircleOfConfusion(src.DepthAt(x, y))
		radius := coc * scale
		if radius < 0.5 {
			return RGBA{c.R, c.G, c.B, coc}
		}

		var sum RGBA
		cx := float32(x) + 0.5
		cy := float32(y) + 0.5
		for _, t := range bokehTaps {
			s := src.Sample(cx+t[0]*radius, cy+t[1]*radius)
			sum.R += s.R
			sum.G += s.G
			sum.B += s.B
		}
		n := float32(len(bokehTaps))
		return RGBA{sum.R / n, sum.G / n, sum.B / n, coc}
	})
}
