package postfx

import "math"

// Pixelation snaps the frame to square cells of Granularity pixels
type Pixelation struct {
	effectBase

	// Granularity is the cell size in pixels; values below 1 disable the snapping
	Granularity float32
}

// NewPixelation creates a disabled pixelation effect
func NewPixelation(granularity float32) *Pixelation {
	return &Pixelation{
		effectBase:  newEffectBase("pixelation", BlendNormal),
		Granularity: granularity,
	}
}

// CellSize returns the integer cell size in pixels, 1 when pixelation is off
func (p *Pixelation) CellSize() int {
	g := int(math.Floor(float64(p.Granularity)))
	if g < 1 {
		return 1
	}
	return g
}

// Process implements Effect
func (p *Pixelation) Process(_ Context, src, dst *Frame) {
	cell := p.CellSize()
	if cell == 1 {
		dst.CopyFrom(src)
		return
	}

	forEachPixel(src, dst, func(x, y int, _ RGBA) RGBA {
		cx := (x/cell)*cell + cell/2
		cy := (y/cell)*cell + cell/2
		return src.At(cx, cy)
	})
}
