// Package noise provides deterministic hash-based noise used for film grain
// and procedural terrain.
package noise

import (
	"math"
)

// Generator produces repeatable noise for a fixed seed
type Generator struct {
	seed int
}

// NewGenerator creates a new noise generator with the given seed
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: int(seed)}
}

// Grain returns white noise in [0, 1) for a pixel of a given frame.
// The same (x, y, frame) always yields the same value.
func (g *Generator) Grain(x, y, frame int) float64 {
	return hashToFloat(hash(x, y, frame, g.seed))
}

// Perlin2D generates 2D gradient noise in roughly [-1, 1]
func (g *Generator) Perlin2D(x, y float64, frame int) float64 {
	x0 := math.Floor(x)
	x1 := x0 + 1.0
	y0 := math.Floor(y)
	y1 := y0 + 1.0

	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	g00 := gradient2D(hash(int(x0), int(y0), frame, g.seed))
	g10 := gradient2D(hash(int(x1), int(y0), frame, g.seed))
	g01 := gradient2D(hash(int(x0), int(y1), frame, g.seed))
	g11 := gradient2D(hash(int(x1), int(y1), frame, g.seed))

	dp00 := g00[0]*(x-x0) + g00[1]*(y-y0)
	dp10 := g10[0]*(x-x1) + g10[1]*(y-y0)
	dp01 := g01[0]*(x-x0) + g01[1]*(y-y1)
	dp11 := g11[0]*(x-x1) + g11[1]*(y-y1)

	return lerp(lerp(dp00, dp10, sx), lerp(dp01, dp11, sx), sy)
}

// hash combines the coordinates and seed to create a unique hash
func hash(x, y, z, seed int) int {
	h := seed + x*374761393 + y*668265263 + z*1440662683
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// hashToFloat converts a hash to a float in range [0, 1)
func hashToFloat(h int) float64 {
	return float64(h&0xFFFFFF) / 16777216.0
}

func gradient2D(hash int) [2]float64 {
	switch hash & 7 {
	case 0:
		return [2]float64{1, 0}
	case 1:
		return [2]float64{-1, 0}
	case 2:
		return [2]float64{0, 1}
	case 3:
		return [2]float64{0, -1}
	case 4:
		return [2]float64{1, 1}
	case 5:
		return [2]float64{-1, 1}
	case 6:
		return [2]float64{1, -1}
	default:
		return [2]float64{-1, -1}
	}
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// smoothstep is the improved Perlin fade: 6t^5 - 15t^4 + 10t^3
func smoothstep(t float64) float64 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}
