package postfx

import "math"

// HSL-style non-separable operators (Color, Hue, Luminosity, Saturation).
// Inputs are clamped to [0, 1] first since the operators are only defined there.

func blendNonSeparable(f BlendFunction, dst, src RGBA) (float32, float32, float32) {
	dr, dg, db := clamp01(dst.R), clamp01(dst.G), clamp01(dst.B)
	sr, sg, sb := clamp01(src.R), clamp01(src.G), clamp01(src.B)

	switch f {
	case BlendHue:
		r, g, b := setSat(sr, sg, sb, sat(dr, dg, db))
		return setLum(r, g, b, lum(dr, dg, db))
	case BlendSaturation:
		r, g, b := setSat(dr, dg, db, sat(sr, sg, sb))
		return setLum(r, g, b, lum(dr, dg, db))
	case BlendColor:
		return setLum(sr, sg, sb, lum(dr, dg, db))
	default: // BlendLuminosity
		return setLum(dr, dg, db, lum(sr, sg, sb))
	}
}

func lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

func sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

func clipColor(r, g, b float32) (float32, float32, float32) {
	l := lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

func setLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

func setSat(r, g, b, s float32) (float32, float32, float32) {
	c := [3]float32{r, g, b}
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}

	var out [3]float32
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out[0], out[1], out[2]
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
