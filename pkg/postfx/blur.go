package postfx

// boxBlur runs a separable box blur of the given radius over f in place,
// using tmp as the intermediate buffer. Both must be the same size.
// Every output sums its own window so fully black regions stay exactly 0.
func boxBlur(f, tmp *Frame, radius int) {
	if radius <= 0 {
		return
	}
	norm := 1 / float32(2*radius+1)

	blurPass(f, tmp, radius, norm, 1, 0)
	blurPass(tmp, f, radius, norm, 0, 1)
}

// blurPass averages src along (dx, dy) into dst
func blurPass(src, dst *Frame, radius int, norm float32, dx, dy int) {
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var sum RGBA
			for k := -radius; k <= radius; k++ {
				c := src.At(x+k*dx, y+k*dy)
				sum.R += c.R
				sum.G += c.G
				sum.B += c.B
				sum.A += c.A
			}
			i := (y*src.Width + x) * 4
			dst.Pix[i] = sum.R * norm
			dst.Pix[i+1] = sum.G * norm
			dst.Pix[i+2] = sum.B * norm
			dst.Pix[i+3] = sum.A * norm
		}
	}
}

// downsample halves src into a new frame with a 2x2 box filter
func downsample(src *Frame) *Frame {
	w := max(src.Width/2, 1)
	h := max(src.Height/2, 1)
	dst := NewFrame(w, h)
	dst.Depth = nil
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := src.At(2*x, 2*y)
			b := src.At(2*x+1, 2*y)
			c := src.At(2*x, 2*y+1)
			d := src.At(2*x+1, 2*y+1)
			dst.Set(x, y, RGBA{
				R: (a.R + b.R + c.R + d.R) * 0.25,
				G: (a.G + b.G + c.G + d.G) * 0.25,
				B: (a.B + b.B + c.B + d.B) * 0.25,
				A: (a.A + b.A + c.A + d.A) * 0.25,
			})
		}
	}
	return dst
}

// upsampleMix bilinearly upsamples low onto high and mixes by radius in place
func upsampleMix(high, low *Frame, radius float32) {
	sx := float32(low.Width) / float32(high.Width)
	sy := float32(low.Height) / float32(high.Height)
	for y := 0; y < high.Height; y++ {
		for x := 0; x < high.Width; x++ {
			up := low.Sample((float32(x)+0.5)*sx, (float32(y)+0.5)*sy)
			high.Set(x, y, mixRGBA(high.At(x, y), up, radius))
		}
	}
}
