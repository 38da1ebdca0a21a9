package postfx

// Context carries per-frame values shared by all effects of a chain
type Context struct {
	// Frame counts chain ticks since startup
	Frame int
	// Time is the elapsed time in seconds at the current tick
	Time float64
}

// Effect is a named image transform composited through its blend mode.
//
// Process writes the effect's output for every pixel of src into dst. It
// must not modify src. The chain blends dst onto src afterwards, so an
// effect never decides how its output is combined.
type Effect interface {
	Name() string
	BlendMode() *BlendMode
	// DefaultBlendFunction is the function restored when the effect is enabled
	DefaultBlendFunction() BlendFunction
	Enabled() bool
	SetEnabled(enabled bool)
	Process(ctx Context, src, dst *Frame)
}

// Resizer is implemented by effects that keep size-dependent buffers
type Resizer interface {
	SetSize(width, height int)
}

// effectBase carries the name and blend state common to every effect
type effectBase struct {
	name      string
	blend     BlendMode
	defaultFn BlendFunction
}

func newEffectBase(name string, defaultFn BlendFunction) effectBase {
	return effectBase{
		name:      name,
		blend:     BlendMode{Function: BlendSkip, Opacity: 1},
		defaultFn: defaultFn,
	}
}

// Name returns the effect name
func (e *effectBase) Name() string {
	return e.name
}

// BlendMode returns the live blend state of the effect
func (e *effectBase) BlendMode() *BlendMode {
	return &e.blend
}

// DefaultBlendFunction returns the blend function used when enabled
func (e *effectBase) DefaultBlendFunction() BlendFunction {
	return e.defaultFn
}

// Enabled reports whether the effect contributes to the frame
func (e *effectBase) Enabled() bool {
	return e.blend.Function != BlendSkip
}

// SetEnabled switches between the default blend function and Skip.
// Other parameters are left as they are.
func (e *effectBase) SetEnabled(enabled bool) {
	if enabled {
		e.blend.Function = e.defaultFn
	} else {
		e.blend.Function = BlendSkip
	}
}

// forEachPixel runs fn over every pixel of src, storing the result in dst
func forEachPixel(src, dst *Frame, fn func(x, y int, c RGBA) RGBA) {
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			i := (y*src.Width + x) * 4
			c := RGBA{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]}
			o := fn(x, y, c)
			dst.Pix[i] = o.R
			dst.Pix[i+1] = o.G
			dst.Pix[i+2] = o.B
			dst.Pix[i+3] = o.A
		}
	}
}
