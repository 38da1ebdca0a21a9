package postfx

import (
	"errors"
)

// ErrNoFrame is returned when the chain is asked to render without a base frame
var ErrNoFrame = errors.New("postfx: no base frame to process")

// Chain is an ordered list of effects. The order is fixed at construction
// and is the compositing order: each effect blends onto the accumulated
// result of all effects before it.
type Chain struct {
	effects []Effect
	ctx     Context
	scratch *Frame
}

// NewChain creates a chain from effects in compositing order
func NewChain(effects ...Effect) *Chain {
	list := make([]Effect, len(effects))
	copy(list, effects)
	return &Chain{
		effects: list,
		scratch: NewFrame(0, 0),
	}
}

// Effects returns the effects in compositing order
func (c *Chain) Effects() []Effect {
	list := make([]Effect, len(c.effects))
	copy(list, c.effects)
	return list
}

// Effect looks up an effect by name
func (c *Chain) Effect(name string) (Effect, bool) {
	for _, e := range c.effects {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// Context returns the per-frame values passed to effects
func (c *Chain) Context() Context {
	return c.ctx
}

// Tick advances the chain clock to the given elapsed time. Render itself
// never changes the clock, so equal inputs give equal frames.
func (c *Chain) Tick(elapsed float64) {
	c.ctx.Frame++
	c.ctx.Time = elapsed
}

// SetSize forwards a viewport size change to effects that need it
func (c *Chain) SetSize(width, height int) {
	for _, e := range c.effects {
		if r, ok := e.(Resizer); ok {
			r.SetSize(width, height)
		}
	}
}

// Render produces the composited frame for base. base is not modified.
//
// Every effect runs its pixel pass even when disabled; a Skip blend
// function or zero opacity discards the result.
func (c *Chain) Render(base *Frame) (*Frame, error) {
	if base.Empty() {
		return nil, ErrNoFrame
	}

	acc := base.Clone()
	c.scratch.Resize(base.Width, base.Height)
	c.scratch.Depth = acc.Depth

	for _, e := range c.effects {
		e.Process(c.ctx, acc, c.scratch)
		composite(acc, c.scratch, *e.BlendMode())
	}

	return acc, nil
}

// composite blends src onto acc in place
func composite(acc, src *Frame, mode BlendMode) {
	if mode.Function == BlendSkip || mode.Opacity <= 0 {
		return
	}
	for i := 0; i < len(acc.Pix); i += 4 {
		d := RGBA{acc.Pix[i], acc.Pix[i+1], acc.Pix[i+2], acc.Pix[i+3]}
		s := RGBA{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]}
		o := mode.Composite(d, s)
		acc.Pix[i] = o.R
		acc.Pix[i+1] = o.G
		acc.Pix[i+2] = o.B
		acc.Pix[i+3] = o.A
	}
}
