package postfx

import (
	"errors"
	"testing"
)

func TestRenderRejectsMissingFrame(t *testing.T) {
	c := NewChain(allEffects()...)

	if _, err := c.Render(nil); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Render(nil) error = %v, want ErrNoFrame", err)
	}
	if _, err := c.Render(NewFrame(0, 10)); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Render(empty) error = %v, want ErrNoFrame", err)
	}
}

func TestRenderDoesNotModifyBase(t *testing.T) {
	effects := allEffects()
	for _, e := range effects {
		e.SetEnabled(true)
	}
	c := NewChain(effects...)

	base := gradientFrame(32, 24)
	orig := base.Clone()
	if _, err := c.Render(base); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !base.Equal(orig) {
		t.Error("Render modified the base frame")
	}
}

func TestAllDisabledIsIdentity(t *testing.T) {
	c := NewChain(allEffects()...)
	base := gradientFrame(24, 16)

	out, err := c.Render(base)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !out.Equal(base) {
		t.Error("chain of disabled effects changed the frame")
	}
}

// A disabled effect must give the same frame as removing it from the chain
func TestDisabledEffectEqualsRemoved(t *testing.T) {
	base := gradientFrame(32, 20)

	for i := range allEffects() {
		full := allEffects()
		for _, e := range full {
			e.SetEnabled(true)
		}
		full[i].SetEnabled(false)

		reduced := allEffects()
		for _, e := range reduced {
			e.SetEnabled(true)
		}
		reduced = append(reduced[:i:i], reduced[i+1:]...)

		name := full[i].Name()
		t.Run(name, func(t *testing.T) {
			withDisabled, err := NewChain(full...).Render(base)
			if err != nil {
				t.Fatal(err)
			}
			without, err := NewChain(reduced...).Render(base)
			if err != nil {
				t.Fatal(err)
			}
			if !withDisabled.Equal(without) {
				t.Errorf("disabled %s changed the composited frame", name)
			}
		})
	}
}

// Opacity 0 on an enabled effect must match the disabled state
func TestZeroOpacityEqualsDisabled(t *testing.T) {
	base := gradientFrame(20, 20)

	for i := range allEffects() {
		zero := allEffects()
		zero[i].SetEnabled(true)
		zero[i].BlendMode().Opacity = 0

		off := allEffects()

		name := zero[i].Name()
		t.Run(name, func(t *testing.T) {
			a, err := NewChain(zero...).Render(base)
			if err != nil {
				t.Fatal(err)
			}
			b, err := NewChain(off...).Render(base)
			if err != nil {
				t.Fatal(err)
			}
			if !a.Equal(b) {
				t.Errorf("%s at opacity 0 contributed to the frame", name)
			}
		})
	}
}

func TestCompositingFollowsAppendOrder(t *testing.T) {
	red := newConstEffect("red", RGBA{1, 0, 0, 1})
	blue := newConstEffect("blue", RGBA{0, 0, 1, 1})
	base := gradientFrame(4, 4)

	out, err := NewChain(red, blue).Render(base)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(2, 2); got != (RGBA{0, 0, 1, 1}) {
		t.Errorf("red then blue = %+v, want blue", got)
	}

	out, err = NewChain(blue, red).Render(base)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(2, 2); got != (RGBA{1, 0, 0, 1}) {
		t.Errorf("blue then red = %+v, want red", got)
	}
}

func TestEffectSeesAccumulatedFrame(t *testing.T) {
	white := newConstEffect("white", RGBA{1, 1, 1, 1})
	bc := NewBrightnessContrast(-0.5, 0)
	bc.SetEnabled(true)

	out, err := NewChain(white, bc).Render(gradientFrame(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	got := out.At(1, 1)
	if !approxRGBA(got, RGBA{0.5, 0.5, 0.5, 1}, 1e-6) {
		t.Errorf("brightness after white = %+v, want mid grey", got)
	}
}

func TestEffectLookup(t *testing.T) {
	c := NewChain(allEffects()...)

	names := []string{"dof", "pixelation", "bloom", "hue", "brightness", "vignette", "noise", "fxaa"}
	effects := c.Effects()
	if len(effects) != len(names) {
		t.Fatalf("got %d effects, want %d", len(effects), len(names))
	}
	for i, n := range names {
		if effects[i].Name() != n {
			t.Errorf("effect %d = %q, want %q", i, effects[i].Name(), n)
		}
		if e, ok := c.Effect(n); !ok || e != effects[i] {
			t.Errorf("Effect(%q) lookup failed", n)
		}
	}
	if _, ok := c.Effect("chromatic"); ok {
		t.Error("lookup of an unknown effect succeeded")
	}
}

func TestRenderIsRepeatableWithinTick(t *testing.T) {
	n := NewNoise(false, 3)
	n.SetEnabled(true)
	c := NewChain(n)
	base := gradientFrame(16, 16)

	a, _ := c.Render(base)
	b, _ := c.Render(base)
	if !a.Equal(b) {
		t.Error("two renders at the same tick differ")
	}

	c.Tick(0.016)
	d, _ := c.Render(base)
	if a.Equal(d) {
		t.Error("noise did not change after Tick")
	}
	if c.Context().Frame != 1 {
		t.Errorf("Frame = %d after one tick", c.Context().Frame)
	}
}

func TestSetEnabledRestoresDefault(t *testing.T) {
	for _, e := range allEffects() {
		e.SetEnabled(true)
		if e.BlendMode().Function != e.DefaultBlendFunction() {
			t.Errorf("%s enabled with %s, want %s", e.Name(), e.BlendMode().Function, e.DefaultBlendFunction())
		}
		e.BlendMode().Function = BlendMultiply
		e.SetEnabled(false)
		if e.Enabled() || e.BlendMode().Function != BlendSkip {
			t.Errorf("%s still enabled after SetEnabled(false)", e.Name())
		}
		e.SetEnabled(true)
		if e.BlendMode().Function != e.DefaultBlendFunction() {
			t.Errorf("%s re-enabled with %s", e.Name(), e.BlendMode().Function)
		}
	}
}
