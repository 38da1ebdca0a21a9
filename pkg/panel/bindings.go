package panel

import (
	"fxviewer/pkg/postfx"
)

// Group titles, in chain order
const (
	GroupDOF        = "DOF effect"
	GroupPixelation = "Pixelation"
	GroupBloom      = "Bloom"
	GroupHue        = "Hue Saturation"
	GroupBrightness = "Brightness Contrast"
	GroupVignette   = "Vignette"
	GroupNoise      = "Noise"
	GroupFXAA       = "FXAA"
)

// Control names shared by every group
const (
	FieldEnabled   = "enabled"
	FieldBlendMode = "blend mode"
	FieldOpacity   = "opacity"
)

// New builds one group per effect of the chain, in chain order
func New(chain *postfx.Chain) *Panel {
	effects := chain.Effects()
	groups := make([]*Group, 0, len(effects))
	for _, e := range effects {
		groups = append(groups, groupFor(e))
	}
	return NewPanel(groups...)
}

func groupFor(e postfx.Effect) *Group {
	var title string
	var params []Control

	switch fx := e.(type) {
	case *postfx.DepthOfField:
		title = GroupDOF
		params = []Control{
			float32Slider("focus distance", 0, 1, 0.0001, &fx.FocusDistance),
			float32Slider("focal length", 0, 1, 0.0001, &fx.FocalLength),
			float32Slider("bokeh scale", 0, 20, 0.1, &fx.BokehScale),
		}
	case *postfx.Pixelation:
		title = GroupPixelation
		params = []Control{
			float32Slider("granularity", 0, 64, 1, &fx.Granularity),
		}
	case *postfx.Bloom:
		title = GroupBloom
		params = []Control{
			NewSelect("size", postfx.KernelSizeNames(),
				func() string { return fx.KernelSize.String() },
				func(name string) error {
					k, err := postfx.ParseKernelSize(name)
					if err != nil {
						return err
					}
					fx.KernelSize = k
					return nil
				}),
			float32Slider("intensity", 0, 20, 0.1, &fx.Intensity),
			float32Slider("radius", 0, 1, 0.1, &fx.Radius),
			float32Slider("threshold", 0, 1, 0.1, &fx.Threshold),
			float32Slider("smoothing", 0, 1, 0.1, &fx.Smoothing),
			boolToggle("mipmap blur", &fx.MipmapBlur),
		}
	case *postfx.HueSaturation:
		title = GroupHue
		params = []Control{
			float32Slider("hue", 0, 6.3, 0.1, &fx.Hue),
			float32Slider("saturation", -1, 1, 0.01, &fx.Saturation),
		}
	case *postfx.BrightnessContrast:
		title = GroupBrightness
		params = []Control{
			float32Slider("brightness", -1, 1, 0.01, &fx.Brightness),
			float32Slider("contrast", -1, 1, 0.01, &fx.Contrast),
		}
	case *postfx.Vignette:
		title = GroupVignette
		params = []Control{
			float32Slider("offset", 0, 1, 0.1, &fx.Offset),
			float32Slider("darkness", 0, 1, 0.1, &fx.Darkness),
			boolToggle("eskil", &fx.Eskil),
		}
	case *postfx.Noise:
		title = GroupNoise
		params = []Control{
			boolToggle("premultiply", &fx.Premultiply),
		}
	case *postfx.FXAA:
		title = GroupFXAA
	default:
		title = e.Name()
	}

	controls := make([]Control, 0, len(params)+3)
	controls = append(controls, enabledToggle(e))
	controls = append(controls, params...)
	controls = append(controls, blendSelect(e), opacitySlider(e))
	return &Group{Title: title, Controls: controls}
}

// enabledToggle leaves a custom blend function alone when the state does not change
func enabledToggle(e postfx.Effect) *Toggle {
	return NewToggle(FieldEnabled, e.Enabled, func(on bool) {
		if on != e.Enabled() {
			e.SetEnabled(on)
		}
	})
}

func blendSelect(e postfx.Effect) *Select {
	return NewSelect(FieldBlendMode, postfx.BlendFunctionNames(),
		func() string { return e.BlendMode().Function.String() },
		func(name string) error {
			f, err := postfx.ParseBlendFunction(name)
			if err != nil {
				return err
			}
			e.BlendMode().Function = f
			return nil
		})
}

func opacitySlider(e postfx.Effect) *Slider {
	mode := e.BlendMode()
	return float32Slider(FieldOpacity, 0, 1, 0.01, &mode.Opacity)
}

func float32Slider(name string, min, max, step float64, field *float32) *Slider {
	return NewSlider(name, min, max, step,
		func() float64 { return float64(*field) },
		func(v float64) { *field = float32(v) })
}

func boolToggle(name string, field *bool) *Toggle {
	return NewToggle(name, func() bool { return *field }, func(v bool) { *field = v })
}
