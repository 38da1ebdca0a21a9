package pipeline

import (
	"fxviewer/pkg/config"
	"fxviewer/pkg/postfx"
)

// BuildChain creates the effect chain in its fixed order: depth of field,
// pixelation, bloom, hue/saturation, brightness/contrast, vignette, noise
// and FXAA, each starting from its config section.
func BuildChain(cfg config.EffectsConfig) *postfx.Chain {
	dof := postfx.NewDepthOfField(postfx.DepthOfFieldOptions{
		FocusDistance: cfg.DOF.FocusDistance,
		FocalLength:   cfg.DOF.FocalLength,
		BokehScale:    cfg.DOF.BokehScale,
	})
	applyBlend(dof, cfg.DOF.BlendConfig)

	pixelation := postfx.NewPixelation(cfg.Pixelation.Granularity)
	applyBlend(pixelation, cfg.Pixelation.BlendConfig)

	bloom := postfx.NewBloom(postfx.BloomOptions{
		Threshold:  cfg.Bloom.Threshold,
		Smoothing:  cfg.Bloom.Smoothing,
		Intensity:  cfg.Bloom.Intensity,
		Radius:     cfg.Bloom.Radius,
		KernelSize: cfg.Bloom.KernelSize,
		MipmapBlur: cfg.Bloom.MipmapBlur,
	})
	applyBlend(bloom, cfg.Bloom.BlendConfig)

	hue := postfx.NewHueSaturation(cfg.Hue.Hue, cfg.Hue.Saturation)
	applyBlend(hue, cfg.Hue.BlendConfig)

	brightness := postfx.NewBrightnessContrast(cfg.Brightness.Brightness, cfg.Brightness.Contrast)
	applyBlend(brightness, cfg.Brightness.BlendConfig)

	vignette := postfx.NewVignette(cfg.Vignette.Offset, cfg.Vignette.Darkness, cfg.Vignette.Eskil)
	applyBlend(vignette, cfg.Vignette.BlendConfig)

	noise := postfx.NewNoise(cfg.Noise.Premultiply, cfg.Noise.Seed)
	applyBlend(noise, cfg.Noise.BlendConfig)

	fxaa := postfx.NewFXAA()
	applyBlend(fxaa, cfg.FXAA)

	return postfx.NewChain(dof, pixelation, bloom, hue, brightness, vignette, noise, fxaa)
}

// applyBlend sets opacity and, for enabled effects, the configured blend function
func applyBlend(e postfx.Effect, cfg config.BlendConfig) {
	e.BlendMode().Opacity = cfg.Opacity
	e.SetEnabled(cfg.Enabled)
	if cfg.Enabled {
		e.BlendMode().Function = cfg.BlendMode
	}
}
