package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"fxviewer/pkg/postfx"
)

// Config represents the main configuration
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Effects  EffectsConfig  `yaml:"effects"`
	Panel    PanelConfig    `yaml:"panel"`
	Log      LogConfig      `yaml:"log"`
}

// GraphicsConfig contains window and presentation settings
type GraphicsConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	VSync     bool   `yaml:"vsync"`
	FrameRate int    `yaml:"framerate"` // 0 disables the cap
	// RenderScale is the internal resolution relative to the window, in (0, 1]
	RenderScale float64 `yaml:"render_scale"`
}

// SceneConfig describes the model and lighting setup
type SceneConfig struct {
	ModelPath      string  `yaml:"model_path"`
	ModelScale     float32 `yaml:"model_scale"`
	Background     string  `yaml:"background"` // hex RGB, e.g. "#cc33ff"
	AmbientLight   float32 `yaml:"ambient_light"`
	ShadowLight    float32 `yaml:"shadow_light"`
	KeyLight       float32 `yaml:"key_light"`
	ShadowsEnabled bool    `yaml:"shadows_enabled"`
	ShadowMapSize  int     `yaml:"shadow_map_size"`
	ShadowRadius   int     `yaml:"shadow_radius"`
}

// CameraConfig describes the perspective camera
type CameraConfig struct {
	FOV      float32 `yaml:"fov"` // vertical, degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
}

// BlendConfig is the blend state shared by every effect section
type BlendConfig struct {
	Enabled   bool                 `yaml:"enabled"`
	BlendMode postfx.BlendFunction `yaml:"blend_mode"`
	Opacity   float32              `yaml:"opacity"`
}

// DOFConfig configures depth of field
type DOFConfig struct {
	BlendConfig   `yaml:",inline"`
	FocusDistance float32 `yaml:"focus_distance"`
	FocalLength   float32 `yaml:"focal_length"`
	BokehScale    float32 `yaml:"bokeh_scale"`
}

// BloomConfig configures bloom
type BloomConfig struct {
	BlendConfig `yaml:",inline"`
	KernelSize  postfx.KernelSize `yaml:"kernel_size"`
	Threshold   float32           `yaml:"threshold"`
	Smoothing   float32           `yaml:"smoothing"`
	Radius      float32           `yaml:"radius"`
	Intensity   float32           `yaml:"intensity"`
	MipmapBlur  bool              `yaml:"mipmap_blur"`
}

// VignetteConfig configures the vignette
type VignetteConfig struct {
	BlendConfig `yaml:",inline"`
	Offset      float32 `yaml:"offset"`
	Darkness    float32 `yaml:"darkness"`
	Eskil       bool    `yaml:"eskil"`
}

// PixelationConfig configures pixelation
type PixelationConfig struct {
	BlendConfig `yaml:",inline"`
	Granularity float32 `yaml:"granularity"`
}

// HueConfig configures hue/saturation
type HueConfig struct {
	BlendConfig `yaml:",inline"`
	Hue         float32 `yaml:"hue"`
	Saturation  float32 `yaml:"saturation"`
}

// BrightnessConfig configures brightness/contrast
type BrightnessConfig struct {
	BlendConfig `yaml:",inline"`
	Brightness  float32 `yaml:"brightness"`
	Contrast    float32 `yaml:"contrast"`
}

// NoiseConfig configures film grain
type NoiseConfig struct {
	BlendConfig `yaml:",inline"`
	Premultiply bool  `yaml:"premultiply"`
	Seed        int64 `yaml:"seed"`
}

// EffectsConfig holds the startup state of every effect
type EffectsConfig struct {
	DOF        DOFConfig        `yaml:"dof"`
	Pixelation PixelationConfig `yaml:"pixelation"`
	Bloom      BloomConfig      `yaml:"bloom"`
	Hue        HueConfig        `yaml:"hue"`
	Brightness BrightnessConfig `yaml:"brightness"`
	Vignette   VignetteConfig   `yaml:"vignette"`
	Noise      NoiseConfig      `yaml:"noise"`
	FXAA       BlendConfig      `yaml:"fxaa"`
}

// PanelConfig contains debug panel settings
type PanelConfig struct {
	Visible   bool     `yaml:"visible"`
	Collapsed []string `yaml:"collapsed"` // group titles collapsed at startup
	Preset    string   `yaml:"preset"`    // optional preset file applied at startup
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty logs to the console only
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:       "fxviewer",
			Width:       1280,
			Height:      720,
			VSync:       true,
			FrameRate:   60,
			RenderScale: 0.5,
		},
		Scene: SceneConfig{
			ModelPath:      "./assets/model.gltf",
			ModelScale:     10,
			Background:     "#cc33ff",
			AmbientLight:   2,
			ShadowLight:    0.5,
			KeyLight:       1,
			ShadowsEnabled: true,
			ShadowMapSize:  2048,
			ShadowRadius:   2,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Distance: 100,
		},
		Effects: EffectsConfig{
			DOF: DOFConfig{
				BlendConfig:   BlendConfig{BlendMode: postfx.BlendAlpha, Opacity: 1},
				FocusDistance: 0.08,
				FocalLength:   0.03,
				BokehScale:    5,
			},
			Pixelation: PixelationConfig{
				BlendConfig: BlendConfig{BlendMode: postfx.BlendNormal, Opacity: 1},
				Granularity: 0,
			},
			Bloom: BloomConfig{
				BlendConfig: BlendConfig{BlendMode: postfx.BlendAdd, Opacity: 1},
				KernelSize:  postfx.KernelLarge,
				Threshold:   0.2,
				Smoothing:   0.1,
				Radius:      0.7,
				Intensity:   8,
				MipmapBlur:  true,
			},
			Hue: HueConfig{
				BlendConfig: BlendConfig{BlendMode: postfx.BlendNormal, Opacity: 1},
			},
			Brightness: BrightnessConfig{
				BlendConfig: BlendConfig{BlendMode: postfx.BlendNormal, Opacity: 1},
			},
			Vignette: VignetteConfig{
				BlendConfig: BlendConfig{BlendMode: postfx.BlendNormal, Opacity: 1},
				Offset:      0.5,
				Darkness:    0.5,
			},
			Noise: NoiseConfig{
				BlendConfig: BlendConfig{BlendMode: postfx.BlendScreen, Opacity: 1},
				Premultiply: true,
				Seed:        1,
			},
			FXAA: BlendConfig{Enabled: true, BlendMode: postfx.BlendNormal, Opacity: 1},
		},
		Panel: PanelConfig{
			Visible:   true,
			Collapsed: []string{},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file over the defaults.
// The defaults are returned along with the error when the file is unusable.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %v", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config: %v", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}

// Validate checks value ranges that would break rendering
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FrameRate < 0 {
		return fmt.Errorf("graphics.framerate must not be negative, got %d", c.Graphics.FrameRate)
	}
	if c.Graphics.RenderScale <= 0 || c.Graphics.RenderScale > 1 {
		return fmt.Errorf("graphics.render_scale must be in (0, 1], got %v", c.Graphics.RenderScale)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera planes must satisfy 0 < near < far, got %v and %v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	}
	if _, err := ParseHexColor(c.Scene.Background); err != nil {
		return fmt.Errorf("scene.background: %v", err)
	}

	for name, b := range c.Effects.blends() {
		if b.Opacity < 0 || b.Opacity > 1 {
			return fmt.Errorf("effects.%s.opacity must be in [0, 1], got %v", name, b.Opacity)
		}
	}
	return nil
}

// blends returns the blend section of every effect keyed by its YAML name
func (e *EffectsConfig) blends() map[string]BlendConfig {
	return map[string]BlendConfig{
		"dof":        e.DOF.BlendConfig,
		"pixelation": e.Pixelation.BlendConfig,
		"bloom":      e.Bloom.BlendConfig,
		"hue":        e.Hue.BlendConfig,
		"brightness": e.Brightness.BlendConfig,
		"vignette":   e.Vignette.BlendConfig,
		"noise":      e.Noise.BlendConfig,
		"fxaa":       e.FXAA,
	}
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into 8-bit channels
func ParseHexColor(s string) ([3]uint8, error) {
	var rgb [3]uint8
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return rgb, fmt.Errorf("color %q is not #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rgb[0], &rgb[1], &rgb[2]); err != nil {
		return rgb, fmt.Errorf("color %q is not #rrggbb: %v", s, err)
	}
	return rgb, nil
}
