// Package scene holds the 3D scene the viewer draws: lights, camera, meshes
// loaded from glTF and a software rasterizer that renders them into a frame.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"fxviewer/pkg/config"
	"fxviewer/pkg/postfx"
)

// LightPosition is where both directional lights sit, pointing at the origin
var LightPosition = mgl32.Vec3{5, 20, 0}

// Scene is the lit set of meshes in front of a solid background
type Scene struct {
	Background     postfx.RGBA
	Ambient        AmbientLight
	Lights         []*DirectionalLight
	Meshes         []*Mesh
	ShadowsEnabled bool
}

// New builds the lights and background described by cfg. The scene starts
// with no meshes.
func New(cfg config.SceneConfig) (*Scene, error) {
	rgb, err := config.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background: %v", err)
	}

	white := mgl32.Vec3{1, 1, 1}
	shadowLight := &DirectionalLight{
		Color:     white,
		Intensity: cfg.ShadowLight,
		Position:  LightPosition,
	}
	if cfg.ShadowsEnabled {
		shadowLight.Shadow = NewShadow(cfg.ShadowMapSize, cfg.ShadowRadius)
	}
	keyLight := &DirectionalLight{
		Color:     white,
		Intensity: cfg.KeyLight,
		Position:  LightPosition,
	}

	return &Scene{
		Background: postfx.RGBA{
			R: postfx.DecodeSRGB(rgb[0]),
			G: postfx.DecodeSRGB(rgb[1]),
			B: postfx.DecodeSRGB(rgb[2]),
			A: 1,
		},
		Ambient:        AmbientLight{Color: white, Intensity: cfg.AmbientLight},
		Lights:         []*DirectionalLight{shadowLight, keyLight},
		ShadowsEnabled: cfg.ShadowsEnabled,
	}, nil
}

// AddModel adds the meshes of m to the scene
func (s *Scene) AddModel(m *Model) {
	s.Meshes = append(s.Meshes, m.Meshes...)
	s.Invalidate()
}

// Invalidate marks every shadow map stale, e.g. after meshes or lights move
func (s *Scene) Invalidate() {
	for _, l := range s.Lights {
		if l.Shadow != nil {
			l.Shadow.Invalidate()
		}
	}
}
