// Package pipeline produces one presented image per frame: it rasterizes
// the scene, runs the effect chain, encodes to sRGB and draws the panel.
// It has no window or GL dependency.
package pipeline

import (
	"fmt"
	"image"
	"math"

	"fxviewer/internal/logger"
	"fxviewer/pkg/config"
	"fxviewer/pkg/panel"
	"fxviewer/pkg/postfx"
	"fxviewer/pkg/scene"
)

// Radians of orbit per dragged pixel, and distance factor per scroll step
const (
	orbitSpeed = 0.005
	zoomStep   = 0.95
)

// Pipeline owns everything drawn in a frame
type Pipeline struct {
	Scene    *scene.Scene
	Camera   *scene.Camera
	Chain    *postfx.Chain
	Panel    *panel.Panel
	Viewport *Viewport

	nav    *panel.Navigator
	raster *scene.Rasterizer
	base   *postfx.Frame
	out    *image.RGBA
	log    *logger.Logger

	initialDistance float32
}

// New wires a pipeline for sc from cfg. The chain and panel are created here
// and live as long as the pipeline.
func New(cfg *config.Config, sc *scene.Scene, log *logger.Logger) *Pipeline {
	cam := scene.NewCamera(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far, cfg.Camera.Distance)
	chain := BuildChain(cfg.Effects)

	pnl := panel.New(chain)
	pnl.Visible = cfg.Panel.Visible
	pnl.SetCollapsed(cfg.Panel.Collapsed, true)
	pnl.OnChange(func(group, field string, value interface{}) {
		log.Debugf("panel: %s / %s = %v", group, field, value)
	})

	p := &Pipeline{
		Scene:           sc,
		Camera:          cam,
		Chain:           chain,
		Panel:           pnl,
		Viewport:        NewViewport(cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.RenderScale, cam),
		nav:             panel.NewNavigator(pnl),
		raster:          scene.NewRasterizer(),
		base:            postfx.NewFrame(0, 0),
		log:             log,
		initialDistance: cfg.Camera.Distance,
	}
	p.resizeTargets()
	return p
}

// Navigator returns the panel cursor
func (p *Pipeline) Navigator() *panel.Navigator {
	return p.nav
}

// Resize handles a framebuffer size change. It reports false for sizes the
// viewport ignores.
func (p *Pipeline) Resize(width, height int) bool {
	if !p.Viewport.Resize(width, height) {
		p.log.Debugf("Ignoring resize to %dx%d", width, height)
		return false
	}
	p.resizeTargets()
	return true
}

func (p *Pipeline) resizeTargets() {
	w, h := p.Viewport.RenderSize()
	p.base.Resize(w, h)
	p.Chain.SetSize(w, h)
	if p.out == nil || p.out.Bounds().Dx() != w || p.out.Bounds().Dy() != h {
		p.out = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	p.log.Debugf("Render target %dx%d (window %dx%d)", w, h, p.Viewport.Width, p.Viewport.Height)
}

// Frame advances the effect clock to elapsed seconds and renders one image.
// The returned image is reused by the next call.
func (p *Pipeline) Frame(elapsed float64) *image.RGBA {
	p.Chain.Tick(elapsed)
	p.raster.Render(p.Scene, p.Camera, p.base)

	result, err := p.Chain.Render(p.base)
	if err != nil {
		// Показываем кадр без эффектов, цикл продолжается
		p.log.Warnf("Effect chain failed: %v", err)
		result = p.base
	}
	p.out = result.ToRGBA(p.out)
	p.Panel.Draw(p.out, p.nav)
	return p.out
}

// Action is an input command the engine maps keys to
type Action int

const (
	ActionTogglePanel Action = iota
	ActionNext
	ActionPrev
	ActionIncrease
	ActionDecrease
	ActionActivate
	ActionResetCamera
)

// Do runs an action. Panel edits only happen while the panel is visible.
func (p *Pipeline) Do(a Action) error {
	switch a {
	case ActionTogglePanel:
		p.Panel.Visible = !p.Panel.Visible
		return nil
	case ActionResetCamera:
		p.Camera.Yaw, p.Camera.Pitch = 0, 0
		p.Camera.Distance = p.initialDistance
		return nil
	}

	if !p.Panel.Visible {
		return nil
	}
	switch a {
	case ActionNext:
		p.nav.Next()
	case ActionPrev:
		p.nav.Prev()
	case ActionIncrease:
		return p.nav.Increase()
	case ActionDecrease:
		return p.nav.Decrease()
	case ActionActivate:
		return p.nav.Activate()
	default:
		return fmt.Errorf("unknown action %d", a)
	}
	return nil
}

// Orbit rotates the camera by a mouse drag in window pixels
func (p *Pipeline) Orbit(dx, dy float64) {
	p.Camera.Rotate(float32(-dx*orbitSpeed), float32(dy*orbitSpeed))
}

// Zoom moves the camera by scroll wheel steps; positive steps move closer
func (p *Pipeline) Zoom(steps float64) {
	if steps == 0 {
		return
	}
	p.Camera.Zoom(float32(math.Pow(zoomStep, steps)))
}

// ApplyPreset restores saved panel values
func (p *Pipeline) ApplyPreset(preset *config.Preset) error {
	return p.Panel.Restore(preset.Values)
}

// SavePreset writes the current panel values to filePath
func (p *Pipeline) SavePreset(name, filePath string) error {
	return config.SavePreset(&config.Preset{Name: name, Values: p.Panel.Snapshot()}, filePath)
}

// NewScene builds the scene from cfg and loads its model. A model that fails
// to load is replaced by the procedural fallback with a warning.
func NewScene(cfg config.SceneConfig, log *logger.Logger) (*scene.Scene, error) {
	sc, err := scene.New(cfg)
	if err != nil {
		return nil, err
	}

	model, err := scene.LoadGLTF(cfg.ModelPath)
	if err != nil {
		log.Warnf("Failed to load model, using procedural fallback: %v", err)
		model = scene.Procedural()
	} else {
		log.Infof("Loaded %s: %d meshes, %d triangles", cfg.ModelPath, len(model.Meshes), model.Triangles())
	}
	if cfg.ModelScale > 0 {
		model.Scale(cfg.ModelScale)
	}
	model.SetShadows(true, true)
	sc.AddModel(model)
	return sc, nil
}
