package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"fxviewer/internal/logger"
	"fxviewer/pkg/config"
	"fxviewer/pkg/pipeline"
)

// keyActions maps keys to pipeline actions, checked once per press
var keyActions = map[glfw.Key]pipeline.Action{
	glfw.KeyTab:   pipeline.ActionTogglePanel,
	glfw.KeyDown:  pipeline.ActionNext,
	glfw.KeyUp:    pipeline.ActionPrev,
	glfw.KeyRight: pipeline.ActionIncrease,
	glfw.KeyLeft:  pipeline.ActionDecrease,
	glfw.KeyEnter: pipeline.ActionActivate,
	glfw.KeySpace: pipeline.ActionActivate,
	glfw.KeyR:     pipeline.ActionResetCamera,
}

// Engine owns the window and runs the frame loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	pipeline   *pipeline.Pipeline
	presenter  Presenter
	input      *InputHandler
	isRunning  bool
	startTime  time.Time
	lastUpdate time.Time
	frameRate  int
	presetPath string
}

// NewEngine creates the window, the presenter and the frame pipeline.
// preset may be nil.
func NewEngine(cfg *config.Config, log *logger.Logger, preset *config.Preset) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// Create window
	window, err := glfw.CreateWindow(
		cfg.Graphics.Width,
		cfg.Graphics.Height,
		cfg.Graphics.Title,
		nil,
		nil,
	)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}

	window.MakeContextCurrent()
	if cfg.Graphics.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// Initialize components
	sc, err := pipeline.NewScene(cfg.Scene, log)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize scene: %v", err)
	}

	// Размер окна в пикселях фреймбуфера может отличаться от логического (HiDPI)
	fbWidth, fbHeight := window.GetFramebufferSize()
	cfg.Graphics.Width, cfg.Graphics.Height = fbWidth, fbHeight
	pipe := pipeline.New(cfg, sc, log)

	renderWidth, renderHeight := pipe.Viewport.RenderSize()
	presenter, err := NewOpenGLPresenter(renderWidth, renderHeight)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize presenter: %v", err)
	}

	if preset != nil {
		if err := pipe.ApplyPreset(preset); err != nil {
			log.Warnf("Preset %q applied with errors: %v", preset.Name, err)
		} else {
			log.Infof("Applied preset %q", preset.Name)
		}
	}

	keys := []glfw.Key{glfw.KeyEscape, glfw.KeyF5}
	for k := range keyActions {
		keys = append(keys, k)
	}

	engine := &Engine{
		window:     window,
		config:     cfg,
		logger:     log,
		pipeline:   pipe,
		presenter:  presenter,
		input:      NewInputHandler(window, keys...),
		isRunning:  false,
		frameRate:  cfg.Graphics.FrameRate,
		presetPath: cfg.Panel.Preset,
	}
	if engine.presetPath == "" {
		engine.presetPath = "preset.yaml"
	}

	window.SetFramebufferSizeCallback(engine.resizeCallback)

	return engine, nil
}

// Run starts the frame loop and returns when the window closes
func (e *Engine) Run() {
	e.isRunning = true
	e.startTime = time.Now()
	e.lastUpdate = e.startTime

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()
		e.lastUpdate = currentTime

		// Check for input
		e.processInput()

		// Render frame
		e.render(currentTime.Sub(e.startTime).Seconds())

		// Swap buffers and poll events
		e.window.SwapBuffers()
		glfw.PollEvents()

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput handles user input
func (e *Engine) processInput() {
	e.input.Update()

	// Close the viewer when ESC is pressed
	if e.input.IsKeyPressed(glfw.KeyEscape) {
		e.window.SetShouldClose(true)
		return
	}

	for key, action := range keyActions {
		if !e.input.IsKeyPressed(key) {
			continue
		}
		if err := e.pipeline.Do(action); err != nil {
			e.logger.Debugf("Panel change rejected: %v", err)
		}
	}

	if e.input.IsKeyPressed(glfw.KeyF5) {
		if err := e.pipeline.SavePreset("saved", e.presetPath); err != nil {
			e.logger.Errorf("Failed to save preset: %v", err)
		} else {
			e.logger.Infof("Preset saved to %s", e.presetPath)
		}
	}

	// Орбитальная камера: левая кнопка вращает, колесо приближает
	if e.input.IsMouseButtonDown(glfw.MouseButtonLeft) {
		delta := e.input.GetMouseDelta()
		if delta[0] != 0 || delta[1] != 0 {
			e.pipeline.Orbit(delta[0], delta[1])
		}
	}
	e.pipeline.Zoom(e.input.GetMouseWheelDelta())
}

// render renders the current frame
func (e *Engine) render(elapsed float64) {
	img := e.pipeline.Frame(elapsed)
	winWidth, winHeight := e.window.GetFramebufferSize()
	e.presenter.Present(img, winWidth, winHeight)
}

// resizeCallback handles framebuffer size changes inline
func (e *Engine) resizeCallback(_ *glfw.Window, width int, height int) {
	if !e.pipeline.Resize(width, height) {
		return
	}
	e.logger.Infof("Window resized to %dx%d", width, height)

	e.config.Graphics.Width = width
	e.config.Graphics.Height = height
	e.presenter.UpdateResolution(e.pipeline.Viewport.RenderSize())
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down viewer...")
	e.presenter.Close()
	glfw.Terminate()
}
