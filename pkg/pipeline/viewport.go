package pipeline

import (
	"math"

	"fxviewer/pkg/scene"
)

// Viewport tracks the window size and the internal render size derived
// from it. The camera aspect follows every accepted resize.
type Viewport struct {
	Width       int
	Height      int
	RenderScale float64

	camera *scene.Camera
}

// NewViewport creates a viewport and sets the camera aspect from width/height
func NewViewport(width, height int, renderScale float64, cam *scene.Camera) *Viewport {
	if renderScale <= 0 {
		renderScale = 1
	}
	v := &Viewport{RenderScale: renderScale, camera: cam}
	if !v.Resize(width, height) {
		v.Width, v.Height = 1, 1
		cam.SetAspect(1)
	}
	return v
}

// Resize applies a new window size. Zero or negative sizes (a minimized
// window) are ignored and reported with false.
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	v.Width = width
	v.Height = height
	v.camera.SetAspect(v.Aspect())
	return true
}

// Aspect returns width / height
func (v *Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

// RenderSize returns the size frames are rendered at before presentation
func (v *Viewport) RenderSize() (int, int) {
	w := int(math.Round(float64(v.Width) * v.RenderScale))
	h := int(math.Round(float64(v.Height) * v.RenderScale))
	return max(w, 1), max(h, 1)
}
