package engine

import "image"

// Presenter shows finished frames on screen
type Presenter interface {
	// Present draws img stretched over a window framebuffer of the given size
	Present(img *image.RGBA, winWidth, winHeight int)

	// UpdateResolution resizes the frame texture
	UpdateResolution(width, height int)

	// Close releases resources
	Close()
}
