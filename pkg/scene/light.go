package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AmbientLight lights every surface evenly
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// DirectionalLight shines from Position towards Target
type DirectionalLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
	Target    mgl32.Vec3

	// Shadow is nil for lights that cast no shadow
	Shadow *Shadow
}

// Direction returns the unit vector from the surface towards the light
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	return safeNormalize(l.Position.Sub(l.Target))
}

// Shadow is an orthographic depth map rendered from a directional light
type Shadow struct {
	MapSize int
	Left    float32
	Right   float32
	Bottom  float32
	Top     float32
	Near    float32
	Far     float32
	// NormalBias offsets the lookup position along the surface normal
	NormalBias float32
	// Bias is subtracted from the receiver depth before comparing
	Bias float32
	// Radius is the PCF kernel radius in texels
	Radius int

	depth    []float32
	viewProj mgl32.Mat4
	valid    bool
}

// NewShadow creates a shadow with the given map size and the bounds of the scene's shadow light
func NewShadow(mapSize, radius int) *Shadow {
	return &Shadow{
		MapSize:    mapSize,
		Left:       -500,
		Right:      500,
		Bottom:     -500,
		Top:        500,
		Near:       1,
		Far:        500,
		NormalBias: 0.05,
		Bias:       0.0005,
		Radius:     radius,
	}
}

// Invalidate forces the map to be rendered again on the next frame
func (s *Shadow) Invalidate() {
	s.valid = false
}

// matrix returns the light space view projection
func (s *Shadow) matrix(l *DirectionalLight) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if d := l.Direction(); d.Dot(up) > 0.99 || d.Dot(up) < -0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(l.Position, l.Target, up)
	proj := mgl32.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
	return proj.Mul4(view)
}

// lookup returns the lit fraction of a world position, filtered over
// (2*Radius+1)^2 texels. Positions outside the map are lit.
func (s *Shadow) lookup(p mgl32.Vec3) float32 {
	clip := s.viewProj.Mul4x1(p.Vec4(1))
	u := (clip[0] + 1) / 2
	v := (clip[1] + 1) / 2
	d := (clip[2]+1)/2 - s.Bias
	if u < 0 || u > 1 || v < 0 || v > 1 || d > 1 {
		return 1
	}

	size := s.MapSize
	cx := int(u * float32(size))
	cy := int(v * float32(size))
	lit, taps := 0, 0
	for dy := -s.Radius; dy <= s.Radius; dy++ {
		for dx := -s.Radius; dx <= s.Radius; dx++ {
			x, y := cx+dx, cy+dy
			taps++
			if x < 0 || y < 0 || x >= size || y >= size || d <= s.depth[y*size+x] {
				lit++
			}
		}
	}
	return float32(lit) / float32(taps)
}
