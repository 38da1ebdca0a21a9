package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = math.Pi/2 - 0.01

// Camera is a perspective camera orbiting a target point
type Camera struct {
	// FOV is the vertical field of view in degrees
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Target   mgl32.Vec3
	Distance float32
	// Yaw and Pitch place the camera around the target, in radians.
	// Both zero puts it on the +Z axis.
	Yaw   float32
	Pitch float32

	MinDistance float32
	MaxDistance float32

	projection mgl32.Mat4
}

// NewCamera creates a camera on +Z at distance from the origin
func NewCamera(fov, aspect, near, far, distance float32) *Camera {
	c := &Camera{
		FOV:         fov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
		Distance:    distance,
		MinDistance: near * 10,
		MaxDistance: far / 2,
	}
	c.UpdateProjection()
	return c
}

// SetAspect changes the aspect ratio and rebuilds the projection
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection rebuilds the projection matrix from FOV, Aspect, Near and Far
func (c *Camera) UpdateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Projection returns the cached projection matrix
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// Position returns the camera position in world space
func (c *Camera) Position() mgl32.Vec3 {
	cp, sp := cos32(c.Pitch), sin32(c.Pitch)
	cy, sy := cos32(c.Yaw), sin32(c.Yaw)
	offset := mgl32.Vec3{cp * sy, sp, cp * cy}.Mul(c.Distance)
	return c.Target.Add(offset)
}

// View returns the world to camera matrix
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ViewProjection returns Projection * View
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}

// LinearDepth maps a view space distance to [0,1] between the near and far planes
func (c *Camera) LinearDepth(viewZ float32) float32 {
	d := (viewZ - c.Near) / (c.Far - c.Near)
	return min(max(d, 0), 1)
}

// Rotate orbits the camera, keeping the pitch short of the poles
func (c *Camera) Rotate(yawDelta, pitchDelta float32) {
	c.Yaw += yawDelta
	c.Pitch += pitchDelta

	// Не даем камере перевернуться через полюс
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	} else if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom scales the orbit distance by factor within [MinDistance, MaxDistance]
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	d := c.Distance * factor
	if c.MinDistance > 0 && d < c.MinDistance {
		d = c.MinDistance
	}
	if c.MaxDistance > 0 && d > c.MaxDistance {
		d = c.MaxDistance
	}
	c.Distance = d
}

func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }
func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
