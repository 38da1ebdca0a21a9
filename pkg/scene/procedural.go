package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"fxviewer/internal/noise"
)

// terrainSeed fixes the fallback ground so every run looks the same
const terrainSeed = 7

// Procedural builds the fallback model used when no asset can be loaded:
// a torus over a ground plane, sized like a model before scaling.
func Procedural() *Model {
	torus := Torus(3, 1, 48, 24)
	torus.Name = "torus"
	torus.Color = mgl32.Vec3{0.8, 0.78, 0.75}

	gen := noise.NewGenerator(terrainSeed)
	ground := Terrain(20, 32, func(x, z float32) float32 {
		return float32(gen.Perlin2D(float64(x)*0.3, float64(z)*0.3, 0)) * 0.6
	})
	ground.Name = "ground"
	ground.Color = mgl32.Vec3{0.6, 0.6, 0.6}
	ground.Transform(mgl32.Translate3D(0, -4.5, 0))

	model := &Model{Meshes: []*Mesh{torus, ground}}
	model.SetShadows(true, true)
	return model
}

// Torus creates a torus around the Y axis with ring radius R and tube radius r
func Torus(R, r float32, rings, sides int) *Mesh {
	m := &Mesh{}
	for i := 0; i <= rings; i++ {
		u := float64(i) / float64(rings) * 2 * math.Pi
		cu, su := float32(math.Cos(u)), float32(math.Sin(u))
		for j := 0; j <= sides; j++ {
			v := float64(j) / float64(sides) * 2 * math.Pi
			cv, sv := float32(math.Cos(v)), float32(math.Sin(v))
			m.Positions = append(m.Positions, mgl32.Vec3{(R + r*cv) * cu, r * sv, (R + r*cv) * su})
			m.Normals = append(m.Normals, mgl32.Vec3{cv * cu, sv, cv * su})
		}
	}
	stride := uint32(sides + 1)
	for i := uint32(0); i < uint32(rings); i++ {
		for j := uint32(0); j < uint32(sides); j++ {
			a := i*stride + j
			b := (i+1)*stride + j
			m.Indices = append(m.Indices, a, a+1, b, b, a+1, b+1)
		}
	}
	return m
}

// Terrain creates a size x size grid in the XZ plane with divisions cells
// per side, displaced along Y by height
func Terrain(size float32, divisions int, height func(x, z float32) float32) *Mesh {
	divisions = max(divisions, 1)
	h := size / 2
	step := size / float32(divisions)
	m := &Mesh{}
	for j := 0; j <= divisions; j++ {
		z := -h + float32(j)*step
		for i := 0; i <= divisions; i++ {
			x := -h + float32(i)*step
			m.Positions = append(m.Positions, mgl32.Vec3{x, height(x, z), z})
		}
	}
	stride := uint32(divisions + 1)
	for j := uint32(0); j < uint32(divisions); j++ {
		for i := uint32(0); i < uint32(divisions); i++ {
			a := j*stride + i
			b := a + stride
			m.Indices = append(m.Indices, a, b, b+1, a, b+1, a+1)
		}
	}
	m.ComputeNormals()
	return m
}
