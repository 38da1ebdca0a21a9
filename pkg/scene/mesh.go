package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list in world space
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
	// Color is the linear base color
	Color mgl32.Vec3

	CastShadow    bool
	ReceiveShadow bool
}

// Triangles returns the number of triangles in the mesh
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Transform applies mat to positions and its normal matrix to normals
func (m *Mesh) Transform(mat mgl32.Mat4) {
	normalMat := mat.Mat3().Inv().Transpose()
	for i, p := range m.Positions {
		m.Positions[i] = mat.Mul4x1(p.Vec4(1)).Vec3()
	}
	for i, n := range m.Normals {
		m.Normals[i] = safeNormalize(normalMat.Mul3x1(n))
	}
}

// Bounds returns the axis aligned bounding box of the mesh
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

// ComputeNormals rebuilds smooth vertex normals from face normals
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]mgl32.Vec3, len(m.Positions))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		// Площадь-взвешенная нормаль грани
		face := m.Positions[b].Sub(m.Positions[a]).Cross(m.Positions[c].Sub(m.Positions[a]))
		m.Normals[a] = m.Normals[a].Add(face)
		m.Normals[b] = m.Normals[b].Add(face)
		m.Normals[c] = m.Normals[c].Add(face)
	}
	for i, n := range m.Normals {
		m.Normals[i] = safeNormalize(n)
	}
}

// Model is the set of meshes loaded from one asset
type Model struct {
	Meshes []*Mesh
}

// Scale multiplies every vertex position by s around the origin
func (m *Model) Scale(s float32) {
	if s == 1 {
		return
	}
	mat := mgl32.Scale3D(s, s, s)
	for _, mesh := range m.Meshes {
		mesh.Transform(mat)
	}
}

// SetShadows sets the cast and receive flags of every mesh
func (m *Model) SetShadows(cast, receive bool) {
	for _, mesh := range m.Meshes {
		mesh.CastShadow = cast
		mesh.ReceiveShadow = receive
	}
}

// Triangles returns the total triangle count
func (m *Model) Triangles() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.Triangles()
	}
	return n
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}
