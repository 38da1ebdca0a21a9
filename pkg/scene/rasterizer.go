package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"fxviewer/pkg/postfx"
)

// vertex is a triangle corner after the vertex stage
type vertex struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	normal mgl32.Vec3
}

// Rasterizer draws a scene into a frame with a z-buffer and Lambert shading.
// It keeps scratch buffers between frames and is not safe for concurrent use.
type Rasterizer struct {
	in  []vertex
	out []vertex
}

// NewRasterizer creates a rasterizer
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		in:  make([]vertex, 0, 4),
		out: make([]vertex, 0, 4),
	}
}

// Render draws s as seen by cam into dst at dst's current size. Color goes
// to dst.Pix, normalized linear view depth to dst.Depth (1 = background).
func (r *Rasterizer) Render(s *Scene, cam *Camera, dst *postfx.Frame) {
	if dst.Empty() {
		return
	}
	dst.Fill(s.Background)
	if len(dst.Depth) != dst.Width*dst.Height {
		dst.Depth = make([]float32, dst.Width*dst.Height)
	}
	for i := range dst.Depth {
		dst.Depth[i] = 1
	}

	r.updateShadows(s)

	vp := cam.ViewProjection()
	eye := cam.Position()
	width, height := float32(dst.Width), float32(dst.Height)

	for _, m := range s.Meshes {
		if len(m.Normals) != len(m.Positions) {
			m.ComputeNormals()
		}
		r.forEachTriangle(m, vp, func(a, b, c vertex) {
			var sx [3][2]float32
			var iw [3]float32
			for k, v := range [3]vertex{a, b, c} {
				w := v.clip[3]
				iw[k] = 1 / w
				sx[k] = [2]float32{
					(v.clip[0]/w + 1) / 2 * width,
					(1 - v.clip[1]/w) / 2 * height,
				}
			}

			rasterize(dst.Width, dst.Height, sx, func(x, y int, b0, b1, b2 float32) {
				// Перспективно-корректная интерполяция через 1/w
				inv := b0*iw[0] + b1*iw[1] + b2*iw[2]
				depth := cam.LinearDepth(1 / inv)
				i := y*dst.Width + x
				if depth >= dst.Depth[i] {
					return
				}
				q0, q1, q2 := b0*iw[0]/inv, b1*iw[1]/inv, b2*iw[2]/inv

				p := a.world.Mul(q0).Add(b.world.Mul(q1)).Add(c.world.Mul(q2))
				n := safeNormalize(a.normal.Mul(q0).Add(b.normal.Mul(q1)).Add(c.normal.Mul(q2)))

				dst.Depth[i] = depth
				dst.Set(x, y, shade(s, m, p, n, eye))
			})
		})
	}
}

// shade returns the Lambert color of a surface point
func shade(s *Scene, m *Mesh, p, n, eye mgl32.Vec3) postfx.RGBA {
	// Двусторонняя поверхность: нормаль всегда к камере
	if n.Dot(eye.Sub(p)) < 0 {
		n = n.Mul(-1)
	}

	irradiance := s.Ambient.Color.Mul(s.Ambient.Intensity)
	for _, l := range s.Lights {
		ndl := n.Dot(l.Direction())
		if ndl <= 0 {
			continue
		}
		visibility := float32(1)
		if s.ShadowsEnabled && m.ReceiveShadow && l.Shadow != nil && l.Shadow.valid {
			visibility = l.Shadow.lookup(p.Add(n.Mul(l.Shadow.NormalBias)))
		}
		irradiance = irradiance.Add(l.Color.Mul(l.Intensity * ndl * visibility))
	}

	// Ламбертовский BRDF: albedo / π
	const invPi = 1 / math.Pi
	return postfx.RGBA{
		R: clamp01(m.Color[0] * irradiance[0] * invPi),
		G: clamp01(m.Color[1] * irradiance[1] * invPi),
		B: clamp01(m.Color[2] * irradiance[2] * invPi),
		A: 1,
	}
}

// updateShadows renders the depth map of every stale shadow
func (r *Rasterizer) updateShadows(s *Scene) {
	if !s.ShadowsEnabled {
		return
	}
	for _, l := range s.Lights {
		sh := l.Shadow
		if sh == nil || sh.valid || sh.MapSize <= 0 {
			continue
		}
		size := sh.MapSize
		if len(sh.depth) != size*size {
			sh.depth = make([]float32, size*size)
		}
		for i := range sh.depth {
			sh.depth[i] = 1
		}
		sh.viewProj = sh.matrix(l)

		for _, m := range s.Meshes {
			if !m.CastShadow {
				continue
			}
			r.forEachTriangle(m, sh.viewProj, func(a, b, c vertex) {
				var sx [3][2]float32
				var z [3]float32
				for k, v := range [3]vertex{a, b, c} {
					sx[k] = [2]float32{
						(v.clip[0] + 1) / 2 * float32(size),
						(v.clip[1] + 1) / 2 * float32(size),
					}
					z[k] = (v.clip[2] + 1) / 2
				}
				rasterize(size, size, sx, func(x, y int, b0, b1, b2 float32) {
					d := b0*z[0] + b1*z[1] + b2*z[2]
					if i := y*size + x; d < sh.depth[i] {
						sh.depth[i] = d
					}
				})
			})
		}
		sh.valid = true
	}
}

// forEachTriangle transforms the triangles of m by mvp, clips them against
// the near plane and hands the resulting triangles to fn
func (r *Rasterizer) forEachTriangle(m *Mesh, mvp mgl32.Mat4, fn func(a, b, c vertex)) {
	for t := 0; t+2 < len(m.Indices); t += 3 {
		r.in = r.in[:0]
		for k := 0; k < 3; k++ {
			idx := m.Indices[t+k]
			p := m.Positions[idx]
			v := vertex{clip: mvp.Mul4x1(p.Vec4(1)), world: p}
			if int(idx) < len(m.Normals) {
				v.normal = m.Normals[idx]
			}
			r.in = append(r.in, v)
		}
		r.out = clipNear(r.in, r.out[:0])
		for k := 1; k+1 < len(r.out); k++ {
			fn(r.out[0], r.out[k], r.out[k+1])
		}
	}
}

// clipNear clips a polygon against the z >= -w plane
func clipNear(in, out []vertex) []vertex {
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da := a.clip[2] + a.clip[3]
		db := b.clip[2] + b.clip[3]
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, vertex{
				clip:   a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
				world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
				normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
			})
		}
	}
	return out
}

// rasterize calls fn for every pixel whose center lies inside the triangle p,
// with barycentric weights. Both windings are filled.
func rasterize(width, height int, p [3][2]float32, fn func(x, y int, b0, b1, b2 float32)) {
	area := edge(p[0], p[1], p[2])
	if area == 0 || math.IsNaN(float64(area)) || math.IsInf(float64(area), 0) {
		return
	}

	minX := pixelBound(min(p[0][0], p[1][0], p[2][0]), width, math.Floor)
	maxX := pixelBound(max(p[0][0], p[1][0], p[2][0]), width, math.Ceil)
	minY := pixelBound(min(p[0][1], p[1][1], p[2][1]), height, math.Floor)
	maxY := pixelBound(max(p[0][1], p[1][1], p[2][1]), height, math.Ceil)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := [2]float32{float32(x) + 0.5, float32(y) + 0.5}
			b0 := edge(p[1], p[2], c) / area
			b1 := edge(p[2], p[0], c) / area
			b2 := edge(p[0], p[1], c) / area
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			fn(x, y, b0, b1, b2)
		}
	}
}

// pixelBound rounds a screen coordinate and clamps it into [0, size-1]
func pixelBound(v float32, size int, round func(float64) float64) int {
	f := min(max(round(float64(v)), 0), float64(size-1))
	return int(f)
}

func edge(a, b, c [2]float32) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
