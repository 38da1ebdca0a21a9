package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var defaultColor = mgl32.Vec3{0.8, 0.8, 0.8}

// LoadGLTF reads a .gltf or .glb file and flattens its default scene into
// world space meshes. Only triangle primitives are kept.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %v", path, err)
	}

	model := &Model{}
	visit := func(node *gltf.Node, world mgl32.Mat4) error {
		if node.Mesh == nil {
			return nil
		}
		meshes, err := readMesh(doc, doc.Meshes[*node.Mesh])
		if err != nil {
			return fmt.Errorf("node %q: %v", node.Name, err)
		}
		for _, m := range meshes {
			m.Transform(world)
			model.Meshes = append(model.Meshes, m)
		}
		return nil
	}

	if len(doc.Scenes) == 0 {
		// Без сцен: берем все меши как есть
		for _, mesh := range doc.Meshes {
			meshes, err := readMesh(doc, mesh)
			if err != nil {
				return nil, err
			}
			model.Meshes = append(model.Meshes, meshes...)
		}
	} else {
		sc := doc.Scenes[0]
		if doc.Scene != nil {
			sc = doc.Scenes[*doc.Scene]
		}
		for _, n := range sc.Nodes {
			if err := walk(doc, doc.Nodes[n], mgl32.Ident4(), visit); err != nil {
				return nil, err
			}
		}
	}

	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("model %s contains no triangle meshes", path)
	}
	return model, nil
}

func walk(doc *gltf.Document, node *gltf.Node, parent mgl32.Mat4, visit func(*gltf.Node, mgl32.Mat4) error) error {
	world := parent.Mul4(nodeMatrix(node))
	if err := visit(node, world); err != nil {
		return err
	}
	for _, c := range node.Children {
		if err := walk(doc, doc.Nodes[c], world, visit); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the local transform: the explicit matrix when set, TRS otherwise
func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func readMesh(doc *gltf.Document, mesh *gltf.Mesh) ([]*Mesh, error) {
	var out []*Mesh
	for i, p := range mesh.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d positions: %v", mesh.Name, i, err)
		}

		m := &Mesh{
			Name:      mesh.Name,
			Positions: make([]mgl32.Vec3, len(positions)),
			Color:     defaultColor,
		}
		for k, v := range positions {
			m.Positions[k] = mgl32.Vec3(v)
		}

		if p.Indices != nil {
			m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d indices: %v", mesh.Name, i, err)
			}
		} else {
			m.Indices = make([]uint32, len(positions))
			for k := range m.Indices {
				m.Indices[k] = uint32(k)
			}
		}
		for _, idx := range m.Indices {
			if int(idx) >= len(m.Positions) {
				return nil, fmt.Errorf("mesh %q primitive %d: index %d out of range", mesh.Name, i, idx)
			}
		}

		if nrmIdx, ok := p.Attributes[gltf.NORMAL]; ok {
			normals, err := modeler.ReadNormal(doc, doc.Accessors[nrmIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d normals: %v", mesh.Name, i, err)
			}
			m.Normals = make([]mgl32.Vec3, len(normals))
			for k, v := range normals {
				m.Normals[k] = mgl32.Vec3(v)
			}
		}
		if len(m.Normals) != len(m.Positions) {
			m.ComputeNormals()
		}

		if p.Material != nil {
			if pbr := doc.Materials[*p.Material].PBRMetallicRoughness; pbr != nil {
				c := pbr.BaseColorFactorOrDefault()
				m.Color = mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
			}
		}
		out = append(out, m)
	}
	return out, nil
}
