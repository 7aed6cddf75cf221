// Package geometry turns decoded MRR bodies into indexed triangle lists
// ready for rasterizing.
package geometry

import (
	"math"

	"mrr-renderer/internal/mathutil"
	"mrr-renderer/internal/mrr"
)

// DefaultVertexScale matches the unit conversion the MechSim viewer applies
// to exported vertex coordinates.
const DefaultVertexScale = 1.0 / 6.0

// Options controls how bodies are converted.
type Options struct {
	VertexScale float64 // 0 means DefaultVertexScale
	ApplyPose   bool    // place each body by its part's pose
}

// Mesh is one body as a triangle list.
type Mesh struct {
	Part      int // index into Assembly.Parts
	Body      int // index into Part.Bodies
	Positions [][3]float32
	Normals   [][3]float32 // nil unless the body carried one normal per vertex
	UVs       [][2]float32
	Indices   []uint32 // len is a multiple of 3
}

// Triangles returns the number of triangles in the index list.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Build converts every body of every part, in order.
func Build(a *mrr.Assembly, opts Options) []Mesh {
	scale := opts.VertexScale
	if scale == 0 {
		scale = DefaultVertexScale
	}

	meshes := make([]Mesh, 0, a.BodyCount())
	for pi := range a.Parts {
		part := &a.Parts[pi]
		world := mathutil.Mat4Identity()
		if opts.ApplyPose {
			world = PoseMatrix(part.Pose)
		}
		for bi := range part.Bodies {
			m := buildBody(&part.Bodies[bi], scale, world)
			m.Part, m.Body = pi, bi
			meshes = append(meshes, m)
		}
	}
	return meshes
}

// PoseMatrix returns the affine transform for a pose: rotate, then translate.
func PoseMatrix(p mrr.Pose) mathutil.Mat4 {
	return mathutil.FromMat3Translation(mathutil.FromQuat(p.Orientation), mathutil.FromVec3(p.Position))
}

func buildBody(b *mrr.Body, scale float64, world mathutil.Mat4) Mesh {
	var m Mesh

	nv := len(b.Vertices) / 3
	m.Positions = make([][3]float32, nv)
	finite := make([]bool, nv)
	identity := world.IsIdentity()
	for i := 0; i < nv; i++ {
		v := mathutil.Vec3{
			float64(b.Vertices[i*3]),
			float64(b.Vertices[i*3+1]),
			float64(b.Vertices[i*3+2]),
		}
		if !identity {
			v = world.MulPoint(v)
		}
		v = v.Scale(scale)
		p := [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
		m.Positions[i] = p
		finite[i] = isFinite(p)
	}

	if len(b.Normals) == len(b.Vertices) && nv > 0 {
		rot := world.Rotation()
		m.Normals = make([][3]float32, nv)
		for i := 0; i < nv; i++ {
			n := mathutil.Vec3{
				float64(b.Normals[i*3]),
				float64(b.Normals[i*3+1]),
				float64(b.Normals[i*3+2]),
			}
			if !identity {
				n = rot.MulVec3(n)
			}
			m.Normals[i] = [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
		}
	}

	nuv := len(b.UVs) / 2
	m.UVs = make([][2]float32, nuv)
	for i := 0; i < nuv; i++ {
		m.UVs[i] = [2]float32{b.UVs[i*2], b.UVs[i*2+1]}
	}

	// Triangles with an index outside the vertex range, or touching a
	// NaN or infinite position, are dropped.
	m.Indices = make([]uint32, 0, len(b.Indices)-len(b.Indices)%3)
	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := b.Indices[t], b.Indices[t+1], b.Indices[t+2]
		if !inRange(i0, nv) || !inRange(i1, nv) || !inRange(i2, nv) {
			continue
		}
		if !finite[i0] || !finite[i1] || !finite[i2] {
			continue
		}
		m.Indices = append(m.Indices, uint32(i0), uint32(i1), uint32(i2))
	}
	return m
}

func inRange(i int32, n int) bool {
	return i >= 0 && int(i) < n
}

func isFinite(p [3]float32) bool {
	for _, c := range p {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned box around all finite mesh positions.
// ok is false when there are none.
func Bounds(meshes []Mesh) (min, max mathutil.Vec3, ok bool) {
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, m := range meshes {
		for _, p := range m.Positions {
			if !isFinite(p) {
				continue
			}
			v := mathutil.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
			min = min.Min(v)
			max = max.Max(v)
			ok = true
		}
	}
	return min, max, ok
}
