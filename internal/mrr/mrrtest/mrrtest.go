// Package mrrtest builds MRR byte fixtures for tests in other packages.
package mrrtest

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"mrr-renderer/internal/mrr"
)

// Builder appends MRR fields in file order. It starts with the signature.
type Builder struct {
	b []byte
}

func NewBuilder() *Builder {
	return &Builder{b: []byte(mrr.Signature)}
}

func (f *Builder) Length(n uint64) *Builder {
	f.b = binary.LittleEndian.AppendUint64(f.b, n)
	return f
}

func (f *Builder) Uint32(v uint32) *Builder {
	f.b = binary.LittleEndian.AppendUint32(f.b, v)
	return f
}

func (f *Builder) Int32(v int32) *Builder {
	return f.Uint32(uint32(v))
}

// Raw appends bytes as-is.
func (f *Builder) Raw(p ...byte) *Builder {
	f.b = append(f.b, p...)
	return f
}

func (f *Builder) Joint(t mrr.JointType) *Builder {
	return f.Uint32(uint32(t)).Identity()
}

// Pose writes position x,y,z then quaternion x,y,z,w.
func (f *Builder) Pose(px, py, pz, qx, qy, qz, qw float64) *Builder {
	for _, v := range []float64{px, py, pz, qx, qy, qz, qw} {
		f.b = binary.LittleEndian.AppendUint64(f.b, math.Float64bits(v))
	}
	return f
}

func (f *Builder) Identity() *Builder {
	return f.Pose(0, 0, 0, 0, 0, 0, 1)
}

func (f *Builder) Name(s string) *Builder {
	return f.Length(uint64(len(s))).Raw([]byte(s)...)
}

func (f *Builder) Uint32s(vs ...uint32) *Builder {
	f.Length(uint64(len(vs)))
	for _, v := range vs {
		f.Uint32(v)
	}
	return f
}

func (f *Builder) Int32s(vs ...int32) *Builder {
	f.Length(uint64(len(vs)))
	for _, v := range vs {
		f.Int32(v)
	}
	return f
}

func (f *Builder) Float32s(vs ...float32) *Builder {
	f.Length(uint64(len(vs)))
	for _, v := range vs {
		f.Uint32(math.Float32bits(v))
	}
	return f
}

// Body writes one body with triangle_count derived from indices.
func (f *Builder) Body(vertices []float32, indices []int32, uvs []float32) *Builder {
	f.Int32(int32(len(indices) / 3))
	f.Float32s(vertices...)
	f.Int32s(indices...)
	f.Float32s()
	return f.Float32s(uvs...)
}

func (f *Builder) Bytes() []byte {
	return append([]byte(nil), f.b...)
}

// Quad is a square in the XY plane as two triangles, unit sized after the
// default vertex scale.
var (
	QuadVertices = []float32{0, 0, 0, 6, 0, 0, 6, 6, 0, 0, 6, 0}
	QuadIndices  = []int32{0, 1, 2, 0, 2, 3}
	QuadUVs      = []float32{0, 0, 1, 0, 1, 1, 0, 1}
)

// Robot is a valid assembly: one revolute joint and two parts, "Base" with
// one quad body and "Arm" with one quad body and no UVs.
func Robot() []byte {
	f := NewBuilder()
	f.Length(1).Joint(mrr.Revolute)

	f.Length(2)
	f.Name("Base").Identity().Uint32s(0).Uint32s()
	f.Length(1).Body(QuadVertices, QuadIndices, QuadUVs)

	f.Name("Arm").Pose(0, 0, 1, 0, 0, 0, 1).Uint32s(0).Uint32s(1)
	f.Length(1).Body(QuadVertices, QuadIndices, nil)
	return f.Bytes()
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
