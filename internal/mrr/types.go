package mrr

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// JointType is the kinematic kind of a joint.
type JointType uint32

const (
	Rigid JointType = iota
	Revolute
	Slider
)

func (t JointType) String() string {
	switch t {
	case Rigid:
		return "Rigid"
	case Revolute:
		return "Revolute"
	case Slider:
		return "Slider"
	}
	return fmt.Sprintf("JointType(%d)", uint32(t))
}

// Pose is a position and an orientation quaternion, both double precision.
// The quaternion is stored as read; it is not normalized.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Joint is a kinematic connector. Parts refer to joints by index.
type Joint struct {
	Type JointType
	Pose Pose
}

// Body holds one triangle mesh as flat arrays, exactly as stored in the file.
// Vertices and Normals are xyz triples, UVs are uv pairs. Index values are
// not checked against the vertex count.
type Body struct {
	TriangleCount int32
	Vertices      []float32
	Indices       []int32
	Normals       []float32
	UVs           []float32
}

// Part is a named rigid sub-assembly.
type Part struct {
	Name           string
	Pose           Pose
	JointRefs      []uint32 // indices into Assembly.Joints, unchecked
	RigidGroupRefs []uint32
	Bodies         []Body
}

// Assembly is the decoded root of an MRR file.
type Assembly struct {
	Joints []Joint
	Parts  []Part
}

// BodyCount returns the number of bodies across all parts.
func (a *Assembly) BodyCount() int {
	n := 0
	for i := range a.Parts {
		n += len(a.Parts[i].Bodies)
	}
	return n
}

// TriangleCount sums the declared triangle counts of every body.
func (a *Assembly) TriangleCount() int64 {
	var n int64
	for i := range a.Parts {
		for _, b := range a.Parts[i].Bodies {
			n += int64(b.TriangleCount)
		}
	}
	return n
}
