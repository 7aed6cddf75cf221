package mrr

import (
	"fmt"
	"unicode/utf8"
)

// Smallest possible encodings, used to bound pre-allocation from counts.
const (
	minJointSize = jointTypeSize + poseSize
	minPartSize  = lengthSize + poseSize + 3*lengthSize
	minBodySize  = 4 + 4*lengthSize
)

type decoder struct {
	c *cursor
}

// Decode parses a complete MRR buffer. It either returns a fully built
// Assembly or an error; partial results are never returned. The Assembly
// shares no memory with data.
func Decode(data []byte) (*Assembly, error) {
	d := &decoder{c: newCursor(data)}
	return d.assembly()
}

func (d *decoder) fail(err error, start int, format string, args ...any) error {
	return &DecodeError{Field: fmt.Sprintf(format, args...), Offset: start, Err: err}
}

// capacity bounds a declared count by what the rest of the buffer can hold.
func (d *decoder) capacity(count uint64, minSize int) int {
	limit := uint64(d.c.remaining() / minSize)
	if count < limit {
		return int(count)
	}
	return int(limit)
}

func (d *decoder) assembly() (*Assembly, error) {
	if err := d.c.checkSignature(); err != nil {
		return nil, err
	}

	start := d.c.offset()
	jointCount, err := d.c.readLength()
	if err != nil {
		return nil, d.fail(err, start, "joint_count")
	}
	joints := make([]Joint, 0, d.capacity(jointCount, minJointSize))
	for i := uint64(0); i < jointCount; i++ {
		j, err := d.joint(i)
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}

	start = d.c.offset()
	partCount, err := d.c.readLength()
	if err != nil {
		return nil, d.fail(err, start, "part_count")
	}
	parts := make([]Part, 0, d.capacity(partCount, minPartSize))
	for i := uint64(0); i < partCount; i++ {
		p, err := d.part(i)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	return &Assembly{Joints: joints, Parts: parts}, nil
}

func (d *decoder) joint(i uint64) (Joint, error) {
	start := d.c.offset()
	t, err := d.c.readJointType()
	if err != nil {
		return Joint{}, d.fail(err, start, "joint[%d].type", i)
	}
	start = d.c.offset()
	pose, err := d.c.readPose()
	if err != nil {
		return Joint{}, d.fail(err, start, "joint[%d].pose", i)
	}
	return Joint{Type: t, Pose: pose}, nil
}

func (d *decoder) part(i uint64) (Part, error) {
	var p Part

	start := d.c.offset()
	name, err := d.c.readBytes()
	if err != nil {
		return Part{}, d.fail(err, start, "part[%d].name", i)
	}
	if !utf8.Valid(name) {
		return Part{}, d.fail(ErrInvalidUTF8, start, "part[%d].name", i)
	}
	p.Name = string(name)

	start = d.c.offset()
	if p.Pose, err = d.c.readPose(); err != nil {
		return Part{}, d.fail(err, start, "part[%d].pose", i)
	}

	start = d.c.offset()
	if p.JointRefs, err = d.c.readUint32s(); err != nil {
		return Part{}, d.fail(err, start, "part[%d].joint_refs", i)
	}

	start = d.c.offset()
	if p.RigidGroupRefs, err = d.c.readUint32s(); err != nil {
		return Part{}, d.fail(err, start, "part[%d].rigid_refs", i)
	}

	start = d.c.offset()
	bodyCount, err := d.c.readLength()
	if err != nil {
		return Part{}, d.fail(err, start, "part[%d].body_count", i)
	}
	p.Bodies = make([]Body, 0, d.capacity(bodyCount, minBodySize))
	for j := uint64(0); j < bodyCount; j++ {
		b, err := d.body(i, j)
		if err != nil {
			return Part{}, err
		}
		p.Bodies = append(p.Bodies, b)
	}
	return p, nil
}

func (d *decoder) body(i, j uint64) (Body, error) {
	var b Body
	var err error

	start := d.c.offset()
	if b.TriangleCount, err = d.c.readInt32(); err != nil {
		return Body{}, d.fail(err, start, "part[%d].body[%d].triangle_count", i, j)
	}
	start = d.c.offset()
	if b.Vertices, err = d.c.readFloat32s(); err != nil {
		return Body{}, d.fail(err, start, "part[%d].body[%d].vertices", i, j)
	}
	start = d.c.offset()
	if b.Indices, err = d.c.readInt32s(); err != nil {
		return Body{}, d.fail(err, start, "part[%d].body[%d].indices", i, j)
	}
	start = d.c.offset()
	if b.Normals, err = d.c.readFloat32s(); err != nil {
		return Body{}, d.fail(err, start, "part[%d].body[%d].normals", i, j)
	}
	start = d.c.offset()
	if b.UVs, err = d.c.readFloat32s(); err != nil {
		return Body{}, d.fail(err, start, "part[%d].body[%d].uvs", i, j)
	}
	return b, nil
}
