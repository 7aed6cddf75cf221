package mrr

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fixed record widths in bytes.
const (
	lengthSize    = 8
	jointTypeSize = 4
	poseSize      = 7 * 8 // 3 position doubles, 4 quaternion doubles
)

// readLength reads a bare 8-byte little-endian count.
func (c *cursor) readLength() (uint64, error) {
	b, err := c.take(lengthSize)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readInt32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (c *cursor) readJointType() (JointType, error) {
	b, err := c.take(jointTypeSize)
	if err != nil {
		return 0, err
	}
	t := JointType(binary.LittleEndian.Uint32(b))
	if t > Slider {
		return 0, ErrUnknownJointType
	}
	return t, nil
}

// readPose decodes a packed pose record field by field:
// position x,y,z then quaternion x,y,z,w.
func (c *cursor) readPose() (Pose, error) {
	b, err := c.take(poseSize)
	if err != nil {
		return Pose{}, err
	}
	var f [7]float64
	for i := range f {
		f[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return Pose{
		Position:    mgl64.Vec3{f[0], f[1], f[2]},
		Orientation: mgl64.Quat{W: f[6], V: mgl64.Vec3{f[3], f[4], f[5]}},
	}, nil
}
