package mathutil

import "github.com/go-gl/mathgl/mgl64"

// FromQuat converts an orientation quaternion to a 3×3 rotation matrix.
// The quaternion is normalized first; a zero quaternion yields identity.
func FromQuat(q mgl64.Quat) Mat3 {
	if q.Len() < 1e-12 {
		return Mat3Identity()
	}
	q = q.Normalize()
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// FromVec3 converts an mgl64 vector.
func FromVec3(v mgl64.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
