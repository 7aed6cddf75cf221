package mathutil

import "github.com/go-gl/mathgl/mgl64"

// FromMat3 converts a column-major mgl64 matrix to row-major Mat3.
func FromMat3(m mgl64.Mat3) Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 { return FromMat3(mgl64.Rotate3DX(a)) }

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 { return FromMat3(mgl64.Rotate3DY(a)) }

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 { return FromMat3(mgl64.Rotate3DZ(a)) }

// Orbit rotates by yaw about Y, then pitch about X. Angles in degrees.
func Orbit(pitchDeg, yawDeg float64) Mat3 {
	return Mat3Mul(RotX(Deg2Rad(pitchDeg)), RotY(Deg2Rad(yawDeg)))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return mgl64.DegToRad(d)
}
