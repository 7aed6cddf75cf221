package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func nearVec(a, b Vec3) bool {
	return math.Abs(a[0]-b[0]) < 1e-9 && math.Abs(a[1]-b[1]) < 1e-9 && math.Abs(a[2]-b[2]) < 1e-9
}

func TestFromQuat(t *testing.T) {
	tests := []struct {
		name string
		q    mgl64.Quat
		in   Vec3
		want Vec3
	}{
		{"identity", mgl64.QuatIdent(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"zero is identity", mgl64.Quat{}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"90 about z", mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"unnormalized", mgl64.Quat{W: 2}, Vec3{0, 0, 5}, Vec3{0, 0, 5}},
	}
	for _, tt := range tests {
		got := FromQuat(tt.q).MulVec3(tt.in)
		if !nearVec(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromQuatMatchesMathgl(t *testing.T) {
	q := mgl64.QuatRotate(0.7, mgl64.Vec3{1, 2, 3}.Normalize())
	v := mgl64.Vec3{0.3, -1, 2}
	want := q.Rotate(v)
	got := FromQuat(q).MulVec3(FromVec3(v))
	if !nearVec(got, FromVec3(want)) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMat4Affine(t *testing.T) {
	m := FromMat3Translation(RotZ(math.Pi/2), Vec3{10, 0, 0})
	got := m.MulPoint(Vec3{1, 0, 0})
	if !nearVec(got, Vec3{10, 1, 0}) {
		t.Fatalf("got %v", got)
	}
	if m.IsIdentity() || !Mat4Identity().IsIdentity() {
		t.Fatal("IsIdentity wrong")
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		in   Vec3
		want Vec3
	}{
		{"x", RotX(math.Pi / 2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y", RotY(math.Pi / 2), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"z", RotZ(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"orbit yaw only", Orbit(0, 90), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"orbit pitch only", Orbit(90, 0), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		if got := tt.m.MulVec3(tt.in); !nearVec(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}
