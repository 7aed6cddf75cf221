package viewmatrix

import (
	"math"
	"testing"

	"mrr-renderer/internal/mathutil"
)

func TestZeroCameraIsIdentity(t *testing.T) {
	if m := (Camera{}).Matrix(); m != mathutil.Mat3Identity() {
		t.Fatalf("Matrix() = %v", m)
	}
}

func TestPositivePitchBringsTopForward(t *testing.T) {
	up := (Camera{Pitch: 30}).Matrix().MulVec3(mathutil.Vec3{0, 1, 0})
	if up[2] <= 0 {
		t.Fatalf("up vector depth = %v, want > 0", up[2])
	}
}

func TestFitOrthographic(t *testing.T) {
	// Box spans [-1,1] in x and y; 100px frame with 10px margin gives 40px per unit.
	verts := [][3]float32{{-1, -1, 0}, {1, 1, 0}, {0, 1, 2}}
	p, ok := Fit(Camera{}, [][][3]float32{verts}, 100, 10)
	if !ok {
		t.Fatal("Fit not ok")
	}
	if p.Scale != 40 {
		t.Fatalf("Scale = %v, want 40", p.Scale)
	}
	px, py, pz := p.Project([][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 2}})
	if px[0] != 50 || py[0] != 50 || pz[0] != 0 {
		t.Errorf("center at (%v,%v,%v), want (50,50,0)", px[0], py[0], pz[0])
	}
	if px[1] != 90 {
		t.Errorf("+x at %v, want 90", px[1])
	}
	if py[2] != 10 || pz[2] != 40 {
		t.Errorf("+y at %v depth %v, want 10 and 40", py[2], pz[2])
	}
}

func TestFitSkipsNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(-1))
	p, ok := Fit(Camera{}, [][][3]float32{{{-1, -1, 0}, {nan, 0, 0}, {1, 1, 0}, {0, inf, 0}}}, 100, 10)
	if !ok || p.Scale != 40 || p.Center != (mathutil.Vec3{}) {
		t.Fatalf("Fit = %+v, %v", p, ok)
	}

	if _, ok := Fit(Camera{}, [][][3]float32{{{nan, nan, nan}}}, 100, 10); ok {
		t.Fatal("Fit of only NaN points reported ok")
	}
	if _, ok := Fit(Camera{}, nil, 100, 10); ok {
		t.Fatal("Fit of nothing reported ok")
	}
}

func TestProjectPerspectiveEnlargesNearPoints(t *testing.T) {
	verts := [][3]float32{{1, 0, 1}, {1, 0, -1}, {-1, 0, 0}}
	p, _ := Fit(Camera{Perspective: true, FOV: 90}, [][][3]float32{verts}, 100, 10)
	px, _, _ := p.Project(verts[:2])
	near, far := math.Abs(px[0]-50), math.Abs(px[1]-50)
	if near <= far {
		t.Fatalf("near offset %v <= far offset %v", near, far)
	}
}

func TestProjectionSharedAcrossMeshes(t *testing.T) {
	a := [][3]float32{{1, 1, 0}}
	b := [][3]float32{{5, 5, 5}, {-2, 0, -1}}
	for _, cam := range []Camera{{}, {Perspective: true}, DefaultCamera()} {
		p, ok := Fit(cam, [][][3]float32{a, b}, 128, 8)
		if !ok {
			t.Fatal("Fit not ok")
		}
		alone, _, _ := p.Project(a)
		together, _, _ := p.Project(append(append([][3]float32{}, b...), a...))
		if alone[0] != together[2] {
			t.Errorf("camera %+v: vertex projects to %v alone and %v with others", cam, alone[0], together[2])
		}
	}
}
