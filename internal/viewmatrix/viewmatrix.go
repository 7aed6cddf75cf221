// Package viewmatrix holds the preview camera: the view rotation and the
// projection of model-space vertices to screen space.
package viewmatrix

import (
	"math"

	"mrr-renderer/internal/mathutil"
)

// Camera defaults.
const (
	DefaultPitch = 25.0
	DefaultYaw   = -35.0
	DefaultFOV   = 60.0
)

// Camera orbits the model. Angles are in degrees; positive Pitch tilts the
// top of the model toward the viewer.
type Camera struct {
	Pitch       float64
	Yaw         float64
	Perspective bool
	FOV         float64 // 0 means DefaultFOV
}

// DefaultCamera returns the three-quarter view used for previews.
func DefaultCamera() Camera {
	return Camera{Pitch: DefaultPitch, Yaw: DefaultYaw, FOV: DefaultFOV}
}

// Matrix returns the view rotation: yaw about Y, then pitch about X.
func (c Camera) Matrix() mathutil.Mat3 {
	return mathutil.Orbit(c.Pitch, c.Yaw)
}

// Projection maps model-space vertices to screen space. It is fitted once
// over every mesh of a render so all bodies share one framing.
type Projection struct {
	R      mathutil.Mat3
	Center mathutil.Vec3 // view-space center of the fitted box
	Scale  float64       // pixels per model unit
	Half   float64       // screen center

	perspective bool
	camDist     float64
	zCenter     float64
}

// Fit frames the finite points of sets in a renderSize square with margin
// pixels on each side. ok is false when there are no finite points.
func Fit(cam Camera, sets [][][3]float32, renderSize, margin int) (p Projection, ok bool) {
	p.R = cam.Matrix()
	p.Half = float64(renderSize) / 2

	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, verts := range sets {
		for _, v := range verts {
			t := p.R.MulVec3(mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
			if !finite(t) {
				continue
			}
			lo = lo.Min(t)
			hi = hi.Max(t)
			ok = true
		}
	}
	if !ok {
		return p, false
	}

	p.Center = lo.Add(hi).Scale(0.5)
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	p.Scale = float64(renderSize-2*margin) / span

	if cam.Perspective {
		fov := cam.FOV
		if fov <= 0 || fov >= 180 {
			fov = DefaultFOV
		}
		// Camera distance frames the whole xy extent at the z midpoint.
		p.perspective = true
		p.zCenter = p.Center[2]
		p.camDist = (span / 2) / math.Tan(mathutil.Deg2Rad(fov/2))
	}
	return p, true
}

// Project transforms vertices to screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth; larger is nearer).
// Depth is scaled like X and Y so screen-space normals keep their shape.
func (p Projection) Project(verts [][3]float32) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	for i := range verts {
		t := p.R.MulVec3(mathutil.Vec3{float64(verts[i][0]), float64(verts[i][1]), float64(verts[i][2])})

		if p.perspective {
			depth := math.Max(p.camDist-(t[2]-p.zCenter), 0.1)
			factor := p.camDist / depth
			t[0] = p.Center[0] + (t[0]-p.Center[0])*factor
			t[1] = p.Center[1] + (t[1]-p.Center[1])*factor
		}

		px[i] = (t[0]-p.Center[0])*p.Scale + p.Half
		py[i] = -(t[1]-p.Center[1])*p.Scale + p.Half
		pz[i] = (t[2] - p.Center[2]) * p.Scale
	}

	return px, py, pz
}

func finite(v mathutil.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
