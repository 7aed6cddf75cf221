package raster

import (
	"image"
	"math"

	"mrr-renderer/internal/mathutil"
)

// Surface is what a triangle is filled with: a texture when UVs are
// available, otherwise a flat base color.
type Surface struct {
	Tex   *image.NRGBA
	Color [4]uint8
}

// RasterizeTriangle fills one triangle with z-buffering, flat per-face
// lighting, sRGB handling and ACES tone mapping. Indices outside the
// projected vertex range are skipped. UVs share the vertex index.
//
// Hot path: no allocations inside the pixel loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	uvs [][2]float32,
	idx [3]int,
	s *Surface,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range idx {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[idx[0]], py[idx[0]], pz[idx[0]]
	x1, y1, z1 := px[idx[1]], py[idx[1]], pz[idx[1]]
	x2, y2, z2 := px[idx[2]], py[idx[2]], pz[idx[2]]

	hasUV := s.Tex != nil
	for _, i := range idx {
		if i >= len(uvs) {
			hasUV = false
			break
		}
	}

	var u0, v0, u1, v1, u2, v2 float64
	if hasUV {
		u0, v0 = float64(uvs[idx[0]][0]), float64(uvs[idx[0]][1])
		u1, v1 = float64(uvs[idx[1]][0]), float64(uvs[idx[1]][1])
		u2, v2 = float64(uvs[idx[2]][0]), float64(uvs[idx[2]][1])
	}

	if !finite3(x0, x1, x2) || !finite3(y0, y1, y2) {
		return
	}

	// Face normal in screen space
	e1 := mathutil.Vec3{x1 - x0, y1 - y0, z1 - z0}
	e2 := mathutil.Vec3{x2 - x0, y2 - y0, z2 - z0}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return
	}
	// Screen Y points down; flip it back so lighting sees a Y-up normal.
	n = n.Normalize()
	n[1] = -n[1]
	shade := lc.ComputeShade(n)

	// Clamp in float space; NaN and out-of-frame spans fail the comparisons.
	fMinX := math.Max(math.Min(math.Min(x0, x1), x2), 0)
	fMaxX := math.Min(math.Max(math.Max(x0, x1), x2)+1, float64(fb.Width-1))
	fMinY := math.Max(math.Min(math.Min(y0, y1), y2), 0)
	fMaxY := math.Min(math.Max(math.Max(y0, y1), y2)+1, float64(fb.Height-1))
	if !(fMinX <= fMaxX && fMinY <= fMaxY) || !finite3(z0, z1, z2) {
		return
	}
	minX, maxX := int(fMinX), int(fMaxX)
	minY, maxY := int(fMinY), int(fMaxY)

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := s.Color[0], s.Color[1], s.Color[2], s.Color[3]
			if hasUV {
				cr, cg, cb, ca = SampleTexture(s.Tex,
					w0*u0+w1*u1+w2*u2,
					w0*v0+w1*v1+w2*v2)
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = lc.Shade(cr, shade)
			fb.Color[pxIdx+1] = lc.Shade(cg, shade)
			fb.Color[pxIdx+2] = lc.Shade(cb, shade)
			fb.Color[pxIdx+3] = ca
		}
	}
}

func finite3(a, b, c float64) bool {
	for _, v := range [3]float64{a, b, c} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
