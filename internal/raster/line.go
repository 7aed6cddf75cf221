package raster

import "math"

// depthBias keeps wire edges visible on top of the faces they bound.
const depthBias = 1e-3

// DrawLine draws a depth-tested one-pixel line between two projected
// vertices. Used for the wireframe preview mode. The line is clipped to the
// frame first; lines with a non-finite endpoint are skipped.
func DrawLine(fb *FrameBuffer, x0, y0, z0, x1, y1, z1 float64, c [4]uint8) {
	if !finite3(x0, y0, z0) || !finite3(x1, y1, z1) {
		return
	}
	t0, t1, ok := clipLine(x0, y0, x1, y1, float64(fb.Width), float64(fb.Height))
	if !ok {
		return
	}

	dx, dy, dz := x1-x0, y1-y0, z1-z0
	x0, y0, z0, x1, y1 = x0+dx*t0, y0+dy*t0, z0+dz*t0, x0+dx*t1, y0+dy*t1
	z1 = z0 + dz*(t1-t0)
	dx, dy = x1-x0, y1-y0

	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sx := int(math.Round(x0 + dx*t))
		sy := int(math.Round(y0 + dy*t))
		if sx < 0 || sy < 0 || sx >= fb.Width || sy >= fb.Height {
			continue
		}
		z := z0 + (z1-z0)*t + depthBias
		zIdx := sy*fb.Width + sx
		if z <= fb.ZBuf[zIdx] {
			continue
		}
		fb.ZBuf[zIdx] = z
		copy(fb.Color[zIdx*4:zIdx*4+4], c[:])
	}
}

// clipLine returns the parameter range [t0, t1] of the segment that lies
// inside [0,w]×[0,h] (Liang-Barsky).
func clipLine(x0, y0, x1, y1, w, h float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}
