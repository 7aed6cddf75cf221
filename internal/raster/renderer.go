package raster

import (
	"image"
	"math"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/viewmatrix"
)

// Options controls a preview render.
type Options struct {
	Size        int // output edge length before supersampling
	Supersample int
	Camera      viewmatrix.Camera
	Texture     *image.NRGBA // applied to bodies that carry UVs; may be nil
	Wireframe   bool         // draw triangle edges only
}

// Render draws the meshes to a square NRGBA image of Size*Supersample pixels.
// The model is fitted to the frame with a fixed margin.
func Render(meshes []geometry.Mesh, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := opts.Size * ss
	fb := NewFrameBuffer(renderSize, renderSize)

	sets := make([][][3]float32, len(meshes))
	for i := range meshes {
		sets[i] = meshes[i].Positions
	}
	proj, ok := viewmatrix.Fit(opts.Camera, sets, renderSize, 16*ss)
	if !ok {
		return fb.Image()
	}

	lc := DefaultLightConfig()

	for _, mesh := range meshes {
		if len(mesh.Positions) == 0 {
			continue
		}
		px, py, pz := proj.Project(mesh.Positions)
		surface := Surface{Tex: opts.Texture, Color: PartColor(mesh.Part)}
		if len(mesh.UVs) == 0 {
			surface.Tex = nil
		}

		for t := 0; t+2 < len(mesh.Indices); t += 3 {
			idx := [3]int{int(mesh.Indices[t]), int(mesh.Indices[t+1]), int(mesh.Indices[t+2])}
			if opts.Wireframe {
				drawEdges(fb, px, py, pz, idx, surface.Color)
				continue
			}
			RasterizeTriangle(fb, px, py, pz, mesh.UVs, idx, &surface, &lc)
		}
	}

	return fb.Image()
}

func drawEdges(fb *FrameBuffer, px, py, pz []float64, idx [3]int, c [4]uint8) {
	for _, i := range idx {
		if i < 0 || i >= len(px) {
			return
		}
	}
	for k := 0; k < 3; k++ {
		a, b := idx[k], idx[(k+1)%3]
		DrawLine(fb, px[a], py[a], pz[a], px[b], py[b], pz[b], c)
	}
}

// PartColor returns a stable, well-separated base color for a part index.
func PartColor(part int) [4]uint8 {
	// Golden-angle hue steps keep neighbouring parts apart.
	h := math.Mod(float64(part)*137.508, 360) / 60
	s, v := 0.45, 0.85
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g = c, x
	case 1:
		r, g = x, c
	case 2:
		g, b = c, x
	case 3:
		g, b = x, c
	case 4:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := v - c
	return [4]uint8{clamp255((r + m) * 255), clamp255((g + m) * 255), clamp255((b + m) * 255), 255}
}
