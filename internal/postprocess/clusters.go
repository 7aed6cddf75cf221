package postprocess

import "image"

// RemoveSmallClusters clears disconnected groups of visible pixels smaller
// than minRatio of all visible pixels. Stray specks come from sliver
// triangles and detached fasteners far from the main assembly.
func RemoveSmallClusters(img *image.NRGBA, minRatio float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := img.Stride

	visible := func(i int) bool {
		return img.Pix[(i/w)*stride+(i%w)*4+3] > 0
	}

	// 8-connected components, labelled by breadth-first flood fill
	labels := make([]int32, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var sizes []int
	total := 0
	queue := make([]int, 0, 1024)

	for start := 0; start < w*h; start++ {
		if labels[start] >= 0 || !visible(start) {
			continue
		}
		id := int32(len(sizes))
		labels[start] = id
		queue = append(queue[:0], start)
		for head := 0; head < len(queue); head++ {
			cx, cy := queue[head]%w, queue[head]/w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := cx+dx, cy+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if labels[ni] < 0 && visible(ni) {
						labels[ni] = id
						queue = append(queue, ni)
					}
				}
			}
		}
		sizes = append(sizes, len(queue))
		total += len(queue)
	}

	if len(sizes) <= 1 {
		return img
	}

	minSize := int(float64(total) * minRatio)
	result := image.NewNRGBA(b)
	copy(result.Pix, img.Pix)
	for i, l := range labels {
		if l >= 0 && sizes[l] < minSize {
			o := (i/w)*stride + (i%w)*4
			copy(result.Pix[o:o+4], []uint8{0, 0, 0, 0})
		}
	}
	return result
}
