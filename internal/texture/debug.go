package texture

import "image"

const debugSize = 8

// debugPalette is one row of the UV test pattern; each following row is
// rotated right by one texel.
var debugPalette = [debugSize * 4]uint8{
	255, 102, 159, 255, 255, 159, 102, 255, 236, 255, 102, 255, 121, 255, 102, 255,
	102, 255, 198, 255, 102, 198, 255, 255, 121, 102, 255, 255, 236, 102, 255, 255,
}

// DebugTexture returns an 8×8 colorful pattern for checking UV layout.
func DebugTexture() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, debugSize, debugSize))
	row := debugPalette
	for y := 0; y < debugSize; y++ {
		copy(img.Pix[y*img.Stride:], row[:])
		var next [debugSize * 4]uint8
		copy(next[4:], row[:len(row)-4])
		copy(next[:4], row[len(row)-4:])
		row = next
	}
	return img
}
