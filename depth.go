package raytracer

import (
	"image"
	"image/color"
	"math"

	"github.com/nrieke/objtrace/internal/camera"
	"github.com/nrieke/objtrace/internal/scene"
)

// renderDepth is a grayscale visualization of distance to the nearest hit,
// normalized against the farthest hit in the frame. Misses are white.
func renderDepth(sc *scene.Scene, cam camera.Camera, width, height int) image.Image {
	distances := make([][]float64, height)
	hasHit := make([][]bool, height)
	max := 0.0
	for j := 0; j < height; j++ {
		distances[j] = make([]float64, width)
		hasHit[j] = make([]bool, width)
		for i := 0; i < width; i++ {
			ray := cam.Ray(i, j)
			d, ok := nearestDistance(sc, ray)
			if !ok {
				continue
			}
			distances[j][i] = d
			hasHit[j][i] = true
			max = math.Max(max, d)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			var v uint8 = 255
			if hasHit[j][i] {
				if max > 0 {
					v = uint8(math.Round(255 * distances[j][i] / max))
				} else {
					v = 0
				}
			}
			img.Set(i, j, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}
