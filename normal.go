package raytracer

import (
	"image"
	"image/color"
	"math"

	"github.com/nrieke/objtrace/internal/camera"
	"github.com/nrieke/objtrace/internal/scene"
)

// renderNormal visualizes the shading normal at the nearest hit, remapped
// from [-1,1] to [0,255] per channel. Misses are black.
func renderNormal(sc *scene.Scene, cam camera.Camera, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			ray := cam.Ray(i, j)
			hit, _, ok := findNearest(sc, ray)
			if !ok {
				img.Set(i, j, color.RGBA{A: 255})
				continue
			}
			remapped := hit.Normal.Scale(0.5).AddScalar(0.5)
			img.Set(i, j, color.RGBA{
				R: channelByte(remapped.X),
				G: channelByte(remapped.Y),
				B: channelByte(remapped.Z),
				A: 255,
			})
		}
	}
	return img
}

func channelByte(v float64) uint8 {
	return uint8(math.Round(255 * v))
}
