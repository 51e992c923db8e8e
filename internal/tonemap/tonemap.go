// Package tonemap implements the global Reinhard-plus-gamma mapping used to
// compress an unbounded HDR radiance buffer into 8-bit pixels.
package tonemap

import (
	"image"
	"image/color"
	"math"

	"github.com/nrieke/objtrace/internal/prim"
)

const gamma = 1 / 2.2

// Map converts a width x height radiance buffer (indexed buf[y][x], row
// major) into an 8-bit RGB image. If every channel of every pixel is zero,
// the mapping produces black without dividing by zero.
func Map(buf [][]prim.Vec3) *image.RGBA {
	height := len(buf)
	width := 0
	if height > 0 {
		width = len(buf[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	max := 0.0
	for _, row := range buf {
		for _, px := range row {
			max = math.Max(max, px.MaxComponent())
		}
	}

	for y, row := range buf {
		for x, px := range row {
			img.Set(x, y, color.RGBA{
				R: toneMapChannel(px.X, max),
				G: toneMapChannel(px.Y, max),
				B: toneMapChannel(px.Z, max),
				A: 255,
			})
		}
	}
	return img
}

func toneMapChannel(c, max float64) uint8 {
	if max == 0 {
		return 0
	}
	mapped := c * (1 + c/(max*max)) / (1 + c)
	gammaCorrected := math.Pow(mapped, gamma)
	return uint8(math.Round(255 * gammaCorrected))
}
