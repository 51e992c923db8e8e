package tonemap

import (
	"testing"

	"github.com/nrieke/objtrace/internal/prim"
)

func buf2x2(values [2][2]prim.Vec3) [][]prim.Vec3 {
	return [][]prim.Vec3{
		{values[0][0], values[0][1]},
		{values[1][0], values[1][1]},
	}
}

func TestMapAllBlackIsBlackNoDivideByZero(t *testing.T) {
	img := Map(buf2x2([2][2]prim.Vec3{}))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r != 0 || g != 0 || b != 0 {
				t.Errorf("At(%d,%d) = (%d,%d,%d), want (0,0,0)", x, y, r, g, b)
			}
			if a == 0 {
				t.Errorf("At(%d,%d) alpha = 0, want opaque", x, y)
			}
		}
	}
}

func TestMapChannelsInRange(t *testing.T) {
	img := Map(buf2x2([2][2]prim.Vec3{
		{{X: 0.1, Y: 0.2, Z: 0.3}, {X: 5, Y: 2, Z: 100}},
		{{X: 0, Y: 0, Z: 0}, {X: 1e6, Y: 1e6, Z: 1e6}},
	}))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			for _, c := range []uint32{r, g, b} {
				c8 := c >> 8
				if c8 > 255 {
					t.Errorf("At(%d,%d) channel = %d, want <= 255", x, y, c8)
				}
			}
		}
	}
}

func TestMapBrightestPixelIsNearWhite(t *testing.T) {
	img := Map(buf2x2([2][2]prim.Vec3{
		{{X: 0.01}, {X: 1000, Y: 1000, Z: 1000}},
		{{}, {}},
	}))
	r, g, b, _ := img.At(1, 0).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("brightest pixel = (%d,%d,%d), want close to white", r>>8, g>>8, b>>8)
	}
}
