// Package camera builds the pixel-to-world-ray mapping for a pinhole
// camera defined by a look-from/look-to pair and a vertical field of view.
package camera

import (
	"math"

	"github.com/nrieke/objtrace/internal/geom"
	"github.com/nrieke/objtrace/internal/prim"
)

// Options describes the camera as read from render configuration.
type Options struct {
	LookFrom, LookTo prim.Vec3
	// Fov is the vertical field of view in radians.
	Fov                   float64
	ScreenWidth, ScreenHeight int
}

// worldUp is the world-space up vector used to build the camera basis.
var worldUp = prim.Vec3{Y: 1}

// Camera maps pixel coordinates to primary rays using a look-at basis.
type Camera struct {
	opts Options

	right, up, forward prim.Vec3
	viewWidth, viewHeight float64
}

// New constructs a Camera from Options, building the orthonormal
// right/up/forward basis and the view-plane extent.
func New(opts Options) Camera {
	forward := opts.LookFrom.Sub(opts.LookTo).Normalize()

	right := worldUp.Cross(forward)
	if right.Length() < 1e-9 {
		// Look direction is collinear with world-up; fall back to a fixed
		// right vector rather than normalizing a near-zero vector.
		right = prim.Vec3{X: 1}
	} else {
		right = right.Normalize()
	}
	up := forward.Cross(right).Normalize()

	height := 2 * math.Tan(opts.Fov/2)
	width := height * float64(opts.ScreenWidth) / float64(opts.ScreenHeight)

	return Camera{opts: opts, right: right, up: up, forward: forward, viewWidth: width, viewHeight: height}
}

// Ray returns the primary ray through pixel (i, j), i in [0, width), j in
// [0, height), with pixel (0,0) at the top-left of the image.
func (c Camera) Ray(i, j int) geom.Ray {
	x := (2*(float64(i)+0.5)/float64(c.opts.ScreenWidth) - 1) * c.viewWidth / 2
	y := (2*(-float64(j)-0.5)/float64(c.opts.ScreenHeight) + 1) * c.viewHeight / 2

	// Camera-space direction (x, y, -1) rotated into world space by the
	// basis whose columns are right, up, forward.
	direction := c.right.Scale(x).Add(c.up.Scale(y)).Sub(c.forward)
	return geom.NewRay(c.opts.LookFrom, direction)
}

// DefaultFov is used when the caller doesn't supply one.
const DefaultFov = math.Pi / 2
