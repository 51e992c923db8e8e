// Package raytracer implements a Whitted-style CPU ray tracer: it reads a
// scene (see internal/scene), builds primary rays through a pinhole camera
// (see internal/camera), and rasterizes an image in one of three modes.
package raytracer

import (
	"fmt"
	"image"

	"github.com/nrieke/objtrace/internal/camera"
	"github.com/nrieke/objtrace/internal/scene"
)

// Mode selects which of the three renderers produces the output image.
type Mode int

const (
	// Depth visualizes distance to the nearest hit as grayscale.
	Depth Mode = iota
	// Normal visualizes the shading normal at the nearest hit.
	Normal
	// Full performs recursive Whitted shading with shadows, reflection,
	// and refraction.
	Full
)

func (m Mode) String() string {
	switch m {
	case Depth:
		return "Depth"
	case Normal:
		return "Normal"
	case Full:
		return "Full"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options bundles the camera and render configuration for a single call
// to Render.
type Options struct {
	Camera camera.Options
	// Depth is the recursion budget for Full mode; ignored otherwise.
	Depth int
	Mode  Mode
}

// Render dispatches to the mode-specific evaluator named in opts.Mode.
// The scene is read-only for the duration of the call.
func Render(sc *scene.Scene, opts Options) image.Image {
	cam := camera.New(opts.Camera)
	switch opts.Mode {
	case Depth:
		return renderDepth(sc, cam, opts.Camera.ScreenWidth, opts.Camera.ScreenHeight)
	case Normal:
		return renderNormal(sc, cam, opts.Camera.ScreenWidth, opts.Camera.ScreenHeight)
	case Full:
		return renderFull(sc, cam, opts.Camera.ScreenWidth, opts.Camera.ScreenHeight, opts.Depth)
	default:
		panic(fmt.Sprintf("raytracer: unknown mode %v", opts.Mode))
	}
}
