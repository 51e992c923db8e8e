// The raytrace command renders a Wavefront OBJ scene to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	rt "github.com/nrieke/objtrace"
	"github.com/nrieke/objtrace/internal/camera"
	"github.com/nrieke/objtrace/internal/prim"
	"github.com/nrieke/objtrace/internal/scene"
)

var (
	sceneFile = flag.String("scene", "", "path to the .obj scene file (required)")
	outFile   = flag.String("out", "", "png filename to write (required)")

	width  = flag.Int("width", 800, "screen width in pixels")
	height = flag.Int("height", 600, "screen height in pixels")
	fov    = flag.Float64("fov", camera.DefaultFov, "vertical field of view in radians")

	lookFrom = flag.String("look_from", "0,0,5", "camera position as x,y,z")
	lookTo   = flag.String("look_to", "0,0,0", "camera target as x,y,z")

	depth = flag.Int("depth", 4, "recursion budget for full mode")
	mode  = flag.String("mode", "full", "render mode: depth, normal, or full")
)

func parseVec3Flag(s string) (prim.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return prim.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		n, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v[i])
		if n != 1 || err != nil {
			return prim.Vec3{}, fmt.Errorf("bad number %q in %q", p, s)
		}
	}
	return prim.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseMode(s string) (rt.Mode, error) {
	switch strings.ToLower(s) {
	case "depth":
		return rt.Depth, nil
	case "normal":
		return rt.Normal, nil
	case "full":
		return rt.Full, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want depth, normal, or full)", s)
	}
}

func writeImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	flag.Parse()
	if *sceneFile == "" {
		log.Fatal("--scene is required")
	}
	if *outFile == "" {
		log.Fatal("--out is required")
	}

	from, err := parseVec3Flag(*lookFrom)
	if err != nil {
		log.Fatalf("--look_from: %v", err)
	}
	to, err := parseVec3Flag(*lookTo)
	if err != nil {
		log.Fatalf("--look_to: %v", err)
	}
	renderMode, err := parseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	sc, err := scene.Load(*sceneFile)
	if err != nil {
		log.Fatalf("loading scene: %v", err)
	}

	if *fov <= 0 {
		log.Printf("warning: fov %v is not positive, using default of %v radians", *fov, camera.DefaultFov)
		*fov = camera.DefaultFov
	}

	opts := rt.Options{
		Camera: camera.Options{
			LookFrom:     from,
			LookTo:       to,
			Fov:          *fov,
			ScreenWidth:  *width,
			ScreenHeight: *height,
		},
		Depth: *depth,
		Mode:  renderMode,
	}

	img := rt.Render(sc, opts)
	if err := writeImage(img, *outFile); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%v mode, %dx%d)\n", *outFile, renderMode, *width, *height)
}
