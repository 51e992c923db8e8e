package raytracer

import (
	"image"
	"math"

	"github.com/nrieke/objtrace/internal/camera"
	"github.com/nrieke/objtrace/internal/geom"
	"github.com/nrieke/objtrace/internal/prim"
	"github.com/nrieke/objtrace/internal/scene"
	"github.com/nrieke/objtrace/internal/tonemap"
)

// refractionBias is the small offset applied to a refraction ray's origin
// so it cleanly enters/exits the medium instead of re-hitting the same
// surface.
const refractionBias = 1e-4

// renderFull performs recursive Whitted shading with hard shadows,
// reflection, and refraction, then runs the result through the tone mapper.
func renderFull(sc *scene.Scene, cam camera.Camera, width, height, depth int) image.Image {
	buf := make([][]prim.Vec3, height)
	for j := 0; j < height; j++ {
		buf[j] = make([]prim.Vec3, width)
		for i := 0; i < width; i++ {
			ray := cam.Ray(i, j)
			hit, mat, ok := findNearest(sc, ray)
			if !ok {
				continue
			}
			buf[j][i] = computeColor(mat, ray, hit, depth, sc, false)
		}
	}
	return tonemap.Map(buf)
}

// isVisible reports whether a point is lit by a light: no intersection
// closer than the light itself may lie along the shadow ray. No
// self-exclusion epsilon is used.
func isVisible(sc *scene.Scene, point, lightPos prim.Vec3) bool {
	toLight := lightPos.Sub(point)
	dist := toLight.Length()
	shadowRay := geom.NewRay(point, toLight)

	for _, obj := range sc.Objects {
		hit, ok := obj.Intersect(shadowRay)
		if ok && hit.Distance < dist {
			return false
		}
	}
	for _, sp := range sc.SphereObjects {
		hit, ok := sp.Intersect(shadowRay)
		if ok && hit.Distance < dist {
			return false
		}
	}
	return true
}

// directLighting accumulates the diffuse and Phong specular contributions
// of every visible light at a hit.
func directLighting(mat *scene.Material, hit geom.Intersection, ray geom.Ray, sc *scene.Scene) prim.Vec3 {
	var out prim.Vec3
	ve := ray.Direction.Neg()

	for _, light := range sc.Lights {
		if !isVisible(sc, hit.Position, light.Position) {
			continue
		}
		vl := light.Position.Sub(hit.Position).Normalize()
		nDotVl := math.Max(0, hit.Normal.Dot(vl))
		out = out.Add(mat.Diffuse.Mul(light.Intensity).Scale(nDotVl))

		vr := hit.Normal.Scale(2 * nDotVl).Sub(vl)
		spec := math.Max(0, ve.Dot(vr))
		out = out.Add(mat.Specular.Mul(light.Intensity).Scale(math.Pow(spec, mat.SpecularExponent)))
	}
	return out
}

// computeColor is the recursive shading evaluator. inside indicates whether
// ray is currently propagating within a refractive medium; it is flipped
// only on refraction, never on reflection.
func computeColor(mat *scene.Material, ray geom.Ray, hit geom.Intersection, depth int, sc *scene.Scene, inside bool) prim.Vec3 {
	if depth < 1 {
		return prim.Vec3{}
	}

	out := mat.Ambient.Add(mat.Emissive)
	out = out.Add(directLighting(mat, hit, ray, sc).Scale(mat.Albedo[0]))

	if mat.Albedo[1] > 0 && depth > 1 && !inside {
		reflectDir := geom.Reflect(ray.Direction, hit.Normal)
		reflectRay := geom.NewRay(hit.Position, reflectDir)
		if reflectHit, reflectMat, ok := findNearest(sc, reflectRay); ok {
			out = out.Add(computeColor(reflectMat, reflectRay, reflectHit, depth-1, sc, inside).Scale(mat.Albedo[1]))
		}
	}

	if mat.Albedo[2] > 0 && depth > 1 {
		eta := mat.RefractionIndex
		if !inside {
			eta = 1 / eta
		}
		if refractDir, ok := geom.Refract(ray.Direction, hit.Normal, eta); ok {
			sign := -1.0
			if inside {
				sign = 1.0
			}
			origin := hit.Position.Add(hit.Normal.Scale(sign * refractionBias))
			refractRay := geom.NewRay(origin, refractDir)
			if refractHit, refractMat, ok := findNearest(sc, refractRay); ok {
				alpha := mat.Albedo[2]
				if inside {
					alpha = 1
				}
				out = out.Add(computeColor(refractMat, refractRay, refractHit, depth-1, sc, !inside).Scale(alpha))
			}
		}
	}

	return out
}
