package raytracer

import (
	"github.com/nrieke/objtrace/internal/geom"
	"github.com/nrieke/objtrace/internal/prim"
	"github.com/nrieke/objtrace/internal/scene"
)

// shadingNormal computes the normal used for lighting at a triangle hit:
// the barycentric blend of per-vertex normals, falling back to the
// intersection's geometric normal wherever a vertex normal is absent. The
// result is intentionally not renormalized.
func shadingNormal(obj scene.Object, hit geom.Intersection) prim.Vec3 {
	u, v, w := geom.Barycentric(obj.Triangle, hit.Position)
	weights := [3]float64{u, v, w}
	var out prim.Vec3
	for i, weight := range weights {
		n := hit.Normal
		if vn := obj.Normal(i); vn != nil {
			n = *vn
		}
		out = out.Add(n.Scale(weight))
	}
	return out
}

// nearestDistance linearly scans every primitive in the scene and returns
// the smallest positive hit distance, or ok == false if the ray hits
// nothing.
func nearestDistance(sc *scene.Scene, ray geom.Ray) (float64, bool) {
	best := 0.0
	found := false
	for _, obj := range sc.Objects {
		hit, ok := obj.Intersect(ray)
		if !ok {
			continue
		}
		if !found || hit.Distance < best {
			best, found = hit.Distance, true
		}
	}
	for _, sp := range sc.SphereObjects {
		hit, ok := sp.Intersect(ray)
		if !ok {
			continue
		}
		if !found || hit.Distance < best {
			best, found = hit.Distance, true
		}
	}
	return best, found
}

// findNearest scans every primitive and returns the closest hit, with the
// shading normal already substituted for triangle hits, plus the hit
// primitive's material.
func findNearest(sc *scene.Scene, ray geom.Ray) (geom.Intersection, *scene.Material, bool) {
	var best geom.Intersection
	var mat *scene.Material
	found := false

	for _, obj := range sc.Objects {
		hit, ok := obj.Intersect(ray)
		if !ok || (found && hit.Distance >= best.Distance) {
			continue
		}
		hit.Normal = shadingNormal(obj, hit)
		best, mat, found = hit, obj.Material, true
	}
	for _, sp := range sc.SphereObjects {
		hit, ok := sp.Intersect(ray)
		if !ok || (found && hit.Distance >= best.Distance) {
			continue
		}
		best, mat, found = hit, sp.Material, true
	}
	return best, mat, found
}
