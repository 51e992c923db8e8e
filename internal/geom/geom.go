// Package geom implements ray-primitive intersection: the ray, the two
// primitive kinds (Sphere, Triangle), the intersection record, and the
// reflect/refract/barycentric helpers used by the shading evaluator.
package geom

import (
	"math"

	"github.com/nrieke/objtrace/internal/prim"
)

// epsilonParallel is the tolerance below which a ray is considered parallel
// to a triangle's plane (Möller-Trumbore) or the solved t is considered to
// sit on the origin rather than ahead of it.
const epsilonParallel = 1e-12

// Ray is immutable after construction; NewRay normalizes the direction so
// every Ray in the system satisfies the unit-direction invariant.
type Ray struct {
	Origin    prim.Vec3
	Direction prim.Vec3
}

// NewRay constructs a Ray, normalizing direction.
func NewRay(origin, direction prim.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point origin + t*direction.
func (r Ray) At(t float64) prim.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Sphere is a primitive defined by a center and a positive radius.
type Sphere struct {
	Center prim.Vec3
	Radius float64
}

// Triangle is three ordered vertices. Winding order (v1-v0) x (v2-v0)
// determines the geometric normal.
type Triangle struct {
	V0, V1, V2 prim.Vec3
}

// GeometricNormal returns the (non-unit-guaranteed only insofar as the
// cross product of two unit-length edges needn't be unit; it is normalized
// here) normal implied by vertex winding, with no regard for which side the
// ray approached from.
func (t Triangle) GeometricNormal() prim.Vec3 {
	ab := t.V1.Sub(t.V0)
	ac := t.V2.Sub(t.V0)
	return ab.Cross(ac).Normalize()
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	ab := t.V1.Sub(t.V0)
	ac := t.V2.Sub(t.V0)
	return ab.Cross(ac).Length() / 2
}

// Intersection is the hit record returned by the geometry kernel: the
// world-space position, a unit normal oriented toward the incoming ray, and
// the non-negative distance t along the ray such that Origin + t*Direction
// == Position.
type Intersection struct {
	Position prim.Vec3
	Normal   prim.Vec3
	Distance float64
}

// faceNormal flips n so that it points back toward the incoming ray
// direction d (i.e. n.Dot(d) <= 0).
func faceNormal(n, d prim.Vec3) prim.Vec3 {
	if n.Dot(d) > 0 {
		return n.Neg()
	}
	return n
}

// IntersectSphere finds the nearest positive intersection of ray with
// sphere. It reports a miss by returning ok == false; the Intersection
// value is unspecified in that case.
func IntersectSphere(ray Ray, sphere Sphere) (Intersection, bool) {
	l := sphere.Center.Sub(ray.Origin)
	tca := l.Dot(ray.Direction)
	if tca < 0 {
		return Intersection{}, false
	}
	d2 := l.Dot(l) - tca*tca
	r2 := sphere.Radius * sphere.Radius
	if d2 > r2 {
		return Intersection{}, false
	}
	thc := math.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 < 0 {
		t0 = t1
		if t0 < 0 {
			return Intersection{}, false
		}
	}
	pos := ray.At(t0)
	normal := faceNormal(pos.Sub(sphere.Center).Normalize(), ray.Direction)
	return Intersection{Position: pos, Normal: normal, Distance: t0}, true
}

// IntersectTriangle finds the intersection of ray with tri using the
// Möller-Trumbore algorithm.
func IntersectTriangle(ray Ray, tri Triangle) (Intersection, bool) {
	ab := tri.V1.Sub(tri.V0)
	ac := tri.V2.Sub(tri.V0)
	h := ray.Direction.Cross(ac)
	a := ab.Dot(h)
	if a > -epsilonParallel && a < epsilonParallel {
		return Intersection{}, false
	}
	f := 1.0 / a
	s := ray.Origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Intersection{}, false
	}
	q := s.Cross(ab)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Intersection{}, false
	}
	t := f * ac.Dot(q)
	if t <= epsilonParallel {
		return Intersection{}, false
	}
	pos := ray.At(t)
	normal := faceNormal(ab.Cross(ac).Normalize(), ray.Direction)
	dist := pos.Sub(ray.Origin).Length()
	return Intersection{Position: pos, Normal: normal, Distance: dist}, true
}

// Reflect reflects incoming direction d around a normal n that is oriented
// toward the incoming ray.
func Reflect(d, n prim.Vec3) prim.Vec3 {
	cos1 := math.Abs(d.Dot(n))
	return d.Add(n.Scale(2 * cos1)).Normalize()
}

// Refract computes the refracted direction of incoming direction d across a
// surface with normal n (oriented toward the incoming ray) and index ratio
// eta = etaFrom/etaTo. ok is false on total internal reflection.
func Refract(d, n prim.Vec3, eta float64) (prim.Vec3, bool) {
	c1 := math.Abs(d.Dot(n))
	sin2 := eta * math.Sqrt(1-c1*c1)
	if sin2 > 1 || sin2 < -1 {
		return prim.Vec3{}, false
	}
	c2 := math.Sqrt(1 - sin2*sin2)
	return d.Scale(eta).Add(n.Scale(eta*c1 - c2)).Normalize(), true
}

// Barycentric returns the barycentric weights (u, v, w) of point p assumed
// to lie in the plane of tri, corresponding to vertices (V0, V1, V2)
// respectively.
func Barycentric(tri Triangle, p prim.Vec3) (u, v, w float64) {
	ab := tri.V1.Sub(tri.V0)
	ac := tri.V2.Sub(tri.V0)
	ap := p.Sub(tri.V0)
	bp := p.Sub(tri.V1)
	cp := p.Sub(tri.V2)
	area := ab.Cross(ac).Length()
	u = cp.Cross(bp).Length() / area
	v = ap.Cross(cp).Length() / area
	w = ap.Cross(bp).Length() / area
	return u, v, w
}
