package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/nrieke/objtrace/internal/prim"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

func TestLoadTriangleAndSphereAndLight(t *testing.T) {
	obj := `
mtllib scene.mtl
usemtl red
v -1 -1 0
v 1 -1 0
v 0 1 0
f 1 2 3
S 0 0 -5 2
P 10 10 10 1 1 1
`
	mtl := `
newmtl red
Ka 0.1 0.0 0.0
Kd 0.8 0.1 0.1
Ks 1 1 1
Ns 32
al 0.7 0.2 0.1
`
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scene.obj"), obj)
	writeFile(t, filepath.Join(dir, "scene.mtl"), mtl)

	got, err := Load(filepath.Join(dir, "scene.obj"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(got.Objects) != 1 {
		t.Fatalf("len(Objects) = %d, want 1", len(got.Objects))
	}
	if len(got.SphereObjects) != 1 {
		t.Fatalf("len(SphereObjects) = %d, want 1", len(got.SphereObjects))
	}
	if len(got.Lights) != 1 {
		t.Fatalf("len(Lights) = %d, want 1", len(got.Lights))
	}

	wantTri := struct{ V0, V1, V2 prim.Vec3 }{
		V0: prim.Vec3{X: -1, Y: -1},
		V1: prim.Vec3{X: 1, Y: -1},
		V2: prim.Vec3{Y: 1},
	}
	tri := got.Objects[0].Triangle
	if diff := cmp.Diff([3]prim.Vec3{tri.V0, tri.V1, tri.V2}, [3]prim.Vec3{wantTri.V0, wantTri.V1, wantTri.V2}, approxOpts); diff != "" {
		t.Errorf("triangle vertices mismatch (-got +want):\n%s", diff)
	}
	for i, n := range got.Objects[0].Normals {
		if n != nil {
			t.Errorf("Normals[%d] = %v, want nil (face had no normal indices)", i, *n)
		}
	}

	mat := got.Objects[0].Material
	if mat == nil || mat.Name != "red" {
		t.Fatalf("Material = %v, want %q", mat, "red")
	}
	if diff := cmp.Diff(mat.Albedo, [3]float64{0.7, 0.2, 0.1}, approxOpts); diff != "" {
		t.Errorf("Albedo mismatch (-got +want):\n%s", diff)
	}

	sphere := got.SphereObjects[0]
	if diff := cmp.Diff(sphere.Sphere.Center, prim.Vec3{Z: -5}, approxOpts); diff != "" {
		t.Errorf("Sphere.Center mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(sphere.Sphere.Radius, 2.0, approxOpts); diff != "" {
		t.Errorf("Sphere.Radius mismatch (-got +want):\n%s", diff)
	}
	if sphere.Material != mat {
		t.Errorf("SphereObject.Material = %p, want shared pointer %p", sphere.Material, mat)
	}
}

func TestLoadFanTriangulatesPolygon(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scene.obj"), obj)

	got, err := Load(filepath.Join(dir, "scene.obj"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, want 2 (fan-triangulated quad)", len(got.Objects))
	}
}

func TestLoadPerVertexNormalsAndNegativeIndices(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 1
vn 0 0 1
f -3//-3 -2//-2 -1//-1
`
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scene.obj"), obj)

	got, err := Load(filepath.Join(dir, "scene.obj"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Objects) != 1 {
		t.Fatalf("len(Objects) = %d, want 1", len(got.Objects))
	}
	for i, n := range got.Objects[0].Normals {
		if n == nil {
			t.Fatalf("Normals[%d] = nil, want (0,0,1)", i)
		}
		if diff := cmp.Diff(*n, prim.Vec3{Z: 1}, approxOpts); diff != "" {
			t.Errorf("Normals[%d] mismatch (-got +want):\n%s", i, diff)
		}
	}
}

func TestLoadUnknownMaterialIsFatal(t *testing.T) {
	obj := "usemtl nonexistent\n"
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scene.obj"), obj)

	_, err := Load(filepath.Join(dir, "scene.obj"))
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Load() error = %v, want wrapping ErrUnknownMaterial", err)
	}
}

func TestLoadMalformedNumberIsFatal(t *testing.T) {
	obj := "v 1 not-a-number 3\n"
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scene.obj"), obj)

	_, err := Load(filepath.Join(dir, "scene.obj"))
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("Load() error = %v, want wrapping ErrMalformedLine", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.obj"))
	if err == nil {
		t.Fatal("Load() error = nil, want an error for a missing file")
	}
}

func TestLoadEmptyScene(t *testing.T) {
	got, err := load(strings.NewReader(""), ".")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if len(got.Objects) != 0 || len(got.SphereObjects) != 0 || len(got.Lights) != 0 {
		t.Errorf("load(\"\") = %+v, want an empty scene", got)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
