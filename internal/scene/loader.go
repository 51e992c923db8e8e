package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nrieke/objtrace/internal/geom"
	"github.com/nrieke/objtrace/internal/prim"
)

// Sentinel errors a caller can match with errors.Is.
var (
	// ErrUnknownMaterial is returned when a "usemtl" line names a material
	// absent from the loaded MTL library.
	ErrUnknownMaterial = errors.New("scene: usemtl references unknown material")
	// ErrMalformedLine is returned when a directive's operands can't be
	// parsed as the numbers or indices it expects.
	ErrMalformedLine = errors.New("scene: malformed line")
)

// Load reads a Wavefront OBJ file (extended with the "S" sphere and "P"
// point-light directives) and its companion MTL material library,
// returning the assembled Scene. The loader owns all OBJ/MTL tokenization
// so the rendering pipeline only ever sees a fully resolved Scene.
func Load(objPath string) (*Scene, error) {
	f, err := os.Open(objPath)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", objPath, err)
	}
	defer f.Close()
	return load(f, filepath.Dir(objPath))
}

func load(r io.Reader, baseDir string) (*Scene, error) {
	sc := &Scene{Materials: map[string]*Material{}}
	var vertices, normals []prim.Vec3
	var current *Material

	lineNo := 0
	scanner := bufio.NewScanner(r)
	// OBJ/MTL files can have very long vertex/face lines for dense meshes.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "mtllib":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: mtllib needs a filename", ErrMalformedLine, lineNo)
			}
			mtlPath := filepath.Join(baseDir, fields[1])
			materials, err := loadMaterials(mtlPath)
			if err != nil {
				return nil, err
			}
			sc.Materials = materials

		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: usemtl needs a material name", ErrMalformedLine, lineNo)
			}
			mat, ok := sc.Materials[fields[1]]
			if !ok {
				return nil, fmt.Errorf("%w: %q (line %d)", ErrUnknownMaterial, fields[1], lineNo)
			}
			current = mat

		case "S":
			center, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			radius, err := parseFloat(fields, 4, lineNo)
			if err != nil {
				return nil, err
			}
			sc.SphereObjects = append(sc.SphereObjects, SphereObject{
				Material: current,
				Sphere:   geom.Sphere{Center: center, Radius: radius},
			})

		case "P":
			position, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			intensity, err := parseVec3(fields, 4, lineNo)
			if err != nil {
				return nil, err
			}
			sc.Lights = append(sc.Lights, Light{Position: position, Intensity: intensity})

		case "v":
			v, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, v)

		case "vn":
			n, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			normals = append(normals, n)

		case "f":
			if err := parseFace(sc, fields, vertices, normals, current, lineNo); err != nil {
				return nil, err
			}

		default:
			// "o", "s", "vt", "g" and other standard OBJ directives don't
			// affect this scene model; ignore them rather than error.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scene: read: %w", err)
	}
	return sc, nil
}

// faceIndex is a 1-based (vertex, normal) pair parsed from a face operand
// like "3", "3/", "3/4", or "3//5". A zero normal index means absent.
type faceIndex struct {
	vertex, normal int
}

func parseFace(sc *Scene, fields []string, vertices, normals []prim.Vec3, mat *Material, lineNo int) error {
	if len(fields) < 4 {
		return fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrMalformedLine, lineNo)
	}
	indexes := make([]faceIndex, 0, len(fields)-1)
	for _, operand := range fields[1:] {
		idx, err := parseFaceIndex(operand, lineNo)
		if err != nil {
			return err
		}
		indexes = append(indexes, idx)
	}

	v0, err := resolveIndex(indexes[0].vertex, len(vertices), lineNo)
	if err != nil {
		return err
	}
	// Fan-triangulate: (v0, vi, vi+1) for i in [1, N-2].
	for i := 1; i < len(indexes)-1; i++ {
		v1, err := resolveIndex(indexes[i].vertex, len(vertices), lineNo)
		if err != nil {
			return err
		}
		v2, err := resolveIndex(indexes[i+1].vertex, len(vertices), lineNo)
		if err != nil {
			return err
		}
		obj := Object{
			Material: mat,
			Triangle: geom.Triangle{V0: vertices[v0], V1: vertices[v1], V2: vertices[v2]},
		}
		for slot, fi := range []faceIndex{indexes[0], indexes[i], indexes[i+1]} {
			if fi.normal == 0 {
				continue
			}
			ni, err := resolveIndex(fi.normal, len(normals), lineNo)
			if err != nil {
				return err
			}
			n := normals[ni]
			obj.Normals[slot] = &n
		}
		sc.Objects = append(sc.Objects, obj)
	}
	return nil
}

// parseFaceIndex parses one "i", "i/", "i/t", or "i//n" operand, keeping
// only the vertex and normal indices (the texture index is consulted by
// nothing in this scene model).
func parseFaceIndex(operand string, lineNo int) (faceIndex, error) {
	parts := strings.Split(operand, "/")
	vertex, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceIndex{}, fmt.Errorf("%w: line %d: bad face vertex index %q: %v", ErrMalformedLine, lineNo, operand, err)
	}
	var normal int
	if len(parts) == 3 && parts[2] != "" {
		normal, err = strconv.Atoi(parts[2])
		if err != nil {
			return faceIndex{}, fmt.Errorf("%w: line %d: bad face normal index %q: %v", ErrMalformedLine, lineNo, operand, err)
		}
	}
	return faceIndex{vertex: vertex, normal: normal}, nil
}

// resolveIndex converts a 1-based OBJ index (negative meaning "relative to
// the end of the list") into a 0-based slice index.
func resolveIndex(ind, length, lineNo int) (int, error) {
	var resolved int
	if ind < 0 {
		resolved = length + ind
	} else {
		resolved = ind - 1
	}
	if resolved < 0 || resolved >= length {
		return 0, fmt.Errorf("%w: line %d: index %d out of range (have %d)", ErrMalformedLine, lineNo, ind, length)
	}
	return resolved, nil
}

func loadMaterials(path string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open mtllib %s: %w", path, err)
	}
	defer f.Close()

	materials := map[string]*Material{}
	var current *Material

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: mtl line %d: newmtl needs a name", ErrMalformedLine, lineNo)
			}
			m := NewMaterial(fields[1])
			materials[fields[1]] = &m
			current = &m
		case "Ka":
			if current == nil {
				continue
			}
			v, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.Ambient = v
		case "Kd":
			if current == nil {
				continue
			}
			v, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.Diffuse = v
		case "Ks":
			if current == nil {
				continue
			}
			v, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.Specular = v
		case "Ke":
			if current == nil {
				continue
			}
			v, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.Emissive = v
		case "Ns":
			if current == nil {
				continue
			}
			n, err := parseFloat(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.SpecularExponent = n
		case "Ni":
			if current == nil {
				continue
			}
			n, err := parseFloat(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.RefractionIndex = n
		case "al":
			if current == nil {
				continue
			}
			v, err := parseVec3(fields, 1, lineNo)
			if err != nil {
				return nil, err
			}
			current.Albedo = [3]float64{v.X, v.Y, v.Z}
		default:
			// Unrecognized MTL directives (illum, map_Kd, d, ...) aren't
			// part of this material model; ignore them.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scene: read mtllib: %w", err)
	}
	return materials, nil
}

func parseVec3(fields []string, start, lineNo int) (prim.Vec3, error) {
	if start+3 > len(fields) {
		return prim.Vec3{}, fmt.Errorf("%w: line %d: expected 3 numbers starting at field %d", ErrMalformedLine, lineNo, start)
	}
	x, err := strconv.ParseFloat(fields[start], 64)
	if err != nil {
		return prim.Vec3{}, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
	}
	y, err := strconv.ParseFloat(fields[start+1], 64)
	if err != nil {
		return prim.Vec3{}, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
	}
	z, err := strconv.ParseFloat(fields[start+2], 64)
	if err != nil {
		return prim.Vec3{}, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
	}
	return prim.Vec3{X: x, Y: y, Z: z}, nil
}

func parseFloat(fields []string, index, lineNo int) (float64, error) {
	if index >= len(fields) {
		return 0, fmt.Errorf("%w: line %d: expected a number at field %d", ErrMalformedLine, lineNo, index)
	}
	v, err := strconv.ParseFloat(fields[index], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
	}
	return v, nil
}
