package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/soft3d"
)

// LoadOBJ reads an OBJ file. Material libraries and textures are resolved
// relative to the file's directory.
func LoadOBJ(path string) ([]*soft3d.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	defer func() { _ = f.Close() }()

	meshes, err := ParseOBJ(f, DirOpener(filepath.Dir(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return meshes, nil
}

// ParseOBJ parses an OBJ stream into one mesh per object, group or material
// change. Meshes share the position and UV arrays. Groups that end up with
// no faces are dropped.
//
// open resolves mtllib references; with a nil opener they are skipped.
func ParseOBJ(r io.Reader, open Opener) ([]*soft3d.Mesh, error) {
	p := &objParser{
		open:      open,
		materials: make(map[string]*soft3d.Material),
	}
	p.cur = &objGroup{name: "default"}
	p.groups = append(p.groups, p.cur)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.processLine(scanner.Text()); err != nil {
			return nil, lineError("obj", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: read obj: %w", err)
	}
	return p.build()
}

type objGroup struct {
	name     string
	material *soft3d.Material
	faces    []soft3d.Face
	flat     []int // faces that need a generated normal
}

type objParser struct {
	open      Opener
	line      int
	positions []soft3d.Vec3
	normals   []soft3d.Vec3
	uvs       []soft3d.Vec2
	materials map[string]*soft3d.Material
	groups    []*objGroup
	cur       *objGroup
}

func (p *objParser) processLine(text string) error {
	fields := strings.Fields(stripComment(text))
	if len(fields) == 0 {
		return nil
	}
	key, args := fields[0], fields[1:]

	switch key {
	case "v":
		if len(args) < 3 {
			return fmt.Errorf("v: want x y z: %w", ErrSyntax)
		}
		v, err := parseFloats(args[:3])
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p.positions = append(p.positions, soft3d.V3(v[0], v[1], v[2]))
	case "vt":
		if len(args) < 1 {
			return fmt.Errorf("vt: want u [v]: %w", ErrSyntax)
		}
		if len(args) > 2 {
			args = args[:2]
		}
		v, err := parseFloats(args)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		uv := soft3d.V2(v[0], 0)
		if len(v) == 2 {
			uv.Y = v[1]
		}
		p.uvs = append(p.uvs, uv)
	case "vn":
		if len(args) < 3 {
			return fmt.Errorf("vn: want x y z: %w", ErrSyntax)
		}
		v, err := parseFloats(args[:3])
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.normals = append(p.normals, soft3d.V3(v[0], v[1], v[2]).Normalize())
	case "f":
		return p.face(args)
	case "o", "g":
		name := strings.Join(args, " ")
		if name == "" {
			name = "default"
		}
		p.startGroup(name, p.cur.material)
	case "usemtl":
		name := strings.Join(args, " ")
		m, ok := p.materials[name]
		if !ok {
			soft3d.Logger().Warn("meshio: unknown material", "material", name, "line", p.line)
		}
		if m != p.cur.material {
			p.startGroup(p.cur.name, m)
		}
	case "mtllib":
		for _, name := range args {
			if err := p.loadLibrary(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// startGroup begins a new mesh unless the current one is still empty, in
// which case it is renamed in place.
func (p *objParser) startGroup(name string, m *soft3d.Material) {
	if len(p.cur.faces) == 0 {
		p.cur.name = name
		p.cur.material = m
		return
	}
	p.cur = &objGroup{name: name, material: m}
	p.groups = append(p.groups, p.cur)
}

func (p *objParser) loadLibrary(name string) error {
	if p.open == nil {
		soft3d.Logger().Debug("meshio: no opener, skipping material library", "file", name)
		return nil
	}
	rc, err := p.open(name)
	if err != nil {
		return fmt.Errorf("mtllib %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	lib, err := ParseMTL(rc, p.open)
	if err != nil {
		return fmt.Errorf("mtllib %s: %w", name, err)
	}
	for k, v := range lib {
		p.materials[k] = v
	}
	return nil
}

// face parses a polygon and fans it into triangles (0, k, k+1).
func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("f: %d corners: %w", len(args), ErrMalformedFace)
	}
	type corner struct{ pos, uv, normal int }
	corners := make([]corner, len(args))
	hasNormals := true
	for i, a := range args {
		parts := strings.Split(a, "/")
		if len(parts) > 3 {
			return fmt.Errorf("f: corner %q: %w", a, ErrMalformedFace)
		}
		c := corner{uv: -1, normal: -1}
		var err error
		if c.pos, err = resolveIndex(parts[0], len(p.positions)); err != nil {
			return fmt.Errorf("f: position %w", err)
		}
		if len(parts) > 1 && parts[1] != "" {
			if c.uv, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
				return fmt.Errorf("f: uv %w", err)
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c.normal, err = resolveIndex(parts[2], len(p.normals)); err != nil {
				return fmt.Errorf("f: normal %w", err)
			}
		}
		if c.normal < 0 {
			hasNormals = false
		}
		corners[i] = c
	}

	for k := 1; k+1 < len(corners); k++ {
		a, b, c := corners[0], corners[k], corners[k+1]
		f := soft3d.Face{
			Position: [3]int{a.pos, b.pos, c.pos},
			Normal:   [3]int{a.normal, b.normal, c.normal},
			UV:       [3]int{a.uv, b.uv, c.uv},
		}
		if !hasNormals {
			p.cur.flat = append(p.cur.flat, len(p.cur.faces))
		}
		p.cur.faces = append(p.cur.faces, f)
	}
	return nil
}

// resolveIndex converts a 1-based (or negative, relative to the end) OBJ
// index into a 0-based one.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, ErrMalformedFace)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && n+i >= 0:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d of %d: %w", i, n, ErrMalformedFace)
	}
}

func (p *objParser) build() ([]*soft3d.Mesh, error) {
	var meshes []*soft3d.Mesh
	faces := 0
	for _, g := range p.groups {
		if len(g.faces) == 0 {
			continue
		}
		normals := p.normals
		if len(g.flat) > 0 {
			normals = make([]soft3d.Vec3, len(p.normals), len(p.normals)+len(g.flat))
			copy(normals, p.normals)
			for _, fi := range g.flat {
				f := &g.faces[fi]
				a := p.positions[f.Position[0]]
				b := p.positions[f.Position[1]]
				c := p.positions[f.Position[2]]
				f.Normal = [3]int{len(normals), len(normals), len(normals)}
				normals = append(normals, b.Sub(a).Cross(c.Sub(a)).Normalize())
			}
		}
		m, err := soft3d.NewMesh(g.name, p.positions, normals, p.uvs, g.faces)
		if err != nil {
			return nil, fmt.Errorf("meshio: %w", err)
		}
		m.Material = g.material
		meshes = append(meshes, m)
		faces += len(g.faces)
	}
	soft3d.Logger().Debug("meshio: obj parsed",
		"meshes", len(meshes), "positions", len(p.positions), "faces", faces)
	return meshes, nil
}
