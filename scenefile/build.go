package scenefile

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/meshio"
)

// Default framebuffer size when the document leaves it unset.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

const builtinPrefix = "builtin:"

// Result is a built document: everything needed to render one frame.
type Result struct {
	Width, Height int
	ClearColor    soft3d.RGBA
	Scene         *soft3d.Scene
}

// NewFramebuffer allocates a framebuffer with the document's size and clear
// color.
func (r *Result) NewFramebuffer() *soft3d.Framebuffer {
	return soft3d.NewFramebuffer(r.Width, r.Height, soft3d.WithClearColor(r.ClearColor))
}

// Resize changes the target size, keeping the scene viewport in step.
func (r *Result) Resize(width, height int) {
	r.Width, r.Height = width, height
	r.Scene.Viewer.Viewport = soft3d.Viewport{Width: width, Height: height}
}

// Build resolves meshes and textures (relative to baseDir) and assembles
// the scene. OBJ files yielding several meshes become one object per mesh,
// named "object/mesh", sharing the object's transform.
func (d *Document) Build(baseDir string) (*Result, error) {
	b := &builder{
		baseDir: baseDir,
		objs:    make(map[string][]*soft3d.Mesh),
	}
	return b.build(d)
}

type builder struct {
	baseDir string
	filter  soft3d.Filter
	objs    map[string][]*soft3d.Mesh
}

func (b *builder) build(d *Document) (*Result, error) {
	res := &Result{
		Width:      d.Framebuffer.Width,
		Height:     d.Framebuffer.Height,
		ClearColor: d.Framebuffer.Clear.or(soft3d.Black),
	}
	if res.Width == 0 {
		res.Width = DefaultWidth
	}
	if res.Height == 0 {
		res.Height = DefaultHeight
	}
	if res.Width < 0 || res.Height < 0 {
		return nil, fmt.Errorf("%w: framebuffer size %dx%d", ErrInvalid, res.Width, res.Height)
	}

	viewer, err := b.viewer(d, res.Width, res.Height)
	if err != nil {
		return nil, err
	}
	res.Scene = &soft3d.Scene{Viewer: viewer}

	for i := range d.Objects {
		objs, err := b.object(&d.Objects[i])
		if err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
		res.Scene.Objects = append(res.Scene.Objects, objs...)
	}
	soft3d.Logger().Debug("scenefile: built",
		"objects", len(res.Scene.Objects), "width", res.Width, "height", res.Height,
		"algorithm", viewer.Algorithm)
	return res, nil
}

func (b *builder) viewer(d *Document, width, height int) (soft3d.Viewer, error) {
	cam := soft3d.DefaultCamera()
	cam.Eye = d.Camera.Eye.or(cam.Eye)
	cam.Target = d.Camera.Target.or(cam.Target)
	cam.Up = d.Camera.Up.or(cam.Up)
	if d.Camera.FovY != 0 {
		cam.FovY = d.Camera.FovY
	}
	if d.Camera.Near != 0 {
		cam.Near = d.Camera.Near
	}
	if d.Camera.Far != 0 {
		cam.Far = d.Camera.Far
	}
	if cam.FovY <= 0 || cam.FovY >= 180 || cam.Near <= 0 || cam.Far <= cam.Near {
		return soft3d.Viewer{}, fmt.Errorf("%w: camera fov %v near %v far %v", ErrInvalid, cam.FovY, cam.Near, cam.Far)
	}

	v := soft3d.Viewer{
		Camera:   cam,
		Viewport: soft3d.Viewport{Width: width, Height: height},
		Light: soft3d.Light{
			Position: d.Light.Position.or(cam.Eye),
			Color:    d.Light.Color.or(soft3d.White),
		},
	}

	r := d.Render
	var err error
	if r.Algorithm != "" {
		if v.Algorithm, err = soft3d.ParseAlgorithm(r.Algorithm); err != nil {
			return v, fmt.Errorf("%w: render.algorithm: %w", ErrInvalid, err)
		}
	}
	if r.Topology != "" {
		if v.Topology, err = soft3d.ParseTopology(r.Topology); err != nil {
			return v, fmt.Errorf("%w: render.topology: %w", ErrInvalid, err)
		}
	}
	if v.LineAlgorithm, err = soft3d.ParseLineAlgorithm(r.Line); err != nil {
		return v, fmt.Errorf("%w: render.line: %w", ErrInvalid, err)
	}
	if b.filter, err = soft3d.ParseFilter(r.Filter); err != nil {
		return v, fmt.Errorf("%w: render.filter: %w", ErrInvalid, err)
	}
	if r.DepthTest != nil {
		v.DisableDepthTest = !*r.DepthTest
	}
	switch len(r.Scissor) {
	case 0:
	case 4:
		rect := image.Rect(r.Scissor[0], r.Scissor[1], r.Scissor[2], r.Scissor[3])
		v.Options = append(v.Options, soft3d.WithScissor(rect))
	default:
		return v, fmt.Errorf("%w: render.scissor wants [x0, y0, x1, y1], got %d values", ErrInvalid, len(r.Scissor))
	}
	return v, nil
}

func (b *builder) object(oc *ObjectConfig) ([]*soft3d.Object, error) {
	if oc.Mesh == "" {
		return nil, fmt.Errorf("%w: object %q has no mesh", ErrInvalid, oc.Name)
	}
	meshes, err := b.meshes(oc.Mesh)
	if err != nil {
		return nil, err
	}

	model := soft3d.Model(
		oc.Position.or(soft3d.Vec3{}),
		oc.Rotation.or(soft3d.Vec3{}),
		oc.Scale.or(soft3d.V3(1, 1, 1)),
	)
	var mat *soft3d.Material
	if oc.Material != nil {
		if mat, err = b.material(oc.Material); err != nil {
			return nil, err
		}
	}

	name := oc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(strings.TrimPrefix(oc.Mesh, builtinPrefix)), filepath.Ext(oc.Mesh))
	}
	objs := make([]*soft3d.Object, len(meshes))
	for i, m := range meshes {
		o := &soft3d.Object{
			Name:     name,
			Hidden:   oc.Hidden,
			Model:    model,
			Mesh:     m,
			Material: mat,
		}
		if len(meshes) > 1 {
			o.Name = name + "/" + m.Name
		}
		objs[i] = o
	}
	return objs, nil
}

// meshes resolves a mesh reference. OBJ files are loaded once per build.
func (b *builder) meshes(ref string) ([]*soft3d.Mesh, error) {
	if kind, ok := strings.CutPrefix(ref, builtinPrefix); ok {
		m, err := b.builtin(kind)
		if err != nil {
			return nil, err
		}
		return []*soft3d.Mesh{m}, nil
	}

	path := b.path(ref)
	if ms, ok := b.objs[path]; ok {
		return ms, nil
	}
	ms, err := meshio.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: %s has no faces", ErrInvalid, ref)
	}
	b.objs[path] = ms
	return ms, nil
}

func (b *builder) builtin(kind string) (*soft3d.Mesh, error) {
	switch kind {
	case "cube":
		return soft3d.NewCube(), nil
	case "plane":
		return soft3d.NewPlane(), nil
	case "sphere":
		return soft3d.NewUVSphere(16, 32), nil
	default:
		return nil, fmt.Errorf("%w: unknown builtin mesh %q", ErrInvalid, kind)
	}
}

func (b *builder) material(mc *MaterialConfig) (*soft3d.Material, error) {
	def := soft3d.DefaultMaterial()
	m := &soft3d.Material{
		Name:         "scene",
		Ambient:      mc.Ambient.or(def.Ambient),
		Diffuse:      mc.Diffuse.or(def.Diffuse),
		Specular:     mc.Specular.or(def.Specular),
		Shininess:    def.Shininess,
		Transparency: mc.Transparency,
	}
	if mc.Shininess != nil {
		m.Shininess = *mc.Shininess
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return nil, fmt.Errorf("%w: transparency %v outside [0, 1]", ErrInvalid, m.Transparency)
	}
	if mc.Texture != "" {
		tex, err := soft3d.LoadTexture(b.path(mc.Texture), b.filter)
		if err != nil {
			return nil, err
		}
		m.Texture = tex
	}
	return m, nil
}

func (b *builder) path(ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(b.baseDir, ref)
}
