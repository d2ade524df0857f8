package soft3d

import "fmt"

// Camera describes a perspective eye. Its matrices are recomputed on every
// call; nothing is cached, so changing a field takes effect immediately.
type Camera struct {
	Eye    Vec3
	Target Vec3
	Up     Vec3
	FovY   float64 // degrees
	Near   float64
	Far    float64
}

// DefaultCamera looks at the origin from +Z.
func DefaultCamera() Camera {
	return Camera{
		Eye:  V3(0, 0, 5),
		Up:   V3(0, 1, 0),
		FovY: 60,
		Near: 0.1,
		Far:  100,
	}
}

// View returns the world → view matrix.
func (c Camera) View() Mat4 {
	return LookAt(c.Eye, c.Target, c.Up)
}

// Projection returns the view → clip matrix for the given aspect ratio.
func (c Camera) Projection(aspect float64) Mat4 {
	return Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection(aspect) * View().
func (c Camera) ViewProjection(aspect float64) Mat4 {
	return c.Projection(aspect).Mul(c.View())
}

// Light is a point light in world space.
type Light struct {
	Position Vec3
	Color    RGBA
}

// Object is one drawable in a flattened scene: a resolved model matrix and
// the mesh to draw with it. Objects without a mesh are skipped.
type Object struct {
	Name   string
	Hidden bool
	Model  Mat4
	Mesh   *Mesh
	// Material overrides Mesh.Material when set.
	Material *Material
}

// material returns the object's effective material.
func (o *Object) material() *Material {
	switch {
	case o.Material != nil:
		return o.Material
	case o.Mesh != nil && o.Mesh.Material != nil:
		return o.Mesh.Material
	default:
		return DefaultMaterial()
	}
}

// Viewer holds everything about how a scene is looked at and drawn.
type Viewer struct {
	Camera        Camera
	Viewport      Viewport
	Topology      Topology
	Algorithm     Algorithm
	LineAlgorithm LineAlgorithm
	Light         Light

	// DisableDepthTest turns the depth test off for every object.
	DisableDepthTest bool

	// Options are applied to every per-object context after the fields
	// above (e.g. WithScissor, WithStencil).
	Options []ContextOption

	// Visible filters objects; nil draws every non-hidden object.
	Visible func(o *Object) bool
}

// Context builds the rendering context for one draw call.
func (v *Viewer) Context(u *Uniforms) *Context {
	opts := []ContextOption{
		WithTopology(v.Topology),
		WithAlgorithm(v.Algorithm),
		WithLineAlgorithm(v.LineAlgorithm),
		WithDepthTest(!v.DisableDepthTest),
		WithUniforms(u),
	}
	return NewContext(v.Viewport, append(opts, v.Options...)...)
}

// Scene is the flattened list of objects for one frame plus the viewer.
type Scene struct {
	Objects []*Object
	Viewer  Viewer
}

// ObjectUniforms builds the uniform table for one object: transforms,
// view-space light and the effective material.
func ObjectUniforms(o *Object, view, projection Mat4, light Light) *Uniforms {
	u := NewUniforms()
	mv := view.Mul(o.Model)

	u.SetMatrix(UniformModel, o.Model)
	u.SetMatrix(UniformView, view)
	u.SetMatrix(UniformProjection, projection)
	u.SetMatrix(UniformModelView, mv)
	u.SetMatrix(UniformMVP, projection.Mul(mv))
	u.SetMatrix(UniformNormalMatrix, NormalMatrix(mv))

	u.SetPoint(UniformLightPosition, view.MulPoint(light.Position).XYZ())
	u.SetColor(UniformLightColor, light.Color)

	m := o.material()
	u.SetColor(UniformColor, m.Diffuse)
	u.SetColor(UniformAmbient, m.Ambient)
	u.SetColor(UniformDiffuse, m.Diffuse)
	u.SetColor(UniformSpecular, m.Specular)
	u.SetScalar(UniformShininess, m.Shininess)
	u.SetScalar(UniformTransparency, m.Transparency)
	if m.Texture != nil {
		u.SetTexture(UniformTexture, m.Texture)
	}
	return u
}

// RenderScene draws every visible object in list order. View and
// projection are computed once per call from the viewer's camera. The
// first failing draw call aborts the frame.
func (r *Renderer) RenderScene(s *Scene) error {
	v := &s.Viewer
	view := v.Camera.View()
	projection := v.Camera.Projection(v.Viewport.Aspect())

	drawn := 0
	for _, o := range s.Objects {
		if o == nil || o.Hidden || o.Mesh == nil {
			continue
		}
		if v.Visible != nil && !v.Visible(o) {
			continue
		}
		ctx := v.Context(ObjectUniforms(o, view, projection, v.Light))
		if err := r.Render(ctx, o.Mesh); err != nil {
			return fmt.Errorf("soft3d: render object %q: %w", o.Name, err)
		}
		drawn++
	}

	Logger().Info("soft3d: scene rendered", "objects", len(s.Objects), "drawn", drawn)
	return nil
}
