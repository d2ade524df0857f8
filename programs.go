package soft3d

import (
	"errors"
	"math"
)

// optionalColor returns the named color, or def if it is not bound.
// A value of the wrong kind is still an error.
func optionalColor(u *Uniforms, name string, def RGBA) (RGBA, error) {
	c, err := u.Color(name)
	if errors.Is(err, ErrUniformNotFound) {
		return def, nil
	}
	return c, err
}

func optionalScalar(u *Uniforms, name string, def float64) (float64, error) {
	s, err := u.Scalar(name)
	if errors.Is(err, ErrUniformNotFound) {
		return def, nil
	}
	return s, err
}

func optionalPoint(u *Uniforms, name string, def Vec3) (Vec3, error) {
	p, err := u.Point(name)
	if errors.Is(err, ErrUniformNotFound) {
		return def, nil
	}
	return p, err
}

// transform holds the matrices every program needs.
type transform struct {
	mvp       Mat4
	modelView Mat4
	normal    Mat4
}

// bind reads "mvp" (required) and, when lit is set, "modelView" and
// "normalMatrix". A missing normal matrix is derived from the model-view.
func (t *transform) bind(u *Uniforms, lit bool) error {
	mvp, err := u.Matrix(UniformMVP)
	if err != nil {
		return err
	}
	t.mvp = mvp
	if !lit {
		return nil
	}

	mv, err := u.Matrix(UniformModelView)
	if err != nil {
		return err
	}
	t.modelView = mv

	nm, err := u.Matrix(UniformNormalMatrix)
	switch {
	case errors.Is(err, ErrUniformNotFound):
		t.normal = NormalMatrix(mv)
	case err != nil:
		return err
	default:
		t.normal = nm
	}
	return nil
}

// lighting is a single point light with Blinn-Phong reflectance, evaluated
// in view space (eye at the origin).
type lighting struct {
	lightPos     Vec3
	lightColor   RGBA
	ambient      RGBA
	diffuse      RGBA
	specular     RGBA
	shininess    float64
	transparency float64
}

func (l *lighting) bind(u *Uniforms) error {
	var err error
	def := DefaultMaterial()
	if l.lightPos, err = optionalPoint(u, UniformLightPosition, V3(0, 0, 0)); err != nil {
		return err
	}
	if l.lightColor, err = optionalColor(u, UniformLightColor, White); err != nil {
		return err
	}
	if l.ambient, err = optionalColor(u, UniformAmbient, def.Ambient); err != nil {
		return err
	}
	if l.diffuse, err = optionalColor(u, UniformDiffuse, def.Diffuse); err != nil {
		return err
	}
	if l.specular, err = optionalColor(u, UniformSpecular, def.Specular); err != nil {
		return err
	}
	if l.shininess, err = optionalScalar(u, UniformShininess, def.Shininess); err != nil {
		return err
	}
	if l.transparency, err = optionalScalar(u, UniformTransparency, 0); err != nil {
		return err
	}
	return nil
}

// diffuseTerm returns max(n·l, 0) for a view-space position and normal.
func (l *lighting) diffuseTerm(pos, n Vec3) float64 {
	toLight := l.lightPos.Sub(pos).Normalize()
	return math.Max(n.Normalize().Dot(toLight), 0)
}

// shade evaluates Blinn-Phong at a view-space position with normal n.
func (l *lighting) shade(pos, n Vec3) RGBA {
	n = n.Normalize()
	toLight := l.lightPos.Sub(pos).Normalize()
	toEye := pos.Neg().Normalize()

	c := l.ambient
	diff := n.Dot(toLight)
	if diff > 0 {
		c = c.Add(l.diffuse.Mul(l.lightColor).Scale(diff))
		half := toLight.Add(toEye).Normalize()
		if hl := n.Dot(half); hl > 0 {
			c = c.Add(l.specular.Mul(l.lightColor).Scale(math.Pow(hl, l.shininess)))
		}
	}
	c.A = 1 - l.transparency
	return c.Clamp()
}

// solidProgram paints every fragment with the "color" uniform.
type solidProgram struct {
	t     transform
	color RGBA
}

func (p *solidProgram) Bind(u *Uniforms) error {
	if err := p.t.bind(u, false); err != nil {
		return err
	}
	var err error
	p.color, err = optionalColor(u, UniformColor, White)
	return err
}

func (p *solidProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{Face: face, Corner: corner, Position: m.position(face, corner)}
}

func (p *solidProgram) VertexShader(a Attributes) VertexOutput {
	return VertexOutput{Position: p.t.mvp.MulPoint(a.Position)}
}

func (p *solidProgram) FragmentShader(*Fragment) RGBA { return p.color }

func (p *solidProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingNone)
}

// faceColorProgram colors each face from a hash of its index. Because all
// three corners carry the same color, interpolation keeps it flat.
type faceColorProgram struct {
	t transform
}

func (p *faceColorProgram) Bind(u *Uniforms) error {
	return p.t.bind(u, false)
}

func (p *faceColorProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{Face: face, Corner: corner, Position: m.position(face, corner)}
}

func (p *faceColorProgram) VertexShader(a Attributes) VertexOutput {
	return VertexOutput{
		Position: p.t.mvp.MulPoint(a.Position),
		Varying:  Varying{Color: faceColor(a.Face)},
	}
}

func (p *faceColorProgram) FragmentShader(f *Fragment) RGBA { return f.Varying.Color }

func (p *faceColorProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingColor)
}

// faceColor derives a stable, reasonably bright color from a face index
// (splitmix64 finalizer).
func faceColor(face int) RGBA {
	z := uint64(face) + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return RGBA{
		R: 0.25 + 0.75*float64(z&0xFF)/255,
		G: 0.25 + 0.75*float64((z>>8)&0xFF)/255,
		B: 0.25 + 0.75*float64((z>>16)&0xFF)/255,
		A: 1,
	}
}

// normalProgram maps the interpolated view-space normal to RGB.
type normalProgram struct {
	t transform
}

func (p *normalProgram) Bind(u *Uniforms) error {
	return p.t.bind(u, true)
}

func (p *normalProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{
		Face:     face,
		Corner:   corner,
		Position: m.position(face, corner),
		Normal:   m.normal(face, corner),
	}
}

func (p *normalProgram) VertexShader(a Attributes) VertexOutput {
	return VertexOutput{
		Position: p.t.mvp.MulPoint(a.Position),
		Varying:  Varying{Normal: p.t.normal.MulDirection(a.Normal).Normalize()},
	}
}

func (p *normalProgram) FragmentShader(f *Fragment) RGBA {
	n := f.Varying.Normal.Normalize()
	return RGBA{R: n.X*0.5 + 0.5, G: n.Y*0.5 + 0.5, B: n.Z*0.5 + 0.5, A: 1}
}

func (p *normalProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingNormal)
}

// depthProgram shows window depth as grey.
type depthProgram struct {
	t transform
}

func (p *depthProgram) Bind(u *Uniforms) error {
	return p.t.bind(u, false)
}

func (p *depthProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{Face: face, Corner: corner, Position: m.position(face, corner)}
}

func (p *depthProgram) VertexShader(a Attributes) VertexOutput {
	return VertexOutput{Position: p.t.mvp.MulPoint(a.Position)}
}

func (p *depthProgram) FragmentShader(f *Fragment) RGBA {
	g := clamp01(1 - f.Z)
	return RGBA{R: g, G: g, B: g, A: 1}
}

func (p *depthProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingNone)
}

// gouraudProgram lights each vertex and interpolates the resulting color.
type gouraudProgram struct {
	t transform
	l lighting
}

func (p *gouraudProgram) Bind(u *Uniforms) error {
	if err := p.t.bind(u, true); err != nil {
		return err
	}
	return p.l.bind(u)
}

func (p *gouraudProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{
		Face:     face,
		Corner:   corner,
		Position: m.position(face, corner),
		Normal:   m.normal(face, corner),
	}
}

func (p *gouraudProgram) VertexShader(a Attributes) VertexOutput {
	pos := p.t.modelView.MulPoint(a.Position).XYZ()
	n := p.t.normal.MulDirection(a.Normal)
	return VertexOutput{
		Position: p.t.mvp.MulPoint(a.Position),
		Varying:  Varying{Color: p.l.shade(pos, n)},
	}
}

func (p *gouraudProgram) FragmentShader(f *Fragment) RGBA { return f.Varying.Color }

func (p *gouraudProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingColor)
}

// phongProgram interpolates view-space position and normal and lights
// every fragment.
type phongProgram struct {
	t transform
	l lighting
}

func (p *phongProgram) Bind(u *Uniforms) error {
	if err := p.t.bind(u, true); err != nil {
		return err
	}
	return p.l.bind(u)
}

func (p *phongProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{
		Face:     face,
		Corner:   corner,
		Position: m.position(face, corner),
		Normal:   m.normal(face, corner),
	}
}

func (p *phongProgram) VertexShader(a Attributes) VertexOutput {
	return VertexOutput{
		Position: p.t.mvp.MulPoint(a.Position),
		Varying: Varying{
			Normal:   p.t.normal.MulDirection(a.Normal),
			Position: p.t.modelView.MulPoint(a.Position).XYZ(),
		},
	}
}

func (p *phongProgram) FragmentShader(f *Fragment) RGBA {
	return p.l.shade(f.Varying.Position, f.Varying.Normal)
}

func (p *phongProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingNormal|VaryingPosition)
}

// textureProgram samples a texture and modulates it by per-vertex light
// intensity carried in the color varying.
type textureProgram struct {
	t       transform
	l       lighting
	texture *Texture
}

func (p *textureProgram) Bind(u *Uniforms) error {
	if err := p.t.bind(u, true); err != nil {
		return err
	}
	if err := p.l.bind(u); err != nil {
		return err
	}
	tex, err := u.Texture(UniformTexture)
	switch {
	case errors.Is(err, ErrUniformNotFound):
		p.texture = nil
	case err != nil:
		return err
	default:
		p.texture = tex
	}
	return nil
}

func (p *textureProgram) SetAttributes(m *Mesh, face, corner int) Attributes {
	return Attributes{
		Face:     face,
		Corner:   corner,
		Position: m.position(face, corner),
		Normal:   m.normal(face, corner),
		UV:       m.uv(face, corner),
	}
}

func (p *textureProgram) VertexShader(a Attributes) VertexOutput {
	pos := p.t.modelView.MulPoint(a.Position).XYZ()
	n := p.t.normal.MulDirection(a.Normal)
	light := p.l.ambient.Add(p.l.lightColor.Scale(p.l.diffuseTerm(pos, n)))
	light.A = 1 - p.l.transparency
	return VertexOutput{
		Position: p.t.mvp.MulPoint(a.Position),
		Varying:  Varying{Color: light, UV: a.UV},
	}
}

func (p *textureProgram) FragmentShader(f *Fragment) RGBA {
	base := p.l.diffuse
	if p.texture != nil {
		base = p.texture.Sample(f.Varying.UV.X, f.Varying.UV.Y)
	}
	light := f.Varying.Color
	return RGBA{
		R: base.R * light.R,
		G: base.G * light.G,
		B: base.B * light.B,
		A: base.A * light.A,
	}.Clamp()
}

func (p *textureProgram) Lerp(from, to Varying, t float64) Varying {
	return from.Lerp(to, t, VaryingColor|VaryingUV)
}
