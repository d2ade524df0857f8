package soft3d

import (
	"fmt"
	"sort"
)

// Well-known uniform names set by RenderScene. Custom programs may use any
// other names.
const (
	UniformModel        = "model"
	UniformView         = "view"
	UniformProjection   = "projection"
	UniformModelView    = "modelView"
	UniformMVP          = "mvp"
	UniformNormalMatrix = "normalMatrix"

	UniformColor         = "color"
	UniformLightPosition = "lightPosition" // view space
	UniformLightColor    = "lightColor"
	UniformAmbient       = "ambient"
	UniformDiffuse       = "diffuse"
	UniformSpecular      = "specular"
	UniformShininess     = "shininess"
	UniformTransparency  = "transparency"
	UniformTexture       = "texture"
)

// UniformKind identifies which value a Uniform holds.
type UniformKind uint8

const (
	UniformKindScalar UniformKind = iota + 1
	UniformKindPoint
	UniformKindMatrix
	UniformKindColor
	UniformKindTexture
)

// String returns a string representation of the kind.
func (k UniformKind) String() string {
	switch k {
	case UniformKindScalar:
		return "scalar"
	case UniformKindPoint:
		return "point"
	case UniformKindMatrix:
		return "matrix"
	case UniformKindColor:
		return "color"
	case UniformKindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Uniform is a tagged union of the value kinds a draw call can bind.
// Values are copied in, so a uniform never aliases caller memory (textures
// are shared by pointer and must not be mutated mid-frame).
type Uniform struct {
	kind    UniformKind
	scalar  float64
	point   Vec3
	matrix  Mat4
	color   RGBA
	texture *Texture
}

// Kind returns the kind of value stored.
func (u Uniform) Kind() UniformKind {
	return u.kind
}

// Uniforms is a name → value table, constant for one draw call.
type Uniforms struct {
	values map[string]Uniform
}

// NewUniforms creates an empty uniform table.
func NewUniforms() *Uniforms {
	return &Uniforms{values: make(map[string]Uniform)}
}

func (u *Uniforms) set(name string, v Uniform) {
	if u.values == nil {
		u.values = make(map[string]Uniform)
	}
	u.values[name] = v
}

// SetScalar stores a float value.
func (u *Uniforms) SetScalar(name string, v float64) {
	u.set(name, Uniform{kind: UniformKindScalar, scalar: v})
}

// SetPoint stores a 3D point or direction.
func (u *Uniforms) SetPoint(name string, v Vec3) {
	u.set(name, Uniform{kind: UniformKindPoint, point: v})
}

// SetMatrix stores a 4x4 matrix.
func (u *Uniforms) SetMatrix(name string, v Mat4) {
	u.set(name, Uniform{kind: UniformKindMatrix, matrix: v})
}

// SetColor stores a color.
func (u *Uniforms) SetColor(name string, v RGBA) {
	u.set(name, Uniform{kind: UniformKindColor, color: v})
}

// SetTexture stores a texture reference.
func (u *Uniforms) SetTexture(name string, v *Texture) {
	u.set(name, Uniform{kind: UniformKindTexture, texture: v})
}

// Has reports whether name is bound.
func (u *Uniforms) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// Delete removes name from the table.
func (u *Uniforms) Delete(name string) {
	delete(u.values, name)
}

// Names returns the bound names in sorted order.
func (u *Uniforms) Names() []string {
	names := make([]string, 0, len(u.values))
	for name := range u.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (u *Uniforms) lookup(name string, kind UniformKind) (Uniform, error) {
	if u == nil {
		return Uniform{}, fmt.Errorf("%q: %w", name, ErrUniformNotFound)
	}
	v, ok := u.values[name]
	if !ok {
		return Uniform{}, fmt.Errorf("%q: %w", name, ErrUniformNotFound)
	}
	if v.kind != kind {
		return Uniform{}, fmt.Errorf("%q is %s, want %s: %w", name, v.kind, kind, ErrUniformType)
	}
	return v, nil
}

// Scalar returns the float bound to name.
func (u *Uniforms) Scalar(name string) (float64, error) {
	v, err := u.lookup(name, UniformKindScalar)
	return v.scalar, err
}

// Point returns the point bound to name.
func (u *Uniforms) Point(name string) (Vec3, error) {
	v, err := u.lookup(name, UniformKindPoint)
	return v.point, err
}

// Matrix returns the matrix bound to name.
func (u *Uniforms) Matrix(name string) (Mat4, error) {
	v, err := u.lookup(name, UniformKindMatrix)
	return v.matrix, err
}

// Color returns the color bound to name.
func (u *Uniforms) Color(name string) (RGBA, error) {
	v, err := u.lookup(name, UniformKindColor)
	return v.color, err
}

// Texture returns the texture bound to name.
func (u *Uniforms) Texture(name string) (*Texture, error) {
	v, err := u.lookup(name, UniformKindTexture)
	return v.texture, err
}
