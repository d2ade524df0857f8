package soft3d

import "fmt"

// Face is a triangle referencing three corners of a mesh. Each corner
// indexes Mesh.Positions and, optionally, Mesh.Normals and Mesh.UVs; -1
// means the attribute is absent for that corner.
type Face struct {
	Position [3]int
	Normal   [3]int
	UV       [3]int
}

// Material holds the reflectance coefficients used by the lighting
// programs.
type Material struct {
	Name         string
	Ambient      RGBA
	Diffuse      RGBA
	Specular     RGBA
	Shininess    float64
	Transparency float64 // 0 is opaque
	Texture      *Texture
}

// DefaultMaterial returns a neutral grey material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Ambient:   RGB(0.1, 0.1, 0.1),
		Diffuse:   RGB(0.8, 0.8, 0.8),
		Specular:  RGB(0.5, 0.5, 0.5),
		Shininess: 32,
	}
}

// Mesh owns vertex attribute arrays and a list of triangular faces that
// index into them.
type Mesh struct {
	Name      string
	Positions []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Faces     []Face
	Material  *Material
}

// NewMesh creates a mesh and validates every face index.
func NewMesh(name string, positions, normals []Vec3, uvs []Vec2, faces []Face) (*Mesh, error) {
	m := &Mesh{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Faces:     faces,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every face references existing attributes.
// Positions are mandatory; normal and UV indices may be -1.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for c := 0; c < 3; c++ {
			if p := f.Position[c]; p < 0 || p >= len(m.Positions) {
				return fmt.Errorf("mesh %q face %d corner %d: position %d of %d: %w",
					m.Name, i, c, p, len(m.Positions), ErrInvalidFace)
			}
			if n := f.Normal[c]; n < -1 || n >= len(m.Normals) {
				return fmt.Errorf("mesh %q face %d corner %d: normal %d of %d: %w",
					m.Name, i, c, n, len(m.Normals), ErrInvalidFace)
			}
			if t := f.UV[c]; t < -1 || t >= len(m.UVs) {
				return fmt.Errorf("mesh %q face %d corner %d: uv %d of %d: %w",
					m.Name, i, c, t, len(m.UVs), ErrInvalidFace)
			}
		}
	}
	return nil
}

// VertexCount returns the number of corners the vertex stage will shade.
func (m *Mesh) VertexCount() int {
	return len(m.Faces) * 3
}

// FaceNormal returns the unnormalized geometric normal of face i using
// counter-clockwise winding.
func (m *Mesh) FaceNormal(i int) Vec3 {
	f := m.Faces[i]
	a := m.Positions[f.Position[0]]
	b := m.Positions[f.Position[1]]
	c := m.Positions[f.Position[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// ComputeNormals replaces Normals with smooth per-position normals (the
// area-weighted average of adjacent face normals) and points every face
// corner at them.
func (m *Mesh) ComputeNormals() {
	normals := make([]Vec3, len(m.Positions))
	for i, f := range m.Faces {
		n := m.FaceNormal(i)
		for c := 0; c < 3; c++ {
			normals[f.Position[c]] = normals[f.Position[c]].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
	for i := range m.Faces {
		m.Faces[i].Normal = m.Faces[i].Position
	}
}

// position returns the position of a face corner. An out-of-range index
// panics: meshes are validated on construction, so this is a programmer
// error rather than bad input.
func (m *Mesh) position(face, corner int) Vec3 {
	return m.Positions[m.corner(face, corner).Position[corner]]
}

// normal returns the normal of a face corner, or the zero vector if absent.
func (m *Mesh) normal(face, corner int) Vec3 {
	i := m.corner(face, corner).Normal[corner]
	if i < 0 {
		return Vec3{}
	}
	return m.Normals[i]
}

// uv returns the texture coordinate of a face corner, or zero if absent.
func (m *Mesh) uv(face, corner int) Vec2 {
	i := m.corner(face, corner).UV[corner]
	if i < 0 {
		return Vec2{}
	}
	return m.UVs[i]
}

func (m *Mesh) corner(face, corner int) *Face {
	if face < 0 || face >= len(m.Faces) || corner < 0 || corner > 2 {
		panic(fmt.Sprintf("soft3d: mesh %q: corner (%d, %d) out of range (%d faces)",
			m.Name, face, corner, len(m.Faces)))
	}
	return &m.Faces[face]
}
