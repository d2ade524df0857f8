package soft3d

import (
	"fmt"
	"strings"
)

// Algorithm identifies a rendering program. The built-in algorithms are
// listed below; values from AlgorithmCustom upward are free for programs
// registered with WithProgram.
type Algorithm uint8

const (
	// AlgorithmSolid fills with the "color" uniform.
	AlgorithmSolid Algorithm = iota
	// AlgorithmFaceColor gives every face its own pseudo-random color.
	AlgorithmFaceColor
	// AlgorithmNormal shows view-space normals as RGB.
	AlgorithmNormal
	// AlgorithmDepth shows fragment depth as grey, near is bright.
	AlgorithmDepth
	// AlgorithmGouraud lights vertices and interpolates the color.
	AlgorithmGouraud
	// AlgorithmPhong interpolates normals and lights every fragment.
	AlgorithmPhong
	// AlgorithmTexture samples the "texture" uniform, modulated by
	// per-vertex diffuse light.
	AlgorithmTexture

	// AlgorithmCustom is the first value reserved for user programs.
	AlgorithmCustom Algorithm = 128
)

var algorithmNames = map[Algorithm]string{
	AlgorithmSolid:     "solid",
	AlgorithmFaceColor: "facecolor",
	AlgorithmNormal:    "normal",
	AlgorithmDepth:     "depth",
	AlgorithmGouraud:   "gouraud",
	AlgorithmPhong:     "phong",
	AlgorithmTexture:   "texture",
}

// String returns a string representation of the algorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	if a >= AlgorithmCustom {
		return fmt.Sprintf("custom(%d)", uint8(a-AlgorithmCustom))
	}
	return "unknown"
}

// ParseAlgorithm parses a built-in algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for a, name := range algorithmNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
}

// Algorithms returns the built-in algorithms in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmSolid, AlgorithmFaceColor, AlgorithmNormal, AlgorithmDepth,
		AlgorithmGouraud, AlgorithmPhong, AlgorithmTexture,
	}
}

// Attributes is the raw per-corner input read from a mesh.
type Attributes struct {
	Face     int
	Corner   int
	Position Vec3 // object space
	Normal   Vec3 // object space, zero if the program does not read it
	UV       Vec2
}

// VertexOutput is what a vertex shader hands to clipping and rasterization.
type VertexOutput struct {
	Position Vec4 // clip space
	Varying  Varying
}

// Program is one rendering algorithm: how vertices are read and shaded,
// how varyings interpolate, and how fragments are colored.
//
// The renderer calls Bind once per draw call, then SetAttributes and
// VertexShader for every face corner, Lerp while clipping and rasterizing,
// and FragmentShader for every fragment that passes the test chain.
// A Program is used by one draw call at a time.
type Program interface {
	// Bind resolves the uniforms the program needs. Missing required
	// uniforms or uniforms of the wrong kind are reported here, before any
	// vertex is processed.
	Bind(u *Uniforms) error

	// SetAttributes reads one face corner. It panics if face or corner is
	// out of range.
	SetAttributes(m *Mesh, face, corner int) Attributes

	// VertexShader transforms attributes to clip space and fills varyings.
	VertexShader(a Attributes) VertexOutput

	// FragmentShader computes the final color of a fragment.
	FragmentShader(f *Fragment) RGBA

	// Lerp interpolates the varyings this program uses.
	Lerp(from, to Varying, p float64) Varying
}

// builtinPrograms is the dispatch table from algorithm to program factory.
var builtinPrograms = map[Algorithm]func() Program{
	AlgorithmSolid:     func() Program { return &solidProgram{} },
	AlgorithmFaceColor: func() Program { return &faceColorProgram{} },
	AlgorithmNormal:    func() Program { return &normalProgram{} },
	AlgorithmDepth:     func() Program { return &depthProgram{} },
	AlgorithmGouraud:   func() Program { return &gouraudProgram{} },
	AlgorithmPhong:     func() Program { return &phongProgram{} },
	AlgorithmTexture:   func() Program { return &textureProgram{} },
}

// NewProgram creates a fresh instance of a built-in program.
func NewProgram(a Algorithm) (Program, error) {
	factory, ok := builtinPrograms[a]
	if !ok {
		return nil, fmt.Errorf("%s: %w", a, ErrUnknownAlgorithm)
	}
	return factory(), nil
}
